package stoneconnect

import (
	"encoding/json"
	"time"
)

const (
	// Fixed credential pair built into the vendor app. Can be overridden via Settings.
	DEFAULT_USERNAME = "App_RadWiFi_v1"
	DEFAULT_PASSWORD = "e1qf45s4w8e7q5wda4s5d1as2"

	DEFAULT_PORT = 443

	API_ROOT = "/Domestic_Heating/Radiators/v1"

	INFO_URL     = "info"
	STATUS_URL   = "status"
	SCHEDULE_URL = "Schedule"
	SETPOINT_URL = "setpoint"

	USER_AGENT = "StoneConnect-Go-Client/1.0"

	SETPOINT_MIN = 0.0
	SETPOINT_MAX = 30.0
	// Setpoint written for STANDBY/SCHEDULE/HOLIDAY when the device reports no
	// current setpoint. Observed behaviour of the vendor app, not a documented
	// device requirement.
	SETPOINT_DEFAULT = 20.0
)

// DEFAULT_TIMEOUT is the request timeout used for an owned http client.
var DEFAULT_TIMEOUT = 30 * time.Second

// OperationMode is one of the operating modes the heater understands,
// in its wire form.
type OperationMode string

const (
	ANTIFREEZE OperationMode = "ANF"
	BOOST      OperationMode = "BST"
	COMFORT    OperationMode = "CMF"
	ECO        OperationMode = "ECO"
	HIGH       OperationMode = "HIG"
	HOLIDAY    OperationMode = "HOL"
	LOW        OperationMode = "LOW"
	MANUAL     OperationMode = "MAN"
	MEDIUM     OperationMode = "MED"
	SCHEDULE   OperationMode = "SCH"
	STANDBY    OperationMode = "SBY"
)

// UseMode distinguishes setpoint-driven from power-level-driven operation.
type UseMode string

const (
	SETPOINT UseMode = "SET"
	POWER    UseMode = "POW"
)

// Timestamp is transmitted as integer epoch milliseconds on the wire.
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) *Timestamp {
	return &Timestamp{Time: t}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.UnixMilli())
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var ms int64
	if err := json.Unmarshal(b, &ms); err != nil {
		return err
	}
	t.Time = time.UnixMilli(ms)
	return nil
}

// HolidaySettings is the holiday window nested inside Info.
type HolidaySettings struct {
	HolidayStart  *Timestamp `json:"Holiday_Start,omitempty"`
	HolidayEnd    *Timestamp `json:"Holiday_End,omitempty"`
	OperativeMode *string    `json:"Operative_Mode,omitempty"`
}

// Info is the device identity and configuration snapshot from the info
// endpoint. Every field is optional; nil means the device did not report it.
type Info struct {
	ClientID           *string          `json:"Client_ID,omitempty"`
	OperativeMode      *OperationMode   `json:"Operative_Mode,omitempty"`
	SetPoint           *float64         `json:"Set_Point,omitempty"`
	UseMode            *UseMode         `json:"Use_Mode,omitempty"`
	HomeID             *int             `json:"Home_ID,omitempty"`
	ZoneID             *int             `json:"Zone_ID,omitempty"`
	ApplianceID        *int             `json:"Appliance_ID,omitempty"`
	TemperatureUnit    *string          `json:"Temperature_Unit,omitempty"`
	IsInstalled        *bool            `json:"Is_Installed,omitempty"`
	ComfortSetpoint    *float64         `json:"Comfort_Setpoint,omitempty"`
	EcoSetpoint        *float64         `json:"Eco_Setpoint,omitempty"`
	AntifreezeSetpoint *float64         `json:"Antifreeze_Setpoint,omitempty"`
	BoostTimer         *int             `json:"Boost_Timer,omitempty"`
	HighPower          *int             `json:"High_Power,omitempty"`
	MediumPower        *int             `json:"Medium_Power,omitempty"`
	LowPower           *int             `json:"Low_Power,omitempty"`
	MACAddress         *string          `json:"MAC_Address,omitempty"`
	PCBPartNumber      *string          `json:"PCB_PN,omitempty"`
	PCBVersion         *string          `json:"PCB_Version,omitempty"`
	FWPartNumber       *string          `json:"FW_PN,omitempty"`
	FWVersion          *string          `json:"FW_Version,omitempty"`
	Holiday            *HolidaySettings `json:"Holiday,omitempty"`
	Latitude           *float64         `json:"Latitude,omitempty"`
	Longitude          *float64         `json:"Longitude,omitempty"`
	Altitude           *float64         `json:"Altitude,omitempty"`
	GPSPrecision       *int             `json:"GPS_Precision,omitempty"`
	SetTimezone        *int             `json:"Set_Timezone,omitempty"`
	LoadSizeWatt       *int             `json:"Load_Size_Watt,omitempty"`
	HomeName           *string          `json:"Home_Name,omitempty"`
	ZoneName           *string          `json:"Zone_Name,omitempty"`
	ApplianceName      *string          `json:"Appliance_Name,omitempty"`
	AppliancePN        *string          `json:"Appliance_PN,omitempty"`
	ApplianceSN        *string          `json:"Appliance_SN,omitempty"`
	HousingPN          *string          `json:"Housing_PN,omitempty"`
	HousingSN          *string          `json:"Housing_SN,omitempty"`
	LastUpdate         *Timestamp       `json:"Last_Update,omitempty"`
}

// UnmarshalJSON decodes an info payload. Mode tokens newer firmware may send
// but this library does not know degrade to absent instead of failing.
func (i *Info) UnmarshalJSON(b []byte) error {
	type info Info
	aux := struct {
		*info
		OperativeMode *string `json:"Operative_Mode"`
		UseMode       *string `json:"Use_Mode"`
	}{info: (*info)(i)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	i.OperativeMode = parseOperationMode(aux.OperativeMode)
	i.UseMode = parseUseMode(aux.UseMode)
	return nil
}

// Status is the live telemetry record from the status endpoint. Every field
// is optional; nil means the device did not report it.
type Status struct {
	ClientID             *string        `json:"Client_ID,omitempty"`
	SetPoint             *float64       `json:"Set_Point,omitempty"`
	OperativeMode        *OperationMode `json:"Operative_Mode,omitempty"`
	PowerConsumptionWatt *int           `json:"Power_Consumption_Watt,omitempty"`
	DailyEnergy          *int           `json:"Daily_Energy,omitempty"`
	ErrorCode            *int           `json:"Error_Code,omitempty"`
	LockStatus           *bool          `json:"Lock_Status,omitempty"`
	RSSI                 *int           `json:"RSSI,omitempty"`
	ConnectedToBroker    *bool          `json:"Connected_To_Broker,omitempty"`
	BrokerEnabled        *bool          `json:"Broker_Enabled,omitempty"`
	LastUpdate           *Timestamp     `json:"Last_Update,omitempty"`
}

// UnmarshalJSON decodes a status payload with the same unknown-mode tolerance
// as Info.
func (s *Status) UnmarshalJSON(b []byte) error {
	type status Status
	aux := struct {
		*status
		OperativeMode *string `json:"Operative_Mode"`
	}{status: (*status)(s)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	s.OperativeMode = parseOperationMode(aux.OperativeMode)
	return nil
}

// ScheduleSlot is one time-of-day setpoint within a schedule day.
type ScheduleSlot struct {
	Hour     int     `json:"hour"`
	Minute   int     `json:"minute"`
	SetPoint float64 `json:"set_point"`
}

// ScheduleDay holds the slots for one weekday. WeekDay counts 0=Monday
// through 6=Sunday.
type ScheduleDay struct {
	WeekDay       int            `json:"week_day"`
	ScheduleSlots []ScheduleSlot `json:"schedule_slots"`
}

// Schedule is the weekly program from the Schedule endpoint. The day list is
// not guaranteed to be sorted and may hold fewer than seven entries.
type Schedule struct {
	ClientID       *string       `json:"Client_ID,omitempty"`
	WeeklySchedule []ScheduleDay `json:"Weekly_Schedule,omitempty"`
	LastUpdate     *Timestamp    `json:"Last_Update,omitempty"`
}
