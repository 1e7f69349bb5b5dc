package stoneconnect

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f64(v float64) *float64 { return &v }

func str(v string) *string { return &v }

func TestInfoUnmarshal(t *testing.T) {
	payload := `{
		"Client_ID": "571519332SN20244900365",
		"Operative_Mode": "CMF",
		"Set_Point": 20.0,
		"Use_Mode": "SET",
		"Comfort_Setpoint": 19.0,
		"Eco_Setpoint": 15.0,
		"Antifreeze_Setpoint": 7.0,
		"Load_Size_Watt": 1000,
		"MAC_Address": "30:c6:f7:e9:e2:48",
		"FW_Version": "1.2.3",
		"Last_Update": 1718000000000
	}`

	var info Info
	require.NoError(t, json.Unmarshal([]byte(payload), &info))

	require.NotNil(t, info.ClientID)
	assert.Equal(t, "571519332SN20244900365", *info.ClientID)
	require.NotNil(t, info.OperativeMode)
	assert.Equal(t, COMFORT, *info.OperativeMode)
	require.NotNil(t, info.UseMode)
	assert.Equal(t, SETPOINT, *info.UseMode)
	assert.Equal(t, f64(20.0), info.SetPoint)
	assert.Equal(t, f64(19.0), info.ComfortSetpoint)
	assert.Equal(t, f64(15.0), info.EcoSetpoint)
	assert.Equal(t, f64(7.0), info.AntifreezeSetpoint)
	require.NotNil(t, info.LoadSizeWatt)
	assert.Equal(t, 1000, *info.LoadSizeWatt)
	assert.Equal(t, str("30:c6:f7:e9:e2:48"), info.MACAddress)
	assert.Equal(t, str("1.2.3"), info.FWVersion)
	require.NotNil(t, info.LastUpdate)
	assert.True(t, info.LastUpdate.Equal(time.UnixMilli(1718000000000)))

	// not reported by the device
	assert.Nil(t, info.Holiday)
	assert.Nil(t, info.HomeName)
	assert.Nil(t, info.Latitude)
}

func TestStatusUnmarshal(t *testing.T) {
	payload := `{
		"Client_ID": "571519332SN20244900365",
		"Set_Point": 21.5,
		"Operative_Mode": "MAN",
		"Power_Consumption_Watt": 1500,
		"Daily_Energy": 2500,
		"Error_Code": 0,
		"Lock_Status": false,
		"RSSI": -45,
		"Connected_To_Broker": true,
		"Broker_Enabled": true
	}`

	var status Status
	require.NoError(t, json.Unmarshal([]byte(payload), &status))

	assert.Equal(t, f64(21.5), status.SetPoint)
	require.NotNil(t, status.OperativeMode)
	assert.Equal(t, MANUAL, *status.OperativeMode)
	require.NotNil(t, status.PowerConsumptionWatt)
	assert.Equal(t, 1500, *status.PowerConsumptionWatt)
	require.NotNil(t, status.DailyEnergy)
	assert.Equal(t, 2500, *status.DailyEnergy)
	require.NotNil(t, status.ErrorCode)
	assert.Equal(t, 0, *status.ErrorCode)
	require.NotNil(t, status.LockStatus)
	assert.False(t, *status.LockStatus)
	require.NotNil(t, status.RSSI)
	assert.Equal(t, -45, *status.RSSI)
	require.NotNil(t, status.ConnectedToBroker)
	assert.True(t, *status.ConnectedToBroker)
	assert.Nil(t, status.LastUpdate)
}

func TestUnknownEnumValuesParseToAbsent(t *testing.T) {
	var info Info
	require.NoError(t, json.Unmarshal([]byte(`{"Operative_Mode":"UNKNOWN_MODE","Use_Mode":"XXX","Set_Point":18.0}`), &info))
	assert.Nil(t, info.OperativeMode)
	assert.Nil(t, info.UseMode)
	assert.Equal(t, f64(18.0), info.SetPoint)

	var status Status
	require.NoError(t, json.Unmarshal([]byte(`{"Operative_Mode":"UNKNOWN_MODE"}`), &status))
	assert.Nil(t, status.OperativeMode)
}

func TestHolidaySettingsUnmarshal(t *testing.T) {
	payload := `{
		"Holiday": {
			"Holiday_Start": 1718000000000,
			"Holiday_End": 1718600000000,
			"Operative_Mode": "ANF"
		}
	}`

	var info Info
	require.NoError(t, json.Unmarshal([]byte(payload), &info))
	require.NotNil(t, info.Holiday)
	require.NotNil(t, info.Holiday.HolidayStart)
	assert.True(t, info.Holiday.HolidayStart.Equal(time.UnixMilli(1718000000000)))
	require.NotNil(t, info.Holiday.HolidayEnd)
	assert.True(t, info.Holiday.HolidayEnd.Equal(time.UnixMilli(1718600000000)))
	assert.Equal(t, str("ANF"), info.Holiday.OperativeMode)
}

func TestTimestampMarshal(t *testing.T) {
	b, err := json.Marshal(NewTimestamp(time.UnixMilli(1718000000000)))
	require.NoError(t, err)
	assert.Equal(t, "1718000000000", string(b))
}

func TestScheduleRoundTrip(t *testing.T) {
	schedule := Schedule{
		ClientID: str("571519332SN20244900365"),
		WeeklySchedule: []ScheduleDay{
			{
				WeekDay: 5,
				ScheduleSlots: []ScheduleSlot{
					{Hour: 6, Minute: 30, SetPoint: 21.0},
					{Hour: 22, Minute: 0, SetPoint: 16.0},
				},
			},
			{
				WeekDay: 0,
				ScheduleSlots: []ScheduleSlot{
					{Hour: 7, Minute: 0, SetPoint: 19.5},
				},
			},
		},
		LastUpdate: NewTimestamp(time.UnixMilli(1718000000000)),
	}

	b, err := json.Marshal(schedule)
	require.NoError(t, err)

	var decoded Schedule
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, schedule, decoded)
}

func TestScheduleUnmarshalWire(t *testing.T) {
	payload := `{
		"Client_ID": "571519332SN20244900365",
		"Weekly_Schedule": [
			{"week_day": 2, "schedule_slots": [{"hour": 6, "minute": 15, "set_point": 20.5}]}
		]
	}`

	var schedule Schedule
	require.NoError(t, json.Unmarshal([]byte(payload), &schedule))
	require.Len(t, schedule.WeeklySchedule, 1)
	assert.Equal(t, 2, schedule.WeeklySchedule[0].WeekDay)
	require.Len(t, schedule.WeeklySchedule[0].ScheduleSlots, 1)
	assert.Equal(t, ScheduleSlot{Hour: 6, Minute: 15, SetPoint: 20.5}, schedule.WeeklySchedule[0].ScheduleSlots[0])
}
