package stoneconnect

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"dario.cat/mergo"
)

// Settings selects the heater to talk to. Zero fields are filled with the
// package defaults, only Host is required.
type Settings struct {
	Host     string
	Port     int
	Username string
	Password string
	Timeout  time.Duration
}

// Client is the Stone Connect heater connection. Every accessor performs a
// fresh request against the device; the client holds no state beyond the
// http session.
type Client struct {
	settings   Settings
	baseURL    string
	authHeader string
	logger     Logger
	reqLog     *log.Logger

	client      *http.Client
	ownedClient bool
}

// NewClient creates a new Stone Connect heater client.
func NewClient(settings Settings, opts ...Option) (*Client, error) {
	if err := mergo.Merge(&settings, defaultSettings()); err != nil {
		return nil, err
	}
	if settings.Host == "" {
		return nil, errors.New("missing heater host")
	}

	c := &Client{
		settings: settings,
		baseURL:  fmt.Sprintf("https://%s:%d%s", settings.Host, settings.Port, API_ROOT),
	}
	creds := settings.Username + ":" + settings.Password
	c.authHeader = "Basic " + base64.StdEncoding.EncodeToString([]byte(creds))

	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func defaultSettings() Settings {
	return Settings{
		Port:     DEFAULT_PORT,
		Username: DEFAULT_USERNAME,
		Password: DEFAULT_PASSWORD,
		Timeout:  DEFAULT_TIMEOUT,
	}
}

func (c *Client) debug(format string, arg ...any) {
	if c.logger != nil {
		c.logger.Printf(format, arg...)
	}
}

// ensureClient lazily creates the underlying http session if none exists.
// A session created here is owned by the client and released by Close.
func (c *Client) ensureClient() *http.Client {
	if c.client == nil {
		c.client = &http.Client{
			Timeout:   c.settings.Timeout,
			Transport: newOwnedTransport(c.reqLog),
		}
		c.ownedClient = true
	}
	return c.client
}

// Close releases the http session if the client created it itself. A session
// supplied via WithHttpClient is left untouched. Safe to call repeatedly and
// after failed requests; the next request opens a fresh session.
func (c *Client) Close() {
	if c.ownedClient && c.client != nil {
		c.client.CloseIdleConnections()
		c.client = nil
		c.ownedClient = false
	}
}

// Returns the http header for requests to the heater
func (c *Client) httpHeader() http.Header {
	return http.Header{
		"Authorization": {c.authHeader},
		"Content-Type":  {JSONContent},
		"User-Agent":    {USER_AGENT},
	}
}

// request performs one call against the device api and maps failures to the
// typed errors of this package.
func (c *Client) request(method, endpoint string, body any) ([]byte, error) {
	uri := c.baseURL + "/" + strings.TrimPrefix(endpoint, "/")

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, uri, rd)
	if err != nil {
		return nil, err
	}
	req.Header = c.httpHeader()

	c.debug("%s %s", method, uri)
	b, err := NewHelper(c.ensureClient()).DoBody(req)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			if apiErr.StatusCode == http.StatusNotFound {
				apiErr.Endpoint = endpoint
			}
			return b, err
		}
		var authErr *AuthenticationError
		if errors.As(err, &authErr) {
			return b, err
		}
		return b, &ConnectionError{Err: err}
	}
	return b, nil
}

func (c *Client) getJSON(endpoint string, res any) error {
	b, err := c.request("GET", endpoint, nil)
	if err != nil {
		return err
	}
	lenientUnmarshal(b, res)
	return nil
}

// GetInfo reads the device identity and configuration snapshot.
func (c *Client) GetInfo() (*Info, error) {
	var res Info
	if err := c.getJSON(INFO_URL, &res); err != nil {
		return nil, fmt.Errorf("error getting device info: %w", err)
	}
	return &res, nil
}

// GetStatus reads the live telemetry record.
func (c *Client) GetStatus() (*Status, error) {
	var res Status
	if err := c.getJSON(STATUS_URL, &res); err != nil {
		return nil, fmt.Errorf("error getting device status: %w", err)
	}
	return &res, nil
}

// GetSchedule reads the weekly program.
func (c *Client) GetSchedule() (*Schedule, error) {
	var res Schedule
	if err := c.getJSON(SCHEDULE_URL, &res); err != nil {
		return nil, fmt.Errorf("error getting schedule: %w", err)
	}
	return &res, nil
}

// SetTemperatureAndMode applies setpoint and operation mode in a single call.
// Power modes ignore the temperature and always write setpoint 0. The device
// requires its client id on every write, so the info endpoint is read first.
func (c *Client) SetTemperatureAndMode(temperature float64, mode OperationMode) error {
	if !mode.IsPowerMode() {
		if err := ValidateTemperature(temperature); err != nil {
			return err
		}
	}

	info, err := c.GetInfo()
	if err != nil {
		return err
	}
	var clientID string
	if info.ClientID != nil {
		clientID = *info.ClientID
	}

	setPoint := temperature
	if mode.IsPowerMode() {
		setPoint = 0
	}

	body := map[string]any{
		"Client_ID":      clientID,
		"Operative_Mode": mode,
		"Set_Point":      setPoint,
	}
	if _, err := c.request("PUT", SETPOINT_URL, body); err != nil {
		return fmt.Errorf("could not set temperature and mode: %w", err)
	}

	if mode.IsPowerMode() {
		c.debug("set mode to %s (power mode, no temperature)", mode)
	} else {
		c.debug("set temperature to %.1f°C and mode to %s", setPoint, mode)
	}
	return nil
}

// SetTemperature sets the target temperature for the custom-temperature modes
// (MANUAL, BOOST). An empty mode resolves to the mode the device currently
// reports, falling back to MANUAL. Power and preset modes are rejected; use
// SetOperationMode for those.
func (c *Client) SetTemperature(temperature float64, mode OperationMode) error {
	if err := ValidateTemperature(temperature); err != nil {
		return err
	}

	if mode == "" {
		status, err := c.GetStatus()
		if err != nil {
			return err
		}
		if status.OperativeMode != nil {
			mode = *status.OperativeMode
		} else {
			mode = MANUAL
		}
	}

	if !mode.IsCustomMode() {
		switch {
		case mode.IsPowerMode():
			return newValidationError("power mode %s doesn't use temperature setpoints, use SetOperationMode instead", mode)
		case mode.IsPresetMode():
			return newValidationError("preset mode %s uses a predefined temperature, use SetOperationMode instead", mode)
		default:
			return newValidationError("mode %s doesn't support custom temperature setpoints", mode)
		}
	}

	return c.SetTemperatureAndMode(temperature, mode)
}

// SetOperationMode switches the heater to the given mode, resolving the
// setpoint from the mode category: 0 for power modes, the device preset for
// preset modes, and the current setpoint (or SETPOINT_DEFAULT) otherwise.
func (c *Client) SetOperationMode(mode OperationMode) error {
	info, err := c.GetInfo()
	if err != nil {
		return err
	}

	var temperature float64
	switch {
	case mode.IsPowerMode():
		temperature = 0
	case mode.IsPresetMode():
		preset := mode.PresetSetpoint(info)
		if preset == nil {
			return newValidationError("no preset temperature found for mode %s", mode)
		}
		temperature = *preset
	default:
		status, err := c.GetStatus()
		if err != nil {
			return err
		}
		if status.SetPoint != nil {
			temperature = *status.SetPoint
		} else {
			temperature = SETPOINT_DEFAULT
		}
	}

	return c.SetTemperatureAndMode(temperature, mode)
}

// SetComfortMode switches to the device-stored comfort setpoint.
func (c *Client) SetComfortMode() error {
	return c.SetOperationMode(COMFORT)
}

// SetEcoMode switches to the device-stored eco setpoint.
func (c *Client) SetEcoMode() error {
	return c.SetOperationMode(ECO)
}

// SetAntifreezeMode switches to the device-stored antifreeze setpoint.
func (c *Client) SetAntifreezeMode() error {
	return c.SetOperationMode(ANTIFREEZE)
}

// SetStandby turns the heater off while keeping it connected.
func (c *Client) SetStandby() error {
	return c.SetOperationMode(STANDBY)
}

// SetManualTemperature switches to manual mode with the given setpoint.
func (c *Client) SetManualTemperature(temperature float64) error {
	return c.SetTemperature(temperature, MANUAL)
}

// SetPowerMode switches to one of the fixed power levels HIGH, MEDIUM or LOW.
func (c *Client) SetPowerMode(level OperationMode) error {
	if !level.IsPowerMode() {
		return newValidationError("%s is not a valid power mode, use HIGH, MEDIUM or LOW", level)
	}
	return c.SetOperationMode(level)
}

// IsOnline reports whether the device answers on its status endpoint.
func (c *Client) IsOnline() bool {
	_, err := c.GetStatus()
	return err == nil
}

// HasPowerMeasurementSupport reports whether the device measures power draw.
// A nonzero Load_Size_Watt marks a measuring appliance.
func (c *Client) HasPowerMeasurementSupport() (bool, error) {
	info, err := c.GetInfo()
	if err != nil {
		return false, err
	}
	return info.LoadSizeWatt != nil && *info.LoadSizeWatt != 0, nil
}

// IsHeating reports whether the device is in any mode other than STANDBY,
// nil if the device does not report a mode.
func (c *Client) IsHeating() (*bool, error) {
	status, err := c.GetStatus()
	if err != nil {
		return nil, err
	}
	if status.OperativeMode == nil {
		return nil, nil
	}
	heating := *status.OperativeMode != STANDBY
	return &heating, nil
}

// GetSignalStrength returns the WiFi RSSI.
func (c *Client) GetSignalStrength() (*int, error) {
	status, err := c.GetStatus()
	if err != nil {
		return nil, err
	}
	return status.RSSI, nil
}

// IsLocked reports whether the device panel is locked.
func (c *Client) IsLocked() (*bool, error) {
	status, err := c.GetStatus()
	if err != nil {
		return nil, err
	}
	return status.LockStatus, nil
}

// GetErrorCode returns the current device error code, 0 meaning no error.
func (c *Client) GetErrorCode() (*int, error) {
	status, err := c.GetStatus()
	if err != nil {
		return nil, err
	}
	return status.ErrorCode, nil
}

// GetDailyEnergy returns the energy consumed today.
func (c *Client) GetDailyEnergy() (*int, error) {
	status, err := c.GetStatus()
	if err != nil {
		return nil, err
	}
	return status.DailyEnergy, nil
}

// GetPowerConsumption returns the current power draw in watts.
func (c *Client) GetPowerConsumption() (*int, error) {
	status, err := c.GetStatus()
	if err != nil {
		return nil, err
	}
	return status.PowerConsumptionWatt, nil
}

// GetCurrentTemperature returns the setpoint reported by the info endpoint.
// The heater has no room temperature sensor of its own.
func (c *Client) GetCurrentTemperature() (*float64, error) {
	info, err := c.GetInfo()
	if err != nil {
		return nil, err
	}
	return info.SetPoint, nil
}

// GetTargetTemperature returns the setpoint reported by the status endpoint.
func (c *Client) GetTargetTemperature() (*float64, error) {
	status, err := c.GetStatus()
	if err != nil {
		return nil, err
	}
	return status.SetPoint, nil
}

// ValidateTemperature rejects setpoints outside the device range before any
// network round trip.
func ValidateTemperature(temperature float64) error {
	if temperature < SETPOINT_MIN {
		return newValidationError("temperature %g°C is below minimum limit of %g°C", temperature, SETPOINT_MIN)
	}
	if temperature > SETPOINT_MAX {
		return newValidationError("temperature %g°C is above maximum limit of %g°C", temperature, SETPOINT_MAX)
	}
	return nil
}
