package stoneconnect

// Every operation mode belongs to exactly one category. The category decides
// how the setpoint is determined when the mode is written to the device.
type modeCategory int

const (
	categoryOther  modeCategory = iota // setpoint carried through unchanged
	categoryPower                      // fixed power level, setpoint always 0
	categoryPreset                     // setpoint stored on the device per mode
	categoryCustom                     // setpoint supplied by the caller
)

var modeCategories = map[OperationMode]modeCategory{
	HIGH:       categoryPower,
	MEDIUM:     categoryPower,
	LOW:        categoryPower,
	COMFORT:    categoryPreset,
	ECO:        categoryPreset,
	ANTIFREEZE: categoryPreset,
	MANUAL:     categoryCustom,
	BOOST:      categoryCustom,
	STANDBY:    categoryOther,
	HOLIDAY:    categoryOther,
	SCHEDULE:   categoryOther,
}

// Modes lists all operation modes this library knows.
var Modes = []OperationMode{
	ANTIFREEZE, BOOST, COMFORT, ECO, HIGH, HOLIDAY, LOW, MANUAL, MEDIUM, SCHEDULE, STANDBY,
}

func (m OperationMode) String() string {
	return string(m)
}

func (m OperationMode) known() bool {
	_, ok := modeCategories[m]
	return ok
}

// IsPowerMode reports whether m selects a fixed power level (HIGH/MEDIUM/LOW).
func (m OperationMode) IsPowerMode() bool {
	return modeCategories[m] == categoryPower
}

// IsPresetMode reports whether m uses a setpoint stored on the device
// (COMFORT/ECO/ANTIFREEZE).
func (m OperationMode) IsPresetMode() bool {
	return modeCategories[m] == categoryPreset
}

// IsCustomMode reports whether m takes a caller-supplied setpoint
// (MANUAL/BOOST).
func (m OperationMode) IsCustomMode() bool {
	return modeCategories[m] == categoryCustom
}

// PresetSetpoint returns the device-stored setpoint for a preset mode, nil if
// the device did not report one. Non-preset modes always return nil.
func (m OperationMode) PresetSetpoint(info *Info) *float64 {
	if info == nil {
		return nil
	}
	switch m {
	case COMFORT:
		return info.ComfortSetpoint
	case ECO:
		return info.EcoSetpoint
	case ANTIFREEZE:
		return info.AntifreezeSetpoint
	}
	return nil
}

// ParseOperationMode maps a wire token to an operation mode. Tokens this
// library does not know yield nil, so new firmware values never break parsing.
func ParseOperationMode(s string) *OperationMode {
	m := OperationMode(s)
	if !m.known() {
		return nil
	}
	return &m
}

// ParseUseMode maps a wire token to a use mode, nil for unknown tokens.
func ParseUseMode(s string) *UseMode {
	switch u := UseMode(s); u {
	case SETPOINT, POWER:
		return &u
	}
	return nil
}

func parseOperationMode(s *string) *OperationMode {
	if s == nil {
		return nil
	}
	return ParseOperationMode(*s)
}

func parseUseMode(s *string) *UseMode {
	if s == nil {
		return nil
	}
	return ParseUseMode(*s)
}
