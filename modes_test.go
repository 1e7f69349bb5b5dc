package stoneconnect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModeCategoriesArePairwiseExclusive(t *testing.T) {
	for _, mode := range Modes {
		count := 0
		if mode.IsPowerMode() {
			count++
		}
		if mode.IsPresetMode() {
			count++
		}
		if mode.IsCustomMode() {
			count++
		}
		assert.LessOrEqual(t, count, 1, "mode %s is in more than one category", mode)
	}
}

func TestModeCategoryMembership(t *testing.T) {
	for _, mode := range []OperationMode{HIGH, MEDIUM, LOW} {
		assert.True(t, mode.IsPowerMode(), "%s", mode)
	}
	for _, mode := range []OperationMode{COMFORT, ECO, ANTIFREEZE} {
		assert.True(t, mode.IsPresetMode(), "%s", mode)
	}
	for _, mode := range []OperationMode{MANUAL, BOOST} {
		assert.True(t, mode.IsCustomMode(), "%s", mode)
	}
	for _, mode := range []OperationMode{STANDBY, SCHEDULE, HOLIDAY} {
		assert.False(t, mode.IsPowerMode(), "%s", mode)
		assert.False(t, mode.IsPresetMode(), "%s", mode)
		assert.False(t, mode.IsCustomMode(), "%s", mode)
	}
}

func TestUnknownModeBelongsToNoCategory(t *testing.T) {
	mode := OperationMode("XXX")
	assert.False(t, mode.IsPowerMode())
	assert.False(t, mode.IsPresetMode())
	assert.False(t, mode.IsCustomMode())
}

func TestPresetSetpoint(t *testing.T) {
	info := &Info{
		ComfortSetpoint:    f64(19.0),
		EcoSetpoint:        f64(15.0),
		AntifreezeSetpoint: f64(7.0),
	}

	assert.Equal(t, f64(19.0), COMFORT.PresetSetpoint(info))
	assert.Equal(t, f64(15.0), ECO.PresetSetpoint(info))
	assert.Equal(t, f64(7.0), ANTIFREEZE.PresetSetpoint(info))

	// non-preset modes never resolve a preset
	assert.Nil(t, MANUAL.PresetSetpoint(info))
	assert.Nil(t, HIGH.PresetSetpoint(info))

	assert.Nil(t, COMFORT.PresetSetpoint(nil))
	assert.Nil(t, COMFORT.PresetSetpoint(&Info{}))
}

func TestParseOperationMode(t *testing.T) {
	for _, mode := range Modes {
		parsed := ParseOperationMode(string(mode))
		if assert.NotNil(t, parsed, "%s", mode) {
			assert.Equal(t, mode, *parsed)
		}
	}

	assert.Nil(t, ParseOperationMode("UNKNOWN_MODE"))
	assert.Nil(t, ParseOperationMode(""))
}

func TestParseUseMode(t *testing.T) {
	set := ParseUseMode("SET")
	if assert.NotNil(t, set) {
		assert.Equal(t, SETPOINT, *set)
	}
	pow := ParseUseMode("POW")
	if assert.NotNil(t, pow) {
		assert.Equal(t, POWER, *pow)
	}
	assert.Nil(t, ParseUseMode("XXX"))
	assert.Nil(t, ParseUseMode(""))
}
