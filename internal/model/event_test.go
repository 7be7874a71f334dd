package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidEventType(t *testing.T) {
	for _, v := range EventTypes {
		assert.True(t, ValidEventType(v), "type %q", v)
	}
	assert.False(t, ValidEventType("RAVE"))
	assert.False(t, ValidEventType("concert"))
	assert.False(t, ValidEventType(""))
}

func TestWindowUnset(t *testing.T) {
	from, to := "2024-03-01", "2024-03-31"

	assert.True(t, (&Event{}).WindowUnset())
	assert.True(t, (&Event{AvailableFrom: &from}).WindowUnset())
	assert.True(t, (&Event{AvailableTo: &to}).WindowUnset())
	assert.False(t, (&Event{AvailableFrom: &from, AvailableTo: &to}).WindowUnset())
}
