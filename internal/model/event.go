package model

// EventTypes is the allow-list of valid event type names. The type is
// validated as data against this list rather than as a closed Go type,
// because the API treats it as a caller-supplied string.
var EventTypes = []string{"CONCERT", "WORKSHOP", "CONFERENCE"}

// ValidEventType reports whether t appears in EventTypes.
func ValidEventType(t string) bool {
	for _, v := range EventTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Event represents a bookable item as stored in the `event` table.
// AvailableFrom/AvailableTo form the availability window as plain
// YYYY-MM-DD calendar dates; both are nil when the window is unset.
// An event whose dates arrive as empty strings is stored with NULL
// dates, never with empty strings.
type Event struct {
	ID            int64   // event.id
	Name          string  // event.name
	Type          string  // event.type
	Description   string  // event.description
	AvailableFrom *string // event.available_from (nullable)
	AvailableTo   *string // event.available_to (nullable)
	Status        bool    // event.status
}

// WindowUnset reports whether the event lacks a complete availability
// window. A window missing either bound cannot contain any dates.
func (e *Event) WindowUnset() bool {
	return e.AvailableFrom == nil || e.AvailableTo == nil
}
