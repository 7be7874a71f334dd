package model

// FeedbackEntry is a single feedback message. Entries are immutable
// once written and are grouped into one JSON file per calendar day of
// submission. Timestamp uses "YYYY-MM-DD HH:MM:SS" so lexical order
// matches chronological order.
type FeedbackEntry struct {
	Timestamp string `json:"timestamp"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
}
