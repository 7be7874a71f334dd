package model

// User represents an application user as stored in the `user_account`
// table. The password is kept only as a bcrypt hash; the plain text is
// never persisted. StudentID is the unique login identifier.
type User struct {
	ID           int64  // user_account.id
	StudentID    string // user_account.student_id
	Name         string // user_account.name
	Surname      string // user_account.surname
	PasswordHash string // user_account.password_hash
}
