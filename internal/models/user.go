package models

// User is the row shape of the users table.
type User struct {
	UserID       string `db:"user_id"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
	FirstName    string `db:"first_name"`
	LastName     string `db:"last_name"`
	UserType     string `db:"user_type"`
	AuditFields
}
