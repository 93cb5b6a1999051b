package domain

// UserType distinguishes regular customers from administrators.
type UserType string

const (
	UserTypeCustomer UserType = "CUSTOMER"
	UserTypeAdmin    UserType = "ADMIN"
)

// IsValid reports whether t is a known user type.
func (t UserType) IsValid() bool {
	return t == UserTypeCustomer || t == UserTypeAdmin
}

// User represents a user of the application in the domain.
type User struct {
	UserID       string   `json:"userID"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"-"`
	FirstName    string   `json:"firstName"`
	LastName     string   `json:"lastName"`
	UserType     UserType `json:"userType"`
	AuditFields
}

// IsAdmin reports whether the user has the ADMIN user type.
func (u *User) IsAdmin() bool {
	return u != nil && u.UserType == UserTypeAdmin
}
