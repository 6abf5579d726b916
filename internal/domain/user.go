package domain

const (
	RoleAdmin  = "ADMIN"
	RoleUser   = "USER"
	RoleDriver = "DRIVER"
)

type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         string
	Email        string
	PhoneNumber  string
	Country      string
}

// CurrentUser is the authenticated caller of a request.
type CurrentUser struct {
	Username string
	Email    string
	Role     string
}

func (u User) Current() CurrentUser {
	return CurrentUser{Username: u.Username, Email: u.Email, Role: u.Role}
}

func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleUser, RoleDriver:
		return true
	}
	return false
}
