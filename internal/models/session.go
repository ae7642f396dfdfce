package models

// Role identifies who is operating the application.
type Role string

const (
	RoleNone    Role = "none"
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
)

// Session holds the authenticated identity for the lifetime of a login. It
// is transient, in-memory only, and never persisted. Student is set only for
// RoleStudent; AdminName only for RoleAdmin.
type Session struct {
	Role      Role
	AdminName string
	Student   *Student
}

// LoggedOut is the zero session.
func LoggedOut() Session {
	return Session{Role: RoleNone}
}

// Active reports whether anyone is logged in.
func (s Session) Active() bool {
	return s.Role == RoleAdmin || s.Role == RoleStudent
}
