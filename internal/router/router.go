// Package router is the view state machine: it maps navigation requests and
// session changes to the screen that should be shown, and keeps students out
// of admin-only views.
package router

import (
	"github.com/schooldesk/csr/internal/models"
)

// View names every screen the application can show.
type View string

const (
	ViewLoggedOut         View = "loggedOut"
	ViewAdminHome         View = "adminHome"
	ViewAdminStudents     View = "adminManageStudents"
	ViewAdminAttendance   View = "adminAttendance"
	ViewAdminGrades       View = "adminGrades"
	ViewAdminSchedule     View = "adminSchedule"
	ViewAdminImportExport View = "adminImportExport"
	ViewStudentHome       View = "studentHome"
	ViewStudentSchedule   View = "studentSchedule"
	ViewStudentAttendance View = "studentAttendance"
	ViewStudentGrades     View = "studentGrades"
)

// IsAdmin reports whether the view belongs to the admin-only subset.
func (v View) IsAdmin() bool {
	switch v {
	case ViewAdminHome, ViewAdminStudents, ViewAdminAttendance, ViewAdminGrades, ViewAdminSchedule, ViewAdminImportExport:
		return true
	default:
		return false
	}
}

// IsStudent reports whether the view belongs to the student subset.
func (v View) IsStudent() bool {
	switch v {
	case ViewStudentHome, ViewStudentSchedule, ViewStudentAttendance, ViewStudentGrades:
		return true
	default:
		return false
	}
}

// Router tracks the current view against the session role.
type Router struct {
	current View
}

// New starts at the logged-out screen.
func New() *Router {
	return &Router{current: ViewLoggedOut}
}

// Current returns the view being shown.
func (r *Router) Current() View {
	return r.current
}

// Enter moves to the home screen for a freshly authenticated session.
func (r *Router) Enter(session models.Session) View {
	switch session.Role {
	case models.RoleAdmin:
		r.current = ViewAdminHome
	case models.RoleStudent:
		r.current = ViewStudentHome
	default:
		r.current = ViewLoggedOut
	}
	return r.current
}

// Navigate requests a target view under the given session. Admins move
// freely among admin views. Students are coerced to the student subset: any
// request for an admin view lands on the student home screen. Without a
// session every request lands on the logged-out screen.
func (r *Router) Navigate(session models.Session, target View) View {
	switch session.Role {
	case models.RoleAdmin:
		if target.IsAdmin() {
			r.current = target
		} else {
			r.current = ViewAdminHome
		}
	case models.RoleStudent:
		if target.IsStudent() {
			r.current = target
		} else {
			r.current = ViewStudentHome
		}
	default:
		r.current = ViewLoggedOut
	}
	return r.current
}

// Logout returns to the logged-out screen from anywhere.
func (r *Router) Logout() View {
	r.current = ViewLoggedOut
	return r.current
}
