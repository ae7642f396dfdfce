// Package controller maps UI intents to service calls. The front-end never
// touches a service directly: it submits an intent, the controller checks
// the session, runs the operation, and hands back screen data to print.
package controller

import (
	"net/http"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/schooldesk/csr/internal/models"
	"github.com/schooldesk/csr/internal/router"
	"github.com/schooldesk/csr/internal/service"
	"github.com/schooldesk/csr/internal/store"
	appErrors "github.com/schooldesk/csr/pkg/errors"
	"github.com/schooldesk/csr/pkg/storage"
)

// Screen is the rendered form of a view: pure data, no markup. The console
// front-end decides how to print it.
type Screen struct {
	View       router.View
	Title      string
	Subtitle   string
	Pills      []string
	Columns    []string
	Rows       [][]string
	Page       int
	TotalPages int
	PageWindow []int
}

// Controller owns the session, the view router and the transient list
// state, and dispatches intents to the record services.
type Controller struct {
	session models.Session
	router  *router.Router
	pages   PageState

	auth       *service.AuthService
	students   *service.StudentService
	attendance *service.AttendanceService
	grades     *service.GradeService
	schedule   *service.ScheduleService
	backup     *service.BackupService
	reports    *service.ReportService

	store   *store.Store
	exports *storage.LocalStorage
	logger  *zap.Logger
}

// Deps bundles everything the controller drives.
type Deps struct {
	Auth       *service.AuthService
	Students   *service.StudentService
	Attendance *service.AttendanceService
	Grades     *service.GradeService
	Schedule   *service.ScheduleService
	Backup     *service.BackupService
	Reports    *service.ReportService
	Store      *store.Store
	Exports    *storage.LocalStorage
	Logger     *zap.Logger
	PageSize   int
}

// New constructs a Controller at the logged-out screen.
func New(deps Deps) *Controller {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		session:    models.LoggedOut(),
		router:     router.New(),
		pages:      NewPageState(deps.PageSize),
		auth:       deps.Auth,
		students:   deps.Students,
		attendance: deps.Attendance,
		grades:     deps.Grades,
		schedule:   deps.Schedule,
		backup:     deps.Backup,
		reports:    deps.Reports,
		store:      deps.Store,
		exports:    deps.Exports,
		logger:     logger,
	}
}

// Session returns the current session value.
func (c *Controller) Session() models.Session {
	return c.session
}

// CurrentView returns the view being shown.
func (c *Controller) CurrentView() router.View {
	return c.router.Current()
}

// SubmitLogin authenticates and moves to the role's home screen.
func (c *Controller) SubmitLogin(role models.Role, identifier, secret string) (router.View, error) {
	session, err := c.auth.Login(role, identifier, secret)
	if err != nil {
		return c.router.Current(), err
	}
	c.session = session
	c.pages = NewPageState(c.pages.PageSize)
	return c.router.Enter(session), nil
}

// Logout clears the session and returns to the login screen.
func (c *Controller) Logout() router.View {
	c.auth.Logout(&c.session)
	return c.router.Logout()
}

// Navigate requests a view change; the router applies the role guard.
func (c *Controller) Navigate(target router.View) router.View {
	return c.router.Navigate(c.session, target)
}

// SearchStudents sets the student-list filter and resets to page 1.
func (c *Controller) SearchStudents(text string) {
	c.pages.SetFilter(text)
}

// ChangePageSize sets the student-list page size and resets to page 1.
func (c *Controller) ChangePageSize(size int) {
	c.pages.SetPageSize(size)
}

// GotoPage jumps the student list to the requested page.
func (c *Controller) GotoPage(page int) {
	c.pages.SetPage(page)
}

// AddStudent creates a student record. Admin only.
func (c *Controller) AddStudent(req service.CreateStudentRequest) (*models.Student, error) {
	if err := c.requireAdmin(); err != nil {
		return nil, err
	}
	return c.students.Create(req)
}

// EditStudent updates a student record. Admin only.
func (c *Controller) EditStudent(id string, req service.UpdateStudentRequest) (*models.Student, error) {
	if err := c.requireAdmin(); err != nil {
		return nil, err
	}
	return c.students.Update(id, req)
}

// UploadAvatar reads an image file from disk and stores it on the student
// record. Admin only.
func (c *Controller) UploadAvatar(id string, imagePath string) error {
	if err := c.requireAdmin(); err != nil {
		return err
	}
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, "failed to read image file")
	}
	return c.students.SetAvatar(id, data, http.DetectContentType(data))
}

// DeleteStudent removes a student and all their dependent rows. Admin only,
// and refused until confirmed.
func (c *Controller) DeleteStudent(id string, confirmed bool) error {
	if err := c.requireAdmin(); err != nil {
		return err
	}
	if !confirmed {
		return appErrors.Clone(appErrors.ErrConfirmationRequired, "deleting a student removes all their records")
	}
	return c.students.Delete(id)
}

// AddAttendance records an attendance row. Admin only.
func (c *Controller) AddAttendance(req service.CreateAttendanceRequest) (*models.AttendanceRecord, error) {
	if err := c.requireAdmin(); err != nil {
		return nil, err
	}
	return c.attendance.Create(req)
}

// DeleteAttendance removes an attendance row. Admin only, confirmed.
func (c *Controller) DeleteAttendance(id string, confirmed bool) error {
	if err := c.requireAdmin(); err != nil {
		return err
	}
	if !confirmed {
		return appErrors.Clone(appErrors.ErrConfirmationRequired, "delete attendance record?")
	}
	return c.attendance.Delete(id)
}

// AddGrade records a grade row. Admin only.
func (c *Controller) AddGrade(req service.CreateGradeRequest) (*models.GradeRecord, error) {
	if err := c.requireAdmin(); err != nil {
		return nil, err
	}
	return c.grades.Create(req)
}

// EditGrade edits a grade value in place from raw field text. Admin only.
func (c *Controller) EditGrade(id string, rawValue string) error {
	if err := c.requireAdmin(); err != nil {
		return err
	}
	return c.grades.UpdateGrade(id, rawValue)
}

// DeleteGrade removes a grade row. Admin only, confirmed.
func (c *Controller) DeleteGrade(id string, confirmed bool) error {
	if err := c.requireAdmin(); err != nil {
		return err
	}
	if !confirmed {
		return appErrors.Clone(appErrors.ErrConfirmationRequired, "delete grade?")
	}
	return c.grades.Delete(id)
}

// AddScheduleEntry adds a schedule row. Admin only.
func (c *Controller) AddScheduleEntry(req service.CreateScheduleRequest) (*models.ScheduleEntry, error) {
	if err := c.requireAdmin(); err != nil {
		return nil, err
	}
	return c.schedule.Create(req)
}

// DeleteScheduleEntry removes a schedule row. Admin only, confirmed.
func (c *Controller) DeleteScheduleEntry(id string, confirmed bool) error {
	if err := c.requireAdmin(); err != nil {
		return err
	}
	if !confirmed {
		return appErrors.Clone(appErrors.ErrConfirmationRequired, "delete schedule item?")
	}
	return c.schedule.Delete(id)
}

// ExportTo writes the full JSON snapshot to the named file under the
// exports directory (or an absolute path). Admin only.
func (c *Controller) ExportTo(filename string) (string, error) {
	if err := c.requireAdmin(); err != nil {
		return "", err
	}
	if filename == "" {
		filename = "csr_export.json"
	}
	data, err := c.backup.Export()
	if err != nil {
		return "", err
	}
	if _, err := c.exports.Save(filename, data); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to write export file")
	}
	return c.exports.Path(filename), nil
}

// ImportFrom replaces all data with the contents of the given file. Admin
// only, confirmed; a parse failure changes nothing.
func (c *Controller) ImportFrom(path string, confirmed bool) error {
	if err := c.requireAdmin(); err != nil {
		return err
	}
	if !confirmed {
		return appErrors.Clone(appErrors.ErrConfirmationRequired, "importing replaces all current data")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, "failed to read import file")
	}
	return c.backup.Import(data)
}

// ResetAll erases the four collections. Admin only, confirmed.
func (c *Controller) ResetAll(confirmed bool) error {
	if err := c.requireAdmin(); err != nil {
		return err
	}
	if !confirmed {
		return appErrors.Clone(appErrors.ErrConfirmationRequired, "clear all local data?")
	}
	return c.backup.ResetAll()
}

// ExportReport renders a roster or grade-sheet report file. Admin only.
func (c *Controller) ExportReport(reportType service.ReportType, format service.ReportFormat, studentID string) (string, error) {
	if err := c.requireAdmin(); err != nil {
		return "", err
	}
	return c.reports.Generate(reportType, format, studentID)
}

// Theme returns the persisted theme preference.
func (c *Controller) Theme() string {
	return c.store.Theme()
}

// ToggleTheme flips between light and dark and persists the choice.
func (c *Controller) ToggleTheme() (string, error) {
	next := "dark"
	if c.store.Theme() == "dark" {
		next = "light"
	}
	if err := c.store.SetTheme(next); err != nil {
		return "", err
	}
	return next, nil
}

func (c *Controller) requireAdmin() error {
	if c.session.Role != models.RoleAdmin {
		return appErrors.Clone(appErrors.ErrForbidden, "admin role required")
	}
	return nil
}

// Screen assembles the data for the current view by reading the services.
func (c *Controller) Screen() (*Screen, error) {
	view := c.router.Current()
	switch view {
	case router.ViewLoggedOut:
		return &Screen{
			View:     view,
			Title:    "Login",
			Subtitle: "Sign in as admin or student",
		}, nil
	case router.ViewAdminHome:
		return c.adminHomeScreen()
	case router.ViewAdminStudents:
		return c.adminStudentsScreen()
	case router.ViewAdminAttendance:
		return c.adminAttendanceScreen()
	case router.ViewAdminGrades:
		return c.adminGradesScreen()
	case router.ViewAdminSchedule:
		return c.adminScheduleScreen()
	case router.ViewAdminImportExport:
		return &Screen{
			View:     view,
			Title:    "Import / Export",
			Subtitle: "Backup & restore data. Importing replaces current data; export first for a backup.",
		}, nil
	case router.ViewStudentHome:
		return c.studentHomeScreen()
	case router.ViewStudentSchedule:
		return c.studentScheduleScreen()
	case router.ViewStudentAttendance:
		return c.studentAttendanceScreen()
	case router.ViewStudentGrades:
		return c.studentGradesScreen()
	default:
		return nil, appErrors.Clone(appErrors.ErrInternal, "unknown view")
	}
}

func (c *Controller) countPills() ([]string, error) {
	result, err := c.students.List(models.StudentFilter{Page: 1, PageSize: 1})
	if err != nil {
		return nil, err
	}
	attendance, err := c.attendance.List()
	if err != nil {
		return nil, err
	}
	grades, err := c.grades.List()
	if err != nil {
		return nil, err
	}
	schedule, err := c.schedule.List()
	if err != nil {
		return nil, err
	}
	return []string{
		strconv.Itoa(result.Pagination.TotalCount) + " students",
		strconv.Itoa(len(attendance)) + " attendance",
		strconv.Itoa(len(grades)) + " grades",
		strconv.Itoa(len(schedule)) + " schedule items",
	}, nil
}

func (c *Controller) adminHomeScreen() (*Screen, error) {
	pills, err := c.countPills()
	if err != nil {
		return nil, err
	}
	return &Screen{
		View:     router.ViewAdminHome,
		Title:    "Admin Home",
		Subtitle: "Overview & quick actions",
		Pills:    pills,
	}, nil
}

func (c *Controller) adminStudentsScreen() (*Screen, error) {
	result, err := c.students.List(models.StudentFilter{
		Search:   c.pages.Filter,
		Page:     c.pages.Page,
		PageSize: c.pages.PageSize,
	})
	if err != nil {
		return nil, err
	}
	// Keep the remembered page in sync with the clamp applied by the list.
	c.pages.Page = result.Pagination.Page
	rows := make([][]string, 0, len(result.Items))
	for _, st := range result.Items {
		avatar := ""
		if st.Avatar != nil {
			avatar = "yes"
		}
		rows = append(rows, []string{st.ID, st.FullName(), st.Track, st.BirthDate, avatar})
	}
	return &Screen{
		View:       router.ViewAdminStudents,
		Title:      "Manage Students",
		Subtitle:   "Add, edit, search, upload profile pictures",
		Columns:    []string{"ID", "Name", "Track", "Birthdate", "Photo"},
		Rows:       rows,
		Page:       result.Pagination.Page,
		TotalPages: result.Pagination.TotalPages,
		PageWindow: PageWindow(result.Pagination.Page, result.Pagination.TotalPages),
	}, nil
}

func (c *Controller) adminAttendanceScreen() (*Screen, error) {
	records, err := c.attendance.List()
	if err != nil {
		return nil, err
	}
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{rec.ID, rec.StudentID, rec.Date, string(rec.Status)})
	}
	return &Screen{
		View:     router.ViewAdminAttendance,
		Title:    "Attendance",
		Subtitle: "Manage attendance records",
		Columns:  []string{"Ref", "Student", "Date", "Status"},
		Rows:     rows,
	}, nil
}

func (c *Controller) adminGradesScreen() (*Screen, error) {
	grades, err := c.grades.List()
	if err != nil {
		return nil, err
	}
	rows := make([][]string, 0, len(grades))
	for _, g := range grades {
		rows = append(rows, []string{g.ID, g.StudentID, g.SchoolYear, string(g.Semester), g.Subject, strconv.Itoa(g.Grade)})
	}
	return &Screen{
		View:     router.ViewAdminGrades,
		Title:    "Grades",
		Subtitle: "Manage grades",
		Columns:  []string{"Ref", "Student", "SY", "Semester", "Subject", "Grade"},
		Rows:     rows,
	}, nil
}

func (c *Controller) adminScheduleScreen() (*Screen, error) {
	entries, err := c.schedule.List()
	if err != nil {
		return nil, err
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.ID, e.Subject, e.Time, e.Days, e.Room, e.Teacher})
	}
	return &Screen{
		View:     router.ViewAdminSchedule,
		Title:    "Schedule",
		Subtitle: "Manage class schedule",
		Columns:  []string{"Ref", "Subject", "Time", "Days", "Room", "Teacher"},
		Rows:     rows,
	}, nil
}

func (c *Controller) studentHomeScreen() (*Screen, error) {
	student := c.session.Student
	if student == nil {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "no student session")
	}
	absences, err := c.attendance.CountAbsences(student.ID)
	if err != nil {
		return nil, err
	}
	grades, err := c.grades.ListByStudent(student.ID)
	if err != nil {
		return nil, err
	}
	avatar := "no photo"
	if student.Avatar != nil {
		avatar = "photo on file"
	}
	return &Screen{
		View:     router.ViewStudentHome,
		Title:    student.FullName(),
		Subtitle: student.ID + " - " + student.Track,
		Pills: []string{
			strconv.Itoa(absences) + " absences",
			strconv.Itoa(len(grades)) + " grades",
			avatar,
		},
	}, nil
}

func (c *Controller) studentScheduleScreen() (*Screen, error) {
	entries, err := c.schedule.List()
	if err != nil {
		return nil, err
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.Subject, e.Time, e.Days, e.Room, e.Teacher})
	}
	return &Screen{
		View:    router.ViewStudentSchedule,
		Title:   "Schedule",
		Columns: []string{"Subject", "Time", "Days", "Room", "Teacher"},
		Rows:    rows,
	}, nil
}

func (c *Controller) studentAttendanceScreen() (*Screen, error) {
	student := c.session.Student
	if student == nil {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "no student session")
	}
	records, err := c.attendance.ListByStudent(student.ID)
	if err != nil {
		return nil, err
	}
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{rec.Date, string(rec.Status)})
	}
	return &Screen{
		View:    router.ViewStudentAttendance,
		Title:   "Attendance",
		Columns: []string{"Date", "Status"},
		Rows:    rows,
	}, nil
}

func (c *Controller) studentGradesScreen() (*Screen, error) {
	student := c.session.Student
	if student == nil {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "no student session")
	}
	grades, err := c.grades.ListByStudent(student.ID)
	if err != nil {
		return nil, err
	}
	rows := make([][]string, 0, len(grades))
	for _, g := range grades {
		rows = append(rows, []string{g.Subject, strconv.Itoa(g.Grade)})
	}
	return &Screen{
		View:    router.ViewStudentGrades,
		Title:   "Grades",
		Columns: []string{"Subject", "Grade"},
		Rows:    rows,
	}, nil
}
