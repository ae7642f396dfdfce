package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/schooldesk/csr/internal/controller"
	"github.com/schooldesk/csr/internal/models"
	"github.com/schooldesk/csr/internal/repository"
	"github.com/schooldesk/csr/internal/router"
	"github.com/schooldesk/csr/internal/service"
	"github.com/schooldesk/csr/internal/store"
	"github.com/schooldesk/csr/pkg/config"
	"github.com/schooldesk/csr/pkg/logger"
	"github.com/schooldesk/csr/pkg/storage"
)

var viewAliases = map[string]router.View{
	"home":         router.ViewAdminHome,
	"students":     router.ViewAdminStudents,
	"attendance":   router.ViewAdminAttendance,
	"grades":       router.ViewAdminGrades,
	"schedule":     router.ViewAdminSchedule,
	"importexport": router.ViewAdminImportExport,
	"my":           router.ViewStudentHome,
	"myschedule":   router.ViewStudentSchedule,
	"myattendance": router.ViewStudentAttendance,
	"mygrades":     router.ViewStudentGrades,
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	dataFS, err := storage.NewLocalStorage(cfg.Storage.DataDir)
	if err != nil {
		log.Fatalf("failed to open data directory: %v", err)
	}
	exportsFS, err := storage.NewLocalStorage(cfg.Storage.ExportsDir)
	if err != nil {
		log.Fatalf("failed to open exports directory: %v", err)
	}

	st := store.New(dataFS)

	students := repository.NewStudentRepository(st)
	attendance := repository.NewAttendanceRepository(st)
	grades := repository.NewGradeRepository(st)
	schedule := repository.NewScheduleRepository(st)

	backupSvc := service.NewBackupService(students, attendance, grades, schedule, st, logr)
	if !backupSvc.Seeded() {
		if err := backupSvc.SeedDemo(); err != nil {
			log.Fatalf("failed to seed demo data: %v", err)
		}
	}

	ctrl := controller.New(controller.Deps{
		Auth:       service.NewAuthService(students, logr),
		Students:   service.NewStudentService(students, attendance, grades, nil, logr),
		Attendance: service.NewAttendanceService(attendance, nil, logr),
		Grades:     service.NewGradeService(grades, nil, logr),
		Schedule:   service.NewScheduleService(schedule, nil, logr),
		Backup:     backupSvc,
		Reports:    service.NewReportService(students, attendance, grades, exportsFS, logr),
		Store:      st,
		Exports:    exportsFS,
		Logger:     logr,
		PageSize:   cfg.UI.DefaultPageSize,
	})

	fmt.Println("Campus Student Records. Type 'help' for commands.")
	printScreen(ctrl)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}
		if err := dispatch(ctrl, line); err != nil {
			fmt.Println("error:", err)
			continue
		}
	}
}

func dispatch(ctrl *controller.Controller, line string) error {
	args := strings.Fields(line)
	cmd := args[0]
	rest := args[1:]

	switch cmd {
	case "help":
		printHelp()
		return nil

	case "login":
		if len(rest) < 3 {
			return fmt.Errorf("usage: login <admin|student> <identifier> <secret>")
		}
		role := models.Role(rest[0])
		if _, err := ctrl.SubmitLogin(role, rest[1], rest[2]); err != nil {
			return err
		}
		printScreen(ctrl)
		return nil

	case "logout":
		ctrl.Logout()
		printScreen(ctrl)
		return nil

	case "nav":
		if len(rest) < 1 {
			return fmt.Errorf("usage: nav <view>")
		}
		view, ok := viewAliases[rest[0]]
		if !ok {
			return fmt.Errorf("unknown view %q", rest[0])
		}
		ctrl.Navigate(view)
		printScreen(ctrl)
		return nil

	case "show":
		printScreen(ctrl)
		return nil

	case "search":
		ctrl.SearchStudents(strings.Join(rest, " "))
		printScreen(ctrl)
		return nil

	case "pagesize":
		n, err := intArg(rest, 0)
		if err != nil {
			return err
		}
		ctrl.ChangePageSize(n)
		printScreen(ctrl)
		return nil

	case "page":
		n, err := intArg(rest, 0)
		if err != nil {
			return err
		}
		ctrl.GotoPage(n)
		printScreen(ctrl)
		return nil

	case "add-student":
		if len(rest) < 5 {
			return fmt.Errorf("usage: add-student <id> <first> <last> <track> <birth YYYY-MM-DD>")
		}
		_, err := ctrl.AddStudent(service.CreateStudentRequest{
			ID: rest[0], FirstName: rest[1], LastName: rest[2], Track: rest[3], BirthDate: rest[4],
		})
		if err != nil {
			return err
		}
		printScreen(ctrl)
		return nil

	case "edit-student":
		if len(rest) < 5 {
			return fmt.Errorf("usage: edit-student <id> <first> <last> <track> <birth YYYY-MM-DD>")
		}
		_, err := ctrl.EditStudent(rest[0], service.UpdateStudentRequest{
			FirstName: rest[1], LastName: rest[2], Track: rest[3], BirthDate: rest[4],
		})
		if err != nil {
			return err
		}
		printScreen(ctrl)
		return nil

	case "photo":
		if len(rest) < 2 {
			return fmt.Errorf("usage: photo <student-id> <image-path>")
		}
		if err := ctrl.UploadAvatar(rest[0], rest[1]); err != nil {
			return err
		}
		fmt.Println("photo uploaded")
		return nil

	case "del-student":
		if len(rest) < 1 {
			return fmt.Errorf("usage: del-student <id> [yes]")
		}
		if err := ctrl.DeleteStudent(rest[0], confirmArg(rest, 1)); err != nil {
			return err
		}
		printScreen(ctrl)
		return nil

	case "add-att":
		if len(rest) < 3 {
			return fmt.Errorf("usage: add-att <student-id> <date> <Present|Absent|Tardy>")
		}
		_, err := ctrl.AddAttendance(service.CreateAttendanceRequest{
			StudentID: rest[0], Date: rest[1], Status: models.AttendanceStatus(rest[2]),
		})
		if err != nil {
			return err
		}
		printScreen(ctrl)
		return nil

	case "del-att":
		if len(rest) < 1 {
			return fmt.Errorf("usage: del-att <ref> [yes]")
		}
		if err := ctrl.DeleteAttendance(rest[0], confirmArg(rest, 1)); err != nil {
			return err
		}
		printScreen(ctrl)
		return nil

	case "add-grade":
		if len(rest) < 5 {
			return fmt.Errorf("usage: add-grade <student-id> <school-year> <1|2> <subject> <grade>")
		}
		semester := models.SemesterFirst
		if rest[2] == "2" {
			semester = models.SemesterSecond
		}
		value, err := strconv.Atoi(rest[4])
		if err != nil {
			return fmt.Errorf("grade must be numeric")
		}
		if _, err := ctrl.AddGrade(service.CreateGradeRequest{
			StudentID: rest[0], SchoolYear: rest[1], Semester: semester, Subject: rest[3], Grade: value,
		}); err != nil {
			return err
		}
		printScreen(ctrl)
		return nil

	case "edit-grade":
		if len(rest) < 2 {
			return fmt.Errorf("usage: edit-grade <ref> <value>")
		}
		if err := ctrl.EditGrade(rest[0], rest[1]); err != nil {
			return err
		}
		printScreen(ctrl)
		return nil

	case "del-grade":
		if len(rest) < 1 {
			return fmt.Errorf("usage: del-grade <ref> [yes]")
		}
		if err := ctrl.DeleteGrade(rest[0], confirmArg(rest, 1)); err != nil {
			return err
		}
		printScreen(ctrl)
		return nil

	case "add-sched":
		// fields are pipe separated so times and names can contain spaces
		joined := strings.Join(rest, " ")
		parts := strings.Split(joined, "|")
		if len(parts) < 2 {
			return fmt.Errorf("usage: add-sched <subject>|<time>|<days>|<room>|<teacher>")
		}
		for len(parts) < 5 {
			parts = append(parts, "")
		}
		if _, err := ctrl.AddScheduleEntry(service.CreateScheduleRequest{
			Subject: strings.TrimSpace(parts[0]),
			Time:    strings.TrimSpace(parts[1]),
			Days:    strings.TrimSpace(parts[2]),
			Room:    strings.TrimSpace(parts[3]),
			Teacher: strings.TrimSpace(parts[4]),
		}); err != nil {
			return err
		}
		printScreen(ctrl)
		return nil

	case "del-sched":
		if len(rest) < 1 {
			return fmt.Errorf("usage: del-sched <ref> [yes]")
		}
		if err := ctrl.DeleteScheduleEntry(rest[0], confirmArg(rest, 1)); err != nil {
			return err
		}
		printScreen(ctrl)
		return nil

	case "export":
		filename := ""
		if len(rest) > 0 {
			filename = rest[0]
		}
		path, err := ctrl.ExportTo(filename)
		if err != nil {
			return err
		}
		fmt.Println("exported to", path)
		return nil

	case "import":
		if len(rest) < 1 {
			return fmt.Errorf("usage: import <file> [yes]")
		}
		if err := ctrl.ImportFrom(rest[0], confirmArg(rest, 1)); err != nil {
			return err
		}
		fmt.Println("import successful (replaced current data)")
		printScreen(ctrl)
		return nil

	case "reset":
		if err := ctrl.ResetAll(confirmArg(rest, 0)); err != nil {
			return err
		}
		fmt.Println("data cleared")
		return nil

	case "report":
		if len(rest) < 2 {
			return fmt.Errorf("usage: report <roster|gradesheet> <csv|pdf> [student-id]")
		}
		studentID := ""
		if len(rest) > 2 {
			studentID = rest[2]
		}
		path, err := ctrl.ExportReport(service.ReportType(rest[0]), service.ReportFormat(rest[1]), studentID)
		if err != nil {
			return err
		}
		fmt.Println("report written to", path)
		return nil

	case "theme":
		theme, err := ctrl.ToggleTheme()
		if err != nil {
			return err
		}
		fmt.Println("theme:", theme)
		return nil

	default:
		return fmt.Errorf("unknown command %q (try 'help')", cmd)
	}
}

func intArg(args []string, i int) (int, error) {
	if len(args) <= i {
		return 0, fmt.Errorf("missing numeric argument")
	}
	n, err := strconv.Atoi(args[i])
	if err != nil {
		return 0, fmt.Errorf("expected a number, got %q", args[i])
	}
	return n, nil
}

func confirmArg(args []string, i int) bool {
	return len(args) > i && args[i] == "yes"
}

func printScreen(ctrl *controller.Controller) {
	screen, err := ctrl.Screen()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println()
	fmt.Println("==", screen.Title, "==")
	if screen.Subtitle != "" {
		fmt.Println(screen.Subtitle)
	}
	if len(screen.Pills) > 0 {
		fmt.Println("[" + strings.Join(screen.Pills, "] [") + "]")
	}
	if len(screen.Columns) > 0 {
		printTable(screen.Columns, screen.Rows)
	}
	if screen.TotalPages > 0 {
		strip := make([]string, 0, len(screen.PageWindow))
		for _, p := range screen.PageWindow {
			if p == screen.Page {
				strip = append(strip, fmt.Sprintf("[%d]", p))
			} else {
				strip = append(strip, strconv.Itoa(p))
			}
		}
		fmt.Printf("pages: %s  (page %d of %d)\n", strings.Join(strip, " "), screen.Page, screen.TotalPages)
	}
	fmt.Println()
}

func printTable(columns []string, rows [][]string) {
	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = len(col)
	}
	for _, row := range rows {
		for i := range columns {
			if i < len(row) && len(row[i]) > widths[i] {
				widths[i] = len(row[i])
			}
		}
	}
	printRow := func(cells []string) {
		parts := make([]string, len(columns))
		for i := range columns {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			parts[i] = fmt.Sprintf("%-*s", widths[i], cell)
		}
		fmt.Println("  " + strings.Join(parts, "  "))
	}
	printRow(columns)
	if len(rows) == 0 {
		fmt.Println("  (no records)")
		return
	}
	for _, row := range rows {
		printRow(row)
	}
}

func printHelp() {
	fmt.Print(`commands:
  login <admin|student> <identifier> <secret>
  logout
  nav <home|students|attendance|grades|schedule|importexport|my|myschedule|myattendance|mygrades>
  show
  search <text>             filter the student list
  pagesize <n>              change page size (resets to page 1)
  page <n>                  jump to a page
  add-student <id> <first> <last> <track> <birth>
  edit-student <id> <first> <last> <track> <birth>
  photo <student-id> <image-path>
  del-student <id> [yes]
  add-att <student-id> <date> <Present|Absent|Tardy>
  del-att <ref> [yes]
  add-grade <student-id> <school-year> <1|2> <subject> <grade>
  edit-grade <ref> <value>
  del-grade <ref> [yes]
  add-sched <subject>|<time>|<days>|<room>|<teacher>
  del-sched <ref> [yes]
  export [file]             write JSON backup
  import <file> [yes]       replace all data from JSON backup
  reset [yes]               erase all data
  report <roster|gradesheet> <csv|pdf> [student-id]
  theme                     toggle light/dark preference
  quit
`)
}
