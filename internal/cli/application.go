package cli

import (
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/phrazzld/studytrack/internal/config"
	"github.com/phrazzld/studytrack/internal/platform/sqldb"
	"github.com/phrazzld/studytrack/internal/platform/sqlstore"
	"github.com/phrazzld/studytrack/internal/service"
)

// application holds the services of one CLI invocation.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	out    io.Writer
	errOut io.Writer
	prompt *prompter
	clock  service.Clock

	sessionManager      service.SessionManager
	userService         service.UserService
	categoryService     service.CategoryService
	courseService       service.CourseService
	subscriptionService service.SubscriptionService
	studyService        service.StudyService
	reportService       service.ReportService
}

// newApplication wires stores and services over db.
func newApplication(
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
	driver sqldb.Driver,
	clock service.Clock,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	userStore := sqlstore.NewUserStore(db, driver, logger)
	categoryStore := sqlstore.NewCategoryStore(db, driver, logger)
	courseStore := sqlstore.NewCourseStore(db, driver, logger)
	subscriptionStore := sqlstore.NewSubscriptionStore(db, driver, logger)
	studySessionStore := sqlstore.NewStudySessionStore(db, driver, logger)
	sessionStore := sqlstore.NewSessionStore(db, driver, logger)

	var err error
	app.sessionManager, err = service.NewSessionManager(db, userStore, sessionStore, clock, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create session manager: %w", err)
	}

	app.userService, err = service.NewUserService(db, userStore, sessionStore, subscriptionStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	app.categoryService, err = service.NewCategoryService(db, categoryStore, courseStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create category service: %w", err)
	}

	app.courseService, err = service.NewCourseService(
		db, app.sessionManager, categoryStore, courseStore, subscriptionStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create course service: %w", err)
	}

	app.subscriptionService, err = service.NewSubscriptionService(
		db, app.sessionManager, courseStore, subscriptionStore, studySessionStore,
		cfg.Study.DefaultCourseWeeks, clock, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create subscription service: %w", err)
	}

	app.studyService, err = service.NewStudyService(
		db, app.sessionManager, courseStore, subscriptionStore, studySessionStore, clock, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create study service: %w", err)
	}

	app.reportService, err = service.NewReportService(
		db, userStore, categoryStore, courseStore, subscriptionStore, studySessionStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create report service: %w", err)
	}

	return app, nil
}

func (app *application) now() time.Time {
	if app.clock == nil {
		return time.Now().UTC()
	}
	return app.clock().UTC()
}
