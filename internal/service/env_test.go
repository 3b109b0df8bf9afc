package service_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/phrazzld/studytrack/internal/platform/sqlstore"
	"github.com/phrazzld/studytrack/internal/service"
	"github.com/phrazzld/studytrack/internal/testdb"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fakeClock hands out a fixed time that tests advance explicitly.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type stores struct {
	users         *sqlstore.UserStore
	categories    *sqlstore.CategoryStore
	courses       *sqlstore.CourseStore
	subscriptions *sqlstore.SubscriptionStore
	studySessions *sqlstore.StudySessionStore
	sessions      *sqlstore.SessionStore
}

// env wires every service over one migrated SQLite database.
type env struct {
	db            *sql.DB
	clock         *fakeClock
	stores        stores
	sessions      service.SessionManager
	users         service.UserService
	categories    service.CategoryService
	courses       service.CourseService
	subscriptions service.SubscriptionService
	study         service.StudyService
	reports       service.ReportService
}

func newEnv(t *testing.T) *env {
	t.Helper()

	db, driver := testdb.Open(t)

	userStore := sqlstore.NewUserStore(db, driver, nil)
	categoryStore := sqlstore.NewCategoryStore(db, driver, nil)
	courseStore := sqlstore.NewCourseStore(db, driver, nil)
	subscriptionStore := sqlstore.NewSubscriptionStore(db, driver, nil)
	studySessionStore := sqlstore.NewStudySessionStore(db, driver, nil)
	sessionStore := sqlstore.NewSessionStore(db, driver, nil)

	clock := &fakeClock{now: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)}

	e := &env{db: db, clock: clock, stores: stores{
		users:         userStore,
		categories:    categoryStore,
		courses:       courseStore,
		subscriptions: subscriptionStore,
		studySessions: studySessionStore,
		sessions:      sessionStore,
	}}
	var err error
	e.sessions, err = service.NewSessionManager(db, userStore, sessionStore, clock.Now, nil)
	require.NoError(t, err)
	e.users, err = service.NewUserService(db, userStore, sessionStore, subscriptionStore, nil)
	require.NoError(t, err)
	e.categories, err = service.NewCategoryService(db, categoryStore, courseStore, nil)
	require.NoError(t, err)
	e.courses, err = service.NewCourseService(db, e.sessions, categoryStore, courseStore, subscriptionStore, nil)
	require.NoError(t, err)
	e.subscriptions, err = service.NewSubscriptionService(
		db, e.sessions, courseStore, subscriptionStore, studySessionStore, 24, clock.Now, nil)
	require.NoError(t, err)
	e.study, err = service.NewStudyService(
		db, e.sessions, courseStore, subscriptionStore, studySessionStore, clock.Now, nil)
	require.NoError(t, err)
	e.reports, err = service.NewReportService(
		db, userStore, categoryStore, courseStore, subscriptionStore, studySessionStore, nil)
	require.NoError(t, err)

	return e
}

// rowCount counts the rows of table.
func (e *env) rowCount(t *testing.T, table string) int {
	t.Helper()
	var n int
	require.NoError(t, e.db.QueryRow(`SELECT COUNT(*) FROM "`+table+`"`).Scan(&n))
	return n
}

// seed creates a user, logs them in and adds a category with one course.
func (e *env) seed(t *testing.T, email, category, course string) {
	t.Helper()
	ctx := context.Background()

	_, err := e.users.Create(ctx, email)
	require.NoError(t, err)
	_, err = e.sessions.Login(ctx, email)
	require.NoError(t, err)
	_, err = e.categories.Create(ctx, category)
	require.NoError(t, err)
	_, err = e.courses.Create(ctx, course, category)
	require.NoError(t, err)
}

func yes() (bool, error) { return true, nil }

func no() (bool, error) { return false, nil }

// MockSessionResolver mocks service.SessionResolver.
type MockSessionResolver struct {
	mock.Mock
}

func (m *MockSessionResolver) CurrentUser(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
