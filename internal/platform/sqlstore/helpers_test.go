package sqlstore

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/phrazzld/studytrack/internal/domain"
	"github.com/phrazzld/studytrack/internal/testdb"
	"github.com/stretchr/testify/require"
)

// stores bundles every store over one migrated SQLite database.
type stores struct {
	db            *sql.DB
	users         *UserStore
	categories    *CategoryStore
	courses       *CourseStore
	subscriptions *SubscriptionStore
	studySessions *StudySessionStore
	sessions      *SessionStore
}

func newStores(t *testing.T) *stores {
	t.Helper()

	db, driver := testdb.Open(t)
	return &stores{
		db:            db,
		users:         NewUserStore(db, driver, nil),
		categories:    NewCategoryStore(db, driver, nil),
		courses:       NewCourseStore(db, driver, nil),
		subscriptions: NewSubscriptionStore(db, driver, nil),
		studySessions: NewStudySessionStore(db, driver, nil),
		sessions:      NewSessionStore(db, driver, nil),
	}
}

func (s *stores) user(t *testing.T, email string) *domain.User {
	t.Helper()
	u, err := domain.NewUser(email)
	require.NoError(t, err)
	require.NoError(t, s.users.Create(context.Background(), u))
	return u
}

func (s *stores) category(t *testing.T, name string) *domain.Category {
	t.Helper()
	c, err := domain.NewCategory(name)
	require.NoError(t, err)
	require.NoError(t, s.categories.Create(context.Background(), c))
	return c
}

func (s *stores) course(t *testing.T, name string, categoryID int64) *domain.Course {
	t.Helper()
	c, err := domain.NewCourse(name, categoryID)
	require.NoError(t, err)
	require.NoError(t, s.courses.Create(context.Background(), c))
	return c
}

func (s *stores) subscription(t *testing.T, userID, courseID int64) *domain.Subscription {
	t.Helper()
	sub, err := domain.NewSubscription(userID, courseID,
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NoError(t, s.subscriptions.Create(context.Background(), sub))
	return sub
}

func (s *stores) studySession(t *testing.T, subscriptionID int64, start time.Time, d time.Duration) *domain.StudySession {
	t.Helper()
	ss, err := domain.NewStudySession(subscriptionID, start, start.Add(d))
	require.NoError(t, err)
	require.NoError(t, s.studySessions.Create(context.Background(), ss))
	return ss
}
