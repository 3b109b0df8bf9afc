package domain

import "time"

// CourseView is a course joined with its category name.
type CourseView struct {
	ID           int64
	Name         string
	CategoryName string
}

// SubscriptionView is a subscription joined with its course, category and user.
type SubscriptionView struct {
	ID           int64
	UserEmail    string
	CourseName   string
	CategoryName string
	SubscribedOn time.Time
	ConclusionOn time.Time
}

// StudySessionView is a study session joined with its subscription's
// course and user.
type StudySessionView struct {
	ID             int64
	SubscriptionID int64
	UserEmail      string
	CourseID       int64
	CourseName     string
	StartSession   time.Time
	EndSession     time.Time
}

// Duration is the elapsed study time of the session.
func (v StudySessionView) Duration() time.Duration {
	return v.EndSession.Sub(v.StartSession)
}

// SessionView is the active login session joined with its user.
type SessionView struct {
	ID        int64
	UserID    int64
	UserEmail string
	OpenedOn  time.Time
	IsActive  bool
}

// CourseTime is the total study time a user spent on one course.
type CourseTime struct {
	CourseID   int64
	CourseName string
	Total      time.Duration
	Sessions   int
}
