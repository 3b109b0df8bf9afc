package domain

import "time"

// DefaultCourseWeeks is the default distance between the subscription date
// and the planned conclusion date.
const DefaultCourseWeeks = 24

// Subscription links a user to a course for a planned period.
type Subscription struct {
	ID           int64     `json:"id"`
	CourseID     int64     `json:"course_id"`
	UserID       int64     `json:"user_id"`
	SubscribedOn time.Time `json:"subscribed_on"`
	ConclusionOn time.Time `json:"conclusion_on"`
}

// NewSubscription creates a Subscription. Both dates are truncated to
// calendar days. A zero subscribedOn means today; a zero conclusionOn means
// DefaultCourseWeeks after subscribedOn.
func NewSubscription(userID, courseID int64, subscribedOn, conclusionOn time.Time) (*Subscription, error) {
	if subscribedOn.IsZero() {
		subscribedOn = time.Now()
	}
	subscribedOn = Date(subscribedOn)
	if conclusionOn.IsZero() {
		conclusionOn = subscribedOn.AddDate(0, 0, 7*DefaultCourseWeeks)
	}

	sub := &Subscription{
		CourseID:     courseID,
		UserID:       userID,
		SubscribedOn: subscribedOn,
		ConclusionOn: Date(conclusionOn),
	}

	if err := sub.Validate(); err != nil {
		return nil, err
	}

	return sub, nil
}

// Validate checks if the Subscription has valid data.
func (s *Subscription) Validate() error {
	if s.UserID <= 0 {
		return NewValidationError("user_id", "must reference a user", ErrInvalidID)
	}
	if s.CourseID <= 0 {
		return NewValidationError("course_id", "must reference a course", ErrInvalidID)
	}
	if s.ConclusionOn.Before(s.SubscribedOn) {
		return ErrInvalidPeriod
	}
	return nil
}

// Date truncates t to midnight UTC of the same calendar day.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
