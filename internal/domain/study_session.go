package domain

import "time"

// StudySession is one recorded interval of study on a subscription.
type StudySession struct {
	ID             int64     `json:"id"`
	SubscriptionID int64     `json:"subscription_id"`
	StartSession   time.Time `json:"start_session"`
	EndSession     time.Time `json:"end_session"`
}

// NewStudySession creates a StudySession for subscriptionID.
//
// The interval is stored as given: an end before the start yields a
// negative Duration rather than an error.
func NewStudySession(subscriptionID int64, start, end time.Time) (*StudySession, error) {
	session := &StudySession{
		SubscriptionID: subscriptionID,
		StartSession:   start.UTC(),
		EndSession:     end.UTC(),
	}

	if err := session.Validate(); err != nil {
		return nil, err
	}

	return session, nil
}

// Validate checks if the StudySession has valid data.
func (s *StudySession) Validate() error {
	if s.SubscriptionID <= 0 {
		return NewValidationError("subscription_id", "must reference a subscription", ErrInvalidID)
	}
	if s.StartSession.IsZero() || s.EndSession.IsZero() {
		return NewValidationError("session", "requires start and end times", ErrValidation)
	}
	return nil
}

// Duration is the elapsed study time, end minus start.
func (s *StudySession) Duration() time.Duration {
	return s.EndSession.Sub(s.StartSession)
}
