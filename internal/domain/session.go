package domain

import "time"

// Session is a login session. At most one Session is active at a time;
// the active one identifies the current user of the tool.
type Session struct {
	ID       int64     `json:"id"`
	UserID   int64     `json:"user_id"`
	OpenedOn time.Time `json:"opened_on"`
	IsActive bool      `json:"is_active"`
}

// NewSession opens an active session for userID at openedOn.
func NewSession(userID int64, openedOn time.Time) (*Session, error) {
	if userID <= 0 {
		return nil, NewValidationError("user_id", "must reference a user", ErrInvalidID)
	}
	return &Session{
		UserID:   userID,
		OpenedOn: openedOn.UTC(),
		IsActive: true,
	}, nil
}

// Close marks the session inactive.
func (s *Session) Close() {
	s.IsActive = false
}
