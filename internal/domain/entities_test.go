package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCategory(t *testing.T) {
	category, err := NewCategory("math")
	require.NoError(t, err)
	assert.Equal(t, "MATH", category.Name)

	_, err = NewCategory("  ")
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestNewCourse(t *testing.T) {
	course, err := NewCourse("Algebra", 3)
	require.NoError(t, err)
	assert.Equal(t, "ALGEBRA", course.Name)
	assert.Equal(t, int64(3), course.CategoryID)

	_, err = NewCourse("", 3)
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = NewCourse("Algebra", 0)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "category_id", verr.Field)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestNewSubscription(t *testing.T) {
	subscribed := time.Date(2024, 1, 1, 15, 30, 0, 0, time.UTC)
	concluded := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("explicit dates are truncated to days", func(t *testing.T) {
		sub, err := NewSubscription(1, 2, subscribed, concluded)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), sub.SubscribedOn)
		assert.Equal(t, concluded, sub.ConclusionOn)
		assert.Equal(t, int64(1), sub.UserID)
		assert.Equal(t, int64(2), sub.CourseID)
	})

	t.Run("conclusion defaults to 24 weeks later", func(t *testing.T) {
		sub, err := NewSubscription(1, 2, subscribed, time.Time{})
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 6, 17, 0, 0, 0, 0, time.UTC), sub.ConclusionOn)
	})

	t.Run("subscription date defaults to today", func(t *testing.T) {
		sub, err := NewSubscription(1, 2, time.Time{}, time.Time{})
		require.NoError(t, err)
		assert.Equal(t, Date(time.Now()), sub.SubscribedOn)
	})

	t.Run("conclusion before subscription", func(t *testing.T) {
		_, err := NewSubscription(1, 2, concluded, subscribed)
		assert.ErrorIs(t, err, ErrInvalidPeriod)
	})

	t.Run("missing references", func(t *testing.T) {
		_, err := NewSubscription(0, 2, subscribed, concluded)
		assert.ErrorIs(t, err, ErrInvalidID)
		_, err = NewSubscription(1, 0, subscribed, concluded)
		assert.ErrorIs(t, err, ErrInvalidID)
	})
}

func TestStudySessionDuration(t *testing.T) {
	start := time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)

	session, err := NewStudySession(7, start, start.Add(45*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 45*time.Minute, session.Duration())

	// Reversed intervals are kept as given.
	reversed, err := NewStudySession(7, start, start.Add(-time.Minute))
	require.NoError(t, err)
	assert.Equal(t, -time.Minute, reversed.Duration())

	_, err = NewStudySession(0, start, start)
	assert.ErrorIs(t, err, ErrInvalidID)

	_, err = NewStudySession(7, time.Time{}, start)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestNewSession(t *testing.T) {
	opened := time.Date(2024, 1, 2, 10, 0, 0, 0, time.FixedZone("X", 3600))
	session, err := NewSession(4, opened)
	require.NoError(t, err)
	assert.True(t, session.IsActive)
	assert.Equal(t, time.UTC, session.OpenedOn.Location())

	session.Close()
	assert.False(t, session.IsActive)

	_, err = NewSession(0, opened)
	assert.ErrorIs(t, err, ErrInvalidID)
}
