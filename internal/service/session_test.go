package service_test

import (
	"context"
	"testing"

	"github.com/phrazzld/studytrack/internal/service"
	"github.com/phrazzld/studytrack/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionManager_LoginLogoffRoundTrip(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	u, err := e.users.Create(ctx, "a@x.com")
	require.NoError(t, err)

	_, err = e.sessions.CurrentUser(ctx)
	assert.ErrorIs(t, err, service.ErrUnauthenticated)

	session, err := e.sessions.Login(ctx, "A@X.com")
	require.NoError(t, err)
	assert.True(t, session.IsActive)
	assert.True(t, session.OpenedOn.Equal(e.clock.Now()))

	current, err := e.sessions.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, u.ID, current)

	require.NoError(t, e.sessions.Logoff(ctx))

	_, err = e.sessions.CurrentUser(ctx)
	assert.ErrorIs(t, err, service.ErrUnauthenticated)
	assert.Equal(t, service.KindUnauthenticated, service.KindOf(err))
}

func TestSessionManager_LoginUnknownUser(t *testing.T) {
	e := newEnv(t)

	_, err := e.sessions.Login(context.Background(), "ghost@x.com")
	assert.ErrorIs(t, err, store.ErrUserNotFound)
	assert.Equal(t, service.KindNotFound, service.KindOf(err))
	assert.Zero(t, e.rowCount(t, "session"))
}

func TestSessionManager_LoginConflict(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	u1, err := e.users.Create(ctx, "one@x.com")
	require.NoError(t, err)
	_, err = e.users.Create(ctx, "two@x.com")
	require.NoError(t, err)

	_, err = e.sessions.Login(ctx, "one@x.com")
	require.NoError(t, err)

	_, err = e.sessions.Login(ctx, "two@x.com")
	assert.ErrorIs(t, err, service.ErrSessionConflict)
	assert.Equal(t, service.KindConflict, service.KindOf(err))

	current, err := e.sessions.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, u1.ID, current, "active session must remain with the first user")
	assert.Equal(t, 1, e.rowCount(t, "session"))
}

func TestSessionManager_IdempotentLogin(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.users.Create(ctx, "a@x.com")
	require.NoError(t, err)

	first, err := e.sessions.Login(ctx, "a@x.com")
	require.NoError(t, err)
	second, err := e.sessions.Login(ctx, "a@x.com")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, e.rowCount(t, "session"))
}

func TestSessionManager_LoginAfterLogoffOpensNewSession(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.users.Create(ctx, "one@x.com")
	require.NoError(t, err)
	_, err = e.users.Create(ctx, "two@x.com")
	require.NoError(t, err)

	first, err := e.sessions.Login(ctx, "one@x.com")
	require.NoError(t, err)
	require.NoError(t, e.sessions.Logoff(ctx))

	second, err := e.sessions.Login(ctx, "two@x.com")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestSessionManager_LogoffWithoutSession(t *testing.T) {
	e := newEnv(t)

	err := e.sessions.Logoff(context.Background())
	assert.ErrorIs(t, err, store.ErrSessionNotFound)
	assert.Equal(t, service.KindNotFound, service.KindOf(err))
}

func TestSessionManager_DescribeActive(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.sessions.DescribeActive(ctx)
	assert.ErrorIs(t, err, store.ErrSessionNotFound)

	u, err := e.users.Create(ctx, "a@x.com")
	require.NoError(t, err)
	session, err := e.sessions.Login(ctx, "a@x.com")
	require.NoError(t, err)

	view, err := e.sessions.DescribeActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, session.ID, view.ID)
	assert.Equal(t, u.ID, view.UserID)
	assert.Equal(t, "A@X.COM", view.UserEmail)
	assert.True(t, view.IsActive)
}

func TestNewSessionManager_RejectsMissingDependencies(t *testing.T) {
	e := newEnv(t)

	_, err := service.NewSessionManager(nil, e.stores.users, e.stores.sessions, nil, nil)
	assert.Error(t, err)
	_, err = service.NewSessionManager(e.db, nil, e.stores.sessions, nil, nil)
	assert.Error(t, err)
	_, err = service.NewSessionManager(e.db, e.stores.users, nil, nil, nil)
	assert.Error(t, err)
}
