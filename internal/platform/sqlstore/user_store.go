package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/studytrack/internal/domain"
	"github.com/phrazzld/studytrack/internal/platform/sqldb"
	"github.com/phrazzld/studytrack/internal/store"
)

// UserStore implements store.UserStore.
type UserStore struct {
	conn
}

// NewUserStore creates a UserStore over db. If logger is nil, slog.Default is used.
func NewUserStore(db store.DBTX, driver sqldb.Driver, logger *slog.Logger) *UserStore {
	return &UserStore{conn: newConn(db, driver, logger, "user_store")}
}

var _ store.UserStore = (*UserStore)(nil)

// WithTx implements store.UserStore.WithTx.
func (s *UserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &UserStore{conn: s.withTx(tx)}
}

// Create implements store.UserStore.Create.
// Returns store.ErrEmailExists if the normalized email is already registered.
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	log := s.log(ctx)

	if err := user.Validate(); err != nil {
		log.Debug("user validation failed during create", slog.String("error", err.Error()))
		return err
	}

	err := s.queryRow(ctx,
		`INSERT INTO "user" (email) VALUES (?) RETURNING id`,
		user.Email,
	).Scan(&user.ID)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("email already registered", slog.String("email", user.DisplayEmail()))
			return fmt.Errorf("%w: %v", store.ErrEmailExists, err)
		}
		log.Error("failed to create user", slog.String("error", err.Error()))
		return MapError(err)
	}

	log.Debug("user created", slog.Int64("user_id", user.ID))
	return nil
}

// GetByID implements store.UserStore.GetByID.
func (s *UserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.getOne(ctx, `SELECT id, email FROM "user" WHERE id = ?`, id)
}

// GetByEmail implements store.UserStore.GetByEmail.
// The email is normalized before lookup.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.getOne(ctx, `SELECT id, email FROM "user" WHERE email = ?`, domain.NormalizeEmail(email))
}

func (s *UserStore) getOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	err := s.queryRow(ctx, query, arg).Scan(&user.ID, &user.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		s.log(ctx).Error("failed to get user", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	return &user, nil
}

// List implements store.UserStore.List.
func (s *UserStore) List(ctx context.Context) ([]domain.User, error) {
	rows, err := s.query(ctx, `SELECT id, email FROM "user" ORDER BY id`)
	if err != nil {
		s.log(ctx).Error("failed to list users", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	users := []domain.User{}
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Email); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}
	return users, nil
}

// Delete implements store.UserStore.Delete.
// Returns store.ErrReferenced if subscriptions still point at the user.
func (s *UserStore) Delete(ctx context.Context, id int64) error {
	result, err := s.exec(ctx, `DELETE FROM "user" WHERE id = ?`, id)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: user %d: %v", store.ErrReferenced, id, err)
		}
		s.log(ctx).Error("failed to delete user",
			slog.String("error", err.Error()),
			slog.Int64("user_id", id))
		return MapError(err)
	}
	if err := checkRowsAffected(result, store.ErrUserNotFound); err != nil {
		return err
	}

	s.log(ctx).Debug("user deleted", slog.Int64("user_id", id))
	return nil
}
