package fixture

import (
	"context"
	"log/slog"

	"github.com/phrazzld/clinic-api/internal/domain"
	"github.com/phrazzld/clinic-api/internal/platform/logger"
	"github.com/phrazzld/clinic-api/internal/store"
)

// UserStore serves users from a fixed, in-memory list.
type UserStore struct {
	users  []domain.User
	logger *slog.Logger
}

// NewUserStore wraps users, which must already be sorted by id.
func NewUserStore(users []domain.User, logger *slog.Logger) *UserStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserStore{
		users:  users,
		logger: logger.With(slog.String("component", "user_fixture")),
	}
}

var _ store.UserReader = (*UserStore)(nil)

// List returns every user in ascending id order.
func (s *UserStore) List(ctx context.Context) ([]domain.User, error) {
	out := make([]domain.User, len(s.users))
	copy(out, s.users)
	return out, nil
}

// GetByID returns store.ErrUserNotFound for unknown ids.
func (s *UserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	for i := range s.users {
		if s.users[i].ID == id {
			u := s.users[i]
			return &u, nil
		}
	}
	logger.FromContextOrDefault(ctx, s.logger).Debug("user not found", slog.Int64("user_id", id))
	return nil, store.ErrUserNotFound
}
