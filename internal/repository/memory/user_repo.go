package memory

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type userRepo struct {
	store *Store
}

// Users returns the store's user repository.
func (s *Store) Users() repository.UserRepository {
	return &userRepo{store: s}
}

func (r *userRepo) Create(_ context.Context, user *domain.User) (string, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, u := range r.store.users {
		if strings.EqualFold(u.Email, user.Email) {
			return "", repository.ErrConflict
		}
	}
	user.ID = uuid.NewString()
	now := r.store.now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.store.users[user.ID] = *user
	return user.ID, nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, u := range r.store.users {
		if strings.EqualFold(u.Email, email) {
			found := u
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	u, ok := r.store.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *userRepo) SetCurrentProgram(_ context.Context, userID, programID string, startDate *time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	u, ok := r.store.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.CurrentProgramID = programID
	u.CurrentProgramStartDate = startDate
	u.UpdatedAt = r.store.now()
	r.store.users[userID] = u
	return nil
}
