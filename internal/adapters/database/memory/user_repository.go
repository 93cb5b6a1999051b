package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/litally_fintech_api/internal/apperrors"
	"github.com/SscSPs/litally_fintech_api/internal/core/domain"
	portsrepo "github.com/SscSPs/litally_fintech_api/internal/core/ports/repositories"
)

// UserRepository implements portsrepo.UserRepositoryFacade over a Store.
type UserRepository struct {
	store *Store
}

var _ portsrepo.UserRepositoryFacade = (*UserRepository)(nil)

func (r *UserRepository) SaveUser(_ context.Context, user domain.User) error {
	s := r.store
	s.usersMu.Lock()
	defer s.usersMu.Unlock()
	email := strings.ToLower(user.Email)
	if _, taken := s.byEmail[email]; taken {
		return apperrors.ErrDuplicate
	}
	if _, exists := s.users[user.UserID]; exists {
		return apperrors.ErrDuplicate
	}
	s.users[user.UserID] = user
	s.byEmail[email] = user.UserID
	return nil
}

func (r *UserRepository) FindUserByID(_ context.Context, userID string) (*domain.User, error) {
	s := r.store
	s.usersMu.RLock()
	defer s.usersMu.RUnlock()
	user, ok := s.users[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &user, nil
}

func (r *UserRepository) FindUserByEmail(_ context.Context, email string) (*domain.User, error) {
	s := r.store
	s.usersMu.RLock()
	defer s.usersMu.RUnlock()
	id, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	user := s.users[id]
	return &user, nil
}

// FindUsers returns users oldest first.
func (r *UserRepository) FindUsers(_ context.Context) ([]domain.User, error) {
	s := r.store
	s.usersMu.RLock()
	users := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	s.usersMu.RUnlock()
	sort.Slice(users, func(i, j int) bool {
		if users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].UserID < users[j].UserID
		}
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

func (r *UserRepository) UpdateUserProfile(_ context.Context, userID, firstName, lastName string, now time.Time) (*domain.User, error) {
	return r.update(userID, func(u *domain.User) {
		u.FirstName = firstName
		u.LastName = lastName
		u.LastUpdatedAt = now
	})
}

func (r *UserRepository) UpdateUserType(_ context.Context, userID string, userType domain.UserType, now time.Time) (*domain.User, error) {
	return r.update(userID, func(u *domain.User) {
		u.UserType = userType
		u.LastUpdatedAt = now
	})
}

func (r *UserRepository) update(userID string, apply func(*domain.User)) (*domain.User, error) {
	s := r.store
	s.usersMu.Lock()
	defer s.usersMu.Unlock()
	user, ok := s.users[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	apply(&user)
	s.users[userID] = user
	return &user, nil
}
