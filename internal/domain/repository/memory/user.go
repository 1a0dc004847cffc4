package memorydb

import (
	"context"
	"fmt"
	"sort"

	"task_portal/internal/common"
	"task_portal/internal/domain/model"
	"task_portal/internal/domain/repository"
)

type userRepository struct {
	db *DB
}

func NewUserRepository(db *DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, u := range r.db.users {
		if u.Username == user.Username {
			return fmt.Errorf("user with given username or candidate id already exists: %w", common.ErrConflict)
		}
		if user.CandidateID != nil && u.CandidateID != nil && *u.CandidateID == *user.CandidateID {
			return fmt.Errorf("user with given username or candidate id already exists: %w", common.ErrConflict)
		}
	}
	r.db.users[user.ID] = copyUser(user)
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	u, ok := r.db.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return copyUser(u), nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, u := range r.db.users {
		if u.Username == username {
			return copyUser(u), nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *userRepository) List(ctx context.Context, role string) ([]model.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	users := []model.User{}
	for _, u := range r.db.users {
		if role != "" && u.Role != role {
			continue
		}
		users = append(users, *copyUser(u))
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.Before(users[j].CreatedAt) })
	return users, nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	existing, ok := r.db.users[user.ID]
	if !ok {
		return common.ErrNotFound
	}
	existing.HashedPassword = user.HashedPassword
	existing.FullName = user.FullName
	return nil
}
