package service

import (
	"context"
	"fmt"

	"task_portal/internal/app/policy"
	"task_portal/internal/common"
	"task_portal/internal/common/security"
	"task_portal/internal/domain/model"
	"task_portal/internal/domain/repository"
)

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// List returns the user directory, optionally filtered by role. Admin only.
func (s *UserService) List(ctx context.Context, callerRole, role string) ([]model.User, error) {
	if !policy.CanListUsers(callerRole) {
		return nil, common.ErrForbidden
	}
	if role != "" && role != model.RoleAdmin && role != model.RoleCandidate {
		return nil, common.Errorf("unknown role %q: %w", role, common.ErrValidation)
	}
	users, err := s.userRepo.List(ctx, role)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].HashedPassword = ""
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, callerRole, callerID, id string) (*model.User, error) {
	if !policy.CanViewUser(callerRole, callerID, id) {
		return nil, common.ErrForbidden
	}
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.HashedPassword = ""
	return user, nil
}

type UpdateProfileRequest struct {
	FullName *string `json:"full_name" validate:"omitempty,min=1"`
	Password *string `json:"password" validate:"omitempty,min=6"`
}

// UpdateProfile applies a self-service profile patch. Username, role and
// candidate id are immutable through this path.
func (s *UserService) UpdateProfile(ctx context.Context, callerID, id string, req UpdateProfileRequest) (*model.User, error) {
	if !policy.CanUpdateUser(callerID, id) {
		return nil, common.ErrForbidden
	}
	if err := common.CheckStruct(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Password != nil {
		hashed, err := security.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.HashedPassword = hashed
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	user.HashedPassword = ""
	return user, nil
}
