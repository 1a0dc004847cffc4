package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"task_portal/internal/common"
	"task_portal/internal/common/security"
	"task_portal/internal/domain/model"
	"task_portal/internal/domain/repository"
	"task_portal/internal/platform/cache"
	"task_portal/internal/platform/config"

	"github.com/google/uuid"
)

type AuthService struct {
	userRepo    repository.UserRepository
	revocations cache.RevocationStore
}

func NewAuthService(userRepo repository.UserRepository, revocations cache.RevocationStore) *AuthService {
	return &AuthService{userRepo: userRepo, revocations: revocations}
}

type RegisterRequest struct {
	Username    string  `json:"username" validate:"required,min=3"`
	Password    string  `json:"password" validate:"required,min=6"`
	FullName    string  `json:"full_name" validate:"required"`
	Role        string  `json:"role" validate:"omitempty,oneof=admin candidate"`
	CandidateID *string `json:"candidate_id"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if err := common.CheckStruct(req); err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = model.RoleCandidate
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:             uuid.NewString(),
		Username:       req.Username,
		HashedPassword: hashedPassword,
		Role:           role,
		CandidateID:    req.CandidateID,
		FullName:       req.FullName,
		CreatedAt:      time.Now(),
	}
	// Candidates get an external reference generated when none was supplied.
	if role == model.RoleCandidate && user.CandidateID == nil {
		ref := "C-" + strings.ToUpper(uuid.NewString()[:8])
		user.CandidateID = &ref
	}
	if role == model.RoleAdmin {
		user.CandidateID = nil
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Repo returns common.ErrConflict on duplicate username/candidate id
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := security.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	user.HashedPassword = ""
	return &AuthResponse{User: user, Token: token}, nil
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if err := common.CheckStruct(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized // Generic message for security
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !security.CheckPasswordHash(req.Password, user.HashedPassword) {
		return nil, common.ErrUnauthorized
	}

	token, err := security.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	user.HashedPassword = ""
	return &AuthResponse{User: user, Token: token}, nil
}

// Logout revokes the presented token until it would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, tokenID string) error {
	if tokenID == "" {
		return common.ErrUnauthorized
	}
	return s.revocations.Revoke(ctx, tokenID, config.AppConfig.JWTExp)
}

// Me returns the caller's own user record.
func (s *AuthService) Me(ctx context.Context, callerID string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, callerID)
	if err != nil {
		return nil, err
	}
	user.HashedPassword = ""
	return user, nil
}
