package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/wilideparisdenode/bloggerBackend/internal/apperr"
	"github.com/wilideparisdenode/bloggerBackend/internal/auth"
	"github.com/wilideparisdenode/bloggerBackend/internal/models"
	"github.com/wilideparisdenode/bloggerBackend/internal/repository"
	"github.com/wilideparisdenode/bloggerBackend/internal/validation"
)

// invalidCredentials is the single message for every login failure cause, so
// callers cannot tell a wrong password from a nonexistent email.
const invalidCredentials = "invalid email or password"

// userService is the concrete implementation of UserService
type userService struct {
	users  repository.UserRepository
	signer auth.TokenSigner
	hasher auth.PasswordHasher
	log    zerolog.Logger
}

func newUserService(users repository.UserRepository, signer auth.TokenSigner, hasher auth.PasswordHasher, log zerolog.Logger) UserService {
	return &userService{
		users:  users,
		signer: signer,
		hasher: hasher,
		log:    log.With().Str("service", "user").Logger(),
	}
}

// Register creates a new user and issues a session credential
func (s *userService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	if violations := validation.ValidateRegister(req); len(violations) > 0 {
		return nil, apperr.ValidationDetails("invalid registration request", violations)
	}

	exists, err := s.users.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, apperr.Upstream("checking email uniqueness", err)
	}
	if exists {
		return nil, apperr.Conflict("email already registered")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperr.Upstream("hashing password", err)
	}

	now := time.Now()
	user := &models.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperr.Upstream("creating user", err)
	}

	token, err := s.signer.Sign(user.ID)
	if err != nil {
		return nil, apperr.Upstream("signing token", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("User registered")
	return &models.AuthResponse{Token: token, User: user}, nil
}

// Login verifies credentials and issues a session credential. Both failure
// causes surface the same error.
func (s *userService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, apperr.Validation("email and password are required")
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperr.Upstream("looking up user", err)
	}
	if user == nil {
		return nil, apperr.Unauthenticated(invalidCredentials)
	}

	if !s.hasher.Compare(req.Password, user.PasswordHash) {
		return nil, apperr.Unauthenticated(invalidCredentials)
	}

	token, err := s.signer.Sign(user.ID)
	if err != nil {
		return nil, apperr.Upstream("signing token", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("User logged in")
	return &models.AuthResponse{Token: token, User: user}, nil
}

// GetByID retrieves a user
func (s *userService) GetByID(ctx context.Context, id string) (*models.User, error) {
	if !validation.IsValidID(id) {
		return nil, apperr.Validation("invalid user id")
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Upstream("looking up user", err)
	}
	if user == nil {
		return nil, apperr.NotFound("user not found")
	}
	return user, nil
}

// UpdateProfile applies a partial profile update to the actor's own record.
// Absent fields are left untouched.
func (s *userService) UpdateProfile(ctx context.Context, actor *models.User, req *models.UpdateProfileRequest) (*models.User, error) {
	if violations := validation.ValidateProfileUpdate(req); len(violations) > 0 {
		return nil, apperr.ValidationDetails("invalid profile update", violations)
	}

	if req.Email != nil && *req.Email != actor.Email {
		exists, err := s.users.EmailExists(ctx, *req.Email)
		if err != nil {
			return nil, apperr.Upstream("checking email uniqueness", err)
		}
		if exists {
			return nil, apperr.Conflict("email already registered")
		}
		actor.Email = *req.Email
	}
	if req.Name != nil {
		actor.Name = *req.Name
	}
	if req.Bio != nil {
		actor.Bio = *req.Bio
	}
	if req.AvatarURL != nil {
		actor.AvatarURL = *req.AvatarURL
	}
	if req.Social != nil {
		actor.Social = *req.Social
	}

	if err := s.users.Update(ctx, actor); err != nil {
		return nil, apperr.Upstream("updating user", err)
	}
	return actor, nil
}

// ChangePassword verifies the current password before accepting a new one
func (s *userService) ChangePassword(ctx context.Context, actor *models.User, req *models.ChangePasswordRequest) error {
	if len(req.NewPassword) < models.MinPasswordLength {
		return apperr.Validation("new password must be at least 6 characters")
	}

	if !s.hasher.Compare(req.CurrentPassword, actor.PasswordHash) {
		return apperr.Unauthenticated("current password is incorrect")
	}

	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return apperr.Upstream("hashing password", err)
	}
	actor.PasswordHash = hash

	if err := s.users.Update(ctx, actor); err != nil {
		return apperr.Upstream("updating user", err)
	}

	s.log.Info().Str("user_id", actor.ID).Msg("Password changed")
	return nil
}

// Delete removes a user. The target's authored articles are not reassigned
// or deleted.
func (s *userService) Delete(ctx context.Context, actor *models.User, targetID string) error {
	if !validation.IsValidID(targetID) {
		return apperr.Validation("invalid user id")
	}

	if !auth.CanMutate(actor, targetID) {
		return apperr.Forbidden("not allowed to delete this user")
	}

	target, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return apperr.Upstream("looking up user", err)
	}
	if target == nil {
		return apperr.NotFound("user not found")
	}

	if err := s.users.Delete(ctx, targetID); err != nil {
		return apperr.Upstream("deleting user", err)
	}

	s.log.Info().Str("user_id", targetID).Str("actor_id", actor.ID).Msg("User deleted")
	return nil
}
