package services

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"tasktracker/internal/auth"
	"tasktracker/internal/constants"
	"tasktracker/internal/dto"
	apierrors "tasktracker/internal/errors"
	"tasktracker/internal/models"
	"tasktracker/internal/repository"
	"tasktracker/internal/validation"
)

// dummyDigest is a valid cost-10 bcrypt digest compared against when login
// hits an unknown email, so the "no such user" and "wrong password" paths
// cost the same amount of work.
const dummyDigest = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

const invalidCredentialsMessage = "Invalid email or password"

// AuthService handles registration and login.
type AuthService struct {
	userRepo    repository.UserRepository
	tokenSecret []byte
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, tokenSecret []byte) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		tokenSecret: tokenSecret,
	}
}

// Register creates a user from validated input and returns the public
// projection plus a signed token. Input is already normalized by the
// validation layer (trimmed name, lowercased email).
func (s *AuthService) Register(input validation.RegisterInput) (*dto.AuthPayload, error) {
	if _, err := s.userRepo.FindByEmail(input.Email); err == nil {
		return nil, apierrors.Conflict("Email already in use")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(input.Password), constants.BcryptCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:           input.Name,
		Email:          input.Email,
		PasswordDigest: string(digest),
	}

	// The unique index backstops the existence check above; a losing racer
	// gets a duplicate-key error normalized to 409.
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	// A signing failure here leaves the user persisted without a token;
	// there is no rollback. The user can still log in afterwards.
	token, err := auth.GenerateToken(user.ID, user.Email, s.tokenSecret, constants.TokenTTL)
	if err != nil {
		return nil, err
	}

	return &dto.AuthPayload{
		User:  dto.ToUserDTO(*user),
		Token: token,
	}, nil
}

// Login verifies credentials and returns the public projection plus a
// signed token. Lookup miss and password mismatch produce the identical
// failure, and both paths perform a full bcrypt comparison.
func (s *AuthService) Login(input validation.LoginInput) (*dto.AuthPayload, error) {
	user, err := s.userRepo.FindByEmailWithDigest(input.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	digest := dummyDigest
	if user != nil {
		digest = user.PasswordDigest
	}

	compareErr := bcrypt.CompareHashAndPassword([]byte(digest), []byte(input.Password))
	if user == nil || compareErr != nil {
		return nil, apierrors.Unauthorized(invalidCredentialsMessage)
	}

	token, err := auth.GenerateToken(user.ID, user.Email, s.tokenSecret, constants.TokenTTL)
	if err != nil {
		return nil, err
	}

	return &dto.AuthPayload{
		User:  dto.ToUserDTO(*user),
		Token: token,
	}, nil
}
