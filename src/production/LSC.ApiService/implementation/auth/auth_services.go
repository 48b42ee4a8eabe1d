package auth

import (
	"context"
	"errors"
	"regexp"

	logger "gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.Logger"
	lscmodels "gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.Models"
	api_models "gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.Models/api"
	interfaces "gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.Repository/Interfaces"

	"golang.org/x/crypto/bcrypt"
)

var (
	fullNamePattern = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	// unanchored: "+1 2" matches anywhere in the input
	phonePattern = regexp.MustCompile(`\+\d+(\s\d+)*(\s\d+)`)
)

const (
	msgInvalidCredentials = "Invalid email or password."
	msgSignInFailed       = "An error occurred during sign-in."
)

// AuthService handles account registration and sign-in
type AuthService struct {
	userRepo   interfaces.UserRepository
	bcryptCost int
	logger     *logger.Logger
}

type RegisterRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo interfaces.UserRepository, bcryptCost int, log *logger.Logger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		bcryptCost: bcryptCost,
		logger:     log.WithComponent("auth"),
	}
}

// Register validates the request and stores a new account with a hashed password
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*lscmodels.User, error) {
	if req.FullName == "" || !fullNamePattern.MatchString(req.FullName) {
		return nil, api_models.ValidationFailure("Full name must contain only letters and spaces.")
	}
	if req.Phone == "" || !phonePattern.MatchString(req.Phone) {
		return nil, api_models.ValidationFailure("Phone number must match the format +123 456 789.")
	}
	if req.Password == "" || !MeetsPasswordPolicy(req.Password) {
		return nil, api_models.ValidationFailure("Password must contain uppercase, lowercase, symbols, and numbers.")
	}
	email := lscmodels.NormalizeEmail(req.Email)
	if email == "" {
		return nil, api_models.ValidationFailure("Email is required.")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, api_models.ValidationFailure("Password must be at most 72 bytes.")
		}
		s.logger.ErrorWithError(err, "Password hashing failed")
		return nil, api_models.FetchFailure("Internal Server Error", err)
	}

	user := lscmodels.NewUser(req.FullName, email, req.Phone, string(hashed))
	created, err := s.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, interfaces.ErrDuplicate) {
			return nil, api_models.ConflictFailure("Email is already registered.")
		}
		s.logger.ErrorWithError(err, "Failed to create user")
		return nil, api_models.FetchFailure("Internal Server Error", err)
	}

	s.logger.WithField("user_id", created.UserID).Info("User registered")
	return created, nil
}

// SignIn checks the credentials against the stored account
func (s *AuthService) SignIn(ctx context.Context, req SignInRequest) (*lscmodels.User, error) {
	email := lscmodels.NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, api_models.ValidationFailure("Email and password are required.")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, api_models.Unauthorized(msgInvalidCredentials)
		}
		s.logger.ErrorWithError(err, "User lookup failed")
		return nil, api_models.FetchFailure(msgSignInFailed, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, api_models.Unauthorized(msgInvalidCredentials)
	}
	return user, nil
}
