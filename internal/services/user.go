package services

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/fooddash-app/fooddash-backend/internal/models"
	"github.com/fooddash-app/fooddash-backend/internal/storage"
)

// UserRegistration is the input for creating a user after email OTP
// verification
type UserRegistration struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
	Address     string `json:"address"`
}

// UserService manages customer accounts
type UserService struct {
	store storage.Store
}

// NewUserService creates a new user service
func NewUserService(store storage.Store) *UserService {
	return &UserService{store: store}
}

// EmailExists reports whether an account already uses the email
func (s *UserService) EmailExists(email string) (bool, error) {
	return s.store.UserEmailExists(email)
}

// GetByEmail fetches a user by email
func (s *UserService) GetByEmail(email string) (*models.User, error) {
	user, err := s.store.GetUserByEmail(email)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, email)
	}
	return user, err
}

// Register creates a user whose email OTP has already been verified, along
// with their (empty) cart.
func (s *UserService) Register(req UserRegistration) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:         req.Email,
		PhoneNumber:   req.PhoneNumber,
		Password:      string(hash),
		FullName:      req.FullName,
		Address:       req.Address,
		EmailVerified: true, // OTP checked by the caller before we get here
		Enabled:       true,
	}
	user, err = s.store.CreateUser(user)
	if errors.Is(err, storage.ErrDuplicate) {
		return nil, fmt.Errorf("%w: email already registered", ErrConflict)
	}
	if err != nil {
		return nil, err
	}

	// The cart exists from day one; a creation race here is resolved by
	// the unique index either way
	if _, err := s.store.CreateCart(user.ID); err != nil && !errors.Is(err, storage.ErrDuplicate) {
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}
	return user, nil
}

// Authenticate checks credentials and returns the account on success
func (s *UserService) Authenticate(email string, password string) (*models.User, error) {
	user, err := s.store.GetUserByEmail(email)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !user.Enabled {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// ResetPassword replaces the password hash after the reset OTP was verified
func (s *UserService) ResetPassword(email string, newPassword string) error {
	user, err := s.GetByEmail(email)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hash)
	return s.store.UpdateUser(user)
}
