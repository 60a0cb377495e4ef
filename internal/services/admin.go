package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/fooddash-app/fooddash-backend/internal/models"
	"github.com/fooddash-app/fooddash-backend/internal/storage"
	"github.com/fooddash-app/fooddash-backend/internal/utils"
)

// AdminRegistration is the input for creating an admin after email OTP
// verification
type AdminRegistration struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
}

// AdminService manages restaurant-side accounts and their subscriptions
type AdminService struct {
	store      storage.Store
	privileged func(email string) bool
}

// NewAdminService creates a new admin service. privileged reports whether an
// email bypasses the subscription gate (configuration, not a hardcoded
// constant).
func NewAdminService(store storage.Store, privileged func(email string) bool) *AdminService {
	if privileged == nil {
		privileged = func(string) bool { return false }
	}
	return &AdminService{store: store, privileged: privileged}
}

// EmailExists reports whether an admin already uses the email
func (s *AdminService) EmailExists(email string) (bool, error) {
	return s.store.AdminEmailExists(email)
}

// GetByEmail fetches an admin by email
func (s *AdminService) GetByEmail(email string) (*models.Admin, error) {
	admin, err := s.store.GetAdminByEmail(email)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: admin %s", ErrNotFound, email)
	}
	return admin, err
}

// GetByID fetches an admin by database id
func (s *AdminService) GetByID(id uint) (*models.Admin, error) {
	admin, err := s.store.GetAdminByID(id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: admin %d", ErrNotFound, id)
	}
	return admin, err
}

// Register creates an admin whose email OTP has already been verified
func (s *AdminService) Register(req AdminRegistration) (*models.Admin, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	code, err := s.generateAdminCode()
	if err != nil {
		return nil, err
	}

	admin := &models.Admin{
		AdminID:       code,
		Email:         req.Email,
		PhoneNumber:   req.PhoneNumber,
		Password:      string(hash),
		FullName:      req.FullName,
		EmailVerified: true,
		Active:        true,
	}
	admin, err = s.store.CreateAdmin(admin)
	if errors.Is(err, storage.ErrDuplicate) {
		return nil, fmt.Errorf("%w: email already registered", ErrConflict)
	}
	return admin, err
}

func (s *AdminService) generateAdminCode() (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		code := utils.GenerateAdminCode()
		exists, err := s.store.AdminCodeExists(code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", fmt.Errorf("%w: could not allocate a unique admin code", ErrConflict)
}

// Authenticate checks credentials and returns the account on success
func (s *AdminService) Authenticate(email string, password string) (*models.Admin, error) {
	admin, err := s.store.GetAdminByEmail(email)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !admin.Active {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return admin, nil
}

// ResetPassword replaces the password hash after the reset OTP was verified
func (s *AdminService) ResetPassword(email string, newPassword string) error {
	admin, err := s.GetByEmail(email)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	admin.Password = string(hash)
	return s.store.UpdateAdmin(admin)
}

// SubscriptionActive reports whether the admin has a paid, unexpired
// subscription
func (s *AdminService) SubscriptionActive(admin *models.Admin) bool {
	if admin == nil || !admin.Paid || admin.SubscriptionExpiry == nil {
		return false
	}
	today := time.Now().Truncate(24 * time.Hour)
	return !admin.SubscriptionExpiry.Before(today)
}

// DashboardAccessible is the subscription gate: privileged emails skip the
// check entirely.
func (s *AdminService) DashboardAccessible(admin *models.Admin) bool {
	if admin == nil {
		return false
	}
	return s.privileged(admin.Email) || s.SubscriptionActive(admin)
}

// ActivateMonthlySubscription is the post-payment hook for subscription
// purchases: marks the admin paid for one month from now.
func (s *AdminService) ActivateMonthlySubscription(ref *models.GatewayOrder) error {
	admin, err := s.GetByID(ref.ReferenceID)
	if err != nil {
		return err
	}

	expiry := time.Now().AddDate(0, 1, 0)
	admin.Paid = true
	admin.PlanType = models.PlanTypeMonthly
	admin.SubscriptionExpiry = &expiry
	if err := s.store.UpdateAdmin(admin); err != nil {
		return err
	}

	log.Printf("✅ Subscription activated for admin %s until %s", admin.AdminID, expiry.Format("2006-01-02"))
	return nil
}
