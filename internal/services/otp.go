package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/fooddash-app/fooddash-backend/internal/models"
	"github.com/fooddash-app/fooddash-backend/internal/storage"
	"github.com/fooddash-app/fooddash-backend/internal/utils"
)

// OTPService issues and verifies one-time codes delivered over email
type OTPService struct {
	store  storage.Store
	emails EmailSender
	ttl    time.Duration
	length int

	// overridable for expiry tests
	now func() time.Time
}

// NewOTPService creates a new OTP service
func NewOTPService(store storage.Store, emails EmailSender, ttl time.Duration, length int) *OTPService {
	return &OTPService{
		store:  store,
		emails: emails,
		ttl:    ttl,
		length: length,
		now:    time.Now,
	}
}

// Issue generates a fresh code for (identifier, purpose), supersedes any
// outstanding unverified codes for the same pair, persists the new record
// and dispatches it by email in the background. Issuance succeeds even if
// delivery fails; delivery errors are only logged.
func (s *OTPService) Issue(identifier string, purpose models.OTPPurpose) (*models.OTP, error) {
	code, err := utils.GenerateOTPCode(s.length)
	if err != nil {
		return nil, fmt.Errorf("failed to generate OTP: %w", err)
	}

	if err := s.store.SupersedeOTPs(identifier, purpose); err != nil {
		return nil, fmt.Errorf("failed to supersede older OTPs: %w", err)
	}

	otp := &models.OTP{
		Identifier: identifier,
		Code:       code,
		Purpose:    purpose,
		ExpiresAt:  s.now().Add(s.ttl),
	}
	otp, err = s.store.CreateOTP(otp)
	if err != nil {
		return nil, fmt.Errorf("failed to persist OTP: %w", err)
	}

	// Fire-and-forget dispatch; the request never waits on SMTP
	go s.dispatch(identifier, code, purpose)

	return otp, nil
}

// Verify checks the supplied code against the newest record for the pair.
// A failed attempt does not consume the code; a successful one marks it
// verified and makes it permanently single-use.
func (s *OTPService) Verify(identifier string, code string, purpose models.OTPPurpose) bool {
	otp, err := s.store.GetLatestOTP(identifier, purpose)
	if err != nil {
		return false
	}

	if otp.Verified || otp.Superseded || otp.Expired(s.now()) || otp.Code != code {
		return false
	}

	otp.Verified = true
	if err := s.store.UpdateOTP(otp); err != nil {
		log.Printf("❌ Failed to mark OTP verified for %s: %v", maskEmail(identifier), err)
		return false
	}
	return true
}

func (s *OTPService) dispatch(identifier string, code string, purpose models.OTPPurpose) {
	subject, purposeText := subjectFor(purpose)
	body := fmt.Sprintf(
		"Dear user,\n\n"+
			"Your OTP for %s is: %s\n\n"+
			"This OTP is valid for %d minutes.\n\n"+
			"If you did not request this, please ignore this email.\n\n"+
			"Regards,\nFoodDash Team",
		purposeText, code, int(s.ttl.Minutes()))

	if err := s.emails.Send(identifier, subject, body); err != nil {
		log.Printf("❌ Failed to send OTP email to %s: %v", maskEmail(identifier), err)
		return
	}
	log.Printf("✅ OTP email sent to %s for purpose %s", maskEmail(identifier), purpose)
}

func subjectFor(purpose models.OTPPurpose) (subject string, purposeText string) {
	switch purpose {
	case models.OTPPurposeEmail:
		return "Email Verification OTP", "verifying your email during registration"
	case models.OTPPurposeAdminEmail:
		return "Admin Email Verification OTP", "verifying your admin email"
	case models.OTPPurposeResetPassword, models.OTPPurposeAdminResetPassword:
		return "Password Reset OTP", "resetting your password"
	default:
		return "Your One Time Password (OTP)", "verification"
	}
}

// maskEmail hides most of the local part in logs
func maskEmail(email string) string {
	at := strings.Index(email, "@")
	if at <= 1 {
		return "***" + email[at+1:]
	}
	return email[:1] + "***" + email[at:]
}
