package services

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fooddash-app/fooddash-backend/internal/models"
	"github.com/fooddash-app/fooddash-backend/internal/storage"
)

// recordingSender captures outbound mail instead of talking to SMTP
type recordingSender struct {
	mu   sync.Mutex
	sent []string
}

func (r *recordingSender) Send(to, subject, body string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, to)
	return nil
}

func newTestOTPService(t *testing.T) (*OTPService, storage.Store) {
	t.Helper()
	store := storage.NewMemoryStore()
	svc := NewOTPService(store, &recordingSender{}, 10*time.Minute, 6)
	return svc, store
}

func TestOTPIssueAndVerify(t *testing.T) {
	svc, _ := newTestOTPService(t)

	otp, err := svc.Issue("a@example.com", models.OTPPurposeEmail)
	require.NoError(t, err)
	require.Len(t, otp.Code, 6)

	assert.True(t, svc.Verify("a@example.com", otp.Code, models.OTPPurposeEmail))
}

func TestOTPVerifyWithoutIssue(t *testing.T) {
	svc, _ := newTestOTPService(t)
	assert.False(t, svc.Verify("nobody@example.com", "123456", models.OTPPurposeEmail))
}

func TestOTPWrongCodeDoesNotConsume(t *testing.T) {
	svc, _ := newTestOTPService(t)

	otp, err := svc.Issue("a@example.com", models.OTPPurposeEmail)
	require.NoError(t, err)

	wrong := "000000"
	if otp.Code == wrong {
		wrong = "000001"
	}
	assert.False(t, svc.Verify("a@example.com", wrong, models.OTPPurposeEmail))

	// The real code still works after a failed attempt
	assert.True(t, svc.Verify("a@example.com", otp.Code, models.OTPPurposeEmail))
}

func TestOTPSingleUse(t *testing.T) {
	svc, _ := newTestOTPService(t)

	otp, err := svc.Issue("a@example.com", models.OTPPurposeEmail)
	require.NoError(t, err)

	require.True(t, svc.Verify("a@example.com", otp.Code, models.OTPPurposeEmail))
	assert.False(t, svc.Verify("a@example.com", otp.Code, models.OTPPurposeEmail))
}

func TestOTPExpiry(t *testing.T) {
	svc, _ := newTestOTPService(t)

	base := time.Now()
	svc.now = func() time.Time { return base }

	otp, err := svc.Issue("a@example.com", models.OTPPurposeEmail)
	require.NoError(t, err)

	// One second before the deadline the code is still live
	svc.now = func() time.Time { return base.Add(10*time.Minute - time.Second) }
	assert.True(t, svc.Verify("a@example.com", otp.Code, models.OTPPurposeEmail))

	// And one second past it, a fresh code is dead
	otp2, err := svc.Issue("a@example.com", models.OTPPurposeEmail)
	require.NoError(t, err)
	svc.now = func() time.Time { return base.Add(20*time.Minute + time.Second) }
	assert.False(t, svc.Verify("a@example.com", otp2.Code, models.OTPPurposeEmail))
}

func TestOTPReissueSupersedesOlder(t *testing.T) {
	svc, _ := newTestOTPService(t)

	first, err := svc.Issue("a@example.com", models.OTPPurposeEmail)
	require.NoError(t, err)
	second, err := svc.Issue("a@example.com", models.OTPPurposeEmail)
	require.NoError(t, err)

	// Only the newest code is valid
	if first.Code != second.Code {
		assert.False(t, svc.Verify("a@example.com", first.Code, models.OTPPurposeEmail))
	}
	assert.True(t, svc.Verify("a@example.com", second.Code, models.OTPPurposeEmail))
}

func TestOTPPurposesAreIsolated(t *testing.T) {
	svc, _ := newTestOTPService(t)

	otp, err := svc.Issue("a@example.com", models.OTPPurposeEmail)
	require.NoError(t, err)

	// A registration code cannot be spent on a password reset
	assert.False(t, svc.Verify("a@example.com", otp.Code, models.OTPPurposeResetPassword))
	assert.True(t, svc.Verify("a@example.com", otp.Code, models.OTPPurposeEmail))
}
