package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fooddash-app/fooddash-backend/internal/storage"
)

func TestUserRegisterAndLogin(t *testing.T) {
	store := storage.NewMemoryStore()
	users := NewUserService(store)

	user, err := users.Register(UserRegistration{
		FullName: "Asha Rao",
		Email:    "asha@example.com",
		Password: "hunter22",
		Address:  "12 MG Road, Bengaluru",
	})
	require.NoError(t, err)
	assert.True(t, user.EmailVerified)
	assert.NotEqual(t, "hunter22", user.Password) // stored hashed

	// Registration also provisions the cart
	_, err = store.GetCartByUser(user.ID)
	require.NoError(t, err)

	got, err := users.Authenticate("asha@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestUserAuthenticateRejectsBadCredentials(t *testing.T) {
	store := storage.NewMemoryStore()
	users := NewUserService(store)

	_, err := users.Register(UserRegistration{
		FullName: "Asha Rao",
		Email:    "asha@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)

	_, err = users.Authenticate("asha@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = users.Authenticate("nobody@example.com", "hunter22")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserDuplicateEmailRejected(t *testing.T) {
	store := storage.NewMemoryStore()
	users := NewUserService(store)

	reg := UserRegistration{FullName: "Asha Rao", Email: "asha@example.com", Password: "hunter22"}
	_, err := users.Register(reg)
	require.NoError(t, err)

	_, err = users.Register(reg)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestUserResetPassword(t *testing.T) {
	store := storage.NewMemoryStore()
	users := NewUserService(store)

	_, err := users.Register(UserRegistration{
		FullName: "Asha Rao",
		Email:    "asha@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)

	require.NoError(t, users.ResetPassword("asha@example.com", "newpass99"))

	_, err = users.Authenticate("asha@example.com", "hunter22")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = users.Authenticate("asha@example.com", "newpass99")
	assert.NoError(t, err)
}

func TestAdminRegisterAssignsCode(t *testing.T) {
	store := storage.NewMemoryStore()
	admins := NewAdminService(store, nil)

	admin, err := admins.Register(AdminRegistration{
		FullName: "Resto Owner",
		Email:    "owner@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(admin.AdminID, "ADM"))
	assert.Len(t, admin.AdminID, 11)
	assert.True(t, admin.EmailVerified)
}

func TestAdminPrivilegedEmailBypassesSubscription(t *testing.T) {
	store := storage.NewMemoryStore()
	privileged := func(email string) bool { return strings.EqualFold(email, "boss@example.com") }
	admins := NewAdminService(store, privileged)

	boss, err := admins.Register(AdminRegistration{
		FullName: "Boss",
		Email:    "boss@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	regular, err := admins.Register(AdminRegistration{
		FullName: "Regular",
		Email:    "regular@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	// Neither has paid, only the privileged email gets in
	assert.False(t, admins.SubscriptionActive(boss))
	assert.True(t, admins.DashboardAccessible(boss))
	assert.False(t, admins.DashboardAccessible(regular))
}

func TestAdminExpiredSubscriptionBlocksDashboard(t *testing.T) {
	store := storage.NewMemoryStore()
	admins := NewAdminService(store, nil)

	admin, err := admins.Register(AdminRegistration{
		FullName: "Resto Owner",
		Email:    "owner@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	expired := time.Now().AddDate(0, 0, -2)
	admin.Paid = true
	admin.SubscriptionExpiry = &expired
	require.NoError(t, store.UpdateAdmin(admin))

	assert.False(t, admins.SubscriptionActive(admin))
	assert.False(t, admins.DashboardAccessible(admin))
}
