package utils

import (
	"strings"

	"github.com/google/uuid"
)

// randomSuffix returns the first n hex chars of a fresh UUID, uppercased
func randomSuffix(n int) string {
	s := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(s[:n])
}

// GenerateOrderID creates an opaque order id like ORD8F2A91C40D7B.
// Uniqueness is enforced by the storage layer; callers retry on conflict.
func GenerateOrderID() string {
	return "ORD" + randomSuffix(12)
}

// GenerateAdminCode creates an admin code like ADM3F9A21BC
func GenerateAdminCode() string {
	return "ADM" + randomSuffix(8)
}

// GenerateSubscriptionOrderID creates the opaque app-side id for an admin
// subscription purchase
func GenerateSubscriptionOrderID() string {
	return "SUB" + randomSuffix(12)
}
