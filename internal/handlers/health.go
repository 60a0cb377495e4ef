package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fooddash-app/fooddash-backend/internal/storage"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	store   storage.Store
	version string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(store storage.Store, version string) *HealthHandler {
	return &HealthHandler{store: store, version: version}
}

// Check returns the health status of the service
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "OK",
		"service": "FoodDash Backend",
		"version": h.version,
	})
}

// Detail adds a storage probe to the basic check
func (h *HealthHandler) Detail(c *fiber.Ctx) error {
	storageStatus := "OK"
	if _, err := h.store.GetAvailableFoodItems(); err != nil {
		storageStatus = "DEGRADED: " + err.Error()
	}
	return c.JSON(fiber.Map{
		"status":  "OK",
		"service": "FoodDash Backend",
		"version": h.version,
		"storage": storageStatus,
	})
}
