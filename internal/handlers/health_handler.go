package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-optimizer/internal/services"
)

type HealthHandler struct {
	service  string
	version  string
	registry services.SessionRegistry
}

func NewHealthHandler(service, version string, registry services.SessionRegistry) *HealthHandler {
	return &HealthHandler{
		service:  service,
		version:  version,
		registry: registry,
	}
}

func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	body := fiber.Map{
		"status":  "healthy",
		"service": h.service,
		"version": h.version,
		"time":    time.Now(),
	}
	if h.registry != nil {
		body["sessions"] = h.registry.Len()
	}
	return c.JSON(body)
}
