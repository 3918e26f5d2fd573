package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-optimizer/internal/views"
)

type PageHandler struct {
	sessions *SessionResolver
}

func NewPageHandler(sessions *SessionResolver) *PageHandler {
	return &PageHandler{
		sessions: sessions,
	}
}

// HandleIndex handles GET /
func (h *PageHandler) HandleIndex(c *fiber.Ctx) error {
	s, err := h.sessions.Resolve(c)
	if err != nil {
		return err
	}

	return c.Render("index", views.NewPage(s.Snapshot()))
}
