package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"alfredoptarigan/resume-optimizer/internal/services"
	"alfredoptarigan/resume-optimizer/internal/workflow"
)

// SessionResolver maps the browser session cookie to its view state.
type SessionResolver struct {
	store    *session.Store
	registry services.SessionRegistry
}

func NewSessionResolver(store *session.Store, registry services.SessionRegistry) *SessionResolver {
	return &SessionResolver{
		store:    store,
		registry: registry,
	}
}

func (r *SessionResolver) Resolve(c *fiber.Ctx) (*workflow.Session, error) {
	sess, err := r.store.Get(c)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	id := sess.ID()
	if err := sess.Save(); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return r.registry.Get(id), nil
}
