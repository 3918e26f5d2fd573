package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-optimizer/internal/workflow"
)

type AnalyzeHandler struct {
	sessions *SessionResolver
	flow     *workflow.Flow
}

func NewAnalyzeHandler(sessions *SessionResolver, flow *workflow.Flow) *AnalyzeHandler {
	return &AnalyzeHandler{
		sessions: sessions,
		flow:     flow,
	}
}

// HandleAnalyze handles POST /analyze. It blocks until the analysis
// backend answers; the outcome is shown on the next page view.
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	s, err := h.sessions.Resolve(c)
	if err != nil {
		return err
	}

	s.SetJob(c.FormValue("job_title"), c.FormValue("job_description"))

	if err := h.flow.Analyze(c.UserContext(), s); err != nil {
		log.Printf("⚠️  Analysis not completed: %v\n", err)
	} else {
		log.Println("✅ Analysis completed")
	}

	return c.Redirect("/", fiber.StatusSeeOther)
}
