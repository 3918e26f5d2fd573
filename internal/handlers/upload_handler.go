package handlers

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-optimizer/internal/workflow"
)

type UploadHandler struct {
	sessions    *SessionResolver
	flow        *workflow.Flow
	maxFileSize int64
}

func NewUploadHandler(
	sessions *SessionResolver,
	flow *workflow.Flow,
	maxFileSize int64,
) *UploadHandler {
	return &UploadHandler{
		sessions:    sessions,
		flow:        flow,
		maxFileSize: maxFileSize,
	}
}

// HandleUpload handles POST /upload
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	s, err := h.sessions.Resolve(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		h.flow.Upload(s, workflow.FileInput{})
		return c.Redirect("/", fiber.StatusSeeOther)
	}

	// Off unless an operator sets MAX_UPLOAD_SIZE.
	if h.maxFileSize > 0 && fileHeader.Size > h.maxFileSize {
		s.SetAlert(fmt.Sprintf("Resume file too large. Max size: %d bytes", h.maxFileSize))
		return c.Redirect("/", fiber.StatusSeeOther)
	}

	src, err := fileHeader.Open()
	if err != nil {
		log.Printf("❌ Failed to open uploaded file: %v\n", err)
		s.SetAlert(workflow.AlertNotPDF)
		return c.Redirect("/", fiber.StatusSeeOther)
	}
	defer src.Close()

	if err := h.flow.Upload(s, workflow.FileInput{
		Name:        fileHeader.Filename,
		ContentType: fileHeader.Header.Get(fiber.HeaderContentType),
		Size:        fileHeader.Size,
		Body:        src,
	}); err != nil {
		log.Printf("⚠️  Upload of %q rejected: %v\n", fileHeader.Filename, err)
	}

	return c.Redirect("/", fiber.StatusSeeOther)
}
