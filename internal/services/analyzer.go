package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-optimizer/internal/models"
)

// AnalyzerService sends one resume to the analysis backend per call.
// It never retries.
type AnalyzerService interface {
	Analyze(ctx context.Context, req models.AnalyzeRequest) (*models.AnalyzeResponse, error)
}

type analyzerService struct {
	endpoint string
	timeout  time.Duration
}

func NewAnalyzerService(endpoint string, timeout time.Duration) AnalyzerService {
	return &analyzerService{
		endpoint: endpoint,
		timeout:  timeout,
	}
}

// Analyze implements AnalyzerService. A success:false envelope is returned
// as a response, not an error; errors mean the backend could not be reached
// or answered with something other than the documented envelope.
func (a *analyzerService) Analyze(ctx context.Context, req models.AnalyzeRequest) (*models.AnalyzeResponse, error) {
	// The outbound request itself cannot be cancelled once sent.
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("analysis not sent: %w", err)
	}

	agent := fiber.Post(a.endpoint)
	if a.timeout > 0 {
		agent.Timeout(a.timeout)
	}

	args := fiber.AcquireArgs()
	defer fiber.ReleaseArgs(args)
	args.Set("job_title", req.JobTitle)
	args.Set("job_description", req.JobDescription)

	agent.FileData(&fiber.FormFile{
		Fieldname: "resume",
		Name:      req.ResumeName,
		Content:   req.Resume,
	}).MultipartForm(args)

	log.Printf("📤 Sending %s (%d bytes) for analysis\n", req.ResumeName, len(req.Resume))
	start := time.Now()

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, fmt.Errorf("failed to call analysis backend: %w", errors.Join(errs...))
	}

	log.Printf("📥 Analysis backend answered %d in %s\n", code, time.Since(start).Round(time.Millisecond))

	var resp models.AnalyzeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("invalid response from analysis backend (status %d): %w", code, err)
	}

	if resp.Success {
		if resp.Analysis == nil {
			return nil, fmt.Errorf("analysis backend reported success without an analysis")
		}
		return &resp, nil
	}

	if resp.Error == "" {
		resp.Error = fmt.Sprintf("analysis backend returned status %d", code)
	}
	return &resp, nil
}
