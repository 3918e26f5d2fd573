// Package workflow holds the per-visitor view state of the resume optimizer
// and the transitions between its upload, analyze and results steps.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"

	"alfredoptarigan/resume-optimizer/internal/models"
)

type Step string

const (
	StepUpload  Step = "upload"
	StepAnalyze Step = "analyze"
	StepResults Step = "results"
)

const PDFContentType = "application/pdf"

const (
	AlertNotPDF         = "Please upload a PDF file"
	AlertIncompleteForm = "Please upload a resume and fill in job details"
	AlertInProgress     = "An analysis is already running. Please wait for it to finish."
	AlertRequestFailed  = "Failed to analyze resume. Please try again."
	alertAnalysisFailed = "Analysis failed: "
)

var (
	ErrNotPDF             = errors.New("uploaded file is not a PDF")
	ErrIncompleteForm     = errors.New("resume, job title and job description are required")
	ErrAnalysisInProgress = errors.New("analysis already in progress")
)

// FileStore keeps the staged copy of an accepted resume.
type FileStore interface {
	SaveFile(src io.Reader) (string, string, error)
	ReadFile(filename string) ([]byte, error)
	DeleteFile(filename string) error
}

type Inspector interface {
	PageCount(filePath string) (int, error)
}

type Analyzer interface {
	Analyze(ctx context.Context, req models.AnalyzeRequest) (*models.AnalyzeResponse, error)
}

// FileInput is a file as declared by the client.
type FileInput struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Session is the mutable view state of one visitor.
type Session struct {
	mu            sync.Mutex
	step          Step
	job           models.JobInput
	file          *models.UploadedFile
	analyzing     bool
	result        *models.AnalysisResult
	resumePreview string
	alert         string
}

func NewSession() *Session {
	return &Session{step: StepUpload}
}

// View is a consistent copy of a Session for rendering.
type View struct {
	Step          Step
	Job           models.JobInput
	File          *models.UploadedFile
	Analyzing     bool
	CanSubmit     bool
	Result        *models.AnalysisResult
	ResumePreview string
	Alert         string
}

// Snapshot copies the session state and consumes the pending alert.
func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		Step:          s.step,
		Job:           s.job,
		Analyzing:     s.analyzing,
		CanSubmit:     s.canSubmitLocked(),
		Result:        s.result,
		ResumePreview: s.resumePreview,
		Alert:         s.alert,
	}
	if s.file != nil {
		f := *s.file
		v.File = &f
	}
	s.alert = ""
	return v
}

func (s *Session) Step() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

func (s *Session) SetAlert(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alert = msg
}

func (s *Session) SetJob(title, description string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.job = models.JobInput{JobTitle: title, JobDescription: description}
}

// CanSubmit reports whether the analyze control is enabled.
func (s *Session) CanSubmit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canSubmitLocked()
}

func (s *Session) canSubmitLocked() bool {
	return s.file != nil &&
		strings.TrimSpace(s.job.JobTitle) != "" &&
		strings.TrimSpace(s.job.JobDescription) != "" &&
		!s.analyzing
}

// Flow applies the step transitions to sessions.
type Flow struct {
	files     FileStore
	inspector Inspector
	analyzer  Analyzer
}

func NewFlow(files FileStore, inspector Inspector, analyzer Analyzer) *Flow {
	return &Flow{
		files:     files,
		inspector: inspector,
		analyzer:  analyzer,
	}
}

// Upload accepts a single file when its declared type is application/pdf.
// A rejected file leaves the session untouched apart from the alert.
func (f *Flow) Upload(s *Session, in FileInput) error {
	if in.Body == nil || in.ContentType != PDFContentType {
		s.SetAlert(AlertNotPDF)
		return ErrNotPDF
	}

	s.mu.Lock()
	if s.analyzing {
		s.alert = AlertInProgress
		s.mu.Unlock()
		return ErrAnalysisInProgress
	}
	s.mu.Unlock()

	filename, path, err := f.files.SaveFile(in.Body)
	if err != nil {
		s.SetAlert(AlertRequestFailed)
		return fmt.Errorf("failed to stage resume: %w", err)
	}

	pages := 0
	if f.inspector != nil {
		if pages, err = f.inspector.PageCount(path); err != nil {
			log.Printf("⚠️  Could not inspect %s: %v\n", in.Name, err)
			pages = 0
		}
	}

	uploaded := &models.UploadedFile{
		OriginalName: in.Name,
		ContentType:  in.ContentType,
		Size:         in.Size,
		Filename:     filename,
		Path:         path,
		PageCount:    pages,
	}

	s.mu.Lock()
	previous := s.file
	s.file = uploaded
	if s.step == StepUpload {
		s.step = StepAnalyze
	}
	s.mu.Unlock()

	if previous != nil {
		if err := f.files.DeleteFile(previous.Filename); err != nil {
			log.Printf("⚠️  Failed to remove replaced resume %s: %v\n", previous.Filename, err)
		}
	}

	log.Printf("📄 Accepted resume %s (%d bytes)\n", in.Name, in.Size)
	return nil
}

// Analyze sends the session's resume and job details to the analyzer once.
// Only one analysis may be outstanding per session.
func (f *Flow) Analyze(ctx context.Context, s *Session) error {
	s.mu.Lock()
	if s.analyzing {
		s.alert = AlertInProgress
		s.mu.Unlock()
		return ErrAnalysisInProgress
	}
	if !s.canSubmitLocked() {
		s.alert = AlertIncompleteForm
		s.mu.Unlock()
		return ErrIncompleteForm
	}
	s.analyzing = true
	file := *s.file
	job := s.job
	s.mu.Unlock()

	resp, err := f.send(ctx, file, job)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.analyzing = false

	if err != nil {
		log.Printf("❌ Error analyzing resume: %v\n", err)
		s.alert = AlertRequestFailed
		return err
	}

	if !resp.Success {
		s.alert = alertAnalysisFailed + resp.Error
		return &AnalysisFailedError{Message: resp.Error}
	}

	s.result = resp.Analysis
	s.resumePreview = resp.ResumePreview
	s.step = StepResults
	return nil
}

func (f *Flow) send(ctx context.Context, file models.UploadedFile, job models.JobInput) (*models.AnalyzeResponse, error) {
	content, err := f.files.ReadFile(file.Filename)
	if err != nil {
		return nil, err
	}

	return f.analyzer.Analyze(ctx, models.AnalyzeRequest{
		ResumeName:     file.OriginalName,
		Resume:         content,
		JobTitle:       job.JobTitle,
		JobDescription: job.JobDescription,
	})
}

// Discard removes the staged resume owned by the session.
func (f *Flow) Discard(s *Session) {
	s.mu.Lock()
	file := s.file
	s.file = nil
	s.mu.Unlock()

	if file == nil {
		return
	}
	if err := f.files.DeleteFile(file.Filename); err != nil {
		log.Printf("⚠️  Failed to remove staged resume %s: %v\n", file.Filename, err)
	}
}

// AnalysisFailedError carries the message of a success:false response.
type AnalysisFailedError struct {
	Message string
}

func (e *AnalysisFailedError) Error() string {
	return "analysis failed: " + e.Message
}
