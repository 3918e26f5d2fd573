package workflow

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"alfredoptarigan/resume-optimizer/internal/models"
)

type memoryStore struct {
	mu      sync.Mutex
	files   map[string][]byte
	deleted []string
	next    int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{files: make(map[string][]byte)}
}

func (m *memoryStore) SaveFile(src io.Reader) (string, string, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return "", "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	name := fmt.Sprintf("resume_%d.pdf", m.next)
	m.files[name] = data
	return name, "/staged/" + name, nil
}

func (m *memoryStore) ReadFile(filename string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[filename]
	if !ok {
		return nil, fmt.Errorf("no staged file %s", filename)
	}
	return data, nil
}

func (m *memoryStore) DeleteFile(filename string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, filename)
	m.deleted = append(m.deleted, filename)
	return nil
}

type fixedInspector struct {
	pages int
	err   error
}

func (f fixedInspector) PageCount(string) (int, error) { return f.pages, f.err }

type fakeAnalyzer struct {
	mu       sync.Mutex
	resp     *models.AnalyzeResponse
	err      error
	requests []models.AnalyzeRequest
	block    chan struct{}
	started  chan struct{}
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, req models.AnalyzeRequest) (*models.AnalyzeResponse, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()
	if f.started != nil {
		close(f.started)
	}
	if f.block != nil {
		<-f.block
	}
	return f.resp, f.err
}

func pdfInput(name string) FileInput {
	body := []byte("%PDF-1.4 " + name)
	return FileInput{Name: name, ContentType: PDFContentType, Size: int64(len(body)), Body: bytes.NewReader(body)}
}

func readySession(t *testing.T, flow *Flow) *Session {
	t.Helper()
	s := NewSession()
	if err := flow.Upload(s, pdfInput("resume.pdf")); err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	s.SetJob("Senior Product Manager - Fintech", "Own the payments roadmap.")
	return s
}

func TestUploadRejectsNonPDF(t *testing.T) {
	tests := []struct {
		name  string
		input FileInput
	}{
		{"word document", FileInput{Name: "resume.docx", ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document", Body: strings.NewReader("doc")}},
		{"pdf extension wrong type", FileInput{Name: "resume.pdf", ContentType: "application/octet-stream", Body: strings.NewReader("x")}},
		{"no file", FileInput{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemoryStore()
			flow := NewFlow(store, nil, &fakeAnalyzer{})
			s := NewSession()

			err := flow.Upload(s, tt.input)
			if !errors.Is(err, ErrNotPDF) {
				t.Fatalf("Expected ErrNotPDF, got %v", err)
			}

			v := s.Snapshot()
			if v.Step != StepUpload {
				t.Errorf("Expected to stay on upload, got %s", v.Step)
			}
			if v.File != nil {
				t.Errorf("Expected no uploaded file, got %+v", v.File)
			}
			if v.Alert != AlertNotPDF {
				t.Errorf("Expected alert %q, got %q", AlertNotPDF, v.Alert)
			}
			if len(store.files) != 0 {
				t.Errorf("Expected nothing staged, got %d files", len(store.files))
			}
		})
	}
}

func TestUploadAcceptsPDF(t *testing.T) {
	store := newMemoryStore()
	flow := NewFlow(store, fixedInspector{pages: 2}, &fakeAnalyzer{})
	s := NewSession()

	if err := flow.Upload(s, pdfInput("resume.pdf")); err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	v := s.Snapshot()
	if v.Step != StepAnalyze {
		t.Errorf("Expected analyze step, got %s", v.Step)
	}
	if v.File == nil || v.File.OriginalName != "resume.pdf" {
		t.Fatalf("Expected resume.pdf recorded, got %+v", v.File)
	}
	if v.File.PageCount != 2 {
		t.Errorf("Expected 2 pages, got %d", v.File.PageCount)
	}
	if v.Alert != "" {
		t.Errorf("Expected no alert, got %q", v.Alert)
	}
}

func TestUploadIgnoresInspectorFailure(t *testing.T) {
	flow := NewFlow(newMemoryStore(), fixedInspector{err: errors.New("malformed xref")}, &fakeAnalyzer{})
	s := NewSession()

	if err := flow.Upload(s, pdfInput("scan.pdf")); err != nil {
		t.Fatalf("Expected upload to succeed despite inspector failure, got %v", err)
	}
	if v := s.Snapshot(); v.File == nil || v.File.PageCount != 0 {
		t.Errorf("Expected file with unknown page count, got %+v", v.File)
	}
}

func TestUploadReplacesPreviousFile(t *testing.T) {
	store := newMemoryStore()
	flow := NewFlow(store, nil, &fakeAnalyzer{})
	s := NewSession()

	flow.Upload(s, pdfInput("first.pdf"))
	flow.Upload(s, pdfInput("second.pdf"))

	v := s.Snapshot()
	if v.File.OriginalName != "second.pdf" {
		t.Errorf("Expected second.pdf, got %s", v.File.OriginalName)
	}
	if len(store.deleted) != 1 || store.deleted[0] != "resume_1.pdf" {
		t.Errorf("Expected first staged file removed, got %v", store.deleted)
	}

	// A rejected upload keeps the accepted one.
	flow.Upload(s, FileInput{Name: "notes.txt", ContentType: "text/plain", Body: strings.NewReader("x")})
	if v := s.Snapshot(); v.File == nil || v.File.OriginalName != "second.pdf" {
		t.Errorf("Expected second.pdf kept after rejection, got %+v", v.File)
	}
}

func TestCanSubmit(t *testing.T) {
	tests := []struct {
		name        string
		upload      bool
		title       string
		description string
		want        bool
	}{
		{"all present", true, "PM", "Roadmaps", true},
		{"missing file", false, "PM", "Roadmaps", false},
		{"missing title", true, "", "Roadmaps", false},
		{"missing description", true, "PM", "", false},
		{"blank title", true, "   ", "Roadmaps", false},
		{"nothing", false, "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyzer := &fakeAnalyzer{resp: &models.AnalyzeResponse{Success: true, Analysis: &models.AnalysisResult{}}}
			flow := NewFlow(newMemoryStore(), nil, analyzer)
			s := NewSession()
			if tt.upload {
				flow.Upload(s, pdfInput("resume.pdf"))
			}
			s.SetJob(tt.title, tt.description)

			if got := s.CanSubmit(); got != tt.want {
				t.Errorf("CanSubmit() = %v, want %v", got, tt.want)
			}

			if !tt.want {
				err := flow.Analyze(context.Background(), s)
				if !errors.Is(err, ErrIncompleteForm) {
					t.Errorf("Expected ErrIncompleteForm, got %v", err)
				}
				if len(analyzer.requests) != 0 {
					t.Errorf("Expected no request, got %d", len(analyzer.requests))
				}
				if v := s.Snapshot(); v.Alert != AlertIncompleteForm {
					t.Errorf("Expected alert %q, got %q", AlertIncompleteForm, v.Alert)
				}
			}
		})
	}
}

func TestAnalyzeSuccess(t *testing.T) {
	analyzer := &fakeAnalyzer{resp: &models.AnalyzeResponse{
		Success:       true,
		Analysis:      &models.AnalysisResult{OverallScore: 87, Suggestions: []string{"Add metrics"}},
		ResumePreview: "Jane Doe",
	}}
	flow := NewFlow(newMemoryStore(), nil, analyzer)
	s := readySession(t, flow)

	if err := flow.Analyze(context.Background(), s); err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	v := s.Snapshot()
	if v.Step != StepResults {
		t.Errorf("Expected results step, got %s", v.Step)
	}
	if v.Result == nil || FormatPercent(v.Result.OverallScore) != "87%" {
		t.Fatalf("Expected overall score 87%%, got %+v", v.Result)
	}
	if v.ResumePreview != "Jane Doe" {
		t.Errorf("Expected preview, got %q", v.ResumePreview)
	}
	if v.Analyzing {
		t.Error("Expected analyzing flag cleared")
	}

	if len(analyzer.requests) != 1 {
		t.Fatalf("Expected exactly one request, got %d", len(analyzer.requests))
	}
	req := analyzer.requests[0]
	if req.ResumeName != "resume.pdf" || req.JobTitle != "Senior Product Manager - Fintech" || req.JobDescription != "Own the payments roadmap." {
		t.Errorf("Unexpected request %+v", req)
	}
	if string(req.Resume) != "%PDF-1.4 resume.pdf" {
		t.Errorf("Unexpected resume content %q", req.Resume)
	}
}

func TestAnalyzeBackendFailure(t *testing.T) {
	analyzer := &fakeAnalyzer{resp: &models.AnalyzeResponse{Success: false, Error: "bad input"}}
	flow := NewFlow(newMemoryStore(), nil, analyzer)
	s := readySession(t, flow)

	err := flow.Analyze(context.Background(), s)
	var failed *AnalysisFailedError
	if !errors.As(err, &failed) || failed.Message != "bad input" {
		t.Fatalf("Expected AnalysisFailedError(bad input), got %v", err)
	}

	v := s.Snapshot()
	if v.Step != StepAnalyze {
		t.Errorf("Expected to stay on analyze, got %s", v.Step)
	}
	if !strings.Contains(v.Alert, "bad input") {
		t.Errorf("Expected alert to surface backend error, got %q", v.Alert)
	}
	if v.Result != nil {
		t.Errorf("Expected no result, got %+v", v.Result)
	}
	if !v.CanSubmit {
		t.Error("Expected submit to be enabled again after failure")
	}
}

func TestAnalyzeTransportFailure(t *testing.T) {
	analyzer := &fakeAnalyzer{err: errors.New("connection refused")}
	flow := NewFlow(newMemoryStore(), nil, analyzer)
	s := readySession(t, flow)

	if err := flow.Analyze(context.Background(), s); err == nil {
		t.Fatal("Expected error")
	}

	v := s.Snapshot()
	if v.Step != StepAnalyze {
		t.Errorf("Expected to stay on analyze, got %s", v.Step)
	}
	if v.Alert != AlertRequestFailed {
		t.Errorf("Expected alert %q, got %q", AlertRequestFailed, v.Alert)
	}
}

func TestAnalyzeSingleOutstandingRequest(t *testing.T) {
	analyzer := &fakeAnalyzer{
		resp:    &models.AnalyzeResponse{Success: true, Analysis: &models.AnalysisResult{OverallScore: 90}},
		block:   make(chan struct{}),
		started: make(chan struct{}),
	}
	flow := NewFlow(newMemoryStore(), nil, analyzer)
	s := readySession(t, flow)

	done := make(chan error, 1)
	go func() { done <- flow.Analyze(context.Background(), s) }()
	<-analyzer.started

	if s.CanSubmit() {
		t.Error("Expected submit disabled while analyzing")
	}
	if v := s.Snapshot(); !v.Analyzing {
		t.Error("Expected analyzing flag set")
	}
	if err := flow.Analyze(context.Background(), s); !errors.Is(err, ErrAnalysisInProgress) {
		t.Errorf("Expected ErrAnalysisInProgress, got %v", err)
	}
	if err := flow.Upload(s, pdfInput("other.pdf")); !errors.Is(err, ErrAnalysisInProgress) {
		t.Errorf("Expected upload to be refused while analyzing, got %v", err)
	}

	close(analyzer.block)
	if err := <-done; err != nil {
		t.Fatalf("First analysis failed: %v", err)
	}
	if len(analyzer.requests) != 1 {
		t.Errorf("Expected one request, got %d", len(analyzer.requests))
	}
	if s.Step() != StepResults {
		t.Errorf("Expected results step, got %s", s.Step())
	}
}

func TestSnapshotConsumesAlert(t *testing.T) {
	s := NewSession()
	s.SetAlert("something")

	if v := s.Snapshot(); v.Alert != "something" {
		t.Errorf("Expected alert, got %q", v.Alert)
	}
	if v := s.Snapshot(); v.Alert != "" {
		t.Errorf("Expected alert consumed, got %q", v.Alert)
	}
}

func TestDiscardRemovesStagedFile(t *testing.T) {
	store := newMemoryStore()
	flow := NewFlow(store, nil, &fakeAnalyzer{})
	s := readySession(t, flow)

	flow.Discard(s)

	if len(store.files) != 0 {
		t.Errorf("Expected staged file removed, %d remain", len(store.files))
	}
	flow.Discard(s)
	if len(store.deleted) != 1 {
		t.Errorf("Expected a single delete, got %v", store.deleted)
	}
}
