// Package views renders the resume optimizer pages with html/template
// behind fiber's Views interface.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"sync"

	"alfredoptarigan/resume-optimizer/internal/workflow"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Engine implements fiber.Views.
type Engine struct {
	mu   sync.RWMutex
	tmpl *template.Template
}

func New() *Engine {
	return &Engine{}
}

func (e *Engine) Load() error {
	tmpl, err := template.New("").Funcs(funcMap()).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}

	e.mu.Lock()
	e.tmpl = tmpl
	e.mu.Unlock()
	return nil
}

func (e *Engine) Render(w io.Writer, name string, binding interface{}, _ ...string) error {
	e.mu.RLock()
	tmpl := e.tmpl
	e.mu.RUnlock()

	if tmpl == nil {
		if err := e.Load(); err != nil {
			return err
		}
		e.mu.RLock()
		tmpl = e.tmpl
		e.mu.RUnlock()
	}

	if err := tmpl.ExecuteTemplate(w, name, binding); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	return nil
}

// Page is the binding of the index template.
type Page struct {
	workflow.View
	Tabs []Tab
	// MaxSizeLabel is display copy only; no limit is implied by it.
	MaxSizeLabel string
}

type Tab struct {
	Step   workflow.Step
	Label  string
	Active bool
}

func NewPage(v workflow.View) Page {
	return Page{
		View:         v,
		Tabs:         tabs(v.Step),
		MaxSizeLabel: "max 10MB",
	}
}

func tabs(active workflow.Step) []Tab {
	return []Tab{
		{Step: workflow.StepUpload, Label: "Upload Resume", Active: active == workflow.StepUpload},
		{Step: workflow.StepAnalyze, Label: "Job Analysis", Active: active == workflow.StepAnalyze},
		{Step: workflow.StepResults, Label: "Results", Active: active == workflow.StepResults},
	}
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"scoreCards": workflow.ScoreCards,
		"percent":    workflow.FormatPercent,
		"badge":      workflow.BadgeVariant,
	}
}
