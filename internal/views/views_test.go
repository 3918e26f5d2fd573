package views

import (
	"bytes"
	"strings"
	"testing"

	"alfredoptarigan/resume-optimizer/internal/models"
	"alfredoptarigan/resume-optimizer/internal/workflow"
)

func render(t *testing.T, v workflow.View) string {
	t.Helper()
	engine := New()
	if err := engine.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	var buf bytes.Buffer
	if err := engine.Render(&buf, "index", NewPage(v)); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	return buf.String()
}

func TestRenderUploadStep(t *testing.T) {
	html := render(t, workflow.View{Step: workflow.StepUpload})

	if !strings.Contains(html, `action="/upload"`) {
		t.Error("Expected upload form")
	}
	if !strings.Contains(html, "PDF files only, max 10MB") {
		t.Error("Expected size label")
	}
	if strings.Contains(html, `action="/analyze"`) {
		t.Error("Did not expect analyze form on upload step")
	}
	if strings.Contains(html, "data-alert") {
		t.Error("Did not expect an alert")
	}
}

func TestRenderAnalyzeStepSubmitControl(t *testing.T) {
	file := &models.UploadedFile{OriginalName: "resume.pdf", PageCount: 2}

	disabled := render(t, workflow.View{Step: workflow.StepAnalyze, File: file})
	if !strings.Contains(disabled, `type="submit" disabled`) {
		t.Error("Expected disabled submit control without job details")
	}
	if !strings.Contains(disabled, `data-uploaded="resume.pdf"`) {
		t.Error("Expected uploaded file name")
	}
	if !strings.Contains(disabled, "(2 pages)") {
		t.Error("Expected page count")
	}

	enabled := render(t, workflow.View{
		Step:      workflow.StepAnalyze,
		File:      file,
		Job:       models.JobInput{JobTitle: "PM", JobDescription: "Roadmaps"},
		CanSubmit: true,
	})
	if strings.Contains(enabled, `type="submit" disabled`) {
		t.Error("Expected enabled submit control")
	}

	running := render(t, workflow.View{Step: workflow.StepAnalyze, File: file, Analyzing: true})
	if !strings.Contains(running, "Analyzing Resume...") {
		t.Error("Expected spinner text while analyzing")
	}
}

func TestRenderAlertIsEscaped(t *testing.T) {
	html := render(t, workflow.View{Step: workflow.StepAnalyze, Alert: "Analysis failed: <bad input>"})

	if !strings.Contains(html, "Analysis failed: &lt;bad input&gt;") {
		t.Error("Expected escaped alert text")
	}
	if strings.Contains(html, "<bad input>") {
		t.Error("Alert text must not be rendered raw")
	}
}

func TestRenderResults(t *testing.T) {
	html := render(t, workflow.View{
		Step: workflow.StepResults,
		Result: &models.AnalysisResult{
			OverallScore:        87,
			SkillsMatch:         80,
			ExperienceRelevance: 75,
			ATSCompatibility:    90,
			KeywordDensity:      70,
			Suggestions:         []string{"Quantify achievements"},
			OptimizedSections: models.OptimizedSections{
				Summary: "Fintech product leader",
				Skills:  []string{"Payments"},
			},
			ATSRecommendations: []string{"Use standard headings"},
		},
		ResumePreview: "Jane Doe",
	})

	for _, want := range []string{
		`data-overall-score>87%<`,
		"Excellent Match",
		`data-variant="secondary">80%<`,
		`data-variant="secondary">75%<`,
		`data-variant="default">90%<`,
		`data-variant="secondary">70%<`,
		"<li>Quantify achievements</li>",
		"Fintech product leader",
		"Use standard headings",
		"Jane Doe",
		"Download Optimized Resume",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("Expected %q in results page", want)
		}
	}
	if strings.Count(html, "data-score-card=") != 4 {
		t.Errorf("Expected four score cards, got %d", strings.Count(html, "data-score-card="))
	}
	if strings.Contains(html, "Detailed Analysis") {
		t.Error("Did not expect detailed analysis section without data")
	}
}

func TestRenderResultsPlaceholder(t *testing.T) {
	html := render(t, workflow.View{Step: workflow.StepResults})

	if !strings.Contains(html, "No Analysis Yet") {
		t.Error("Expected placeholder without a result")
	}
}
