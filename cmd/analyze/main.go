package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"alfredoptarigan/resume-optimizer/internal/config"
	"alfredoptarigan/resume-optimizer/internal/services"
	"alfredoptarigan/resume-optimizer/internal/workflow"
)

type options struct {
	ResumePath      string
	JobTitle        string
	JobDescription  string
	DescriptionFile string
	BackendURL      string
}

func parseFlags(args []string) (options, error) {
	var opts options

	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	fs.StringVar(&opts.ResumePath, "resume", "", "Path to the resume PDF")
	fs.StringVar(&opts.JobTitle, "title", "", "Target job title")
	fs.StringVar(&opts.JobDescription, "description", "", "Target job description")
	fs.StringVar(&opts.DescriptionFile, "description-file", "", "Read the job description from a file")
	fs.StringVar(&opts.BackendURL, "backend", "", "Analysis backend base URL (defaults to ANALYZER_BASE_URL)")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	if opts.ResumePath == "" {
		return options{}, errors.New("-resume is required")
	}
	if opts.JobDescription != "" && opts.DescriptionFile != "" {
		return options{}, errors.New("use either -description or -description-file")
	}

	return opts, nil
}

func main() {
	log.SetOutput(io.Discard)

	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	cfg := config.Load()
	baseURL := cfg.Analyzer.BaseURL
	if opts.BackendURL != "" {
		baseURL = strings.TrimRight(opts.BackendURL, "/")
	}

	description := opts.JobDescription
	if opts.DescriptionFile != "" {
		data, err := os.ReadFile(opts.DescriptionFile)
		if err != nil {
			return fmt.Errorf("failed to read job description: %w", err)
		}
		description = string(data)
	}

	stagingDir, err := os.MkdirTemp("", "resume-optimizer-*")
	if err != nil {
		return fmt.Errorf("failed to create staging directory: %w", err)
	}
	defer os.RemoveAll(stagingDir)

	flow := workflow.NewFlow(
		services.NewStorageService(stagingDir),
		services.NewPDFParserService(),
		services.NewAnalyzerService(baseURL+"/api/resume/analyze-with-upload", cfg.Analyzer.Timeout),
	)
	session := workflow.NewSession()

	f, err := os.Open(opts.ResumePath)
	if err != nil {
		return fmt.Errorf("failed to open resume: %w", err)
	}
	defer f.Close()

	var size int64
	if info, err := f.Stat(); err == nil {
		size = info.Size()
	}

	// Declared type comes from the extension, the way a browser reports it.
	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(opts.ResumePath)))
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}

	if err := flow.Upload(session, workflow.FileInput{
		Name:        filepath.Base(opts.ResumePath),
		ContentType: contentType,
		Size:        size,
		Body:        f,
	}); err != nil {
		return errors.New(session.Snapshot().Alert)
	}

	session.SetJob(opts.JobTitle, description)
	if err := flow.Analyze(context.Background(), session); err != nil {
		return errors.New(session.Snapshot().Alert)
	}

	printResults(out, session.Snapshot())
	return nil
}

func printResults(out io.Writer, v workflow.View) {
	r := v.Result
	fmt.Fprintf(out, "Overall Resume Score: %s [%s]\n\n", workflow.FormatPercent(r.OverallScore), workflow.BadgeVariant(r.OverallScore))

	for _, card := range workflow.ScoreCards(r) {
		fmt.Fprintf(out, "%-22s %6s  [%s]\n", card.Title, card.Percent(), card.Variant())
	}

	printList(out, "Improvement Suggestions", r.Suggestions)

	if r.OptimizedSections.Summary != "" {
		fmt.Fprintf(out, "\nOptimized Summary:\n  %s\n", r.OptimizedSections.Summary)
	}
	printList(out, "Optimized Skills", r.OptimizedSections.Skills)
	printList(out, "Key Achievements", r.OptimizedSections.KeyAchievements)
	printList(out, "Missing Keywords", r.DetailedAnalysis.MissingKeywords)
	printList(out, "ATS Recommendations", r.ATSRecommendations)
}

func printList(out io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(out, "\n%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(out, "  - %s\n", item)
	}
}
