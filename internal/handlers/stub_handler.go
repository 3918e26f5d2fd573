package handlers

import (
	"io"
	"log"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-optimizer/internal/models"
	"alfredoptarigan/resume-optimizer/internal/services"
)

const previewLength = 300

// StubAnalysisHandler answers the analysis contract with a fixed analysis.
// It is meant for local runs of the web client without the real backend.
type StubAnalysisHandler struct {
	pdfParser services.PDFParserService
}

func NewStubAnalysisHandler(pdfParser services.PDFParserService) *StubAnalysisHandler {
	return &StubAnalysisHandler{
		pdfParser: pdfParser,
	}
}

// HandleAnalyzeWithUpload handles POST /api/resume/analyze-with-upload
func (h *StubAnalysisHandler) HandleAnalyzeWithUpload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No resume file provided",
		})
	}

	if fileHeader.Filename == "" || strings.ToLower(filepath.Ext(fileHeader.Filename)) != ".pdf" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Please provide a valid PDF file",
		})
	}

	jobTitle := strings.TrimSpace(c.FormValue("job_title"))
	jobDescription := strings.TrimSpace(c.FormValue("job_description"))
	if jobTitle == "" || jobDescription == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Job title and description are required",
		})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to read uploaded file",
		})
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to read uploaded file",
		})
	}

	text, err := h.pdfParser.ExtractText(data)
	if err != nil {
		log.Printf("⚠️  Stub could not read %s: %v\n", fileHeader.Filename, err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Could not extract readable text from PDF",
		})
	}

	log.Printf("🧪 Stub analysis for %q (%d chars of resume text)\n", jobTitle, len(text))

	return c.JSON(models.AnalyzeResponse{
		Success:       true,
		Analysis:      StubAnalysis(),
		ResumePreview: services.Preview(text, previewLength),
	})
}

// StubAnalysis is the canned analysis served by the development backend.
func StubAnalysis() *models.AnalysisResult {
	return &models.AnalysisResult{
		OverallScore:        75,
		SkillsMatch:         70,
		ExperienceRelevance: 80,
		ATSCompatibility:    75,
		KeywordDensity:      65,
		DetailedAnalysis: models.DetailedAnalysis{
			Strengths:         []string{"Relevant experience", "Good technical skills", "Clear career progression"},
			Weaknesses:        []string{"Missing key keywords", "Could quantify achievements better", "Summary needs improvement"},
			MissingKeywords:   []string{"agile", "stakeholder management", "data analysis"},
			RecommendedSkills: []string{"Project management", "Cross-functional collaboration", "Strategic planning"},
		},
		Suggestions: []string{
			"Add more industry-specific keywords from the job description",
			"Quantify achievements with specific metrics and percentages",
			"Improve professional summary to better match job requirements",
			"Highlight leadership and collaboration experience",
		},
		OptimizedSections: models.OptimizedSections{
			Summary: "Results-driven professional with proven track record in the target industry. Expert in key technologies and methodologies with demonstrated ability to deliver measurable business impact.",
			Skills: []string{
				"Strategic Planning", "Project Management", "Data Analysis", "Team Leadership",
				"Process Improvement", "Stakeholder Management", "Agile Methodologies", "Cross-functional Collaboration",
			},
			KeyAchievements: []string{
				"Increased efficiency by 25% through process optimization",
				"Led cross-functional team of 10+ members",
				"Delivered projects 15% under budget consistently",
			},
		},
		ATSRecommendations: []string{
			"Use standard section headings like 'Experience' and 'Skills'",
			"Include relevant keywords naturally throughout the resume",
			"Use a clean, simple format without complex graphics",
		},
	}
}
