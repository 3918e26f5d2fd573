package workflow

import (
	"strconv"

	"alfredoptarigan/resume-optimizer/internal/models"
)

// Badge variants of a score card.
const (
	BadgeDefault     = "default"
	BadgeSecondary   = "secondary"
	BadgeDestructive = "destructive"
)

type ScoreCard struct {
	Title       string
	Score       float64
	Description string
}

func (c ScoreCard) Percent() string {
	return FormatPercent(c.Score)
}

func (c ScoreCard) Variant() string {
	return BadgeVariant(c.Score)
}

// BadgeVariant maps a 0-100 score to its badge variant.
func BadgeVariant(score float64) string {
	switch {
	case score >= 85:
		return BadgeDefault
	case score >= 70:
		return BadgeSecondary
	default:
		return BadgeDestructive
	}
}

func FormatPercent(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64) + "%"
}

// ScoreCards lists the detailed score cards in display order.
func ScoreCards(r *models.AnalysisResult) []ScoreCard {
	if r == nil {
		return nil
	}
	return []ScoreCard{
		{Title: "Skills Match", Score: r.SkillsMatch, Description: "How well your skills align with job requirements"},
		{Title: "Experience Relevance", Score: r.ExperienceRelevance, Description: "Relevance of your experience to the role"},
		{Title: "ATS Compatibility", Score: r.ATSCompatibility, Description: "How well your resume passes ATS systems"},
		{Title: "Keyword Density", Score: r.KeywordDensity, Description: "Strategic use of relevant keywords"},
	}
}
