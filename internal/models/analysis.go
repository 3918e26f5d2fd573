package models

type AnalysisResult struct {
	OverallScore        float64           `json:"overall_score"`
	SkillsMatch         float64           `json:"skills_match"`
	ExperienceRelevance float64           `json:"experience_relevance"`
	ATSCompatibility    float64           `json:"ats_compatibility"`
	KeywordDensity      float64           `json:"keyword_density"`
	Suggestions         []string          `json:"suggestions"`
	OptimizedSections   OptimizedSections `json:"optimized_sections"`
	DetailedAnalysis    DetailedAnalysis  `json:"detailed_analysis"`
	ATSRecommendations  []string          `json:"ats_recommendations"`
}

type OptimizedSections struct {
	Summary         string   `json:"summary"`
	Skills          []string `json:"skills"`
	KeyAchievements []string `json:"key_achievements,omitempty"`
}

type DetailedAnalysis struct {
	Strengths         []string `json:"strengths,omitempty"`
	Weaknesses        []string `json:"weaknesses,omitempty"`
	MissingKeywords   []string `json:"missing_keywords,omitempty"`
	RecommendedSkills []string `json:"recommended_skills,omitempty"`
}

// AnalyzeResponse is the envelope returned by the analysis backend.
// Failures may arrive without the success key, only carrying error.
type AnalyzeResponse struct {
	Success       bool            `json:"success"`
	Analysis      *AnalysisResult `json:"analysis,omitempty"`
	Error         string          `json:"error,omitempty"`
	ResumePreview string          `json:"resume_preview,omitempty"`
}

type AnalyzeRequest struct {
	ResumeName     string
	Resume         []byte
	JobTitle       string
	JobDescription string
}

func (d DetailedAnalysis) IsEmpty() bool {
	return len(d.Strengths) == 0 && len(d.Weaknesses) == 0 &&
		len(d.MissingKeywords) == 0 && len(d.RecommendedSkills) == 0
}
