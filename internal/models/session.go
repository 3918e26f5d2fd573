package models

type JobInput struct {
	JobTitle       string `json:"job_title"`
	JobDescription string `json:"job_description"`
}

// UploadedFile references the staged copy of an accepted resume.
type UploadedFile struct {
	OriginalName string `json:"original_name"`
	ContentType  string `json:"content_type"`
	Size         int64  `json:"size"`
	Filename     string `json:"filename"`
	Path         string `json:"-"`
	PageCount    int    `json:"page_count"`
}
