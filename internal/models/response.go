package models

// CreateJobRequest is the POST /api/jobs payload.
type CreateJobRequest struct {
	Role        string `json:"role"`
	Description string `json:"description"`
}

// RegisterApplicantRequest is the POST /api/applicants payload.
type RegisterApplicantRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

// JobMatch is one ranked entry returned by MatchJobsForApplicant.
// Computed per request, never persisted.
type JobMatch struct {
	JobID              string  `json:"job_id"`
	Role               string  `json:"role"`
	Score              float64 `json:"score"`
	DescriptionPreview string  `json:"description_preview"`
}

// ShortlistEntry is one ranked applicant returned by Shortlist.
type ShortlistEntry struct {
	ApplicationID string  `json:"application_id"`
	ApplicantID   string  `json:"applicant_id"`
	ApplicantName string  `json:"applicant_name"`
	Email         string  `json:"email"`
	Score         float64 `json:"score"`
	ResumePreview string  `json:"resume_preview"`
}

// MatchExplanation carries the shared-term "why" for one match. The terms
// are a heuristic extraction, not ranked by contribution.
type MatchExplanation struct {
	JobID         string   `json:"job_id"`
	JobRole       string   `json:"job_role"`
	ApplicationID string   `json:"application_id,omitempty"`
	MatchingTerms []string `json:"matching_terms"`
	Explanation   string   `json:"explanation"`
}
