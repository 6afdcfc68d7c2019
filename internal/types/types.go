// Package types holds the request and response shapes shared by the HTTP
// server, the CLI and the report formatters.
package types

import (
	"resumescore/internal/jobmatch"
)

// AnalyzeResumeRequest is the JSON form of a resume analysis request
type AnalyzeResumeRequest struct {
	ResumeText     string `json:"resume_text" validate:"required"`
	JobDescription string `json:"job_description,omitempty"`
}

// JobMatchRequest asks for a deep match of one resume against one job
type JobMatchRequest struct {
	ResumeText      string               `json:"resume_text" validate:"required"`
	JobDescription  string               `json:"job_description" validate:"required"`
	UserPreferences jobmatch.Preferences `json:"user_preferences,omitempty"`
}

// FindSimilarRequest ranks listings against a candidate profile
type FindSimilarRequest struct {
	UserProfile jobmatch.UserProfile `json:"user_profile"`
	JobListings []jobmatch.Listing   `json:"job_listings" validate:"required,min=1,dive"`
	Limit       int                  `json:"limit" validate:"gte=0,lte=100"`
}

// SkillRecommendationsRequest asks which skills a target role expects
type SkillRecommendationsRequest struct {
	UserSkills []string `json:"user_skills"`
	TargetRole string   `json:"target_role" validate:"required"`
}

// JobInsightsRequest summarizes a batch of listings
type JobInsightsRequest struct {
	JobListings  []jobmatch.Listing `json:"job_listings" validate:"required,min=1,dive"`
	TargetSkills []string           `json:"target_skills"`
}

// SimilarJobsOutput is the ranked result of a similar-jobs search
type SimilarJobsOutput struct {
	SimilarJobs   []jobmatch.SimilarJob `json:"similar_jobs"`
	TotalAnalyzed int                   `json:"total_analyzed"`
	ReturnedCount int                   `json:"returned_count"`
	Timestamp     string                `json:"timestamp"`
}

// SkillRecommendationsOutput lists the skills to add for a role
type SkillRecommendationsOutput struct {
	TargetRole        string   `json:"target_role"`
	CurrentSkills     []string `json:"current_skills"`
	RecommendedSkills []string `json:"recommended_skills"`
	SkillsToAdd       int      `json:"skills_to_add"`
	Timestamp         string   `json:"timestamp"`
}

// JobInsightsOutput wraps market insights for one batch of listings
type JobInsightsOutput struct {
	Insights     *jobmatch.Insights `json:"insights"`
	AnalyzedJobs int                `json:"analyzed_jobs"`
	Timestamp    string             `json:"timestamp"`
}

// HealthOutput reports whether each service is usable
type HealthOutput struct {
	Status    string          `json:"status"`
	Timestamp string          `json:"timestamp"`
	Version   string          `json:"version,omitempty"`
	Services  map[string]bool `json:"services"`
}
