// Package jobmatch compares a resume with a job description across skills,
// seniority, TF-IDF similarity and keyword overlap.
package jobmatch

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"resumescore/internal/errors"
	"resumescore/internal/lexicon"
	"resumescore/internal/scoring"
	"resumescore/internal/textnorm"
	"resumescore/internal/tfidf"
)

// Dimension weights of the overall score.
const (
	SkillsWeight     = 0.40
	ExperienceWeight = 0.20
	SemanticWeight   = 0.25
	KeywordWeight    = 0.15
)

const (
	maxMissingSkills   = 10
	maxMissingKeywords = 10
	keywordCandidates  = 15
	topKeywordWords    = 50
	minKeywordLen      = 4
)

// Experience scores.
const (
	unknownRequirementScore = 50
	oneLevelBelowScore      = 75
	perLevelPenalty         = 25
)

// Preferences are accepted with a match request and echoed back. They do not
// affect scoring.
type Preferences map[string]any

// SkillsMatch is the skill-set comparison. Missing is the full set
// difference, before any reporting cap.
type SkillsMatch struct {
	Score    float64  `json:"score"`
	Matching []string `json:"matching"`
	Missing  []string `json:"missing"`
}

// ExperienceMatch compares seniority levels.
type ExperienceMatch struct {
	Score       float64 `json:"score"`
	ResumeLevel string  `json:"resume_level"`
	JobLevel    string  `json:"job_level"`
}

// Result is a complete job match.
type Result struct {
	OverallScore    float64         `json:"overall_score"`
	SkillsMatch     float64         `json:"skills_match"`
	ExperienceMatch float64         `json:"experience_match"`
	SemanticMatch   float64         `json:"semantic_match"`
	KeywordMatch    float64         `json:"keyword_match"`
	MatchingSkills  []string        `json:"matching_skills"`
	MissingSkills   []string        `json:"missing_skills"`
	MissingKeywords []string        `json:"missing_keywords"`
	Recommendations []string        `json:"recommendations"`
	JobRequirements *FeatureProfile `json:"job_requirements"`
	ResumeProfile   *FeatureProfile `json:"resume_profile"`
	Preferences     Preferences     `json:"user_preferences,omitempty"`

	AnalysisID string `json:"analysis_id"`
	SessionID  string `json:"session_id,omitempty"`
	Timestamp  string `json:"timestamp"`
}

// Matcher runs job matches against the current lexicon snapshot.
type Matcher struct {
	lexicon lexicon.Source
	logger  *errors.Logger
	workers int
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithWorkers bounds the listings scored concurrently by FindSimilarJobs.
func WithWorkers(n int) Option {
	return func(m *Matcher) {
		if n > 0 {
			m.workers = n
		}
	}
}

// DefaultWorkers is the FindSimilarJobs concurrency when none is configured.
const DefaultWorkers = 4

// NewMatcher creates a matcher.
func NewMatcher(lex lexicon.Source, logger *errors.Logger, opts ...Option) *Matcher {
	if logger == nil {
		logger = errors.NewNopLogger()
	}
	m := &Matcher{lexicon: lex, logger: logger, workers: DefaultWorkers}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Analyze matches resumeText against jobText. Blank input on either side is
// rejected before any feature extraction.
func (m *Matcher) Analyze(ctx context.Context, resumeText, jobText string, prefs Preferences) (*Result, error) {
	if strings.TrimSpace(resumeText) == "" {
		return nil, errors.NewInvalidInputError(errors.ErrCodeMissingField, "resume text is required", nil).
			WithContext("field", "resume_text")
	}
	if strings.TrimSpace(jobText) == "" {
		return nil, errors.NewInvalidInputError(errors.ErrCodeMissingField, "job description is required", nil).
			WithContext("field", "job_description")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lex := m.lexicon.Current()
	resumeClean := textnorm.NormalizeLower(resumeText)
	jobClean := textnorm.NormalizeLower(jobText)

	resumeProfile := ExtractProfile(resumeClean, lex)
	jobProfile := ExtractProfile(jobClean, lex)
	if band, ok := lex.Salary(jobProfile.ExperienceLevel); ok {
		jobProfile.SalaryRange = &band
	}

	skillsMatch := CompareSkills(resumeProfile, jobProfile)
	experience := CompareExperience(resumeProfile.ExperienceLevel, jobProfile.ExperienceLevel)
	semantic := m.semantic(resumeClean, jobClean)
	keyword := KeywordMatch(resumeClean, jobClean, lex.KeywordStopwords)

	overall := skillsMatch.Score*SkillsWeight +
		experience.Score*ExperienceWeight +
		semantic*SemanticWeight +
		keyword*KeywordWeight

	result := &Result{
		OverallScore:    scoring.Round(overall, 1),
		SkillsMatch:     scoring.Round(skillsMatch.Score, 1),
		ExperienceMatch: scoring.Round(experience.Score, 1),
		SemanticMatch:   scoring.Round(semantic, 1),
		KeywordMatch:    scoring.Round(keyword, 1),
		MatchingSkills:  skillsMatch.Matching,
		MissingSkills:   scoring.First(skillsMatch.Missing, maxMissingSkills),
		MissingKeywords: scoring.First(MissingKeywords(resumeClean, jobClean, lex.MissingKeywordStopwords), maxMissingKeywords),
		Recommendations: recommend(recommendationInput{
			resume: resumeProfile,
			job:    jobProfile,
			skills: skillsMatch,
		}),
		JobRequirements: jobProfile,
		ResumeProfile:   resumeProfile,
		Preferences:     prefs,
		AnalysisID:      uuid.NewString(),
		Timestamp:       time.Now().UTC().Format(time.RFC3339),
	}

	m.logger.Debug("Job match completed",
		"analysis_id", result.AnalysisID,
		"overall_score", result.OverallScore)
	return result, nil
}

func (m *Matcher) semantic(resumeText, jobText string) float64 {
	sim, err := tfidf.Similarity(resumeText, jobText)
	if err != nil {
		m.logger.Warn("Semantic similarity unavailable, scoring 0", "error", err)
		return 0
	}
	return sim * 100
}

// CompareSkills computes matching = job ∩ resume and missing = job − resume
// over lower-cased skills. Both lists are sorted.
func CompareSkills(resume, job *FeatureProfile) SkillsMatch {
	have := resume.SkillSet()
	want := job.SkillSet()

	matching := []string{}
	missing := []string{}
	for _, s := range sortedKeys(want) {
		if have[s] {
			matching = append(matching, s)
		} else {
			missing = append(missing, s)
		}
	}
	return SkillsMatch{
		Score:    scoring.Percent(len(matching), len(want)),
		Matching: matching,
		Missing:  missing,
	}
}

// CompareExperience scores a resume level against a required level.
func CompareExperience(resumeLevel, jobLevel string) ExperienceMatch {
	have := lexicon.LevelRank(resumeLevel)
	want := lexicon.LevelRank(jobLevel)

	var score float64
	switch {
	case want == 0:
		score = unknownRequirementScore
	case have >= want:
		score = 100
	case have == want-1:
		score = oneLevelBelowScore
	default:
		score = max(0, 100-float64(want-have)*perLevelPenalty)
	}
	return ExperienceMatch{Score: score, ResumeLevel: resumeLevel, JobLevel: jobLevel}
}

func longWords(text string, stopwords []string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(text) {
		if len([]rune(w)) >= minKeywordLen && !slices.Contains(stopwords, w) {
			set[w] = true
		}
	}
	return set
}

// KeywordMatch is the share of the job's long words (four or more
// characters, minus stopwords) that also appear in the resume.
func KeywordMatch(resumeText, jobText string, stopwords []string) float64 {
	job := longWords(jobText, stopwords)
	if len(job) == 0 {
		return 0
	}
	resume := longWords(resumeText, stopwords)
	overlap := 0
	for w := range job {
		if resume[w] {
			overlap++
		}
	}
	return scoring.Percent(overlap, len(job))
}

// MissingKeywords ranks the job's repeated long words that never appear in the
// resume, most frequent first; ties keep first-seen order.
func MissingKeywords(resumeText, jobText string, stopwords []string) []string {
	resume := make(map[string]bool)
	for _, w := range strings.Fields(resumeText) {
		resume[w] = true
	}

	counts := make(map[string]int)
	var order []string
	for _, w := range strings.Fields(jobText) {
		if len([]rune(w)) < minKeywordLen {
			continue
		}
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}
	slices.SortStableFunc(order, func(a, b string) int { return counts[b] - counts[a] })

	missing := []string{}
	for _, w := range scoring.First(order, topKeywordWords) {
		if counts[w] > 1 && !resume[w] && !slices.Contains(stopwords, w) {
			missing = append(missing, w)
		}
	}
	return scoring.First(missing, keywordCandidates)
}
