// Package resume scores a resume against the writing, skills, sections, verb
// and formatting rubrics and turns the result into suggestions.
package resume

import (
	"context"
	"math"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"

	"resumescore/internal/errors"
	"resumescore/internal/formatting"
	"resumescore/internal/lexicon"
	"resumescore/internal/nlp"
	"resumescore/internal/scoring"
	"resumescore/internal/sections"
	"resumescore/internal/skills"
	"resumescore/internal/textnorm"
	"resumescore/internal/verbs"
	"resumescore/internal/writing"
)

const (
	pointsPerSkill          = 8
	pointsPerMissingSection = 12
)

// Scores holds the five sub-scores behind the final score.
type Scores struct {
	SkillsMatch      float64 `json:"skillsMatch"`
	SectionsComplete float64 `json:"sectionsComplete"`
	WritingQuality   float64 `json:"writingQuality"`
	VerbStrength     float64 `json:"verbStrength"`
	Formatting       float64 `json:"formatting"`
}

// Named returns the scores in reporting order.
func (s Scores) Named() []scoring.Named {
	return []scoring.Named{
		{Name: "Skills Match", Score: s.SkillsMatch},
		{Name: "Sections Complete", Score: s.SectionsComplete},
		{Name: "Writing Quality", Score: s.WritingQuality},
		{Name: "Verb Strength", Score: s.VerbStrength},
		{Name: "Formatting", Score: s.Formatting},
	}
}

// DetailedAnalysis carries every analyzer's full output.
type DetailedAnalysis struct {
	SkillsAnalysis     skills.Analysis     `json:"skillsAnalysis"`
	SectionsAnalysis   sections.Analysis   `json:"sectionsAnalysis"`
	WritingAnalysis    writing.Analysis    `json:"writingAnalysis"`
	VerbAnalysis       verbs.Analysis      `json:"verbAnalysis"`
	FormattingAnalysis formatting.Analysis `json:"formattingAnalysis"`
	JobMatchAnalysis   *JobMatch           `json:"jobMatchAnalysis,omitempty"`
}

// Result is a complete resume analysis. It is not modified after Analyze
// returns; SessionID and Timestamp are filled by whoever persists it.
type Result struct {
	FinalScore       float64          `json:"finalScore"`
	Scores           Scores           `json:"scores"`
	FoundSkills      []string         `json:"foundSkills"`
	MissingSkills    []string         `json:"missingSkills"`
	StrongVerbs      []string         `json:"strongVerbs"`
	MissingSections  []string         `json:"missingSections"`
	ReadabilityScore float64          `json:"readabilityScore"`
	Suggestions      []string         `json:"suggestions"`
	DetailedAnalysis DetailedAnalysis `json:"detailedAnalysis"`

	JobMatchScore   *float64 `json:"jobMatchScore,omitempty"`
	MissingKeywords []string `json:"missingKeywords,omitempty"`

	SessionID string `json:"sessionId,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// Scorer runs the resume analyzers.
type Scorer struct {
	lexicon lexicon.Source
	model   nlp.Model
	logger  *errors.Logger
}

// NewScorer creates a scorer. The model must already have passed its
// self-check.
func NewScorer(lex lexicon.Source, model nlp.Model, logger *errors.Logger) *Scorer {
	if logger == nil {
		logger = errors.NewNopLogger()
	}
	return &Scorer{lexicon: lex, model: model, logger: logger}
}

// Analyze scores resumeText and, when jobText is not blank, attaches the quick
// keyword check against it. Any analyzer failure fails the whole call.
func (s *Scorer) Analyze(ctx context.Context, resumeText, jobText string) (*Result, error) {
	if err := textnorm.Validate(resumeText); err != nil {
		return nil, err
	}
	start := time.Now()
	lex := s.lexicon.Current()
	cleaned := textnorm.Normalize(resumeText)

	doc, err := s.model.Process(cleaned)
	if err != nil {
		if errors.IsType(err, errors.ErrorTypeUpstreamModel) {
			return nil, err
		}
		return nil, errors.NewUpstreamModelError(errors.ErrCodeTaggingFailed, "failed to tag resume text", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	skillsAnalysis := skills.Analyze(cleaned, lex)
	sectionsAnalysis := sections.Check(cleaned, lex.ExpectedSections)
	writingAnalysis, err := writing.Analyze(cleaned, doc.Sentences)
	if err != nil {
		return nil, errors.NewComputationError(errors.ErrCodeAnalysisFailed,
			"writing quality analysis failed", pkgerrors.Wrap(err, "writing"))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	verbAnalysis := verbs.NewAnalyzer(lex).Analyze(doc.Tokens)
	formattingAnalysis := formatting.Analyze(resumeText)

	scores := Scores{
		SkillsMatch:      math.Min(float64(pointsPerSkill*len(skillsAnalysis.FoundSkills)), 100),
		SectionsComplete: math.Max(0, 100-float64(pointsPerMissingSection*len(sectionsAnalysis.MissingSections))),
		WritingQuality:   writingAnalysis.Score,
		VerbStrength:     verbAnalysis.Score,
		Formatting:       formattingAnalysis.Score,
	}

	result := &Result{
		FinalScore:       scoring.CompositeNamed(1, scores.Named()...),
		Scores:           scores,
		FoundSkills:      skillsAnalysis.FoundSkills,
		MissingSkills:    skillsAnalysis.RecommendedSkills,
		StrongVerbs:      verbAnalysis.FoundVerbs,
		MissingSections:  sectionsAnalysis.MissingSections,
		ReadabilityScore: writingAnalysis.Readability,
		DetailedAnalysis: DetailedAnalysis{
			SkillsAnalysis:     skillsAnalysis,
			SectionsAnalysis:   sectionsAnalysis,
			WritingAnalysis:    writingAnalysis,
			VerbAnalysis:       verbAnalysis,
			FormattingAnalysis: formattingAnalysis,
		},
	}

	if strings.TrimSpace(jobText) != "" {
		jm := QuickMatch(cleaned, jobText, lex.QuickMatchStopwords)
		result.DetailedAnalysis.JobMatchAnalysis = &jm
		result.JobMatchScore = &jm.MatchScore
		result.MissingKeywords = jm.MissingKeywords
	}

	result.Suggestions = suggest(suggestionInput{
		skills:     skillsAnalysis,
		sections:   sectionsAnalysis,
		writing:    writingAnalysis,
		verbs:      verbAnalysis,
		formatting: formattingAnalysis,
		job:        result.DetailedAnalysis.JobMatchAnalysis,
	})

	s.logger.Info("Resume analysis completed",
		"final_score", result.FinalScore,
		"skills", len(result.FoundSkills),
		"job_match", result.JobMatchScore != nil,
		"duration", time.Since(start))
	return result, nil
}
