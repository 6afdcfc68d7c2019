package formatters

import (
	"encoding/json"
	"fmt"
	"slices"

	"resumescore/internal/jobmatch"
	"resumescore/internal/resume"
	"resumescore/internal/scoring"
	"resumescore/internal/types"
)

// Formatter renders one data type in one output format
type Formatter interface {
	Format(data any) ([]byte, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// Data type names used as registry keys
const (
	TypeAny                  = "any"
	TypeResumeAnalysis       = "ResumeAnalysis"
	TypeJobMatch             = "JobMatch"
	TypeSimilarJobs          = "SimilarJobs"
	TypeJobInsights          = "JobInsights"
	TypeSkillRecommendations = "SkillRecommendations"
)

var contentTypes = map[string]string{
	"json":     "application/json",
	"text":     "text/plain; charset=utf-8",
	"markdown": "text/markdown; charset=utf-8",
	"pdf":      "application/pdf",
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	registry.RegisterFormatter("json", TypeAny, &JSONFormatter{})

	for _, f := range []Formatter{
		&ResumeTextFormatter{},
		&MatchTextFormatter{},
		&SimilarJobsTextFormatter{},
		&InsightsTextFormatter{},
		&SkillsTextFormatter{},
	} {
		registry.RegisterFormatter("text", f.SupportedType(), f)
	}

	for _, f := range []Formatter{
		&ResumeMarkdownFormatter{},
		&MatchMarkdownFormatter{},
		&SimilarJobsMarkdownFormatter{},
		&InsightsMarkdownFormatter{},
		&SkillsMarkdownFormatter{},
	} {
		registry.RegisterFormatter("markdown", f.SupportedType(), f)
	}

	registry.RegisterFormatter("pdf", TypeResumeAnalysis, &ResumePDFFormatter{})
	registry.RegisterFormatter("pdf", TypeJobMatch, &MatchPDFFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) ([]byte, error) {
	dataType := getDataType(data)

	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters[TypeAny]; exists {
			return formatter.Format(data)
		}
	}

	return nil, fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// Supports reports whether data can be rendered as format.
func (fr *FormatterRegistry) Supports(data any, format string) bool {
	formatters, ok := fr.formatters[format]
	if !ok {
		return false
	}
	_, specific := formatters[getDataType(data)]
	_, generic := formatters[TypeAny]
	return specific || generic
}

// GetSupportedFormats returns all supported formats, sorted
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	slices.Sort(formats)
	return formats
}

// ContentType is the MIME type served for format.
func ContentType(format string) string {
	if ct, ok := contentTypes[format]; ok {
		return ct
	}
	return "application/octet-stream"
}

func getDataType(data any) string {
	switch data.(type) {
	case *resume.Result:
		return TypeResumeAnalysis
	case *jobmatch.Result:
		return TypeJobMatch
	case *types.SimilarJobsOutput:
		return TypeSimilarJobs
	case *types.JobInsightsOutput:
		return TypeJobInsights
	case *types.SkillRecommendationsOutput:
		return TypeSkillRecommendations
	default:
		return TypeAny
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) ([]byte, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(jsonData, '\n'), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return TypeAny
}

// ResumeVerdict interprets a final resume score.
func ResumeVerdict(score float64) string {
	switch {
	case score >= 80:
		return "Excellent - Your resume is well-optimized and ready for applications."
	case score >= 60:
		return "Good - Your resume has strong foundations with room for improvement."
	default:
		return "Needs Improvement - Focus on the recommendations below to strengthen your resume."
	}
}

// MatchVerdict interprets an overall job match score.
func MatchVerdict(score float64) string {
	switch {
	case score >= 80:
		return "Excellent Match - You are a strong candidate for this position."
	case score >= 60:
		return "Good Match - You meet most requirements with some areas to strengthen."
	default:
		return "Moderate Match - Consider developing missing skills for better alignment."
	}
}

const (
	noSuggestions     = "Great job! Your resume shows strong optimization across all areas."
	noRecommendations = "Excellent match! You appear to be well-qualified for this position."
)

func matchBreakdown(r *jobmatch.Result) []scoring.Named {
	return []scoring.Named{
		{Name: "Skills Match", Score: r.SkillsMatch},
		{Name: "Experience Match", Score: r.ExperienceMatch},
		{Name: "Semantic Match", Score: r.SemanticMatch},
		{Name: "Keyword Match", Score: r.KeywordMatch},
	}
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
