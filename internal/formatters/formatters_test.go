package formatters

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumescore/internal/jobmatch"
	"resumescore/internal/resume"
	"resumescore/internal/types"
)

func sampleResume() *resume.Result {
	match := 42.5
	return &resume.Result{
		FinalScore: 71.3,
		Scores: resume.Scores{
			SkillsMatch:      64,
			SectionsComplete: 88,
			WritingQuality:   70.2,
			VerbStrength:     55,
			Formatting:       90,
		},
		FoundSkills:      []string{"go", "kubernetes"},
		MissingSkills:    []string{"terraform"},
		StrongVerbs:      []string{"led", "shipped"},
		MissingSections:  []string{"certifications"},
		ReadabilityScore: 61.8,
		Suggestions:      []string{"Quantify your achievements with numbers."},
		JobMatchScore:    &match,
		MissingKeywords:  []string{"observability"},
		SessionID:        "6f9619ff-8b86-d011-b42d-00c04fc964ff",
	}
}

func sampleMatch() *jobmatch.Result {
	return &jobmatch.Result{
		OverallScore:    83.4,
		SkillsMatch:     90,
		ExperienceMatch: 100,
		SemanticMatch:   55.5,
		KeywordMatch:    61,
		MatchingSkills:  []string{"go", "postgresql"},
		MissingSkills:   []string{"rust"},
		MissingKeywords: []string{"k1", "k2", "k3", "k4", "k5", "k6", "k7", "k8", "k9", "k10", "k11", "k12"},
		Recommendations: []string{"Highlight your Go experience – it's résumé gold."},
		AnalysisID:      "a1",
	}
}

func TestFormatDispatch(t *testing.T) {
	registry := NewFormatterRegistry()
	similar := &types.SimilarJobsOutput{
		SimilarJobs: []jobmatch.SimilarJob{{
			Listing:       jobmatch.Listing{Title: "Backend | Go", Company: "Acme", Location: "Remote"},
			MatchScore:    77.7,
			SkillsMatch:   50,
			MissingSkills: []string{"grpc"},
		}},
		TotalAnalyzed: 3,
		ReturnedCount: 1,
	}
	insights := &types.JobInsightsOutput{
		Insights: &jobmatch.Insights{
			TopSkills:          []jobmatch.Count{{Name: "python", Count: 4}},
			TopLocations:       []jobmatch.Count{{Name: "Berlin", Count: 2}},
			AverageSalaryRange: "$90,000 - $130,000",
			TotalJobs:          4,
			SkillMatchRate:     jobmatch.SkillMatchRate{MatchRate: 50, MatchingSkills: []string{"python"}, MissingSkills: []string{"sql"}},
		},
		AnalyzedJobs: 4,
	}
	skillsOut := &types.SkillRecommendationsOutput{
		TargetRole:        "data scientist",
		CurrentSkills:     []string{"python"},
		RecommendedSkills: []string{"sql", "statistics"},
		SkillsToAdd:       2,
	}

	tests := []struct {
		name   string
		data   any
		format string
		want   []string
	}{
		{"resume text", sampleResume(), "text", []string{"Overall Score: 71.3/100", "Good - ", "Skills Found (2):", "Job Match Score: 42.5%", "1. Quantify"}},
		{"resume markdown", sampleResume(), "markdown", []string{"# Resume Analysis Report", "| Readability | 61.8 |", "### Recommended Skills (1)"}},
		{"match text", sampleMatch(), "text", []string{"Overall Match: 83.4/100", "Excellent Match", "Skills to Develop (1):", "- k10\n"}},
		{"match markdown", sampleMatch(), "markdown", []string{"# Job Match Analysis Report", "| Semantic Match | 55.5 |"}},
		{"similar text", similar, "text", []string{"Showing 1 of 3", "1. Backend | Go at Acme", "Missing Skills: grpc"}},
		{"similar markdown", similar, "markdown", []string{`Backend \| Go`, "| 77.7 |"}},
		{"insights text", insights, "text", []string{"Jobs Analyzed: 4", "- python (4)", "Skill Match Rate: 50.0%"}},
		{"insights markdown", insights, "markdown", []string{"## Top Locations", "- Berlin: 2"}},
		{"skills text", skillsOut, "text", []string{"Target Role: data scientist", "Skills to Add (2):"}},
		{"skills markdown", skillsOut, "markdown", []string{"# Skill Recommendations: data scientist", "- statistics"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := registry.Format(tt.data, tt.format)
			require.NoError(t, err)
			for _, want := range tt.want {
				assert.Contains(t, string(out), want)
			}
		})
	}
}

func TestMatchKeywordsAreCapped(t *testing.T) {
	out, err := GlobalRegistry.Format(sampleMatch(), "text")
	require.NoError(t, err)
	assert.Contains(t, string(out), "- k10\n")
	assert.NotContains(t, string(out), "- k11\n")
}

func TestEmptyRecommendations(t *testing.T) {
	r := sampleResume()
	r.Suggestions = nil
	out, err := GlobalRegistry.Format(r, "markdown")
	require.NoError(t, err)
	assert.Contains(t, string(out), noSuggestions)

	m := sampleMatch()
	m.Recommendations = nil
	out, err = GlobalRegistry.Format(m, "text")
	require.NoError(t, err)
	assert.Contains(t, string(out), noRecommendations)
}

func TestJSONFormatter(t *testing.T) {
	out, err := GlobalRegistry.Format(sampleResume(), "json")
	require.NoError(t, err)
	assert.True(t, bytes.HasSuffix(out, []byte("}\n")))

	var decoded resume.Result
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, 71.3, decoded.FinalScore)

	// unregistered types fall back to JSON
	out, err = GlobalRegistry.Format(map[string]int{"a": 1}, "json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(out))
}

func TestPDFReports(t *testing.T) {
	fixed := func() time.Time { return time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC) }
	for name, tc := range map[string]struct {
		f    Formatter
		data any
	}{
		"resume": {&ResumePDFFormatter{Now: fixed}, sampleResume()},
		"match":  {&MatchPDFFormatter{Now: fixed}, sampleMatch()},
	} {
		t.Run(name, func(t *testing.T) {
			out, err := tc.f.Format(tc.data)
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
			assert.True(t, bytes.Contains(out, []byte("%%EOF")))
		})
	}

	_, err := (&ResumePDFFormatter{}).Format(sampleMatch())
	assert.ErrorContains(t, err, "expected *resume.Result")
}

func TestRegistryErrors(t *testing.T) {
	_, err := GlobalRegistry.Format(sampleResume(), "yaml")
	assert.ErrorContains(t, err, "no formatter found for format 'yaml'")

	_, err = GlobalRegistry.Format(&types.SimilarJobsOutput{}, "pdf")
	assert.Error(t, err)

	_, err = GlobalRegistry.Format(map[string]int{}, "text")
	assert.ErrorContains(t, err, "type 'any'")
}

func TestSupports(t *testing.T) {
	assert.True(t, GlobalRegistry.Supports(sampleResume(), "pdf"))
	assert.True(t, GlobalRegistry.Supports(sampleMatch(), "pdf"))
	assert.False(t, GlobalRegistry.Supports(&types.SkillRecommendationsOutput{}, "pdf"))
	assert.True(t, GlobalRegistry.Supports(&types.SkillRecommendationsOutput{}, "json"))
	assert.False(t, GlobalRegistry.Supports(sampleResume(), "html"))

	assert.Equal(t, []string{"json", "markdown", "pdf", "text"}, GlobalRegistry.GetSupportedFormats())
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/pdf", ContentType("pdf"))
	assert.Equal(t, "application/json", ContentType("json"))
	assert.Equal(t, "text/markdown; charset=utf-8", ContentType("markdown"))
	assert.Equal(t, "application/octet-stream", ContentType("docx"))
}

func TestVerdicts(t *testing.T) {
	assert.Contains(t, ResumeVerdict(80), "Excellent")
	assert.Contains(t, ResumeVerdict(79.9), "Good")
	assert.Contains(t, ResumeVerdict(10), "Needs Improvement")
	assert.Contains(t, MatchVerdict(60), "Good Match")
	assert.Contains(t, MatchVerdict(59), "Moderate Match")
}
