package jobmatch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumescore/internal/errors"
	"resumescore/internal/lexicon"
)

func newTestMatcher(opts ...Option) *Matcher {
	return NewMatcher(lexicon.NewStore(lexicon.Default()), errors.NewNopLogger(), opts...)
}

func TestCompareExperience(t *testing.T) {
	tests := []struct {
		resume, job string
		want        float64
	}{
		{lexicon.LevelSenior, lexicon.LevelPrincipal, 75},
		{lexicon.LevelEntry, lexicon.LevelPrincipal, 25},
		{lexicon.LevelEntry, lexicon.LevelSenior, 50},
		{lexicon.LevelPrincipal, lexicon.LevelEntry, 100},
		{lexicon.LevelMid, lexicon.LevelMid, 100},
		{lexicon.LevelMid, lexicon.LevelUnknown, 50},
		{lexicon.LevelUnknown, lexicon.LevelEntry, 75},
		{lexicon.LevelUnknown, lexicon.LevelSenior, 25},
	}
	for _, tt := range tests {
		t.Run(tt.resume+"_vs_"+tt.job, func(t *testing.T) {
			got := CompareExperience(tt.resume, tt.job)
			assert.Equal(t, tt.want, got.Score)
			assert.Equal(t, tt.resume, got.ResumeLevel)
			assert.Equal(t, tt.job, got.JobLevel)
		})
	}
}

func TestCompareSkillsSetAlgebra(t *testing.T) {
	resume := &FeatureProfile{Skills: map[string][]string{
		"programming_languages": {"Python", "Go"},
		"cloud_devops":          {"Docker"},
	}}
	job := &FeatureProfile{Skills: map[string][]string{
		"programming_languages": {"Python", "Rust"},
		"cloud_devops":          {"Kubernetes", "Docker"},
	}}

	got := CompareSkills(resume, job)

	assert.Equal(t, []string{"docker", "python"}, got.Matching)
	assert.Equal(t, []string{"kubernetes", "rust"}, got.Missing)
	assert.InDelta(t, 50.0, got.Score, 1e-9)

	want := job.SkillSet()
	have := resume.SkillSet()
	for _, s := range got.Matching {
		assert.True(t, want[s] && have[s], s)
	}
	for _, s := range got.Missing {
		assert.True(t, want[s] && !have[s], s)
	}
	assert.Equal(t, len(want), len(got.Matching)+len(got.Missing))
}

func TestCompareSkillsEmptyJob(t *testing.T) {
	resume := &FeatureProfile{Skills: map[string][]string{"tools": {"Git"}}}
	got := CompareSkills(resume, &FeatureProfile{Skills: map[string][]string{}})
	assert.Equal(t, 0.0, got.Score)
	assert.Empty(t, got.Matching)
	assert.Empty(t, got.Missing)
}

func TestExtractProfile(t *testing.T) {
	text := "junior developer with a bachelor in computer science, aws certified, remote full-time"

	p := ExtractProfile(text, lexicon.Default())

	assert.Equal(t, lexicon.LevelEntry, p.ExperienceLevel)
	assert.Equal(t, []string{"bachelor", "computer science"}, p.Education)
	assert.Equal(t, []string{"aws certified"}, p.Certifications)
	assert.Equal(t, []string{"developer", "junior"}, p.JobTitles)
	assert.Equal(t, []string{"full-time", "remote"}, p.JobTypes)
	assert.Contains(t, p.Skills["cloud_devops"], "AWS")
	assert.Len(t, p.Skills, 6)
}

func TestExtractProfileWithMixedCaseOverride(t *testing.T) {
	lex, err := lexicon.Parse([]byte(`
education: [Bachelor, Computer Science]
certifications: [AWS Certified]
experience_levels: [{name: senior, keywords: [Senior]}]
`))
	require.NoError(t, err)

	p := ExtractProfile("senior engineer, bachelor of computer science, aws certified", lex)

	assert.Equal(t, lexicon.LevelSenior, p.ExperienceLevel)
	assert.Equal(t, []string{"bachelor", "computer science"}, p.Education)
	assert.Equal(t, []string{"aws certified"}, p.Certifications)
}

func TestExperienceLevelTableOrderBreaksTies(t *testing.T) {
	levels := lexicon.Default().ExperienceLevels
	assert.Equal(t, lexicon.LevelEntry, ExperienceLevel("junior or senior", levels))
	assert.Equal(t, lexicon.LevelSenior, ExperienceLevel("team lead, staff", levels))
	assert.Equal(t, lexicon.LevelUnknown, ExperienceLevel("baker", levels))
}

func TestAnalyzeDisjointVocabularies(t *testing.T) {
	m := newTestMatcher()

	got, err := m.Analyze(context.Background(), "baking cakes and muffins daily", "welding steel beams on site", nil)
	require.NoError(t, err)

	assert.Equal(t, 0.0, got.SkillsMatch)
	assert.Equal(t, 50.0, got.ExperienceMatch)
	assert.Equal(t, 0.0, got.SemanticMatch)
	assert.Equal(t, 0.0, got.KeywordMatch)
	assert.Equal(t, 50*ExperienceWeight, got.OverallScore)
	assert.NotEmpty(t, got.AnalysisID)
	assert.NotEmpty(t, got.Timestamp)
}

func TestAnalyzeIdenticalTexts(t *testing.T) {
	text := "Senior Python engineer with Docker, Kubernetes and PostgreSQL experience building distributed systems"

	got, err := newTestMatcher().Analyze(context.Background(), text, text, Preferences{"remote": true})
	require.NoError(t, err)

	assert.Equal(t, 100.0, got.SkillsMatch)
	assert.Equal(t, 100.0, got.KeywordMatch)
	assert.InDelta(t, 100.0, got.SemanticMatch, 0.1)
	assert.GreaterOrEqual(t, got.OverallScore, 95.0)
	assert.Empty(t, got.MissingSkills)
	assert.Empty(t, got.MissingKeywords)
	assert.IsIncreasing(t, got.MatchingSkills)
	assert.Equal(t, Preferences{"remote": true}, got.Preferences)
	require.NotNil(t, got.JobRequirements.SalaryRange)
	assert.Equal(t, 120000, got.JobRequirements.SalaryRange.Min)
	assert.Nil(t, got.ResumeProfile.SalaryRange)
}

func TestAnalyzeRequiresBothTexts(t *testing.T) {
	m := newTestMatcher()
	for _, tc := range []struct{ resume, job string }{
		{"", "python developer"},
		{"python developer", "   "},
		{" \n", "\t"},
	} {
		_, err := m.Analyze(context.Background(), tc.resume, tc.job, nil)
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeInvalidInput))
	}
}

func TestKeywordMatch(t *testing.T) {
	stop := lexicon.Default().KeywordStopwords
	got := KeywordMatch("kafka streaming pipelines", "kafka pipelines terraform with team", stop)
	assert.InDelta(t, 66.667, got, 1e-3)
	assert.Equal(t, 0.0, KeywordMatch("kafka", "with team a an", stop))
}

func TestMissingKeywords(t *testing.T) {
	stop := lexicon.Default().MissingKeywordStopwords
	job := "kafka kafka kafka rust rust with with experience experience golang"
	assert.Equal(t, []string{"kafka", "rust"}, MissingKeywords("python developer", job, stop))
}

func TestRecommendations(t *testing.T) {
	t.Run("rule order", func(t *testing.T) {
		got := recommend(recommendationInput{
			resume: &FeatureProfile{ExperienceLevel: lexicon.LevelEntry},
			job: &FeatureProfile{
				ExperienceLevel: lexicon.LevelSenior,
				Education:       []string{"degree"},
				Certifications:  []string{"pmp"},
			},
			skills: SkillsMatch{Score: 20, Missing: []string{"a", "b", "c", "d", "e", "f"}},
		})
		assert.Equal(t, []string{
			"Consider learning these in-demand skills: a, b, c, d, e",
			"Highlight any relevant projects, internships, or coursework to demonstrate practical experience",
			"Consider highlighting relevant educational background or certifications",
			"Industry certifications could strengthen your profile for this role",
		}, got)
	})

	t.Run("fallback", func(t *testing.T) {
		got := recommend(recommendationInput{
			resume: &FeatureProfile{ExperienceLevel: lexicon.LevelSenior},
			job:    &FeatureProfile{ExperienceLevel: lexicon.LevelSenior},
			skills: SkillsMatch{Score: 100},
		})
		assert.Equal(t, []string{fallbackRecommendation}, got)
	})

	t.Run("principal job does not trigger experience rule", func(t *testing.T) {
		got := recommend(recommendationInput{
			resume: &FeatureProfile{ExperienceLevel: lexicon.LevelEntry},
			job:    &FeatureProfile{ExperienceLevel: lexicon.LevelPrincipal},
			skills: SkillsMatch{Score: 100},
		})
		assert.Equal(t, []string{fallbackRecommendation}, got)
	})
}

func TestFindSimilarJobs(t *testing.T) {
	profile := UserProfile{Title: "Senior Python Engineer", Skills: []string{"Python", "Docker", "Kubernetes"}}
	listings := []Listing{
		{ID: "a", Title: "Pastry chef", Description: "bake cakes daily"},
		{ID: "b", Title: "Senior Python Engineer", Description: "Python Docker Kubernetes backend services"},
		{ID: "c", Title: "Pastry chef", Description: "bake cakes daily"},
	}

	for _, workers := range []int{1, 4} {
		m := newTestMatcher(WithWorkers(workers))

		got, err := m.FindSimilarJobs(context.Background(), profile, listings, 0)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, []string{"b", "a", "c"}, []string{got[0].ID, got[1].ID, got[2].ID})
		assert.Equal(t, got[1].MatchScore, got[2].MatchScore)
		assert.Greater(t, got[0].MatchScore, got[1].MatchScore)

		top, err := m.FindSimilarJobs(context.Background(), profile, listings, 1)
		require.NoError(t, err)
		require.Len(t, top, 1)
		assert.Equal(t, "b", top[0].ID)
	}
}

func TestFindSimilarJobsScoresBlankListingsZero(t *testing.T) {
	profile := UserProfile{Title: "Go Engineer", Skills: []string{"Go", "Kubernetes"}}
	listings := []Listing{
		{ID: "blank", Title: "  ", Description: ""},
		{ID: "go", Title: "Go Engineer", Description: "Go and Kubernetes services", Skills: []string{"Go"}},
	}

	got, err := newTestMatcher().FindSimilarJobs(context.Background(), profile, listings, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "go", got[0].ID)
	assert.Equal(t, "blank", got[1].ID)
	assert.Zero(t, got[1].MatchScore)
	assert.Equal(t, []string{}, got[1].MissingSkills)
}

func TestFindSimilarJobsEmptyProfile(t *testing.T) {
	_, err := newTestMatcher().FindSimilarJobs(context.Background(), UserProfile{}, []Listing{{Title: "x"}}, 5)
	assert.True(t, errors.IsType(err, errors.ErrorTypeInvalidInput))
}

func TestUserProfileText(t *testing.T) {
	p := UserProfile{Title: "Engineer", Skills: []string{"Go", "SQL"}, Education: "BSc"}
	assert.Equal(t, "Engineer Go SQL BSc", p.Text())
	assert.Equal(t, "Dev desc Go", Listing{Title: "Dev", Description: "desc", Skills: []string{"Go"}}.Text())
}

func TestMarketInsights(t *testing.T) {
	listings := []Listing{
		{Skills: []string{"Go", "SQL"}, Location: "Berlin", Company: "Acme", Salary: "100k"},
		{Skills: []string{"Python", "SQL"}, Location: "Remote", Company: "Acme"},
		{Skills: []string{"Go", "Kafka"}, Location: "Berlin", Company: "Initech", Salary: "120k"},
	}

	got := MarketInsights(listings, []string{"GO", "Rust"})

	assert.Equal(t, []Count{{"Go", 2}, {"SQL", 2}, {"Python", 1}, {"Kafka", 1}}, got.TopSkills)
	assert.Equal(t, []Count{{"Berlin", 2}, {"Remote", 1}}, got.TopLocations)
	assert.Equal(t, []Count{{"Acme", 2}, {"Initech", 1}}, got.TopCompanies)
	assert.Equal(t, "$150,000 - $190,000", got.AverageSalaryRange)
	assert.Equal(t, 3, got.TotalJobs)
	assert.Equal(t, SkillMatchRate{
		MatchRate:      50,
		MatchingSkills: []string{"go"},
		MissingSkills:  []string{"rust"},
	}, got.SkillMatchRate)
}

func TestMarketInsightsEmpty(t *testing.T) {
	got := MarketInsights(nil, nil)
	assert.Equal(t, SalaryUnavailable, got.AverageSalaryRange)
	assert.Empty(t, got.TopSkills)
	assert.Equal(t, 0.0, got.SkillMatchRate.MatchRate)
	assert.NotNil(t, got.SkillMatchRate.MatchingSkills)
}

func TestSkillRecommendationsAndSalary(t *testing.T) {
	m := newTestMatcher()

	assert.Equal(t,
		[]string{"Node.js", "Java", "MongoDB", "REST API"},
		m.SkillRecommendations([]string{"python", "SQL"}, "Backend Developer"))
	assert.Empty(t, m.SkillRecommendations(nil, "astronaut"))

	band, ok := m.SalaryRange(lexicon.LevelSenior)
	require.True(t, ok)
	assert.Equal(t, "$120,000 - $180,000", FormatSalary(band))

	_, ok = m.SalaryRange(lexicon.LevelUnknown)
	assert.False(t, ok)
}
