package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumescore/internal/common"
	"resumescore/internal/config"
	"resumescore/internal/errors"
	"resumescore/internal/jobmatch"
	"resumescore/internal/types"
)

const (
	testResume = `John Smith
Senior Backend Engineer

Experience
Led the migration of billing services to Go and Kubernetes.
Built PostgreSQL reporting pipelines used by the finance team.

Skills
Go, Python, Docker, Kubernetes, PostgreSQL`

	testJob = `Senior Go Engineer
We are looking for a senior engineer with Go, Kubernetes and AWS experience
to build and operate our payment APIs.`
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		App: config.AppConfig{
			DefaultFormat:    "json",
			SupportedFormats: []string{"json", "text", "markdown", "pdf"},
			MaxFileSize:      1 << 20,
		},
		Server:  config.ServerConfig{MaxSimilarWorkers: 2},
		Storage: config.StorageConfig{Backend: "file", Dir: t.TempDir()},
	}
}

// run executes the root command with args and returns what it printed
func run(t *testing.T, cfg *config.Config, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	analyzeConfig, matchConfig, similarConfig = common.CommandConfig{}, common.CommandConfig{}, common.CommandConfig{}
	skillsConfig, insightsConfig, reportConfig = common.CommandConfig{}, common.CommandConfig{}, common.CommandConfig{}
	analyzeJobFile, analyzeSession, matchSession = "", false, false
	skillsRole, skillsHave, insightsTarget = "", nil, nil
	similarLimit, reportKind = jobmatch.DefaultSimilarLimit, "analysis"
	for _, c := range rootCmd.Commands() {
		c.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
	}

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err = Execute(context.Background(), cfg, errors.NewNopLogger())
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := run(t, testConfig(t), "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "resumescore version "+Version)
}

func TestSkillsCommand(t *testing.T) {
	stdout, _, err := run(t, testConfig(t), "skills", "--role", "devops engineer", "--have", "docker,linux")
	require.NoError(t, err)

	var out types.SkillRecommendationsOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, "devops engineer", out.TargetRole)
	assert.Equal(t, []string{"docker", "linux"}, out.CurrentSkills)
	assert.NotContains(t, out.RecommendedSkills, "Docker")
	assert.Contains(t, out.RecommendedSkills, "Kubernetes")
	assert.Equal(t, len(out.RecommendedSkills), out.SkillsToAdd)
}

func TestSkillsCommandRequiresRole(t *testing.T) {
	_, _, err := run(t, testConfig(t), "skills")
	assert.Error(t, err)
}

func TestInsightsCommand(t *testing.T) {
	dir := t.TempDir()
	listings := writeFile(t, dir, "listings.json", `[
		{"title": "Go Developer", "skills": ["go", "docker"], "location": "Remote", "company": "Acme", "salary": "100k"},
		{"title": "SRE", "skills": ["go", "kubernetes"], "location": "Remote", "company": "Initech"}
	]`)
	outFile := filepath.Join(dir, "insights.json")

	_, _, err := run(t, testConfig(t), "insights", listings, "--target", "go,rust", "-o", outFile)
	require.NoError(t, err)

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	var out types.JobInsightsOutput
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, 2, out.AnalyzedJobs)
	require.NotNil(t, out.Insights)
	assert.Equal(t, jobmatch.Count{Name: "go", Count: 2}, out.Insights.TopSkills[0])
	assert.Equal(t, []string{"go"}, out.Insights.SkillMatchRate.MatchingSkills)
}

func TestSimilarCommand(t *testing.T) {
	dir := t.TempDir()
	profile := writeFile(t, dir, "profile.json", `{"title": "Backend Engineer", "skills": ["go", "kubernetes"]}`)
	listings := writeFile(t, dir, "listings.json", `[
		{"id": "a", "title": "Go Backend Engineer", "description": "Go and Kubernetes services", "skills": ["go", "kubernetes"]},
		{"id": "b", "title": "Graphic Designer", "description": "Print layouts", "skills": ["photoshop"]},
		{"id": "c", "title": "Platform Engineer", "description": "Kubernetes clusters", "skills": ["kubernetes"]}
	]`)

	stdout, _, err := run(t, testConfig(t), "similar", profile, listings, "--limit", "2")
	require.NoError(t, err)

	var out types.SimilarJobsOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, 3, out.TotalAnalyzed)
	require.Len(t, out.SimilarJobs, 2)
	assert.Equal(t, "a", out.SimilarJobs[0].ID)
}

func TestSimilarCommandToleratesBlankListing(t *testing.T) {
	dir := t.TempDir()
	profile := writeFile(t, dir, "profile.json", `{"title": "Backend Engineer", "skills": ["go"]}`)
	listings := writeFile(t, dir, "listings.json", `[{"id": "empty"}, {"id": "a", "title": "Go Backend Engineer", "skills": ["go"]}]`)

	stdout, _, err := run(t, testConfig(t), "similar", profile, listings)
	require.NoError(t, err)

	var out types.SimilarJobsOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	require.Len(t, out.SimilarJobs, 2)
	assert.Equal(t, "a", out.SimilarJobs[0].ID)
	assert.Equal(t, "empty", out.SimilarJobs[1].ID)
}

func TestMatchSessionThenReport(t *testing.T) {
	cfg := testConfig(t)
	dir := t.TempDir()
	resumeFile := writeFile(t, dir, "resume.txt", testResume)
	jobFile := writeFile(t, dir, "job.txt", testJob)

	matchFile := filepath.Join(dir, "match.json")
	_, stderr, err := run(t, cfg, "match", resumeFile, jobFile, "--session", "-o", matchFile)
	require.NoError(t, err)

	var match jobmatch.Result
	data, err := os.ReadFile(matchFile)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &match))

	id := regexp.MustCompile(`Session: ([0-9a-f-]{36})`).FindStringSubmatch(stderr)
	require.Len(t, id, 2, stderr)
	assert.Equal(t, match.SessionID, id[1])

	reportFile := filepath.Join(dir, "report.md")
	_, _, err = run(t, cfg, "report", id[1], "--kind", "match", "-o", reportFile)
	require.NoError(t, err)

	report, err := os.ReadFile(reportFile)
	require.NoError(t, err)
	assert.Contains(t, string(report), "# Job Match Analysis Report")

	_, _, err = run(t, cfg, "report", id[1], "--kind", "analysis")
	assert.Error(t, err, "a match session has no analysis result")
}

func TestReportCommandRejectsUnknownKind(t *testing.T) {
	_, _, err := run(t, testConfig(t), "report", "00000000-0000-4000-8000-000000000000", "--kind", "tailor")
	assert.Error(t, err)
}

func TestAnalyzeRejectsUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	resumeFile := writeFile(t, dir, "resume.txt", testResume)

	_, _, err := run(t, testConfig(t), "analyze", resumeFile, "--format", "docx")
	assert.ErrorContains(t, err, "unsupported output format")
}
