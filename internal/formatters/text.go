package formatters

import (
	"fmt"
	"strings"

	"resumescore/internal/jobmatch"
	"resumescore/internal/resume"
	"resumescore/internal/types"
)

func writeTextList(output *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	output.WriteString(fmt.Sprintf("%s (%d):\n", title, len(items)))
	for _, item := range items {
		output.WriteString(fmt.Sprintf("- %s\n", item))
	}
	output.WriteString("\n")
}

// ResumeTextFormatter handles text formatting for resume analysis results
type ResumeTextFormatter struct{}

func (rtf *ResumeTextFormatter) Format(data any) ([]byte, error) {
	result, ok := data.(*resume.Result)
	if !ok {
		return nil, fmt.Errorf("expected *resume.Result, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== RESUME ANALYSIS ===\n\n")
	output.WriteString(fmt.Sprintf("Overall Score: %.1f/100\n", result.FinalScore))
	output.WriteString(ResumeVerdict(result.FinalScore))
	output.WriteString("\n\n")

	output.WriteString("=== SCORE BREAKDOWN ===\n")
	for _, s := range result.Scores.Named() {
		output.WriteString(fmt.Sprintf("%-18s %5.1f\n", s.Name+":", s.Score))
	}
	output.WriteString(fmt.Sprintf("%-18s %5.1f\n\n", "Readability:", result.ReadabilityScore))

	writeTextList(&output, "Skills Found", result.FoundSkills)
	writeTextList(&output, "Recommended Skills", result.MissingSkills)
	writeTextList(&output, "Strong Action Verbs Used", result.StrongVerbs)
	writeTextList(&output, "Missing Sections", result.MissingSections)

	if result.JobMatchScore != nil {
		output.WriteString("=== JOB MATCH ===\n")
		output.WriteString(fmt.Sprintf("Job Match Score: %.1f%%\n", *result.JobMatchScore))
		if len(result.MissingKeywords) > 0 {
			output.WriteString("Missing Keywords for Better Match:\n")
			output.WriteString(strings.Join(result.MissingKeywords, ", "))
			output.WriteString("\n")
		}
		output.WriteString("\n")
	}

	output.WriteString("=== RECOMMENDATIONS ===\n")
	if len(result.Suggestions) == 0 {
		output.WriteString(noSuggestions + "\n")
	}
	for i, suggestion := range result.Suggestions {
		output.WriteString(fmt.Sprintf("%d. %s\n", i+1, suggestion))
	}

	return []byte(output.String()), nil
}

func (rtf *ResumeTextFormatter) SupportedType() string {
	return TypeResumeAnalysis
}

// MatchTextFormatter handles text formatting for job match results
type MatchTextFormatter struct{}

func (mtf *MatchTextFormatter) Format(data any) ([]byte, error) {
	result, ok := data.(*jobmatch.Result)
	if !ok {
		return nil, fmt.Errorf("expected *jobmatch.Result, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== JOB MATCH ANALYSIS ===\n\n")
	output.WriteString(fmt.Sprintf("Overall Match: %.1f/100\n", result.OverallScore))
	output.WriteString(MatchVerdict(result.OverallScore))
	output.WriteString("\n\n")

	output.WriteString("=== SCORE BREAKDOWN ===\n")
	for _, s := range matchBreakdown(result) {
		output.WriteString(fmt.Sprintf("%-18s %5.1f\n", s.Name+":", s.Score))
	}
	output.WriteString("\n")

	if result.JobRequirements != nil && result.ResumeProfile != nil {
		output.WriteString(fmt.Sprintf("Experience Level: resume %s, job %s\n\n",
			result.ResumeProfile.ExperienceLevel, result.JobRequirements.ExperienceLevel))
	}

	writeTextList(&output, "Matching Skills", result.MatchingSkills)
	writeTextList(&output, "Skills to Develop", result.MissingSkills)
	writeTextList(&output, "Important Keywords to Include", firstN(result.MissingKeywords, 10))

	output.WriteString("=== RECOMMENDATIONS ===\n")
	if len(result.Recommendations) == 0 {
		output.WriteString(noRecommendations + "\n")
	}
	for i, rec := range result.Recommendations {
		output.WriteString(fmt.Sprintf("%d. %s\n", i+1, rec))
	}

	return []byte(output.String()), nil
}

func (mtf *MatchTextFormatter) SupportedType() string {
	return TypeJobMatch
}

// SimilarJobsTextFormatter handles text formatting for ranked job listings
type SimilarJobsTextFormatter struct{}

func (stf *SimilarJobsTextFormatter) Format(data any) ([]byte, error) {
	result, ok := data.(*types.SimilarJobsOutput)
	if !ok {
		return nil, fmt.Errorf("expected *types.SimilarJobsOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== SIMILAR JOBS ===\n\n")
	output.WriteString(fmt.Sprintf("Showing %d of %d analyzed listings\n\n", result.ReturnedCount, result.TotalAnalyzed))

	for i, job := range result.SimilarJobs {
		output.WriteString(fmt.Sprintf("%d. %s", i+1, job.Title))
		if job.Company != "" {
			output.WriteString(" at " + job.Company)
		}
		output.WriteString("\n")
		output.WriteString(fmt.Sprintf("   Match: %.1f  Skills: %.1f\n", job.MatchScore, job.SkillsMatch))
		if job.Location != "" {
			output.WriteString("   Location: " + job.Location + "\n")
		}
		if job.Salary != "" {
			output.WriteString("   Salary: " + job.Salary + "\n")
		}
		if len(job.MissingSkills) > 0 {
			output.WriteString("   Missing Skills: " + strings.Join(job.MissingSkills, ", ") + "\n")
		}
		output.WriteString("\n")
	}

	return []byte(output.String()), nil
}

func (stf *SimilarJobsTextFormatter) SupportedType() string {
	return TypeSimilarJobs
}

// InsightsTextFormatter handles text formatting for market insights
type InsightsTextFormatter struct{}

func (itf *InsightsTextFormatter) Format(data any) ([]byte, error) {
	result, ok := data.(*types.JobInsightsOutput)
	if !ok || result.Insights == nil {
		return nil, fmt.Errorf("expected *types.JobInsightsOutput with insights, got %T", data)
	}
	in := result.Insights

	var output strings.Builder

	output.WriteString("=== JOB MARKET INSIGHTS ===\n\n")
	output.WriteString(fmt.Sprintf("Jobs Analyzed: %d\n", in.TotalJobs))
	if in.AverageSalaryRange != "" {
		output.WriteString(fmt.Sprintf("Average Salary Range: %s\n", in.AverageSalaryRange))
	}
	output.WriteString("\n")

	writeTextCounts(&output, "Top Skills in Demand", in.TopSkills)
	writeTextCounts(&output, "Top Locations", in.TopLocations)
	writeTextCounts(&output, "Top Hiring Companies", in.TopCompanies)

	output.WriteString(fmt.Sprintf("Skill Match Rate: %.1f%%\n", in.SkillMatchRate.MatchRate))
	writeTextList(&output, "Skills You Have", in.SkillMatchRate.MatchingSkills)
	writeTextList(&output, "Skills in Demand You Lack", in.SkillMatchRate.MissingSkills)

	return []byte(output.String()), nil
}

func (itf *InsightsTextFormatter) SupportedType() string {
	return TypeJobInsights
}

func writeTextCounts(output *strings.Builder, title string, counts []jobmatch.Count) {
	if len(counts) == 0 {
		return
	}
	output.WriteString(title + ":\n")
	for _, c := range counts {
		output.WriteString(fmt.Sprintf("- %s (%d)\n", c.Name, c.Count))
	}
	output.WriteString("\n")
}

// SkillsTextFormatter handles text formatting for skill recommendations
type SkillsTextFormatter struct{}

func (skf *SkillsTextFormatter) Format(data any) ([]byte, error) {
	result, ok := data.(*types.SkillRecommendationsOutput)
	if !ok {
		return nil, fmt.Errorf("expected *types.SkillRecommendationsOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== SKILL RECOMMENDATIONS ===\n\n")
	output.WriteString(fmt.Sprintf("Target Role: %s\n\n", result.TargetRole))
	writeTextList(&output, "Current Skills", result.CurrentSkills)
	if len(result.RecommendedSkills) == 0 {
		output.WriteString("You already cover the core skills for this role.\n")
	} else {
		writeTextList(&output, "Skills to Add", result.RecommendedSkills)
	}

	return []byte(output.String()), nil
}

func (skf *SkillsTextFormatter) SupportedType() string {
	return TypeSkillRecommendations
}

func firstN(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
