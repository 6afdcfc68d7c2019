package formatters

import (
	"fmt"
	"strings"

	"resumescore/internal/jobmatch"
	"resumescore/internal/resume"
	"resumescore/internal/scoring"
	"resumescore/internal/types"
)

func writeMarkdownList(output *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	output.WriteString(fmt.Sprintf("### %s (%d)\n\n", title, len(items)))
	for _, item := range items {
		output.WriteString(fmt.Sprintf("- %s\n", item))
	}
	output.WriteString("\n")
}

func writeMarkdownTable(output *strings.Builder, scores []scoring.Named) {
	output.WriteString("| Category | Score |\n")
	output.WriteString("|----------|------:|\n")
	for _, s := range scores {
		output.WriteString(fmt.Sprintf("| %s | %.1f |\n", s.Name, s.Score))
	}
	output.WriteString("\n")
}

func writeMarkdownNumbered(output *strings.Builder, items []string, empty string) {
	if len(items) == 0 {
		output.WriteString(empty + "\n\n")
		return
	}
	for i, item := range items {
		output.WriteString(fmt.Sprintf("%d. %s\n", i+1, item))
	}
	output.WriteString("\n")
}

// ResumeMarkdownFormatter handles markdown formatting for resume analysis results
type ResumeMarkdownFormatter struct{}

func (rmf *ResumeMarkdownFormatter) Format(data any) ([]byte, error) {
	result, ok := data.(*resume.Result)
	if !ok {
		return nil, fmt.Errorf("expected *resume.Result, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Resume Analysis Report\n\n")
	output.WriteString(fmt.Sprintf("**Overall Score:** %.1f/100\n\n", result.FinalScore))
	output.WriteString(fmt.Sprintf("> %s\n\n", ResumeVerdict(result.FinalScore)))

	output.WriteString("## Score Breakdown\n\n")
	writeMarkdownTable(&output, append(result.Scores.Named(),
		scoring.Named{Name: "Readability", Score: result.ReadabilityScore}))

	output.WriteString("## Skills Analysis\n\n")
	writeMarkdownList(&output, "Skills Found", result.FoundSkills)
	writeMarkdownList(&output, "Recommended Skills", result.MissingSkills)
	writeMarkdownList(&output, "Strong Action Verbs Used", result.StrongVerbs)
	writeMarkdownList(&output, "Missing Sections", result.MissingSections)

	if result.JobMatchScore != nil {
		output.WriteString("## Job Match\n\n")
		output.WriteString(fmt.Sprintf("**Job Match Score:** %.1f%%\n\n", *result.JobMatchScore))
		if len(result.MissingKeywords) > 0 {
			output.WriteString("**Missing Keywords for Better Match:** ")
			output.WriteString(strings.Join(result.MissingKeywords, ", "))
			output.WriteString("\n\n")
		}
	}

	output.WriteString("## Recommendations\n\n")
	writeMarkdownNumbered(&output, result.Suggestions, noSuggestions)

	return []byte(output.String()), nil
}

func (rmf *ResumeMarkdownFormatter) SupportedType() string {
	return TypeResumeAnalysis
}

// MatchMarkdownFormatter handles markdown formatting for job match results
type MatchMarkdownFormatter struct{}

func (mmf *MatchMarkdownFormatter) Format(data any) ([]byte, error) {
	result, ok := data.(*jobmatch.Result)
	if !ok {
		return nil, fmt.Errorf("expected *jobmatch.Result, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Job Match Analysis Report\n\n")
	output.WriteString(fmt.Sprintf("**Overall Match:** %.1f/100\n\n", result.OverallScore))
	output.WriteString(fmt.Sprintf("> %s\n\n", MatchVerdict(result.OverallScore)))

	output.WriteString("## Score Breakdown\n\n")
	writeMarkdownTable(&output, matchBreakdown(result))

	output.WriteString("## Skills Analysis\n\n")
	writeMarkdownList(&output, "Matching Skills", result.MatchingSkills)
	writeMarkdownList(&output, "Skills to Develop", result.MissingSkills)
	writeMarkdownList(&output, "Important Keywords to Include", firstN(result.MissingKeywords, 10))

	output.WriteString("## Recommendations\n\n")
	writeMarkdownNumbered(&output, result.Recommendations, noRecommendations)

	return []byte(output.String()), nil
}

func (mmf *MatchMarkdownFormatter) SupportedType() string {
	return TypeJobMatch
}

// SimilarJobsMarkdownFormatter handles markdown formatting for ranked job listings
type SimilarJobsMarkdownFormatter struct{}

func (smf *SimilarJobsMarkdownFormatter) Format(data any) ([]byte, error) {
	result, ok := data.(*types.SimilarJobsOutput)
	if !ok {
		return nil, fmt.Errorf("expected *types.SimilarJobsOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Similar Jobs\n\n")
	output.WriteString(fmt.Sprintf("Showing **%d** of **%d** analyzed listings.\n\n", result.ReturnedCount, result.TotalAnalyzed))

	if len(result.SimilarJobs) > 0 {
		output.WriteString("| # | Title | Company | Location | Match | Skills |\n")
		output.WriteString("|--:|-------|---------|----------|------:|-------:|\n")
		for i, job := range result.SimilarJobs {
			output.WriteString(fmt.Sprintf("| %d | %s | %s | %s | %.1f | %.1f |\n",
				i+1, escapeCell(job.Title), escapeCell(job.Company), escapeCell(job.Location), job.MatchScore, job.SkillsMatch))
		}
		output.WriteString("\n")
	}

	for _, job := range result.SimilarJobs {
		if len(job.MissingSkills) == 0 {
			continue
		}
		output.WriteString(fmt.Sprintf("**%s** is missing: %s\n\n", job.Title, strings.Join(job.MissingSkills, ", ")))
	}

	return []byte(output.String()), nil
}

func (smf *SimilarJobsMarkdownFormatter) SupportedType() string {
	return TypeSimilarJobs
}

// InsightsMarkdownFormatter handles markdown formatting for market insights
type InsightsMarkdownFormatter struct{}

func (imf *InsightsMarkdownFormatter) Format(data any) ([]byte, error) {
	result, ok := data.(*types.JobInsightsOutput)
	if !ok || result.Insights == nil {
		return nil, fmt.Errorf("expected *types.JobInsightsOutput with insights, got %T", data)
	}
	in := result.Insights

	var output strings.Builder

	output.WriteString("# Job Market Insights\n\n")
	output.WriteString(fmt.Sprintf("**Jobs Analyzed:** %d\n\n", in.TotalJobs))
	if in.AverageSalaryRange != "" {
		output.WriteString(fmt.Sprintf("**Average Salary Range:** %s\n\n", in.AverageSalaryRange))
	}

	writeMarkdownCounts(&output, "Top Skills in Demand", in.TopSkills)
	writeMarkdownCounts(&output, "Top Locations", in.TopLocations)
	writeMarkdownCounts(&output, "Top Hiring Companies", in.TopCompanies)

	output.WriteString("## Your Skill Coverage\n\n")
	output.WriteString(fmt.Sprintf("**Match Rate:** %.1f%%\n\n", in.SkillMatchRate.MatchRate))
	writeMarkdownList(&output, "Skills You Have", in.SkillMatchRate.MatchingSkills)
	writeMarkdownList(&output, "Skills in Demand You Lack", in.SkillMatchRate.MissingSkills)

	return []byte(output.String()), nil
}

func (imf *InsightsMarkdownFormatter) SupportedType() string {
	return TypeJobInsights
}

func writeMarkdownCounts(output *strings.Builder, title string, counts []jobmatch.Count) {
	if len(counts) == 0 {
		return
	}
	output.WriteString("## " + title + "\n\n")
	for _, c := range counts {
		output.WriteString(fmt.Sprintf("- %s: %d\n", c.Name, c.Count))
	}
	output.WriteString("\n")
}

// SkillsMarkdownFormatter handles markdown formatting for skill recommendations
type SkillsMarkdownFormatter struct{}

func (skm *SkillsMarkdownFormatter) Format(data any) ([]byte, error) {
	result, ok := data.(*types.SkillRecommendationsOutput)
	if !ok {
		return nil, fmt.Errorf("expected *types.SkillRecommendationsOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString(fmt.Sprintf("# Skill Recommendations: %s\n\n", result.TargetRole))
	writeMarkdownList(&output, "Current Skills", result.CurrentSkills)
	if len(result.RecommendedSkills) == 0 {
		output.WriteString("You already cover the core skills for this role.\n")
	} else {
		writeMarkdownList(&output, "Skills to Add", result.RecommendedSkills)
	}

	return []byte(output.String()), nil
}

func (skm *SkillsMarkdownFormatter) SupportedType() string {
	return TypeSkillRecommendations
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
