package jobmatch

import (
	"slices"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"resumescore/internal/lexicon"
	"resumescore/internal/scoring"
)

const (
	topSkills    = 10
	topLocations = 5
	topCompanies = 5

	salaryLowPerListing  = 75000
	salaryHighPerListing = 95000
)

// SalaryUnavailable is reported when no listing carries a salary.
const SalaryUnavailable = "Data not available"

// Count is a value and how often it occurred.
type Count struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// SkillMatchRate compares target skills with the skills listings ask for.
type SkillMatchRate struct {
	MatchRate      float64  `json:"match_rate"`
	MatchingSkills []string `json:"matching_skills"`
	MissingSkills  []string `json:"missing_skills"`
}

// Insights summarizes a set of listings.
type Insights struct {
	TopSkills          []Count        `json:"top_skills_in_demand"`
	TopLocations       []Count        `json:"top_locations"`
	TopCompanies       []Count        `json:"top_hiring_companies"`
	AverageSalaryRange string         `json:"average_salary_range"`
	TotalJobs          int            `json:"total_jobs_analyzed"`
	SkillMatchRate     SkillMatchRate `json:"skill_match_rate"`
}

var printer = message.NewPrinter(language.English)

// MarketInsights tallies skills, locations and companies across listings and
// measures how many targetSkills the market asks for.
func MarketInsights(listings []Listing, targetSkills []string) *Insights {
	var skillsSeen, locations, companies []string
	salaries := 0
	for _, l := range listings {
		skillsSeen = append(skillsSeen, l.Skills...)
		if l.Location != "" {
			locations = append(locations, l.Location)
		}
		if l.Company != "" {
			companies = append(companies, l.Company)
		}
		if l.Salary != "" {
			salaries++
		}
	}

	avg := SalaryUnavailable
	if salaries > 0 {
		avg = printer.Sprintf("$%d - $%d", salaries*salaryLowPerListing, salaries*salaryHighPerListing)
	}

	return &Insights{
		TopSkills:          mostCommon(skillsSeen, topSkills),
		TopLocations:       mostCommon(locations, topLocations),
		TopCompanies:       mostCommon(companies, topCompanies),
		AverageSalaryRange: avg,
		TotalJobs:          len(listings),
		SkillMatchRate:     matchRate(targetSkills, skillsSeen),
	}
}

// mostCommon counts values and returns the n most frequent; ties keep
// first-seen order.
func mostCommon(values []string, n int) []Count {
	index := make(map[string]int)
	counts := []Count{}
	for _, v := range values {
		if i, ok := index[v]; ok {
			counts[i].Count++
			continue
		}
		index[v] = len(counts)
		counts = append(counts, Count{Name: v, Count: 1})
	}
	slices.SortStableFunc(counts, func(a, b Count) int { return b.Count - a.Count })
	return scoring.First(counts, n)
}

func matchRate(targets, market []string) SkillMatchRate {
	rate := SkillMatchRate{MatchingSkills: []string{}, MissingSkills: []string{}}
	if len(targets) == 0 {
		return rate
	}
	have := make(map[string]bool, len(market))
	for _, s := range market {
		have[strings.ToLower(s)] = true
	}
	for _, s := range targets {
		s = strings.ToLower(s)
		if have[s] {
			rate.MatchingSkills = append(rate.MatchingSkills, s)
		} else {
			rate.MissingSkills = append(rate.MissingSkills, s)
		}
	}
	rate.MatchRate = scoring.Round(scoring.Percent(len(rate.MatchingSkills), len(targets)), 1)
	return rate
}

// SalaryRange returns the typical salary band for an experience level.
func (m *Matcher) SalaryRange(level string) (lexicon.SalaryRange, bool) {
	return m.lexicon.Current().Salary(level)
}

// FormatSalary renders a band as "$120,000 - $180,000".
func FormatSalary(r lexicon.SalaryRange) string {
	return printer.Sprintf("$%d - $%d", r.Min, r.Max)
}
