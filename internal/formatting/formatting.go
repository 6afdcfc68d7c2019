// Package formatting runs structural checks on the raw, un-normalized resume
// text: contact details, bullets, headers and dates.
package formatting

import (
	"math"
	"regexp"
	"strings"

	"resumescore/internal/scoring"
)

var (
	emailPattern  = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`)
	phonePattern  = regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`)
	yearPattern   = regexp.MustCompile(`\b\d{4}\b`)
	headerPattern = regexp.MustCompile(`\b[A-Z][A-Z\s]+\b`)
)

var bulletMarkers = []string{"•", "- ", "* "}

// Issue messages, reported in this order.
const (
	IssueMissingEmail = "Missing email address"
	IssueMissingPhone = "Missing phone number"
	IssueFewBullets   = "Insufficient use of bullet points"
	IssueFewHeaders   = "Unclear section headers"
)

const (
	minBullets = 5
	minHeaders = 3
)

// Analysis is the formatting breakdown.
type Analysis struct {
	Score            float64  `json:"score"`
	BulletPoints     int      `json:"bullet_points"`
	HasEmail         bool     `json:"has_email"`
	HasPhone         bool     `json:"has_phone"`
	HasDates         bool     `json:"has_dates"`
	SectionHeaders   int      `json:"section_headers"`
	FormattingIssues []string `json:"formatting_issues"`
}

// Analyze inspects text as extracted, before normalization.
func Analyze(text string) Analysis {
	a := Analysis{
		BulletPoints:   countBullets(text),
		HasEmail:       emailPattern.MatchString(text),
		HasPhone:       phonePattern.MatchString(text),
		HasDates:       yearPattern.MatchString(text),
		SectionHeaders: len(headerPattern.FindAllStringIndex(text, -1)),
	}

	bulletScore := math.Min(float64(10*a.BulletPoints), 100)
	contactScore := 0.0
	if a.HasEmail {
		contactScore += 50
	}
	if a.HasPhone {
		contactScore += 50
	}
	structureScore := math.Min(float64(10*a.SectionHeaders), 100)
	dateScore := 0.0
	if a.HasDates {
		dateScore = 100
	}

	a.Score = scoring.Composite(0, bulletScore, contactScore, structureScore, dateScore)
	a.FormattingIssues = a.issues()
	return a
}

func (a Analysis) issues() []string {
	issues := []string{}
	if !a.HasEmail {
		issues = append(issues, IssueMissingEmail)
	}
	if !a.HasPhone {
		issues = append(issues, IssueMissingPhone)
	}
	if a.BulletPoints < minBullets {
		issues = append(issues, IssueFewBullets)
	}
	if a.SectionHeaders < minHeaders {
		issues = append(issues, IssueFewHeaders)
	}
	return issues
}

func countBullets(text string) int {
	n := 0
	for _, m := range bulletMarkers {
		n += strings.Count(text, m)
	}
	return n
}
