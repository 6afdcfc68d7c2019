package jobmatch

import (
	"context"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"resumescore/internal/errors"
	"resumescore/internal/skills"
)

// DefaultSimilarLimit is used when FindSimilarJobs gets a non-positive limit.
const DefaultSimilarLimit = 10

// UserProfile is the candidate side of a similar-jobs search.
type UserProfile struct {
	Title      string   `json:"title,omitempty"`
	Skills     []string `json:"skills,omitempty"`
	Experience string   `json:"experience,omitempty"`
	Education  string   `json:"education,omitempty"`
}

// Text joins the present fields with spaces.
func (p UserProfile) Text() string {
	var parts []string
	if p.Title != "" {
		parts = append(parts, p.Title)
	}
	parts = append(parts, p.Skills...)
	if p.Experience != "" {
		parts = append(parts, p.Experience)
	}
	if p.Education != "" {
		parts = append(parts, p.Education)
	}
	return strings.Join(parts, " ")
}

// Listing is one job posting.
type Listing struct {
	ID          string   `json:"id,omitempty"`
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	Skills      []string `json:"skills,omitempty"`
	Company     string   `json:"company,omitempty"`
	Location    string   `json:"location,omitempty"`
	Salary      string   `json:"salary,omitempty"`
}

// Text is the listing as one document: title, description, then skills.
func (l Listing) Text() string {
	return strings.Join(append([]string{l.Title, l.Description}, l.Skills...), " ")
}

// SimilarJob is a listing with its match against the user profile.
type SimilarJob struct {
	Listing
	MatchScore    float64  `json:"match_score"`
	SkillsMatch   float64  `json:"skills_match"`
	MissingSkills []string `json:"missing_skills"`
}

// FindSimilarJobs scores every listing against profile and returns the best
// limit of them, highest score first. Equal scores keep input order. Blank
// listings score zero instead of failing the batch.
func (m *Matcher) FindSimilarJobs(ctx context.Context, profile UserProfile, listings []Listing, limit int) ([]SimilarJob, error) {
	if limit <= 0 {
		limit = DefaultSimilarLimit
	}
	userText := profile.Text()
	if strings.TrimSpace(userText) == "" {
		return nil, errors.NewInvalidInputError(errors.ErrCodeMissingField, "user profile is empty", nil).
			WithContext("field", "user_profile")
	}

	scored := make([]SimilarJob, len(listings))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.workers)
	for i, l := range listings {
		g.Go(func() error {
			// a listing with no text has nothing to match and ranks last
			if strings.TrimSpace(l.Text()) == "" {
				scored[i] = SimilarJob{Listing: l, MissingSkills: []string{}}
				return nil
			}
			res, err := m.Analyze(gctx, userText, l.Text(), nil)
			if err != nil {
				return err
			}
			scored[i] = SimilarJob{
				Listing:       l,
				MatchScore:    res.OverallScore,
				SkillsMatch:   res.SkillsMatch,
				MissingSkills: res.MissingSkills,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slices.SortStableFunc(scored, func(a, b SimilarJob) int {
		switch {
		case a.MatchScore > b.MatchScore:
			return -1
		case a.MatchScore < b.MatchScore:
			return 1
		}
		return 0
	})

	m.logger.Info("Scored job listings", "listings", len(listings), "returned", min(limit, len(scored)))
	return scored[:min(limit, len(scored))], nil
}

// SkillRecommendations lists the skills targetRole calls for that the user
// does not have.
func (m *Matcher) SkillRecommendations(userSkills []string, targetRole string) []string {
	return skills.RecommendForRole(userSkills, targetRole, m.lexicon.Current())
}
