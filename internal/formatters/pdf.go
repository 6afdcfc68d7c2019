package formatters

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"resumescore/internal/jobmatch"
	"resumescore/internal/resume"
	"resumescore/internal/scoring"
)

const (
	pdfMargin    = 18.0
	pdfBarWidth  = 90.0
	pdfBarHeight = 4.0
	pdfKeywords  = 10
)

type rgb struct{ r, g, b int }

var (
	colorTitle   = rgb{33, 37, 41}
	colorMuted   = rgb{108, 117, 125}
	colorGood    = rgb{40, 167, 69}
	colorFair    = rgb{253, 126, 20}
	colorPoor    = rgb{220, 53, 69}
	colorBarBase = rgb{222, 226, 230}
)

func scoreColor(score float64) rgb {
	switch {
	case score >= 80:
		return colorGood
	case score >= 60:
		return colorFair
	default:
		return colorPoor
	}
}

// report wraps an fpdf document with the layout shared by both reports.
// Text goes through a cp1252 translator because only core fonts are used.
type report struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func newReport(title string, now time.Time) *report {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.SetTitle(title, true)
	pdf.SetCreator("resumescore", true)
	pdf.SetCreationDate(now)
	pdf.AliasNbPages("")

	r := &report{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 8)
		r.color(colorMuted)
		pdf.CellFormat(0, 6, fmt.Sprintf("Generated by resumescore - Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 20)
	r.color(colorTitle)
	pdf.CellFormat(0, 12, r.tr(title), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	r.color(colorMuted)
	pdf.CellFormat(0, 6, "Generated on "+now.Format("January 2, 2006"), "", 1, "C", false, 0, "")
	pdf.Ln(6)
	return r
}

func (r *report) color(c rgb) {
	r.pdf.SetTextColor(c.r, c.g, c.b)
}

func (r *report) heading(text string) {
	r.pdf.Ln(3)
	r.pdf.SetFont("Helvetica", "B", 14)
	r.color(colorTitle)
	r.pdf.CellFormat(0, 8, r.tr(text), "B", 1, "L", false, 0, "")
	r.pdf.Ln(2)
}

func (r *report) subheading(text string) {
	r.pdf.SetFont("Helvetica", "B", 11)
	r.color(colorTitle)
	r.pdf.CellFormat(0, 7, r.tr(text), "", 1, "L", false, 0, "")
}

func (r *report) paragraph(text string) {
	r.pdf.SetFont("Helvetica", "", 10)
	r.color(colorTitle)
	r.pdf.MultiCell(0, 5, r.tr(text), "", "L", false)
}

func (r *report) summary(label string, score float64, verdict string) {
	r.heading("Summary")
	r.pdf.SetFont("Helvetica", "B", 16)
	r.color(scoreColor(score))
	r.pdf.CellFormat(0, 10, fmt.Sprintf("%s: %.1f/100", label, score), "", 1, "L", false, 0, "")
	r.paragraph(verdict)
}

func (r *report) breakdown(scores []scoring.Named) {
	r.heading("Score Breakdown")
	for _, s := range scores {
		r.pdf.SetFont("Helvetica", "", 10)
		r.color(colorTitle)
		r.pdf.CellFormat(50, pdfBarHeight+2, r.tr(s.Name), "", 0, "L", false, 0, "")

		x, y := r.pdf.GetX(), r.pdf.GetY()+1
		r.pdf.SetFillColor(colorBarBase.r, colorBarBase.g, colorBarBase.b)
		r.pdf.Rect(x, y, pdfBarWidth, pdfBarHeight, "F")
		fill := scoreColor(s.Score)
		r.pdf.SetFillColor(fill.r, fill.g, fill.b)
		if w := pdfBarWidth * scoring.Clamp(s.Score, 0, 100) / 100; w > 0 {
			r.pdf.Rect(x, y, w, pdfBarHeight, "F")
		}
		r.pdf.SetX(x + pdfBarWidth + 4)
		r.pdf.CellFormat(0, pdfBarHeight+2, fmt.Sprintf("%.1f", s.Score), "", 1, "L", false, 0, "")
		r.pdf.Ln(1)
	}
}

func (r *report) list(title string, items []string) {
	if len(items) == 0 {
		return
	}
	r.subheading(fmt.Sprintf("%s (%d)", title, len(items)))
	r.paragraph(strings.Join(items, ", "))
	r.pdf.Ln(2)
}

func (r *report) numbered(items []string, empty string) {
	r.heading("Recommendations")
	if len(items) == 0 {
		r.paragraph(empty)
		return
	}
	for i, item := range items {
		r.paragraph(fmt.Sprintf("%d. %s", i+1, item))
		r.pdf.Ln(1)
	}
}

func (r *report) bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := r.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// ResumePDFFormatter renders a resume analysis as a PDF report
type ResumePDFFormatter struct {
	// Now is used for the generation date; zero means time.Now.
	Now func() time.Time
}

func (rpf *ResumePDFFormatter) Format(data any) ([]byte, error) {
	result, ok := data.(*resume.Result)
	if !ok {
		return nil, fmt.Errorf("expected *resume.Result, got %T", data)
	}

	r := newReport("Resume Analysis Report", now(rpf.Now))
	r.summary("Overall Score", result.FinalScore, ResumeVerdict(result.FinalScore))
	r.breakdown(append(result.Scores.Named(), scoring.Named{Name: "Readability", Score: result.ReadabilityScore}))

	r.heading("Skills Analysis")
	r.list("Skills Found", result.FoundSkills)
	r.list("Recommended Skills", result.MissingSkills)
	r.list("Strong Action Verbs Used", result.StrongVerbs)
	r.list("Missing Sections", result.MissingSections)

	if result.JobMatchScore != nil {
		r.heading("Job Match")
		r.subheading(fmt.Sprintf("Job Match Score: %.1f%%", *result.JobMatchScore))
		if len(result.MissingKeywords) > 0 {
			r.subheading("Missing Keywords for Better Match:")
			r.paragraph(strings.Join(result.MissingKeywords, ", "))
		}
	}

	r.numbered(result.Suggestions, noSuggestions)
	return r.bytes()
}

func (rpf *ResumePDFFormatter) SupportedType() string {
	return TypeResumeAnalysis
}

// MatchPDFFormatter renders a job match analysis as a PDF report
type MatchPDFFormatter struct {
	Now func() time.Time
}

func (mpf *MatchPDFFormatter) Format(data any) ([]byte, error) {
	result, ok := data.(*jobmatch.Result)
	if !ok {
		return nil, fmt.Errorf("expected *jobmatch.Result, got %T", data)
	}

	r := newReport("Job Match Analysis Report", now(mpf.Now))
	r.summary("Overall Match", result.OverallScore, MatchVerdict(result.OverallScore))
	r.breakdown(matchBreakdown(result))

	r.heading("Skills Analysis")
	r.list("Matching Skills", result.MatchingSkills)
	r.list("Skills to Develop", result.MissingSkills)
	r.list("Important Keywords to Include", firstN(result.MissingKeywords, pdfKeywords))

	r.numbered(result.Recommendations, noRecommendations)
	return r.bytes()
}

func (mpf *MatchPDFFormatter) SupportedType() string {
	return TypeJobMatch
}

func now(f func() time.Time) time.Time {
	if f == nil {
		return time.Now()
	}
	return f()
}
