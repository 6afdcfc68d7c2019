package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/ledongthuc/pdf"
	pkgerrors "github.com/pkg/errors"
	"golang.org/x/text/encoding/charmap"
)

func extractPDF(data []byte) (text string, err error) {
	// the reader panics on some malformed cross-reference tables
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", pkgerrors.Wrap(err, "open pdf")
	}

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", pkgerrors.Wrapf(err, "page %d", i)
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	return b.String(), nil
}

const (
	docxBody = "word/document.xml"
	// docxExpansion bounds the decompressed body relative to the upload cap.
	docxExpansion = 4
)

var errDocumentTooLarge = pkgerrors.New("document exceeds the size limit")

// extractDOCX reads the document body. The decompressed body may be at most
// docxExpansion times maxSize and the text it yields at most maxSize.
func extractDOCX(data []byte, maxSize int64) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", pkgerrors.Wrap(err, "open docx archive")
	}
	bodyLimit := maxSize * docxExpansion
	for _, f := range zr.File {
		if f.Name != docxBody {
			continue
		}
		if f.UncompressedSize64 > uint64(bodyLimit) {
			return "", errDocumentTooLarge
		}
		rc, err := f.Open()
		if err != nil {
			return "", pkgerrors.Wrap(err, "open document body")
		}
		defer func() { _ = rc.Close() }()
		return documentText(&capReader{r: rc, n: bodyLimit}, maxSize)
	}
	return "", pkgerrors.Errorf("%s not found in archive", docxBody)
}

// capReader fails with errDocumentTooLarge once more than n bytes are read.
// Archive headers can understate the decompressed size.
type capReader struct {
	r io.Reader
	n int64
}

func (c *capReader) Read(p []byte) (int, error) {
	if c.n <= 0 {
		var one [1]byte
		if n, err := c.r.Read(one[:]); n == 0 {
			return 0, err
		}
		return 0, errDocumentTooLarge
	}
	if int64(len(p)) > c.n {
		p = p[:c.n]
	}
	n, err := c.r.Read(p)
	c.n -= int64(n)
	return n, err
}

// documentText collects the text runs of a WordprocessingML body, one line per
// paragraph, up to limit bytes of text.
func documentText(r io.Reader, limit int64) (string, error) {
	dec := xml.NewDecoder(r)
	var b strings.Builder
	inText := false
	for {
		if int64(b.Len()) > limit {
			return "", errDocumentTooLarge
		}
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", pkgerrors.Wrap(err, "parse document body")
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				b.WriteByte('\t')
			case "br", "cr":
				b.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}
	if int64(b.Len()) > limit {
		return "", errDocumentTooLarge
	}
	return b.String(), nil
}

func extractText(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if utf8.Valid(data) {
		return string(data), nil
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", pkgerrors.Wrap(err, "decode latin-1 text")
	}
	return string(decoded), nil
}

const noiseSelectors = "nav, footer, header, script, style, noscript, .ad, .advertisement, .ads, .sidebar, .cookie-banner, .popup"

var contentSelectors = []string{
	".job-description",
	".job-content",
	"#job-description",
	"#job-content",
	".posting-content",
	".job-details",
	"[data-testid='job-description']",
	"main",
	"article",
	".content",
	"#content",
}

var blankLines = regexp.MustCompile(`\n\s*\n+`)

func extractHTML(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", pkgerrors.Wrap(err, "parse html")
	}
	doc.Find(noiseSelectors).Remove()

	var main *goquery.Selection
	for _, sel := range contentSelectors {
		if s := doc.Find(sel); s.Length() > 0 {
			main = s.First()
			break
		}
	}
	if main == nil {
		main = doc.Find("body")
	}

	lines := strings.Split(main.Text(), "\n")
	for i, l := range lines {
		lines[i] = strings.Join(strings.Fields(l), " ")
	}
	return blankLines.ReplaceAllString(strings.Join(lines, "\n"), "\n"), nil
}
