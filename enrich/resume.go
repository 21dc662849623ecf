package enrich

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Resume holds the attributes extracted from a resume or profile PDF.
type Resume struct {
	Name     string `json:"name"`
	Headline string `json:"headline"`
	Title    string `json:"title"`
	Company  string `json:"company"`
	Location string `json:"location"`
	Text     string `json:"text"`
}

// maxGarbledRatio is the non-ASCII share above which extracted text is
// treated as a failed extraction. Scanned or image-only PDFs come out as
// glyph soup; feeding that downstream poisons every heuristic.
const maxGarbledRatio = 0.25

// ExtractResume reads a resume PDF and pulls the header attributes: name
// from the first line, headline from the second, location from the first
// header line shaped like "City, Region".
func ExtractResume(path string) (*Resume, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages, keep the rest.
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	raw := sb.String()
	if garbledRatio(raw) > maxGarbledRatio {
		return nil, fmt.Errorf("extract resume %s: text is garbled, likely a scanned pdf", path)
	}

	r := &Resume{Text: raw}
	parseHeader(r)
	return r, nil
}

// parseHeader fills the identity attributes from the top of the document.
func parseHeader(r *Resume) {
	var header []string
	for _, line := range strings.Split(r.Text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		header = append(header, line)
		if len(header) >= 6 {
			break
		}
	}
	if len(header) > 0 {
		r.Name = header[0]
	}
	if len(header) > 1 {
		r.Headline = header[1]
		r.Title, r.Company = splitHeadline(header[1])
	}
	for _, line := range header[min(1, len(header)):] {
		if looksLikeLocation(line) {
			r.Location = line
			break
		}
	}
}

// splitHeadline breaks "VP Engineering at Initech" into title and company.
func splitHeadline(headline string) (title, company string) {
	for _, sep := range []string{" at ", " @ ", " | "} {
		if i := strings.Index(headline, sep); i > 0 {
			return strings.TrimSpace(headline[:i]), strings.TrimSpace(headline[i+len(sep):])
		}
	}
	return headline, ""
}

// looksLikeLocation matches "Lisbon, Portugal" shaped lines: short, with a
// comma, and no headline separators.
func looksLikeLocation(line string) bool {
	if !strings.Contains(line, ",") || len(line) > 60 {
		return false
	}
	if strings.Contains(line, " at ") || strings.Contains(line, "@") {
		return false
	}
	return len(strings.Split(line, ",")) <= 3
}

func garbledRatio(text string) float64 {
	if text == "" {
		return 0
	}
	nonASCII := 0
	total := 0
	for _, r := range text {
		total++
		if r > 127 {
			nonASCII++
		}
	}
	return float64(nonASCII) / float64(total)
}
