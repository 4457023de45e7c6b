// Package report turns raw model output into structured analysis sections and
// the embedded chart data block. Parsing is deterministic and never fails:
// malformed input degrades to fewer sections or a nil chart block.
package report

import (
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"finsight/internal/domain"
	"finsight/internal/prompt"
)

// Parsed is the result of splitting a raw model reply.
type Parsed struct {
	Sections  []domain.Section
	ChartData json.RawMessage
	CleanText string
}

// Parse splits raw model output into titled sections, extracts the chart data
// block, and strips forbidden markup. The language selects which section
// titles are suppressed from the result.
func Parse(full string, lang domain.Language) Parsed {
	text, chart := extractChartBlock(full)
	text = StripMarkup(text)

	preface, sections := splitSections(text)
	sections = suppress(sections, prompt.ExcludedTitles(lang))

	return Parsed{
		Sections:  sections,
		ChartData: chart,
		CleanText: joinSections(preface, sections, text),
	}
}

// StripMarkup removes the two markup forms the prompt forbids: bold pairs and
// heading markers.
func StripMarkup(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "#", "")
	return strings.TrimSpace(s)
}

// extractChartBlock removes the first sentinel-delimited block from the text
// and returns its interior as raw JSON. A block with invalid JSON is still
// removed but yields nil chart data; an unclosed opening tag is treated as if
// no block were present.
func extractChartBlock(text string) (string, json.RawMessage) {
	start := strings.Index(text, prompt.ChartOpenTag)
	if start < 0 {
		return text, nil
	}
	rest := text[start+len(prompt.ChartOpenTag):]
	end := strings.Index(rest, prompt.ChartCloseTag)
	if end < 0 {
		return text, nil
	}

	interior := strings.TrimSpace(rest[:end])
	remaining := text[:start] + rest[end+len(prompt.ChartCloseTag):]

	var chart json.RawMessage
	if err := json.Unmarshal([]byte(interior), &chart); err != nil {
		log.Printf("report: discarding malformed chart data block: %v", err)
		return remaining, nil
	}
	return remaining, chart
}

// splitSections re-segments text on heading lines of the form
// "<integer>. <UPPERCASE PHRASE>". Text before the first heading is returned
// separately as the preface.
func splitSections(text string) (string, []domain.Section) {
	var (
		preface  []string
		sections []domain.Section
		body     []string
	)

	flush := func() {
		if len(sections) > 0 {
			sections[len(sections)-1].Body = strings.TrimSpace(strings.Join(body, "\n"))
		}
		body = body[:0]
	}

	for _, line := range strings.Split(text, "\n") {
		if num, title, ok := matchHeading(line); ok {
			flush()
			sections = append(sections, domain.Section{Number: num, Title: title})
			continue
		}
		if len(sections) == 0 {
			preface = append(preface, line)
			continue
		}
		body = append(body, line)
	}
	flush()

	return strings.TrimSpace(strings.Join(preface, "\n")), sections
}

// matchHeading reports whether the line is a section heading of the form
// "<integer>. <UPPERCASE PHRASE>" and returns its number and normalized
// title. The dot must be followed by whitespace, otherwise a decimal figure
// like "3.5 MILLIONS" inside a body line would start a spurious section. The
// phrase must be upper case; accented uppercase letters count, any lowercase
// letter disqualifies the line.
func matchHeading(line string) (int, string, bool) {
	trimmed := strings.TrimSpace(line)
	dot := strings.Index(trimmed, ".")
	if dot <= 0 {
		return 0, "", false
	}
	num, err := strconv.Atoi(trimmed[:dot])
	if err != nil {
		return 0, "", false
	}
	if dot+1 >= len(trimmed) || (trimmed[dot+1] != ' ' && trimmed[dot+1] != '\t') {
		return 0, "", false
	}
	phrase := strings.TrimSpace(trimmed[dot+1:])
	if phrase == "" || !isUpperPhrase(phrase) {
		return 0, "", false
	}
	return num, NormalizeTitle(phrase), true
}

func isUpperPhrase(s string) bool {
	hasUpper := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			hasUpper = true
		}
	}
	return hasUpper
}

var apostrophes = strings.NewReplacer("’", "'", "‘", "'", "ʼ", "'")

// NormalizeTitle canonicalizes a section title for exact matching: NFC form,
// straight apostrophes, collapsed whitespace, upper case.
func NormalizeTitle(s string) string {
	s = norm.NFC.String(s)
	s = apostrophes.Replace(s)
	s = strings.Join(strings.Fields(s), " ")
	return strings.ToUpper(s)
}

// suppress drops sections whose normalized title exactly matches one of the
// excluded titles. Matching is by title text, not section number, because
// numbering differs between locales.
func suppress(sections []domain.Section, excluded []string) []domain.Section {
	if len(excluded) == 0 {
		return sections
	}
	drop := make(map[string]struct{}, len(excluded))
	for _, t := range excluded {
		drop[NormalizeTitle(t)] = struct{}{}
	}
	kept := sections[:0]
	for _, s := range sections {
		if _, ok := drop[s.Title]; ok {
			continue
		}
		kept = append(kept, s)
	}
	return kept
}

// joinSections rebuilds the cleaned analysis text from the kept sections. When
// no headings were detected the stripped text is returned as-is so a parse
// degradation still yields readable output.
func joinSections(preface string, sections []domain.Section, fallback string) string {
	if len(sections) == 0 {
		return strings.TrimSpace(fallback)
	}
	var parts []string
	if preface != "" {
		parts = append(parts, preface)
	}
	for _, s := range sections {
		parts = append(parts, fmt.Sprintf("%d. %s\n\n%s", s.Number, s.Title, s.Body))
	}
	return strings.TrimSpace(strings.Join(parts, "\n\n"))
}
