package schedule

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// LineKind is the result of classifying one line of extracted text.
type LineKind int

const (
	// LineOther carries no recognised structure.
	LineOther LineKind = iota
	// LineIgnored is noise: the person's own name, footers, headers.
	LineIgnored
	// LineDayName is exactly a day of the week ("lundi").
	LineDayName
	// LineShortDate looks like "1er. janvier 2024".
	LineShortDate
	// LineFullDay is a "Journée entière <CODE>" exception.
	LineFullDay
	// LineTimeSlot is "HH:MM - HH:MM <label>".
	LineTimeSlot
)

var lineKindNames = map[LineKind]string{
	LineOther:     "other",
	LineIgnored:   "ignored",
	LineDayName:   "day-name",
	LineShortDate: "short-date",
	LineFullDay:   "full-day",
	LineTimeSlot:  "time-slot",
}

func (k LineKind) String() string {
	return lineKindNames[k]
}

// Line is a classified line. Only the fields relevant to Kind are set.
type Line struct {
	Kind LineKind
	Raw  string

	DayName      string
	DateFragment string
	FullDayLabel string
	Slot         ActivityRecord
}

// ActivityRecord is one time slot read from the planning.
type ActivityRecord struct {
	Start string
	End   string
	Label string
}

var (
	dayNamePattern   = regexp.MustCompile(`(?i)^(lundi|mardi|mercredi|jeudi|vendredi|samedi|dimanche)$`)
	shortDatePattern = regexp.MustCompile(`(?i)^(\d{1,2}(?:er)?\s*\.?\s*\p{L}+\.?\s+\d{4})$`)
	fullDayPattern   = regexp.MustCompile(`(?i)^journée entière\s+(.+)`)
	timeSlotPattern  = regexp.MustCompile(`(\d{2}:\d{2})\s*-\s*(\d{2}:\d{2})\s+(.+)`)
)

// noisePatterns match boilerplate repeated on every page of the export.
var noisePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^page\s+\d+\s*(/|sur|of)\s*\d+$`),
	regexp.MustCompile(`(?i)^(©|\(c\)|copyright)`),
	regexp.MustCompile(`(?i)^peopleware\b`),
	regexp.MustCompile(`(?i)^planning de travail pour\b`),
	regexp.MustCompile(`(?i)^(date|jour|horaire|horaires|activité|activités|début|fin|durée)$`),
	regexp.MustCompile(`(?i)^imprimé le\b`),
	regexp.MustCompile(`(?i)^-+\s*page break\s*-+$`),
}

// SplitLines normalises extracted text into trimmed, non-empty lines.
func SplitLines(text string) []string {
	raw := strings.Split(norm.NFC.String(text), "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSpace(l)
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// IsNoise reports whether line is page boilerplate.
func IsNoise(line string) bool {
	for _, p := range noisePatterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}

// ClassifyLine assigns a kind to a single trimmed line. personName lines are
// ignored unless personName is the sentinel.
func ClassifyLine(line, personName string) Line {
	l := Line{Kind: LineOther, Raw: line}

	if line == "" {
		l.Kind = LineIgnored
		return l
	}
	if personName != UnknownPerson && personName != "" && line == personName {
		l.Kind = LineIgnored
		return l
	}
	if IsNoise(line) {
		l.Kind = LineIgnored
		return l
	}

	if m := dayNamePattern.FindStringSubmatch(line); m != nil {
		l.Kind = LineDayName
		l.DayName = strings.ToLower(m[1])
		return l
	}
	if m := shortDatePattern.FindStringSubmatch(line); m != nil {
		l.Kind = LineShortDate
		l.DateFragment = m[1]
		return l
	}
	if m := fullDayPattern.FindStringSubmatch(line); m != nil {
		l.Kind = LineFullDay
		l.FullDayLabel = strings.TrimSpace(m[1])
		return l
	}
	if m := timeSlotPattern.FindStringSubmatch(line); m != nil {
		l.Kind = LineTimeSlot
		l.Slot = ActivityRecord{Start: m[1], End: m[2], Label: strings.TrimSpace(m[3])}
		return l
	}
	return l
}
