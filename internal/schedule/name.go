package schedule

import (
	"regexp"
	"strings"
)

// UnknownPerson is used when the planning header cannot be found.
const UnknownPerson = "Inconnu"

// vendorSuffix is appended by the planning software to the header line.
const vendorSuffix = "peopleware"

var (
	headerPattern      = regexp.MustCompile(`(?i)Planning de travail pour\s+(.+)`)
	trailingDayPattern = regexp.MustCompile(`(?i)\s+(lundi|mardi|mercredi|jeudi|vendredi|samedi|dimanche)\s+\d{1,2}(?:er)?\.?\s+\S+`)
)

// ExtractPersonName returns the name from the first "Planning de travail pour"
// header, without the vendor footer or a day/date run-on. It returns
// UnknownPerson when no header yields a name.
func ExtractPersonName(lines []string) string {
	for _, line := range lines {
		m := headerPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		if idx := strings.Index(strings.ToLower(name), vendorSuffix); idx >= 0 {
			name = strings.TrimSpace(name[:idx])
		}
		if loc := trailingDayPattern.FindStringIndex(name); loc != nil {
			name = strings.TrimSpace(name[:loc[0]])
		}
		if name != "" {
			return name
		}
	}
	return UnknownPerson
}
