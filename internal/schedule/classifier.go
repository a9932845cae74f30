package schedule

import (
	"strings"
	"sync"

	"github.com/cloudflare/ahocorasick"
)

// ActivityKind tells whether an activity counts toward worked hours.
type ActivityKind int

const (
	NonWork ActivityKind = iota
	Work
)

func (k ActivityKind) String() string {
	if k == Work {
		return "work"
	}
	return "non-work"
}

// ClassifierConfig lists the activity codes recognised by the classifier.
// Codes are matched against the upper-cased label.
type ClassifierConfig struct {
	// NonWorkMarkers match anywhere in the label.
	NonWorkMarkers []string
	// NonWorkPrefixes cover absences, leave and sickness.
	NonWorkPrefixes []string
	// WorkPrefixes cover validated tasks, meetings, training, production and
	// generic work codes.
	WorkPrefixes []string
}

// DefaultClassifierConfig returns the codes used by the planning export.
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		NonWorkMarkers:  []string{"PAU_REPAS"},
		NonWorkPrefixes: []string{"ABS_", "CGE_", "MAL_"},
		WorkPrefixes:    []string{"VAL_", "REU_", "FOR_", "PRD_", "ZZZ_"},
	}
}

// Classifier decides whether an activity label is work. Anything not
// explicitly recognised as work is non-work.
type Classifier struct {
	config  ClassifierConfig
	mu      sync.Mutex // ahocorasick.Matcher keeps match state between calls
	markers *ahocorasick.Matcher
}

// NewClassifier builds a classifier from the given code lists.
func NewClassifier(config ClassifierConfig) *Classifier {
	c := &Classifier{config: config}
	if len(config.NonWorkMarkers) > 0 {
		upper := make([]string, len(config.NonWorkMarkers))
		for i, m := range config.NonWorkMarkers {
			upper[i] = strings.ToUpper(m)
		}
		c.markers = ahocorasick.NewStringMatcher(upper)
	}
	return c
}

// Classify applies, in order: explicit non-work markers, non-work prefixes,
// work prefixes, then the non-work default.
func (c *Classifier) Classify(label string) ActivityKind {
	normalized := strings.ToUpper(strings.TrimSpace(label))
	if normalized == "" {
		return NonWork
	}

	if c.hasMarker(normalized) {
		return NonWork
	}
	if hasAnyPrefix(normalized, c.config.NonWorkPrefixes) {
		return NonWork
	}
	if hasAnyPrefix(normalized, c.config.WorkPrefixes) {
		return Work
	}
	return NonWork
}

// IsWork is shorthand for Classify(label) == Work.
func (c *Classifier) IsWork(label string) bool {
	return c.Classify(label) == Work
}

func (c *Classifier) hasMarker(normalized string) bool {
	if c.markers == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.markers.Match([]byte(normalized))) > 0
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, strings.ToUpper(p)) {
			return true
		}
	}
	return false
}

var defaultClassifier = NewClassifier(DefaultClassifierConfig())

// ClassifyActivity classifies label with the default code lists.
func ClassifyActivity(label string) ActivityKind {
	return defaultClassifier.Classify(label)
}
