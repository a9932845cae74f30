package schedule

import (
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
)

// DefaultFullDayHours credits a whole-day exception with a standard workday.
// Keys are upper-case activity descriptions or their leading code.
func DefaultFullDayHours() map[string]float64 {
	return map[string]float64{
		"FOR_FORMATION SYNDICALE": 7,
		"PRD_TELETRAVAIL":         7,
	}
}

// State is the parser position relative to the current day block.
type State int

const (
	// StateSeeking has no pending day name and no confirmed date.
	StateSeeking State = iota
	// StateDayNamePending has read a day name and expects its date.
	StateDayNamePending
	// StateDateConfirmed accepts a full-day exception or time slots.
	StateDateConfirmed
	// StateDayExhausted ignores everything until the next day name.
	StateDayExhausted
)

var stateNames = map[State]string{
	StateSeeking:        "seeking",
	StateDayNamePending: "day-name-pending",
	StateDateConfirmed:  "date-confirmed",
	StateDayExhausted:   "day-exhausted",
}

func (s State) String() string {
	return stateNames[s]
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger traces parse decisions at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithClassifier replaces the default activity classifier.
func WithClassifier(c *Classifier) Option {
	return func(p *Parser) {
		if c != nil {
			p.classifier = c
		}
	}
}

// WithFullDayHours replaces the full-day exception duration table.
func WithFullDayHours(table map[string]float64) Option {
	return func(p *Parser) {
		p.fullDayHours = make(map[string]float64, len(table))
		for k, v := range table {
			p.fullDayHours[strings.ToUpper(strings.TrimSpace(k))] = v
		}
	}
}

// Parser turns extracted planning text into weekly worked hours. A Parser
// holds configuration only; every Parse call owns its own state, so a Parser
// may be shared between goroutines.
type Parser struct {
	classifier   *Classifier
	fullDayHours map[string]float64
	logger       *zap.Logger
}

// NewParser returns a parser using the default code tables.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		classifier:   defaultClassifier,
		fullDayHours: DefaultFullDayHours(),
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse scans text line by line and returns the work hours per ISO week.
// personName is skipped wherever it is echoed in the body.
func (p *Parser) Parse(text, personName string) WeeklyHours {
	return p.ParseLines(SplitLines(text), personName)
}

// ParseLines is Parse over already split lines. Lines are NFC-normalised.
func (p *Parser) ParseLines(lines []string, personName string) WeeklyHours {
	classified := make([]Line, 0, len(lines))
	for _, raw := range lines {
		raw = strings.TrimSpace(norm.NFC.String(raw))
		if raw == "" {
			continue
		}
		classified = append(classified, ClassifyLine(raw, personName))
	}

	run := &parseRun{
		parser: p,
		lines:  classified,
		weeks:  make(WeeklyHours),
	}
	run.scan()

	p.logger.Debug("planning parsed",
		zap.Int("lines", len(classified)),
		zap.Int("weeks", len(run.weeks)))
	return run.weeks
}

// parseRun is the mutable context of a single Parse call.
type parseRun struct {
	parser *Parser
	lines  []Line
	pos    int

	currentDate    *time.Time
	pendingDayName string
	dayExhausted   bool

	weeks WeeklyHours
}

func (r *parseRun) state() State {
	switch {
	case r.pendingDayName != "":
		return StateDayNamePending
	case r.currentDate == nil:
		return StateSeeking
	case r.dayExhausted:
		return StateDayExhausted
	default:
		return StateDateConfirmed
	}
}

// peek is the single line of lookahead used after a date is confirmed.
func (r *parseRun) peek() (Line, bool) {
	if r.pos+1 >= len(r.lines) {
		return Line{}, false
	}
	return r.lines[r.pos+1], true
}

// consumeNext advances past the line returned by peek.
func (r *parseRun) consumeNext() {
	r.pos++
}

func (r *parseRun) scan() {
	for r.pos = 0; r.pos < len(r.lines); r.pos++ {
		r.step(r.lines[r.pos])
	}
}

func (r *parseRun) step(line Line) {
	if line.Kind == LineIgnored {
		return
	}
	// A day name starts a new block whatever the current state.
	if line.Kind == LineDayName {
		r.onDayName(line)
		return
	}

	if fn, ok := transitions[transitionKey{r.state(), line.Kind}]; ok {
		fn(r, line)
	}
}

type transitionKey struct {
	state State
	kind  LineKind
}

type transition func(r *parseRun, line Line)

// transitions lists every (state, kind) pair that changes the state or the
// totals. Pairs absent from the table leave the line ignored.
var transitions = map[transitionKey]transition{
	{StateDayNamePending, LineShortDate}: (*parseRun).onPendingDate,
	{StateDayNamePending, LineFullDay}:   (*parseRun).onPendingFullDay,
	{StateDayNamePending, LineTimeSlot}:  (*parseRun).onPendingFalsePositive,
	{StateDayNamePending, LineOther}:     (*parseRun).onPendingFalsePositive,
	{StateDateConfirmed, LineFullDay}:    (*parseRun).onFullDay,
	{StateDateConfirmed, LineTimeSlot}:   (*parseRun).onTimeSlot,
}

func (r *parseRun) onDayName(line Line) {
	r.pendingDayName = line.DayName
	r.currentDate = nil
	r.dayExhausted = false
	r.log("day name", line)
}

func (r *parseRun) onPendingDate(line Line) {
	date, ok := ParseDate(line.DateFragment)
	r.pendingDayName = ""
	if !ok {
		r.log("unparseable date after day name", line)
		return
	}

	r.currentDate = &date
	r.dayExhausted = false
	week := ISOWeekID(date)
	r.weeks.register(week)
	r.log("date confirmed", line, zap.String("week", string(week)))

	if next, ok := r.peek(); ok && next.Kind == LineFullDay {
		r.consumeNext()
		r.onFullDay(next)
	}
}

// onPendingFullDay keeps the pending day name: the date may still follow.
func (r *parseRun) onPendingFullDay(line Line) {
	r.log("full day before date ignored", line)
}

// onPendingFalsePositive drops a day name that was not followed by a date.
// The line itself carries no date context and is otherwise ignored.
func (r *parseRun) onPendingFalsePositive(line Line) {
	r.pendingDayName = ""
	r.log("day name without date", line)
}

func (r *parseRun) onFullDay(line Line) {
	week := ISOWeekID(*r.currentDate)
	hours := r.parser.fullDayDuration(line.FullDayLabel)
	if hours > 0 {
		r.weeks.add(week, hours)
	}
	r.dayExhausted = true
	r.log("full day", line, zap.String("week", string(week)), zap.Float64("hours", hours))
}

func (r *parseRun) onTimeSlot(line Line) {
	slot := line.Slot
	if !r.parser.classifier.IsWork(slot.Label) {
		r.log("non-work slot", line)
		return
	}
	hours := DurationHours(slot.Start, slot.End)
	if hours <= 0 {
		return
	}
	week := ISOWeekID(*r.currentDate)
	r.weeks.add(week, hours)
	r.log("work slot", line, zap.String("week", string(week)), zap.Float64("hours", hours))
}

func (r *parseRun) log(msg string, line Line, fields ...zap.Field) {
	if !r.parser.logger.Core().Enabled(zap.DebugLevel) {
		return
	}
	fields = append(fields,
		zap.Int("line", r.pos),
		zap.String("text", line.Raw),
		zap.Stringer("state", r.state()))
	r.parser.logger.Debug(msg, fields...)
}

// fullDayDuration looks up the whole description first, then its leading code.
// Unknown codes are worth zero hours.
func (p *Parser) fullDayDuration(label string) float64 {
	desc := strings.ToUpper(strings.TrimSpace(label))
	if h, ok := p.fullDayHours[desc]; ok {
		return h
	}
	if code, _, found := strings.Cut(desc, " "); found {
		if h, ok := p.fullDayHours[code]; ok {
			return h
		}
	}
	return 0
}
