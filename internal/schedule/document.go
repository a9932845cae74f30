// Package schedule reads the text of an exported work planning and computes
// the hours worked per ISO week.
//
// The input is the text layer of the planning PDF, one item per line. Each day
// appears as a day name line, a date line, then either a single
// "Journée entière <CODE>" line or a list of "HH:MM - HH:MM <CODE>" slots.
package schedule

// Document is the outcome of parsing one planning.
type Document struct {
	Person string
	Weeks  WeeklyHours
}

// ParseDocument extracts the person's name and weekly hours from text.
func (p *Parser) ParseDocument(text string) Document {
	lines := SplitLines(text)
	person := ExtractPersonName(lines)
	return Document{
		Person: person,
		Weeks:  p.ParseLines(lines, person),
	}
}

// ParseDocument parses text with the default parser.
func ParseDocument(text string) Document {
	return NewParser().ParseDocument(text)
}
