package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		line string
		want LineKind
	}{
		{"lundi", LineDayName},
		{"Dimanche", LineDayName},
		{"lundi 1er janvier", LineOther},
		{"1er. janvier 2024", LineShortDate},
		{"15 févr. 2024", LineShortDate},
		{"Journée entière PRD_TELETRAVAIL", LineFullDay},
		{"journée entière ABS_CONGE annuel", LineFullDay},
		{"09:00 - 12:00 VAL_DOSSIER", LineTimeSlot},
		{"09:00-12:00 VAL_DOSSIER", LineTimeSlot},
		{"Page 2 / 5", LineIgnored},
		{"Page 2 sur 5", LineIgnored},
		{"© Peopleware 2024", LineIgnored},
		{"Planning de travail pour Jean Dupont", LineIgnored},
		{"Horaires", LineIgnored},
		{"--- Page Break ---", LineIgnored},
		{"Note de service", LineOther},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyLine(tt.line, UnknownPerson).Kind)
		})
	}
}

func TestClassifyLine_Fields(t *testing.T) {
	slot := ClassifyLine("22:00 - 06:00  PRD_NUIT ", UnknownPerson)
	assert.Equal(t, ActivityRecord{Start: "22:00", End: "06:00", Label: "PRD_NUIT"}, slot.Slot)

	full := ClassifyLine("Journée entière FOR_FORMATION SYNDICALE", UnknownPerson)
	assert.Equal(t, "FOR_FORMATION SYNDICALE", full.FullDayLabel)

	day := ClassifyLine("MARDI", UnknownPerson)
	assert.Equal(t, "mardi", day.DayName)
	assert.Equal(t, "day-name", day.Kind.String())
}

func TestClassifyLine_PersonName(t *testing.T) {
	assert.Equal(t, LineIgnored, ClassifyLine("Jean Dupont", "Jean Dupont").Kind)
	assert.Equal(t, LineOther, ClassifyLine("Inconnu", UnknownPerson).Kind)
}

func TestSplitLines(t *testing.T) {
	got := SplitLines("  lundi \r\n\n\n1er janvier 2024\n   \n09:00 - 10:00 VAL_A")
	assert.Equal(t, []string{"lundi", "1er janvier 2024", "09:00 - 10:00 VAL_A"}, got)
}
