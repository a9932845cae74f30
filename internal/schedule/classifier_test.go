package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyActivity(t *testing.T) {
	tests := []struct {
		label string
		want  ActivityKind
	}{
		{"VAL_DOSSIER", Work},
		{"REU_EQUIPE", Work},
		{"FOR_INTERNE", Work},
		{"PRD_TELETRAVAIL", Work},
		{"ZZZ_DIVERS", Work},
		{"  val_dossier  ", Work},
		{"ABS_CONGE", NonWork},
		{"CGE_ANNUEL", NonWork},
		{"MAL_ORDINAIRE", NonWork},
		{"PAU_REPAS", NonWork},
		{"VAL_PAU_REPAS", NonWork},
		{"REU_ apres PAU_REPAS", NonWork},
		{"XYZ_INCONNU", NonWork},
		{"", NonWork},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyActivity(tt.label))
		})
	}
}

func TestClassifier_CustomConfig(t *testing.T) {
	c := NewClassifier(ClassifierConfig{
		NonWorkPrefixes: []string{"VAL_X"},
		WorkPrefixes:    []string{"VAL_"},
	})

	assert.Equal(t, Work, c.Classify("VAL_DOSSIER"))
	// Non-work prefixes win over overlapping work prefixes.
	assert.Equal(t, NonWork, c.Classify("VAL_XYZ"))
	assert.Equal(t, NonWork, c.Classify("PAU_REPAS"))
	assert.Equal(t, "work", Work.String())
	assert.Equal(t, "non-work", NonWork.String())
}
