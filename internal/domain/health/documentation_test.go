package health

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocument_ByStatus(t *testing.T) {
	r := baseline()
	r.Vomiting = true
	r.EnergyLevel = EnergyLethargic
	r.MucousMembraneColor = MucousPale

	doc := Document(StatusUnhealthy, r)
	assert.Equal(t, "Acute systemic illness indicated by active vomiting, severe lethargy, pale mucous membranes.", doc.DiagnosisText)
	assert.Len(t, doc.Prescriptions, 3)

	doc = Document(StatusUnhealthy, baseline())
	assert.Equal(t, "Acute systemic illness indicated by abnormal clinical findings.", doc.DiagnosisText)

	r = baseline()
	r.Appetite = AppetiteDecreased
	r.HydrationStatus = HydrationModerate
	doc = Document(StatusAtRisk, r)
	assert.Contains(t, doc.DiagnosisText, "decreased appetite, mild dehydration")
	assert.Equal(t, []string{"Mirtazapine", "Probiotic supplement"}, doc.Prescriptions)

	doc = Document(StatusHealthy, r)
	assert.Empty(t, doc.Prescriptions)
	assert.NotNil(t, doc.Prescriptions)
}

func TestParseStatus(t *testing.T) {
	cases := map[string]Status{
		"Healthy":   StatusHealthy,
		"At Risk":   StatusAtRisk,
		"at_risk":   StatusAtRisk,
		"UNHEALTHY": StatusUnhealthy,
	}
	for in, want := range cases {
		got, ok := ParseStatus(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := ParseStatus("sick")
	assert.False(t, ok)
	assert.False(t, Status("at_risk").Valid())
	assert.True(t, StatusAtRisk.Valid())
}
