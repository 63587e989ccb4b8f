package synth

import (
	"strings"

	"cat-health-synth/internal/domain/health"
)

var (
	unhealthyDiagnoses = []string{
		"Severe gastroenteritis and dehydration.",
		"Acute kidney injury suspected; further diagnostics needed.",
		"Diabetic ketoacidosis due to uncontrolled diabetes.",
		"Severe upper respiratory infection with high fever.",
	}
	unhealthyTreatments = []string{
		"Hospitalization for IV fluids and supportive care.",
		"Aggressive antibiotic and anti-emetic therapy.",
		"Referral to internal medicine specialist.",
	}
)

// narrative arma diagnóstico y tratamiento según la categoría de generación.
// El texto no se recalcula al re-etiquetar.
func narrative(rng *Rand, cat health.Status) (diagnosis, treatment string) {
	if cat == health.StatusUnhealthy {
		return pick(rng, unhealthyDiagnoses), pick(rng, unhealthyTreatments)
	}
	label := strings.ToLower(string(cat))
	diagnosis = "General check-up. The cat is " + label + "."
	if cat == health.StatusHealthy {
		return diagnosis, "No specific treatment required."
	}
	return diagnosis, "Recommended treatment for " + label + " condition."
}
