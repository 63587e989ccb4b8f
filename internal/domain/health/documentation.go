package health

import "strings"

// Documentation es el texto clínico que acompaña una predicción.
// Es narrativa: no influye en score ni en label.
type Documentation struct {
	DiagnosisText string   `json:"diagnosis_text"`
	TreatmentText string   `json:"treatment_text"`
	Prescriptions []string `json:"prescriptions"`
}

// Document arma diagnóstico, tratamiento y prescripciones según el status
// predicho y los signos presentes en el registro.
func Document(status Status, r Record) Documentation {
	switch status {
	case StatusUnhealthy:
		var signs []string
		if r.Vomiting {
			signs = append(signs, "active vomiting")
		}
		if r.EnergyLevel == EnergyLethargic {
			signs = append(signs, "severe lethargy")
		}
		if r.MucousMembraneColor == MucousPale {
			signs = append(signs, "pale mucous membranes")
		}
		diagnosis := "Acute systemic illness indicated by abnormal clinical findings."
		if len(signs) > 0 {
			diagnosis = "Acute systemic illness indicated by " + strings.Join(signs, ", ") + "."
		}
		return Documentation{
			DiagnosisText: diagnosis,
			TreatmentText: "Immediate critical care stabilization. IV fluid and electrolyte therapy with continuous monitoring.",
			Prescriptions: []string{"IV Fluid Therapy", "Maropitant", "Broad-spectrum Antibiotic"},
		}

	case StatusAtRisk:
		var signs []string
		if r.Appetite == AppetiteDecreased {
			signs = append(signs, "decreased appetite")
		}
		if r.HydrationStatus != HydrationNormal {
			signs = append(signs, "mild dehydration")
		}
		diagnosis := "Sub-clinical signs detected. Requires comprehensive diagnostic screening."
		if len(signs) > 0 {
			diagnosis = "Sub-clinical signs detected (" + strings.Join(signs, ", ") + "). Requires comprehensive diagnostic screening."
		}
		return Documentation{
			DiagnosisText: diagnosis,
			TreatmentText: "Outpatient treatment with supportive care. Recommend full blood panel and urinalysis.",
			Prescriptions: []string{"Mirtazapine", "Probiotic supplement"},
		}

	default:
		return Documentation{
			DiagnosisText: "General check-up. The cat is asymptomatic and within normal clinical limits.",
			TreatmentText: "No specific treatment required. Maintain current diet and preventative care.",
			Prescriptions: []string{},
		}
	}
}
