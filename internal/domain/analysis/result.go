package analysis

import (
	"encoding/json"

	"cat-health-synth/internal/domain/health"
)

// TimestampLayout es el formato de prediction_timestamp.
const TimestampLayout = "2006-01-02 15:04:05"

type Source string

const (
	SourceModel Source = "model"
	SourceRules Source = "rules"
)

// Result es la respuesta de una inferencia. En error solo se serializan
// success, status (null) y error.
type Result struct {
	Success             bool                      `json:"success"`
	Status              health.Status             `json:"status"`
	ConfidenceScores    map[health.Status]float64 `json:"confidence_scores"`
	DiagnosisText       string                    `json:"diagnosis_text"`
	TreatmentText       string                    `json:"treatment_text"`
	Prescriptions       []string                  `json:"prescriptions"`
	PredictionTimestamp string                    `json:"prediction_timestamp"`

	Source    Source           `json:"source"`
	Score     float64          `json:"score"`
	Breakdown health.Breakdown `json:"breakdown"`
	Findings  []health.Finding `json:"findings"`
	Features  health.Features  `json:"features"`

	Error string `json:"error,omitempty"`
}

func Failure(err error) Result {
	return Result{Success: false, Error: err.Error()}
}

func (r Result) MarshalJSON() ([]byte, error) {
	if !r.Success {
		return json.Marshal(struct {
			Success bool    `json:"success"`
			Status  *string `json:"status"`
			Error   string  `json:"error"`
		}{Error: r.Error})
	}
	type plain Result
	return json.Marshal(plain(r))
}
