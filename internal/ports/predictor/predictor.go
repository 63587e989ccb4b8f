package predictor

import (
	"context"

	"cat-health-synth/internal/domain/health"
)

// Prediction es la respuesta de un modelo externo.
type Prediction struct {
	Status           health.Status
	ConfidenceScores map[health.Status]float64
}

// Predictor clasifica un registro con un modelo entrenado fuera del proceso.
// Cualquier error hace que el llamador use el motor de reglas.
type Predictor interface {
	Predict(ctx context.Context, rec health.Record, f health.Features) (Prediction, error)
}
