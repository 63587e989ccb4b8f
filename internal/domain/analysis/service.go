package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"cat-health-synth/internal/domain/health"
	"cat-health-synth/internal/platform/logger"
	"cat-health-synth/internal/ports/predictor"
)

var ErrInvalidInput = errors.New("invalid input")

// Recorder recibe una observación por predicción servida.
type Recorder interface {
	Prediction(source, status string)
	ObserveScore(score float64)
}

type Service struct {
	engine    *health.Engine
	predictor predictor.Predictor
	recorder  Recorder
	log       logger.Logger
	now       func() time.Time
}

type Options struct {
	// Predictor opcional; nil => solo reglas.
	Predictor predictor.Predictor
	Recorder  Recorder
	Logger    logger.Logger
	Now       func() time.Time
}

func NewService(engine *health.Engine, opts Options) *Service {
	if engine == nil {
		engine = health.NewEngine(health.DefaultRules())
	}
	s := &Service{
		engine:    engine,
		predictor: opts.Predictor,
		recorder:  opts.Recorder,
		log:       opts.Logger,
		now:       opts.Now,
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Analyze clasifica un registro. Siempre corre el motor de reglas; si hay
// predictor y responde, su status y confianza prevalecen. La explicación
// (breakdown, findings) es siempre la de las reglas.
func (s *Service) Analyze(ctx context.Context, rec health.Record) Result {
	if err := Validate(rec); err != nil {
		return Failure(err)
	}

	a := s.engine.Assess(rec)
	f := health.ExtractFeatures(rec)

	status := a.Status
	scores := ruleConfidence(a.Status)
	source := SourceRules

	if s.predictor != nil {
		p, err := s.predictor.Predict(ctx, rec, f)
		if err != nil {
			s.log.Warn("predictor failed, using rules", map[string]any{"error": err.Error()})
		} else {
			status, scores, source = p.Status, p.ConfidenceScores, SourceModel
		}
	}

	doc := health.Document(status, rec)
	if s.recorder != nil {
		s.recorder.Prediction(string(source), string(status))
		s.recorder.ObserveScore(a.Score)
	}

	findings := a.Findings
	if findings == nil {
		findings = []health.Finding{}
	}
	return Result{
		Success:             true,
		Status:              status,
		ConfidenceScores:    scores,
		DiagnosisText:       doc.DiagnosisText,
		TreatmentText:       doc.TreatmentText,
		Prescriptions:       doc.Prescriptions,
		PredictionTimestamp: s.now().Format(TimestampLayout),
		Source:              source,
		Score:               a.Score,
		Breakdown:           a.Breakdown,
		Findings:            findings,
		Features:            f,
	}
}

// AnalyzeJSON decodifica un registro JSON y lo analiza. Errores de
// decodificación se devuelven como Result fallido.
func (s *Service) AnalyzeJSON(ctx context.Context, r io.Reader) Result {
	var rec health.Record
	if err := json.NewDecoder(r).Decode(&rec); err != nil {
		return Failure(fmt.Errorf("%w: invalid json: %v", ErrInvalidInput, err))
	}
	return s.Analyze(ctx, rec)
}

// Validate exige los signos vitales que puntúan; sin ellos el score no
// significa nada.
func Validate(rec health.Record) error {
	switch {
	case rec.Temperature <= 0:
		return fmt.Errorf("%w: temperature is required", ErrInvalidInput)
	case rec.HeartRate <= 0:
		return fmt.Errorf("%w: heart_rate is required", ErrInvalidInput)
	case rec.RespiratoryRate <= 0:
		return fmt.Errorf("%w: respiratory_rate is required", ErrInvalidInput)
	case rec.BloodPressureSystolic <= 0:
		return fmt.Errorf("%w: blood_pressure_systolic is required", ErrInvalidInput)
	case rec.BodyConditionScore < 1 || rec.BodyConditionScore > 9:
		return fmt.Errorf("%w: body_condition_score must be in 1..9", ErrInvalidInput)
	}
	return nil
}

func ruleConfidence(status health.Status) map[health.Status]float64 {
	out := make(map[health.Status]float64, len(health.Statuses))
	for _, st := range health.Statuses {
		out[st] = 0
	}
	out[status] = 1
	return out
}
