package synth

import (
	"time"

	"cat-health-synth/internal/domain/health"
)

// Assembler combina las piezas del Sampler en un Record completo.
// HealthStatus queda con la categoría de generación; el Generator lo reemplaza.
type Assembler struct {
	s   *Sampler
	now func() time.Time
}

func NewAssembler(s *Sampler, now func() time.Time) *Assembler {
	if now == nil {
		now = time.Now
	}
	return &Assembler{s: s, now: now}
}

func (a *Assembler) Assemble(cat health.Status) health.Record {
	now := a.now()
	dob := a.s.DateOfBirth(now)
	vitals := a.s.Vitals(cat)
	attrs := a.s.Attributes(cat)
	hist := a.s.History(now)
	diagnosis, treatment := narrative(a.s.rng, cat)

	return health.Record{
		Name:        a.s.Name(),
		Breed:       a.s.Breed(),
		Species:     health.Species,
		DateOfBirth: dob,
		AgeInMonths: health.AgeInMonths(dob, now),
		Vitals:      vitals,
		WeightKg:    a.s.Weight(),

		BodyConditionScore:  attrs.BodyConditionScore,
		HydrationStatus:     attrs.HydrationStatus,
		MucousMembraneColor: attrs.MucousMembraneColor,
		CoatCondition:       attrs.CoatCondition,
		Appetite:            attrs.Appetite,
		EnergyLevel:         attrs.EnergyLevel,
		Aggression:          attrs.Aggression,
		Vomiting:            attrs.Vomiting,
		Diarrhea:            attrs.Diarrhea,
		Coughing:            attrs.Coughing,
		Limping:             attrs.Limping,

		Vaccinations:      hist.Vaccinations,
		Allergies:         hist.Allergies,
		ChronicConditions: hist.ChronicConditions,
		Prescriptions:     hist.Prescriptions,

		DiagnosisText: diagnosis,
		TreatmentText: treatment,
		HealthStatus:  cat,
	}
}
