package synth

import (
	"math"
	"time"

	"cat-health-synth/internal/domain/health"
)

// Attributes es el bloque clínico/conductual muestreado para una categoría.
type Attributes struct {
	BodyConditionScore  int
	HydrationStatus     health.Hydration
	MucousMembraneColor health.MucousMembrane
	CoatCondition       health.Coat
	Appetite            health.Appetite
	EnergyLevel         health.Energy
	Aggression          health.Aggression

	Vomiting bool
	Diarrhea bool
	Coughing bool
	Limping  bool
}

// History: vacunas, alergias, condiciones crónicas y prescripciones.
// No depende de la categoría.
type History struct {
	Vaccinations      []health.Vaccination
	Allergies         []string
	ChronicConditions []string
	Prescriptions     []string
}

// Sampler produce las piezas de un registro a partir de Params y una fuente
// aleatoria. Los vitales se recortan a Bounds antes de redondear.
type Sampler struct {
	p   Params
	rng *Rand
}

func NewSampler(p Params, rng *Rand) *Sampler {
	return &Sampler{p: p, rng: rng}
}

func (s *Sampler) Vitals(cat health.Status) health.Vitals {
	prof := s.p.Vitals[cat]
	var shift [5]float64
	if cat == health.StatusUnhealthy {
		sk := s.p.UnhealthySkew
		skew := s.rng.sign() * s.rng.uniform(sk.MinMagnitude, sk.MaxMagnitude)
		shift = [5]float64{
			skew * sk.Temperature,
			skew * sk.HeartRate,
			skew * sk.RespiratoryRate,
			skew * sk.Systolic,
			skew * sk.Diastolic,
		}
	}

	b := s.p.Bounds
	temp := b.Temperature.clip(s.rng.normal(shifted(prof.Temperature, shift[0])))
	hr := b.HeartRate.clip(s.rng.normal(shifted(prof.HeartRate, shift[1])))
	rr := b.RespiratoryRate.clip(s.rng.normal(shifted(prof.RespiratoryRate, shift[2])))
	sys := b.Systolic.clip(s.rng.normal(shifted(prof.Systolic, shift[3])))
	dia := b.Diastolic.clip(s.rng.normal(shifted(prof.Diastolic, shift[4])))

	return health.Vitals{
		Temperature:            round1(temp),
		HeartRate:              int(hr),
		RespiratoryRate:        int(rr),
		BloodPressureSystolic:  int(sys),
		BloodPressureDiastolic: int(dia),
	}
}

func (s *Sampler) Attributes(cat health.Status) Attributes {
	t := s.p.Baseline
	if cat == health.StatusUnhealthy {
		t = s.p.Unhealthy
	}
	return Attributes{
		BodyConditionScore:  choose(s.rng, t.BodyCondition),
		HydrationStatus:     choose(s.rng, t.Hydration),
		MucousMembraneColor: choose(s.rng, s.p.MucousMembrane),
		CoatCondition:       choose(s.rng, t.Coat),
		Appetite:            choose(s.rng, t.Appetite),
		EnergyLevel:         choose(s.rng, t.Energy),
		Aggression:          choose(s.rng, s.p.Aggression),
		Vomiting:            s.rng.chance(t.VomitingProb),
		Diarrhea:            s.rng.chance(t.DiarrheaProb),
		Coughing:            s.rng.chance(s.p.CoughingProb),
		Limping:             s.rng.chance(t.LimpingProb),
	}
}

// History muestrea el historial clínico. El estado de cada vacuna se deriva
// de su fecha: up_to_date si sigue dentro de la validez respecto de now.
func (s *Sampler) History(now time.Time) History {
	h := s.p.History
	today := health.NewDate(now)

	names := s.list(h.Vaccines)
	vacs := make([]health.Vaccination, 0, len(names))
	for _, name := range names {
		daysAgo := s.rng.intBetween(h.VaccineMinDaysAgo, h.VaccineMaxDaysAgo)
		admin := health.NewDate(today.AddDate(0, 0, -daysAgo))
		status := health.VaccineOverdue
		if admin.AddDate(0, 0, h.VaccineValidityDays).After(today.Time) {
			status = health.VaccineUpToDate
		}
		vacs = append(vacs, health.Vaccination{VaccineName: name, AdministeredDate: admin, Status: status})
	}

	return History{
		Vaccinations:      vacs,
		Allergies:         s.list(h.Allergies),
		ChronicConditions: s.list(h.ChronicConditions),
		Prescriptions:     s.list(h.Prescriptions),
	}
}

func (s *Sampler) list(f ListField) []string {
	if len(f.Options) == 0 || s.rng.chance(f.EmptyProb) {
		return []string{}
	}
	k := s.rng.intBetween(1, min(f.MaxCount, len(f.Options)))
	return sample(s.rng, f.Options, k)
}

// Weight en kg, recortado y redondeado a un decimal.
func (s *Sampler) Weight() float64 {
	return round1(s.p.Bounds.Weight.clip(s.rng.normal(s.p.Weight)))
}

// DateOfBirth: now menos un número uniforme de días en [MinAgeDays, MaxAgeDays].
func (s *Sampler) DateOfBirth(now time.Time) health.Date {
	days := s.rng.intBetween(s.p.MinAgeDays, s.p.MaxAgeDays)
	return health.NewDate(now.AddDate(0, 0, -days))
}

func (s *Sampler) Name() string        { return pick(s.rng, s.p.Names) }
func (s *Sampler) Breed() health.Breed { return pick(s.rng, s.p.Breeds) }

func (s *Sampler) Category() health.Status {
	return choose(s.rng, s.p.CategoryPrior)
}

func shifted(g Gaussian, by float64) Gaussian {
	return Gaussian{Mean: g.Mean + by, SD: g.SD}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
