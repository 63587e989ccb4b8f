package synth

import (
	"errors"
	"fmt"
	"io"
	"math"

	"cat-health-synth/internal/domain/health"

	"gopkg.in/yaml.v3"
)

var ErrInvalidParams = errors.New("invalid generator params")

// Weighted es una opción de una distribución categórica.
type Weighted[T comparable] struct {
	Value  T       `yaml:"value"`
	Weight float64 `yaml:"weight"`
}

type Distribution[T comparable] []Weighted[T]

func (d Distribution[T]) total() float64 {
	var sum float64
	for _, w := range d {
		sum += w.Weight
	}
	return sum
}

func (d Distribution[T]) validate(name string, known func(T) bool) error {
	if len(d) == 0 {
		return fmt.Errorf("%w: %s: empty distribution", ErrInvalidParams, name)
	}
	for _, w := range d {
		if w.Weight < 0 || math.IsNaN(w.Weight) {
			return fmt.Errorf("%w: %s: negative weight for %v", ErrInvalidParams, name, w.Value)
		}
		if known != nil && !known(w.Value) {
			return fmt.Errorf("%w: %s: unknown value %v", ErrInvalidParams, name, w.Value)
		}
	}
	if d.total() <= 0 {
		return fmt.Errorf("%w: %s: weights sum to zero", ErrInvalidParams, name)
	}
	return nil
}

type Gaussian struct {
	Mean float64 `yaml:"mean"`
	SD   float64 `yaml:"sd"`
}

type Bounds struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

func (b Bounds) clip(v float64) float64 {
	return math.Min(math.Max(v, b.Min), b.Max)
}

func (b Bounds) contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

// VitalProfile: media y desvío por signo vital para una categoría.
type VitalProfile struct {
	Temperature     Gaussian `yaml:"temperature"`
	HeartRate       Gaussian `yaml:"heart_rate"`
	RespiratoryRate Gaussian `yaml:"respiratory_rate"`
	Systolic        Gaussian `yaml:"blood_pressure_systolic"`
	Diastolic       Gaussian `yaml:"blood_pressure_diastolic"`
}

// Skew desplaza las medias de Unhealthy con un único valor por registro:
// signo ±1 uniforme × magnitud U(MinMagnitude, MaxMagnitude), escalado por vital.
type Skew struct {
	MinMagnitude    float64 `yaml:"min_magnitude"`
	MaxMagnitude    float64 `yaml:"max_magnitude"`
	Temperature     float64 `yaml:"temperature"`
	HeartRate       float64 `yaml:"heart_rate"`
	RespiratoryRate float64 `yaml:"respiratory_rate"`
	Systolic        float64 `yaml:"blood_pressure_systolic"`
	Diastolic       float64 `yaml:"blood_pressure_diastolic"`
}

// VitalBounds son los límites fisiológicos absolutos (sobrevivibles).
type VitalBounds struct {
	Temperature     Bounds `yaml:"temperature"`
	HeartRate       Bounds `yaml:"heart_rate"`
	RespiratoryRate Bounds `yaml:"respiratory_rate"`
	Systolic        Bounds `yaml:"blood_pressure_systolic"`
	Diastolic       Bounds `yaml:"blood_pressure_diastolic"`
	Weight          Bounds `yaml:"weight_kg"`
}

// AttributeTables son las tablas categóricas que dependen de la categoría.
type AttributeTables struct {
	BodyCondition Distribution[int]              `yaml:"body_condition_score"`
	Hydration     Distribution[health.Hydration] `yaml:"hydration_status"`
	Coat          Distribution[health.Coat]      `yaml:"coat_condition"`
	Appetite      Distribution[health.Appetite]  `yaml:"appetite"`
	Energy        Distribution[health.Energy]    `yaml:"energy_level"`

	VomitingProb float64 `yaml:"vomiting_prob"`
	DiarrheaProb float64 `yaml:"diarrhea_prob"`
	LimpingProb  float64 `yaml:"limping_prob"`
}

// ListField: con probabilidad EmptyProb la lista queda vacía; si no, se
// eligen entre 1 y MaxCount opciones distintas.
type ListField struct {
	Options   []string `yaml:"options"`
	MaxCount  int      `yaml:"max_count"`
	EmptyProb float64  `yaml:"empty_prob"`
}

type HistoryParams struct {
	Vaccines            ListField `yaml:"vaccines"`
	VaccineMinDaysAgo   int       `yaml:"vaccine_min_days_ago"`
	VaccineMaxDaysAgo   int       `yaml:"vaccine_max_days_ago"`
	VaccineValidityDays int       `yaml:"vaccine_validity_days"`

	Allergies         ListField `yaml:"allergies"`
	ChronicConditions ListField `yaml:"chronic_conditions"`
	Prescriptions     ListField `yaml:"prescriptions"`
}

// Params agrupa todas las tablas del generador. Es un valor inmutable que se
// inyecta al sampler; no hay estado global.
type Params struct {
	CategoryPrior Distribution[health.Status] `yaml:"category_prior"`

	Vitals        map[health.Status]VitalProfile `yaml:"vitals"`
	UnhealthySkew Skew                           `yaml:"unhealthy_skew"`
	Bounds        VitalBounds                    `yaml:"bounds"`
	Weight        Gaussian                       `yaml:"weight_kg"`

	Baseline  AttributeTables `yaml:"baseline"`
	Unhealthy AttributeTables `yaml:"unhealthy"`

	MucousMembrane Distribution[health.MucousMembrane] `yaml:"mucous_membrane_color"`
	Aggression     Distribution[health.Aggression]     `yaml:"aggression"`
	CoughingProb   float64                             `yaml:"coughing_prob"`

	Names      []string       `yaml:"names"`
	Breeds     []health.Breed `yaml:"breeds"`
	MinAgeDays int            `yaml:"min_age_days"`
	MaxAgeDays int            `yaml:"max_age_days"`

	History HistoryParams `yaml:"history"`
}

func DefaultParams() Params {
	return Params{
		CategoryPrior: Distribution[health.Status]{
			{health.StatusHealthy, 0.70},
			{health.StatusAtRisk, 0.20},
			{health.StatusUnhealthy, 0.10},
		},
		Vitals: map[health.Status]VitalProfile{
			health.StatusHealthy: {
				Temperature:     Gaussian{38.65, 0.25},
				HeartRate:       Gaussian{180, 20},
				RespiratoryRate: Gaussian{25, 3},
				Systolic:        Gaussian{150, 15},
				Diastolic:       Gaussian{95, 10},
			},
			health.StatusAtRisk: {
				Temperature:     Gaussian{38.65, 0.4},
				HeartRate:       Gaussian{180, 35},
				RespiratoryRate: Gaussian{25, 5},
				Systolic:        Gaussian{150, 25},
				Diastolic:       Gaussian{95, 15},
			},
			health.StatusUnhealthy: {
				Temperature:     Gaussian{38.65, 0.5},
				HeartRate:       Gaussian{180, 40},
				RespiratoryRate: Gaussian{25, 10},
				Systolic:        Gaussian{150, 30},
				Diastolic:       Gaussian{95, 20},
			},
		},
		UnhealthySkew: Skew{
			MinMagnitude:    0.5,
			MaxMagnitude:    1.5,
			Temperature:     1,
			HeartRate:       20,
			RespiratoryRate: 5,
			Systolic:        20,
			Diastolic:       10,
		},
		Bounds: VitalBounds{
			Temperature:     Bounds{35.0, 42.0},
			HeartRate:       Bounds{50, 300},
			RespiratoryRate: Bounds{5, 60},
			Systolic:        Bounds{80, 250},
			Diastolic:       Bounds{40, 160},
			Weight:          Bounds{1.0, 10.0},
		},
		Weight: Gaussian{4.5, 1.5},

		Baseline: AttributeTables{
			BodyCondition: Distribution[int]{
				{4, 0.25}, {5, 0.45}, {6, 0.20}, {3, 0.05}, {7, 0.03}, {2, 0.01}, {8, 0.01},
			},
			Hydration: Distribution[health.Hydration]{
				{health.HydrationNormal, 0.80},
				{health.HydrationMild, 0.15},
				{health.HydrationModerate, 0.04},
				{health.HydrationSevere, 0.01},
			},
			Coat: Distribution[health.Coat]{
				{health.CoatHealthy, 0.85},
				{health.CoatDull, 0.10},
				{health.CoatGreasy, 0.02},
				{health.CoatMatted, 0.02},
				{health.CoatPatchy, 0.01},
			},
			Appetite: Distribution[health.Appetite]{
				{health.AppetiteNormal, 0.85},
				{health.AppetiteDecreased, 0.10},
				{health.AppetiteIncreased, 0.03},
				{health.AppetiteAbsent, 0.02},
			},
			Energy: Distribution[health.Energy]{
				{health.EnergyNormal, 0.75},
				{health.EnergyLethargic, 0.20},
				{health.EnergyHyperactive, 0.05},
			},
			VomitingProb: 0.15,
			DiarrheaProb: 0.15,
			LimpingProb:  0.05,
		},
		Unhealthy: AttributeTables{
			BodyCondition: Distribution[int]{
				{1, 0.2}, {2, 0.2}, {7, 0.2}, {8, 0.2}, {9, 0.2},
			},
			Hydration: Distribution[health.Hydration]{
				{health.HydrationNormal, 0.05},
				{health.HydrationMild, 0.15},
				{health.HydrationModerate, 0.40},
				{health.HydrationSevere, 0.40},
			},
			Coat: Distribution[health.Coat]{
				{health.CoatHealthy, 0.05},
				{health.CoatDull, 0.20},
				{health.CoatGreasy, 0.25},
				{health.CoatMatted, 0.30},
				{health.CoatPatchy, 0.20},
			},
			Appetite: Distribution[health.Appetite]{
				{health.AppetiteNormal, 0.10},
				{health.AppetiteDecreased, 0.30},
				{health.AppetiteAbsent, 0.60},
			},
			Energy: Distribution[health.Energy]{
				{health.EnergyNormal, 0.05},
				{health.EnergyLethargic, 0.85},
				{health.EnergyHyperactive, 0.10},
			},
			VomitingProb: 1.0,
			DiarrheaProb: 0.7,
			LimpingProb:  0.3,
		},

		MucousMembrane: Distribution[health.MucousMembrane]{
			{health.MucousPink, 0.88},
			{health.MucousPale, 0.05},
			{health.MucousWhite, 0.02},
			{health.MucousBlue, 0.01},
			{health.MucousYellow, 0.03},
			{health.MucousRed, 0.01},
		},
		// ['none']*8 + mild, moderate, severe
		Aggression: Distribution[health.Aggression]{
			{health.AggressionNone, 8},
			{health.AggressionMild, 1},
			{health.AggressionModerate, 1},
			{health.AggressionSevere, 1},
		},
		CoughingProb: 0.05,

		Names: []string{
			"Luna", "Oliver", "Leo", "Bella", "Max", "Chloe", "Lucy",
			"Simba", "Nala", "Milo", "Kitty", "Shadow", "Smokey", "Tiger",
		},
		Breeds:     append([]health.Breed(nil), health.Breeds...),
		MinAgeDays: 30,
		MaxAgeDays: 15 * 365,

		History: HistoryParams{
			Vaccines:            ListField{Options: []string{"Rabies", "FVRCP", "FeLV"}, MaxCount: 3, EmptyProb: 0.2},
			VaccineMinDaysAgo:   30,
			VaccineMaxDaysAgo:   730,
			VaccineValidityDays: 365,
			Allergies:           ListField{Options: []string{"Fish Protein", "Flea Bite", "Pollen"}, MaxCount: 2, EmptyProb: 0.6},
			ChronicConditions:   ListField{Options: []string{"Feline Hyperthyroidism", "Chronic Kidney Disease", "Dental Disease"}, MaxCount: 2, EmptyProb: 0.7},
			Prescriptions:       ListField{Options: []string{"Amoxicillin", "Metronidazole", "Prednisolone"}, MaxCount: 1, EmptyProb: 0.6},
		},
	}
}

// LoadParams parte de DefaultParams y sobreescribe lo que venga en el YAML.
// Las listas (distribuciones, opciones) se reemplazan completas.
func LoadParams(r io.Reader) (Params, error) {
	p := DefaultParams()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return Params{}, fmt.Errorf("decode params: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

func (p Params) Validate() error {
	if err := p.CategoryPrior.validate("category_prior", func(s health.Status) bool { return s.Valid() }); err != nil {
		return err
	}
	for _, st := range health.Statuses {
		if _, ok := p.Vitals[st]; !ok {
			return fmt.Errorf("%w: vitals: missing profile for %q", ErrInvalidParams, st)
		}
	}
	for st, vp := range p.Vitals {
		for _, g := range []Gaussian{vp.Temperature, vp.HeartRate, vp.RespiratoryRate, vp.Systolic, vp.Diastolic} {
			if g.SD < 0 {
				return fmt.Errorf("%w: vitals[%s]: negative sd", ErrInvalidParams, st)
			}
		}
	}
	if p.UnhealthySkew.MinMagnitude > p.UnhealthySkew.MaxMagnitude {
		return fmt.Errorf("%w: unhealthy_skew: min_magnitude > max_magnitude", ErrInvalidParams)
	}
	for name, b := range map[string]Bounds{
		"temperature":              p.Bounds.Temperature,
		"heart_rate":               p.Bounds.HeartRate,
		"respiratory_rate":         p.Bounds.RespiratoryRate,
		"blood_pressure_systolic":  p.Bounds.Systolic,
		"blood_pressure_diastolic": p.Bounds.Diastolic,
		"weight_kg":                p.Bounds.Weight,
	} {
		if b.Min > b.Max {
			return fmt.Errorf("%w: bounds.%s: min > max", ErrInvalidParams, name)
		}
	}

	for name, t := range map[string]AttributeTables{"baseline": p.Baseline, "unhealthy": p.Unhealthy} {
		if err := t.validate(name); err != nil {
			return err
		}
	}
	if err := p.MucousMembrane.validate("mucous_membrane_color", func(m health.MucousMembrane) bool {
		return health.ParseMucousMembrane(string(m)) == m && m != health.MucousUnknown
	}); err != nil {
		return err
	}
	if err := p.Aggression.validate("aggression", func(a health.Aggression) bool {
		return health.ParseAggression(string(a)) == a && a != health.AggressionUnknown
	}); err != nil {
		return err
	}
	if !validProb(p.CoughingProb) {
		return fmt.Errorf("%w: coughing_prob out of [0,1]", ErrInvalidParams)
	}

	if len(p.Names) == 0 || len(p.Breeds) == 0 {
		return fmt.Errorf("%w: names and breeds are required", ErrInvalidParams)
	}
	if p.MinAgeDays < 0 || p.MinAgeDays > p.MaxAgeDays {
		return fmt.Errorf("%w: invalid age range [%d,%d]", ErrInvalidParams, p.MinAgeDays, p.MaxAgeDays)
	}

	h := p.History
	if h.VaccineMinDaysAgo < 0 || h.VaccineMinDaysAgo > h.VaccineMaxDaysAgo {
		return fmt.Errorf("%w: invalid vaccine date range", ErrInvalidParams)
	}
	for name, lf := range map[string]ListField{
		"vaccines":           h.Vaccines,
		"allergies":          h.Allergies,
		"chronic_conditions": h.ChronicConditions,
		"prescriptions":      h.Prescriptions,
	} {
		if !validProb(lf.EmptyProb) {
			return fmt.Errorf("%w: history.%s: empty_prob out of [0,1]", ErrInvalidParams, name)
		}
		if lf.EmptyProb < 1 && (lf.MaxCount < 1 || lf.MaxCount > len(lf.Options)) {
			return fmt.Errorf("%w: history.%s: max_count must be in [1,%d]", ErrInvalidParams, name, len(lf.Options))
		}
	}
	return nil
}

func (t AttributeTables) validate(name string) error {
	if err := t.BodyCondition.validate(name+".body_condition_score", func(v int) bool { return v >= 1 && v <= 9 }); err != nil {
		return err
	}
	if err := t.Hydration.validate(name+".hydration_status", func(h health.Hydration) bool {
		return health.ParseHydration(string(h)) == h && h != health.HydrationUnknown
	}); err != nil {
		return err
	}
	if err := t.Coat.validate(name+".coat_condition", func(c health.Coat) bool {
		return health.ParseCoat(string(c)) == c && c != health.CoatUnknown
	}); err != nil {
		return err
	}
	if err := t.Appetite.validate(name+".appetite", func(a health.Appetite) bool {
		return health.ParseAppetite(string(a)) == a && a != health.AppetiteUnknown
	}); err != nil {
		return err
	}
	if err := t.Energy.validate(name+".energy_level", func(e health.Energy) bool {
		return health.ParseEnergy(string(e)) == e && e != health.EnergyUnknown
	}); err != nil {
		return err
	}
	for _, p := range []float64{t.VomitingProb, t.DiarrheaProb, t.LimpingProb} {
		if !validProb(p) {
			return fmt.Errorf("%w: %s: symptom probability out of [0,1]", ErrInvalidParams, name)
		}
	}
	return nil
}

func validProb(p float64) bool {
	return p >= 0 && p <= 1
}
