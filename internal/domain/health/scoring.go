package health

// Motor de scoring: modelo aditivo de penalidades. Las constantes de DefaultRules
// definen la verdad de terreno del dataset y cualquier modelo entrenado con él;
// no se leen de configuración.

// Band define el rango normal de un signo vital y su banda severa exterior.
// Fuera de la banda severa suma Penalty; fuera del rango normal (pero dentro de
// la banda severa) suma MildPenalty.
type Band struct {
	Min       float64
	Max       float64
	SevereMin float64
	SevereMax float64

	Penalty     float64
	MildPenalty float64

	// SevereMaxInclusive: el borde superior de la banda severa ya cuenta como
	// severo. El inferior siempre es estricto.
	SevereMaxInclusive bool
}

func (b Band) points(v float64) float64 {
	if b.severe(v) {
		return b.Penalty
	}
	if v < b.Min || v > b.Max {
		return b.MildPenalty
	}
	return 0
}

func (b Band) severe(v float64) bool {
	if v < b.SevereMin {
		return true
	}
	if b.SevereMaxInclusive {
		return v >= b.SevereMax
	}
	return v > b.SevereMax
}

type Rules struct {
	Temperature     Band
	HeartRate       Band
	RespiratoryRate Band
	// Solo se evalúa la banda severa; la diastólica no puntúa.
	Systolic Band

	SymptomPoints   float64
	AppetitePoints  float64
	LethargyPoints  float64
	AggressionPoint float64

	HydrationPoints map[Hydration]float64
	HydrationScale  float64
	CoatPoints      map[Coat]float64
	CoatScale       float64
	MucousPoints    float64

	BCSMildLow    int
	BCSMildHigh   int
	BCSSevereLow  int
	BCSSevereHigh int
	BCSPoints     float64

	UnhealthyAt float64
	AtRiskAt    float64
}

// DefaultRules devuelve una copia nueva de las reglas canónicas.
func DefaultRules() Rules {
	return Rules{
		// normal 38.1–39.2 °C, severa ±0.5
		Temperature: Band{
			Min: 38.1, Max: 39.2,
			SevereMin: 37.6, SevereMax: 39.7,
			Penalty: 2, MildPenalty: 1,
			SevereMaxInclusive: true,
		},
		// normal 140–220 bpm, severa ×0.7 / ×1.2
		HeartRate: Band{
			Min: 140, Max: 220,
			SevereMin: 98, SevereMax: 264,
			Penalty: 2, MildPenalty: 1,
		},
		// normal 20–30 rpm, severa ×0.5 / ×1.5
		RespiratoryRate: Band{
			Min: 20, Max: 30,
			SevereMin: 10, SevereMax: 45,
			Penalty: 1.5, MildPenalty: 0.5,
		},
		// normal 120–180 mmHg, severa ×0.8 / ×1.1, sin tramo intermedio
		Systolic: Band{
			Min: 120, Max: 180,
			SevereMin: 96, SevereMax: 198,
			Penalty: 0.5, MildPenalty: 0,
		},

		SymptomPoints:   0.5,
		AppetitePoints:  1.5,
		LethargyPoints:  1.5,
		AggressionPoint: 1,

		HydrationPoints: map[Hydration]float64{
			HydrationNormal:   0,
			HydrationMild:     1.5,
			HydrationModerate: 3,
			HydrationSevere:   5,
		},
		HydrationScale: 0.5,
		CoatPoints: map[Coat]float64{
			CoatHealthy: 0,
			CoatDull:    0.5,
			CoatGreasy:  1,
			CoatMatted:  1.5,
			CoatPatchy:  1,
		},
		CoatScale:    0.5,
		MucousPoints: 1.5,

		BCSMildLow:    3,
		BCSMildHigh:   7,
		BCSSevereLow:  2,
		BCSSevereHigh: 8,
		BCSPoints:     1,

		UnhealthyAt: 7,
		AtRiskAt:    3,
	}
}

// Breakdown reparte el score por grupo de reglas.
type Breakdown struct {
	Vitals        float64 `json:"vitals"`
	Symptoms      float64 `json:"symptoms"`
	Condition     float64 `json:"condition"`
	BodyCondition float64 `json:"body_condition"`
}

// Finding es una regla individual que sumó puntos.
type Finding struct {
	Rule   string  `json:"rule"`
	Points float64 `json:"points"`
}

type Assessment struct {
	Score     float64   `json:"score"`
	Status    Status    `json:"status"`
	Breakdown Breakdown `json:"breakdown"`
	Findings  []Finding `json:"findings"`
}

// Engine es puro y reentrante: no guarda estado entre llamadas.
type Engine struct {
	rules Rules
}

func NewEngine(rules Rules) *Engine {
	return &Engine{rules: rules}
}

var defaultEngine = NewEngine(DefaultRules())

// Score aplica las reglas canónicas.
func Score(r Record) (float64, Status) {
	a := defaultEngine.Assess(r)
	return a.Score, a.Status
}

func Assess(r Record) Assessment {
	return defaultEngine.Assess(r)
}

func Classify(score float64) Status {
	return defaultEngine.Classify(score)
}

func (e *Engine) Classify(score float64) Status {
	switch {
	case score >= e.rules.UnhealthyAt:
		return StatusUnhealthy
	case score >= e.rules.AtRiskAt:
		return StatusAtRisk
	default:
		return StatusHealthy
	}
}

func (e *Engine) Score(r Record) (float64, Status) {
	a := e.Assess(r)
	return a.Score, a.Status
}

// Assess calcula score, clasificación y el detalle por regla.
// Es total: valores de enum desconocidos no suman puntos en su regla.
func (e *Engine) Assess(r Record) Assessment {
	rules := e.rules
	var (
		b        Breakdown
		findings []Finding
	)
	add := func(group *float64, rule string, pts float64) {
		if pts == 0 {
			return
		}
		*group += pts
		findings = append(findings, Finding{Rule: rule, Points: pts})
	}

	// 1) desviación de vitales
	add(&b.Vitals, "temperature", rules.Temperature.points(r.Temperature))
	add(&b.Vitals, "heart_rate", rules.HeartRate.points(float64(r.HeartRate)))
	add(&b.Vitals, "respiratory_rate", rules.RespiratoryRate.points(float64(r.RespiratoryRate)))
	add(&b.Vitals, "blood_pressure_systolic", rules.Systolic.points(float64(r.BloodPressureSystolic)))

	// 2) carga de síntomas
	add(&b.Symptoms, "symptoms", float64(r.SymptomCount())*rules.SymptomPoints)
	switch r.Appetite {
	case AppetiteDecreased, AppetiteAbsent:
		add(&b.Symptoms, "appetite", rules.AppetitePoints)
	}
	if r.EnergyLevel == EnergyLethargic {
		add(&b.Symptoms, "energy_level", rules.LethargyPoints)
	}
	switch r.Aggression {
	case AggressionModerate, AggressionSevere:
		add(&b.Symptoms, "aggression", rules.AggressionPoint)
	}

	// 3) condición / apariencia
	add(&b.Condition, "hydration_status", rules.HydrationPoints[r.HydrationStatus]*rules.HydrationScale)
	add(&b.Condition, "coat_condition", rules.CoatPoints[r.CoatCondition]*rules.CoatScale)
	switch r.MucousMembraneColor {
	case MucousWhite, MucousBlue, MucousYellow, MucousRed:
		add(&b.Condition, "mucous_membrane_color", rules.MucousPoints)
	}

	// 4) body condition score (acumulativo: extremo leve + extremo severo)
	bcs := r.BodyConditionScore
	if bcs <= rules.BCSMildLow || bcs >= rules.BCSMildHigh {
		add(&b.BodyCondition, "body_condition_score", rules.BCSPoints)
	}
	if bcs <= rules.BCSSevereLow || bcs >= rules.BCSSevereHigh {
		add(&b.BodyCondition, "body_condition_score_severe", rules.BCSPoints)
	}

	score := b.Vitals + b.Symptoms + b.Condition + b.BodyCondition
	return Assessment{
		Score:     score,
		Status:    e.Classify(score),
		Breakdown: b,
		Findings:  findings,
	}
}
