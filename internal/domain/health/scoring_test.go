package health

import "testing"

// baseline: todos los valores dentro de rango normal => score 0.
func baseline() Record {
	return Record{
		Name:    "Milo",
		Breed:   BreedSiamese,
		Species: Species,
		Vitals: Vitals{
			Temperature:            38.65,
			HeartRate:              180,
			RespiratoryRate:        25,
			BloodPressureSystolic:  150,
			BloodPressureDiastolic: 95,
		},
		WeightKg:            4.5,
		BodyConditionScore:  5,
		HydrationStatus:     HydrationNormal,
		MucousMembraneColor: MucousPink,
		CoatCondition:       CoatHealthy,
		Appetite:            AppetiteNormal,
		EnergyLevel:         EnergyNormal,
		Aggression:          AggressionNone,
	}
}

func TestScore_Baseline_IsHealthyWithZeroScore(t *testing.T) {
	score, status := Score(baseline())
	if score != 0 {
		t.Fatalf("expected score 0, got %v", score)
	}
	if status != StatusHealthy {
		t.Fatalf("expected Healthy, got %s", status)
	}
}

func TestScore_Deterministic(t *testing.T) {
	r := baseline()
	r.Temperature = 40.1
	r.Vomiting = true
	r.CoatCondition = CoatMatted

	s1, st1 := Score(r)
	s2, st2 := Score(r)
	if s1 != s2 || st1 != st2 {
		t.Fatalf("expected identical results, got (%v,%s) vs (%v,%s)", s1, st1, s2, st2)
	}
}

func TestScore_TemperatureBoundaries(t *testing.T) {
	cases := []struct {
		temp float64
		want float64
	}{
		{39.2, 0}, // borde superior normal
		{39.3, 1}, // tramo leve
		{39.7, 2}, // borde severo => severo
		{40.5, 2},
		{38.1, 0}, // borde inferior normal
		{38.0, 1},
		{37.6, 1}, // borde inferior severo => leve
		{37.5, 2},
		{35.0, 2},
	}
	for _, tc := range cases {
		r := baseline()
		r.Temperature = tc.temp
		got, _ := Score(r)
		if got != tc.want {
			t.Fatalf("temperature=%v: expected %v, got %v", tc.temp, tc.want, got)
		}
	}
}

func TestScore_HeartRespiratorySystolicBands(t *testing.T) {
	cases := []struct {
		name string
		mut  func(*Record)
		want float64
	}{
		{"hr normal low edge", func(r *Record) { r.HeartRate = 140 }, 0},
		{"hr mild low", func(r *Record) { r.HeartRate = 139 }, 1},
		{"hr severe low edge not severe", func(r *Record) { r.HeartRate = 98 }, 1},
		{"hr severe low", func(r *Record) { r.HeartRate = 97 }, 2},
		{"hr mild high", func(r *Record) { r.HeartRate = 221 }, 1},
		{"hr severe high edge not severe", func(r *Record) { r.HeartRate = 264 }, 1},
		{"hr severe high", func(r *Record) { r.HeartRate = 265 }, 2},
		{"rr mild low", func(r *Record) { r.RespiratoryRate = 19 }, 0.5},
		{"rr severe low", func(r *Record) { r.RespiratoryRate = 9 }, 1.5},
		{"rr edge 10", func(r *Record) { r.RespiratoryRate = 10 }, 0.5},
		{"rr mild high", func(r *Record) { r.RespiratoryRate = 45 }, 0.5},
		{"rr severe high", func(r *Record) { r.RespiratoryRate = 46 }, 1.5},
		{"sys outside normal, inside severe", func(r *Record) { r.BloodPressureSystolic = 110 }, 0},
		{"sys severe low", func(r *Record) { r.BloodPressureSystolic = 95 }, 0.5},
		{"sys edge 198", func(r *Record) { r.BloodPressureSystolic = 198 }, 0},
		{"sys severe high", func(r *Record) { r.BloodPressureSystolic = 199 }, 0.5},
		{"diastolic ignored", func(r *Record) { r.BloodPressureDiastolic = 160 }, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := baseline()
			tc.mut(&r)
			got, _ := Score(r)
			if got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestScore_SymptomCountIsMonotonic(t *testing.T) {
	r := baseline()
	prev, _ := Score(r)
	start := prev

	steps := []func(*Record){
		func(r *Record) { r.Vomiting = true },
		func(r *Record) { r.Diarrhea = true },
		func(r *Record) { r.Coughing = true },
		func(r *Record) { r.Limping = true },
	}
	for i, step := range steps {
		step(&r)
		got, _ := Score(r)
		if got <= prev {
			t.Fatalf("step %d: expected score to increase, %v -> %v", i, prev, got)
		}
		prev = got
	}
	if prev-start != 2.0 {
		t.Fatalf("expected total increase 2.0, got %v", prev-start)
	}
}

func TestScore_BehaviorAndCondition(t *testing.T) {
	cases := []struct {
		name string
		mut  func(*Record)
		want float64
	}{
		{"appetite decreased", func(r *Record) { r.Appetite = AppetiteDecreased }, 1.5},
		{"appetite absent", func(r *Record) { r.Appetite = AppetiteAbsent }, 1.5},
		{"appetite increased", func(r *Record) { r.Appetite = AppetiteIncreased }, 0},
		{"lethargic", func(r *Record) { r.EnergyLevel = EnergyLethargic }, 1.5},
		{"hyperactive", func(r *Record) { r.EnergyLevel = EnergyHyperactive }, 0},
		{"aggression mild", func(r *Record) { r.Aggression = AggressionMild }, 0},
		{"aggression moderate", func(r *Record) { r.Aggression = AggressionModerate }, 1},
		{"aggression severe", func(r *Record) { r.Aggression = AggressionSevere }, 1},
		{"hydration mild", func(r *Record) { r.HydrationStatus = HydrationMild }, 0.75},
		{"hydration moderate", func(r *Record) { r.HydrationStatus = HydrationModerate }, 1.5},
		{"hydration severe", func(r *Record) { r.HydrationStatus = HydrationSevere }, 2.5},
		{"coat dull", func(r *Record) { r.CoatCondition = CoatDull }, 0.25},
		{"coat greasy", func(r *Record) { r.CoatCondition = CoatGreasy }, 0.5},
		{"coat matted", func(r *Record) { r.CoatCondition = CoatMatted }, 0.75},
		{"coat patchy", func(r *Record) { r.CoatCondition = CoatPatchy }, 0.5},
		{"mm pale", func(r *Record) { r.MucousMembraneColor = MucousPale }, 0},
		{"mm white", func(r *Record) { r.MucousMembraneColor = MucousWhite }, 1.5},
		{"mm blue", func(r *Record) { r.MucousMembraneColor = MucousBlue }, 1.5},
		{"mm yellow", func(r *Record) { r.MucousMembraneColor = MucousYellow }, 1.5},
		{"mm red", func(r *Record) { r.MucousMembraneColor = MucousRed }, 1.5},
		{"bcs 4", func(r *Record) { r.BodyConditionScore = 4 }, 0},
		{"bcs 6", func(r *Record) { r.BodyConditionScore = 6 }, 0},
		{"bcs 3", func(r *Record) { r.BodyConditionScore = 3 }, 1},
		{"bcs 7", func(r *Record) { r.BodyConditionScore = 7 }, 1},
		{"bcs 2", func(r *Record) { r.BodyConditionScore = 2 }, 2},
		{"bcs 8", func(r *Record) { r.BodyConditionScore = 8 }, 2},
		{"bcs 1", func(r *Record) { r.BodyConditionScore = 1 }, 2},
		{"bcs 9", func(r *Record) { r.BodyConditionScore = 9 }, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := baseline()
			tc.mut(&r)
			got, _ := Score(r)
			if got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestScore_UnknownEnumValuesAddNothing(t *testing.T) {
	r := baseline()
	r.HydrationStatus = ParseHydration("very_thirsty")
	r.CoatCondition = ParseCoat("sparkly")
	r.MucousMembraneColor = ParseMucousMembrane("green")
	r.Appetite = ParseAppetite("ravenous")
	r.EnergyLevel = ParseEnergy("sleepy")
	r.Aggression = ParseAggression("grumpy")

	if r.HydrationStatus != HydrationUnknown {
		t.Fatalf("expected unknown hydration variant, got %q", r.HydrationStatus)
	}
	score, status := Score(r)
	if score != 0 || status != StatusHealthy {
		t.Fatalf("expected 0/Healthy for unknown values, got %v/%s", score, status)
	}

	// valores crudos fuera del enum (sin pasar por Parse*) tampoco suman
	r.HydrationStatus = Hydration("???")
	r.CoatCondition = Coat("")
	if score, _ := Score(r); score != 0 {
		t.Fatalf("expected 0 for raw out-of-enum values, got %v", score)
	}
}

func TestScore_SevereEndToEnd(t *testing.T) {
	r := baseline()
	r.Temperature = 40.5
	r.HeartRate = 280
	r.Vomiting = true
	r.Diarrhea = true
	r.EnergyLevel = EnergyLethargic
	r.HydrationStatus = HydrationSevere
	r.BodyConditionScore = 1

	a := Assess(r)
	if a.Score != 11.0 {
		t.Fatalf("expected 11.0, got %v", a.Score)
	}
	if a.Status != StatusUnhealthy {
		t.Fatalf("expected Unhealthy, got %s", a.Status)
	}
	want := Breakdown{Vitals: 4, Symptoms: 2.5, Condition: 2.5, BodyCondition: 2}
	if a.Breakdown != want {
		t.Fatalf("expected breakdown %+v, got %+v", want, a.Breakdown)
	}

	var sum float64
	for _, f := range a.Findings {
		sum += f.Points
	}
	if sum != a.Score {
		t.Fatalf("findings should add up to score: %v vs %v", sum, a.Score)
	}
}

func TestClassify_Thresholds(t *testing.T) {
	cases := []struct {
		score float64
		want  Status
	}{
		{0, StatusHealthy},
		{2.999, StatusHealthy},
		{3.0, StatusAtRisk},
		{6.75, StatusAtRisk},
		{7.0, StatusUnhealthy},
		{20, StatusUnhealthy},
	}
	for _, tc := range cases {
		if got := Classify(tc.score); got != tc.want {
			t.Fatalf("Classify(%v): expected %s, got %s", tc.score, tc.want, got)
		}
	}
}

func TestScore_EngineeredThresholdRecords(t *testing.T) {
	// 3.0 exacto: letárgico (1.5) + apetito disminuido (1.5)
	r := baseline()
	r.EnergyLevel = EnergyLethargic
	r.Appetite = AppetiteDecreased
	if score, status := Score(r); score != 3.0 || status != StatusAtRisk {
		t.Fatalf("expected 3.0/At Risk, got %v/%s", score, status)
	}

	// 7.0 exacto: + temperatura severa (2) + BCS 2 (2)
	r.Temperature = 41.0
	r.BodyConditionScore = 2
	if score, status := Score(r); score != 7.0 || status != StatusUnhealthy {
		t.Fatalf("expected 7.0/Unhealthy, got %v/%s", score, status)
	}

	// 2.75: apetito (1.5) + pelaje enmarañado (0.75) + 1 síntoma (0.5)
	r = baseline()
	r.Appetite = AppetiteAbsent
	r.CoatCondition = CoatMatted
	r.Coughing = true
	if score, status := Score(r); score != 2.75 || status != StatusHealthy {
		t.Fatalf("expected 2.75/Healthy, got %v/%s", score, status)
	}
}
