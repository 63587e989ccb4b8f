package synth

import (
	"strings"
	"testing"
	"time"

	"cat-health-synth/internal/domain/health"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = func() time.Time { return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC) }

func TestGenerate_RowCountAndLabelsMatchScore(t *testing.T) {
	g := NewGenerator(DefaultParams(), Options{Seed: 42, Now: fixedNow})
	recs := g.Generate(300, 25)
	require.Len(t, recs, 325)

	b := DefaultParams().Bounds
	for i, r := range recs {
		_, want := health.Score(r)
		require.Equal(t, want, r.HealthStatus, "row %d", i)

		assert.True(t, b.Temperature.contains(r.Temperature), "temperature %v", r.Temperature)
		assert.True(t, b.HeartRate.contains(float64(r.HeartRate)), "heart_rate %v", r.HeartRate)
		assert.True(t, b.RespiratoryRate.contains(float64(r.RespiratoryRate)), "respiratory_rate %v", r.RespiratoryRate)
		assert.True(t, b.Systolic.contains(float64(r.BloodPressureSystolic)), "systolic %v", r.BloodPressureSystolic)
		assert.True(t, b.Diastolic.contains(float64(r.BloodPressureDiastolic)), "diastolic %v", r.BloodPressureDiastolic)
		assert.True(t, b.Weight.contains(r.WeightKg), "weight %v", r.WeightKg)
		assert.GreaterOrEqual(t, r.BodyConditionScore, 1)
		assert.LessOrEqual(t, r.BodyConditionScore, 9)
		assert.Equal(t, health.Species, r.Species)
		assert.Equal(t, health.AgeInMonths(r.DateOfBirth, fixedNow()), r.AgeInMonths)
		assert.NotNil(t, r.Allergies)
		assert.NotNil(t, r.Vaccinations)
	}
}

func TestGenerate_SameSeedSameOutput(t *testing.T) {
	a := NewGenerator(DefaultParams(), Options{Seed: 7, Now: fixedNow}).Generate(50, 5)
	b := NewGenerator(DefaultParams(), Options{Seed: 7, Now: fixedNow}).Generate(50, 5)
	assert.Equal(t, a, b)

	c := NewGenerator(DefaultParams(), Options{Seed: 8, Now: fixedNow}).Generate(50, 5)
	assert.NotEqual(t, a, c)
}

func TestGenerate_SupplementRowsAreUnhealthyDraws(t *testing.T) {
	g := NewGenerator(DefaultParams(), Options{Seed: 1, Now: fixedNow})
	samples := g.GenerateSamples(0, 40)
	require.Len(t, samples, 40)

	for _, s := range samples {
		assert.Equal(t, health.StatusUnhealthy, s.Category)
		assert.True(t, s.Record.Vomiting, "unhealthy draws always vomit")
		assert.Contains(t, []int{1, 2, 7, 8, 9}, s.Record.BodyConditionScore)
		assert.Contains(t, unhealthyDiagnoses, s.Record.DiagnosisText)
		assert.Contains(t, unhealthyTreatments, s.Record.TreatmentText)
	}
}

func TestGenerate_OnRecordSeesFinalLabel(t *testing.T) {
	var calls, noisy int
	g := NewGenerator(DefaultParams(), Options{
		Seed: 99,
		Now:  fixedNow,
		OnRecord: func(cat health.Status, r health.Record) {
			calls++
			if cat != r.HealthStatus {
				noisy++
			}
		},
	})
	samples := g.GenerateSamples(200, 0)
	assert.Equal(t, 200, calls)

	var want int
	for _, s := range samples {
		if s.Category != s.Record.HealthStatus {
			want++
		}
	}
	assert.Equal(t, want, noisy)
}

func TestGenerate_ZeroAndNegativeCounts(t *testing.T) {
	g := NewGenerator(DefaultParams(), Options{Seed: 3, Now: fixedNow})
	assert.Empty(t, g.Generate(0, 0))
	assert.Empty(t, g.Generate(-5, -1))
}

func TestNarrative_NonUnhealthyTemplates(t *testing.T) {
	rng := NewRand(1)
	d, tr := narrative(rng, health.StatusHealthy)
	assert.Equal(t, "General check-up. The cat is healthy.", d)
	assert.Equal(t, "No specific treatment required.", tr)

	d, tr = narrative(rng, health.StatusAtRisk)
	assert.Equal(t, "General check-up. The cat is at risk.", d)
	assert.Equal(t, "Recommended treatment for at risk condition.", tr)
}

func TestHistory_VaccineStatusDerivedFromDate(t *testing.T) {
	s := NewSampler(DefaultParams(), NewRand(11))
	now := fixedNow()
	today := health.NewDate(now)

	for i := 0; i < 200; i++ {
		h := s.History(now)
		assert.LessOrEqual(t, len(h.Allergies), 2)
		assert.LessOrEqual(t, len(h.ChronicConditions), 2)
		assert.LessOrEqual(t, len(h.Prescriptions), 1)
		for _, v := range h.Vaccinations {
			days := int(today.Sub(v.AdministeredDate.Time).Hours() / 24)
			assert.GreaterOrEqual(t, days, 30)
			assert.LessOrEqual(t, days, 730)
			if days < 365 {
				assert.Equal(t, health.VaccineUpToDate, v.Status)
			} else {
				assert.Equal(t, health.VaccineOverdue, v.Status)
			}
		}
	}
}

func TestLoadParams_OverridesDefaults(t *testing.T) {
	yml := `
category_prior:
  - {value: Healthy, weight: 1}
names: [Garfield]
history:
  allergies: {options: [Dust], max_count: 1, empty_prob: 0}
`
	p, err := LoadParams(strings.NewReader(yml))
	require.NoError(t, err)
	assert.Equal(t, []string{"Garfield"}, p.Names)
	assert.Len(t, p.CategoryPrior, 1)
	// lo no mencionado conserva el valor por defecto
	assert.Equal(t, 0.05, p.CoughingProb)

	g := NewGenerator(p, Options{Seed: 5, Now: fixedNow})
	for _, s := range g.GenerateSamples(20, 0) {
		assert.Equal(t, health.StatusHealthy, s.Category)
		assert.Equal(t, "Garfield", s.Record.Name)
		assert.Equal(t, []string{"Dust"}, s.Record.Allergies)
	}
}

func TestLoadParams_Empty(t *testing.T) {
	p, err := LoadParams(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultParams().CategoryPrior, p.CategoryPrior)
}

func TestParamsValidate_Rejects(t *testing.T) {
	cases := map[string]func(*Params){
		"unknown category":  func(p *Params) { p.CategoryPrior = Distribution[health.Status]{{"Sick", 1}} },
		"zero weights":      func(p *Params) { p.CategoryPrior = Distribution[health.Status]{{health.StatusHealthy, 0}} },
		"missing profile":   func(p *Params) { delete(p.Vitals, health.StatusAtRisk) },
		"bad bcs":           func(p *Params) { p.Unhealthy.BodyCondition = Distribution[int]{{12, 1}} },
		"unknown hydration": func(p *Params) { p.Baseline.Hydration = Distribution[health.Hydration]{{"soggy", 1}} },
		"inverted bounds":   func(p *Params) { p.Bounds.HeartRate = Bounds{300, 50} },
		"prob > 1":          func(p *Params) { p.CoughingProb = 1.5 },
		"max_count":         func(p *Params) { p.History.Allergies.MaxCount = 9 },
		"no names":          func(p *Params) { p.Names = nil },
	}
	for name, mut := range cases {
		t.Run(name, func(t *testing.T) {
			p := DefaultParams()
			mut(&p)
			assert.ErrorIs(t, p.Validate(), ErrInvalidParams)
		})
	}
	assert.NoError(t, DefaultParams().Validate())
}

func TestLoadParams_UnknownFieldFails(t *testing.T) {
	_, err := LoadParams(strings.NewReader("not_a_field: 1\n"))
	assert.Error(t, err)
}
