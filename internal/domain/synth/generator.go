package synth

import (
	"time"

	"cat-health-synth/internal/domain/health"
)

// Options configura una corrida del Generator.
type Options struct {
	// Seed 0 usa el reloj.
	Seed uint64
	Now  func() time.Time
	// Scorer re-etiqueta cada registro. nil usa las reglas por defecto.
	Scorer *health.Engine
	// OnRecord se invoca por registro ya etiquetado, con su categoría de generación.
	OnRecord func(category health.Status, rec health.Record)
}

// Sample es un registro junto con la categoría con la que se generó.
// Cuando difiere del label final cuenta como ruido de etiqueta.
type Sample struct {
	Category health.Status
	Record   health.Record
}

type Generator struct {
	sampler   *Sampler
	assembler *Assembler
	scorer    *health.Engine
	onRecord  func(health.Status, health.Record)
}

func NewGenerator(p Params, opts Options) *Generator {
	s := NewSampler(p, NewRand(opts.Seed))
	scorer := opts.Scorer
	if scorer == nil {
		scorer = health.NewEngine(health.DefaultRules())
	}
	return &Generator{
		sampler:   s,
		assembler: NewAssembler(s, opts.Now),
		scorer:    scorer,
		onRecord:  opts.OnRecord,
	}
}

// Generate produce n registros con categoría tomada del prior y luego
// supplement registros generados como Unhealthy. Cada label final es el
// status que asigna el scorer, no la categoría de generación.
func (g *Generator) Generate(n, supplement int) []health.Record {
	samples := g.GenerateSamples(n, supplement)
	out := make([]health.Record, len(samples))
	for i, s := range samples {
		out[i] = s.Record
	}
	return out
}

func (g *Generator) GenerateSamples(n, supplement int) []Sample {
	n, supplement = max(n, 0), max(supplement, 0)
	out := make([]Sample, 0, n+supplement)
	for i := 0; i < n; i++ {
		out = append(out, g.one(g.sampler.Category()))
	}
	for i := 0; i < supplement; i++ {
		out = append(out, g.one(health.StatusUnhealthy))
	}
	return out
}

func (g *Generator) one(cat health.Status) Sample {
	rec := g.assembler.Assemble(cat)
	_, rec.HealthStatus = g.scorer.Score(rec)
	if g.onRecord != nil {
		g.onRecord(cat, rec)
	}
	return Sample{Category: cat, Record: rec}
}
