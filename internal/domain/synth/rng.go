package synth

import (
	"math/rand/v2"
	"time"
)

// Rand envuelve la fuente aleatoria. Con la misma semilla y los mismos
// Params la secuencia de registros es idéntica. No es seguro para uso
// concurrente.
type Rand struct {
	r *rand.Rand
}

// NewRand con seed 0 toma la semilla del reloj.
func NewRand(seed uint64) *Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Rand{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (g *Rand) normal(x Gaussian) float64 {
	return x.Mean + x.SD*g.r.NormFloat64()
}

func (g *Rand) uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*g.r.Float64()
}

// intBetween devuelve un entero en [lo, hi], ambos incluidos.
func (g *Rand) intBetween(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + g.r.IntN(hi-lo+1)
}

func (g *Rand) chance(p float64) bool {
	return g.r.Float64() < p
}

func (g *Rand) sign() float64 {
	if g.r.IntN(2) == 0 {
		return -1
	}
	return 1
}

func pick[T any](g *Rand, items []T) T {
	return items[g.r.IntN(len(items))]
}

func choose[T comparable](g *Rand, d Distribution[T]) T {
	u := g.r.Float64() * d.total()
	var acc float64
	for _, w := range d {
		acc += w.Weight
		if u < acc {
			return w.Value
		}
	}
	return d[len(d)-1].Value
}

// sample elige k elementos distintos conservando el orden del muestreo.
func sample[T any](g *Rand, items []T, k int) []T {
	perm := g.r.Perm(len(items))
	out := make([]T, 0, k)
	for _, i := range perm[:k] {
		out = append(out, items[i])
	}
	return out
}
