package analysis

import (
	"encoding/json"
	"net/http"

	"cat-health-synth/internal/domain/health"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/score", scoreHandler(svc))
	r.Post("/analyze", analyzeHandler(svc))
}

type scoreResponse struct {
	health.Assessment
	Features health.Features `json:"features"`
}

// scoreHandler godoc
// @Summary Calcular score de salud
// @Description Aplica el motor de reglas a un registro y devuelve score, clasificación y el detalle por regla. Valores de enum desconocidos no suman puntos.
// @Tags analysis
// @Accept json
// @Produce json
// @Param payload body health.Record true "Registro clínico; health_status se ignora"
// @Success 200 {object} scoreResponse
// @Failure 400 {string} string "invalid json / signos vitales faltantes"
// @Router /score [post]
func scoreHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var rec health.Record
		if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := Validate(rec); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		a := svc.engine.Assess(rec)
		if a.Findings == nil {
			a.Findings = []health.Finding{}
		}
		writeJSON(w, http.StatusOK, scoreResponse{Assessment: a, Features: health.ExtractFeatures(rec)})
	}
}

// analyzeHandler godoc
// @Summary Analizar un registro
// @Description Clasifica un registro con el modelo remoto (si está configurado) o con el motor de reglas, y agrega diagnóstico, tratamiento y prescripciones sugeridas. En error responde `{success:false, status:null, error}`.
// @Tags analysis
// @Accept json
// @Produce json
// @Param payload body health.Record true "Registro clínico"
// @Success 200 {object} Result
// @Failure 400 {object} Result
// @Router /analyze [post]
func analyzeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := svc.AnalyzeJSON(r.Context(), r.Body)
		if !res.Success {
			writeJSON(w, http.StatusBadRequest, res)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
