package datasets

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"cat-health-synth/internal/domain/health"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/datasets", func(dr chi.Router) {
		dr.Post("/", generateHandler(svc))
		dr.Get("/", listRunsHandler(svc))
		dr.Get("/{runID}", getRunHandler(svc))
		dr.Get("/{runID}/records", listRecordsHandler(svc))
		dr.Get("/{runID}/export", exportHandler(svc))
		dr.Post("/{runID}/upload", uploadHandler(svc))
	})
}

type generateRequest struct {
	Records    *int   `json:"records"`
	Supplement *int   `json:"supplement"`
	Seed       uint64 `json:"seed"`
}

type runResponse struct {
	ID           string         `json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	Seed         uint64         `json:"seed"`
	Requested    int            `json:"requested"`
	Supplement   int            `json:"supplement"`
	Total        int            `json:"total"`
	ParamsSource string         `json:"params_source"`
	LabelCounts  map[string]int `json:"label_counts"`
	Distribution []LabelShare   `json:"distribution"`
	LabelNoise   int            `json:"label_noise"`
	ExportURI    string         `json:"export_uri,omitempty"`
}

type recordResponse struct {
	Seq      int           `json:"seq"`
	Category health.Status `json:"category"`
	health.Record
}

// generateHandler godoc
// @Summary Generar dataset sintético
// @Description Genera `records` registros con categoría tomada del prior más `supplement` registros generados como Unhealthy. Cada registro se re-etiqueta con el motor de reglas. Con `seed` distinto de 0 la corrida es reproducible.
// @Tags datasets
// @Accept json
// @Produce json
// @Param payload body generateRequest true "records (default 1000), supplement (default 50), seed opcional"
// @Success 201 {object} runResponse
// @Failure 400 {string} string "invalid json / conteos inválidos"
// @Router /datasets [post]
func generateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		in := GenerateInput{Records: 1000, Supplement: 50, Seed: req.Seed}
		if req.Records != nil {
			in.Records = *req.Records
		}
		if req.Supplement != nil {
			in.Supplement = *req.Supplement
		}

		run, err := svc.Generate(r.Context(), in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toRunResponse(run))
	}
}

// listRunsHandler godoc
// @Summary Listar corridas de generación
// @Tags datasets
// @Produce json
// @Param limit query int false "Máximo de corridas (1-500). Por defecto 20"
// @Success 200 {array} runResponse
// @Router /datasets [get]
func listRunsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := queryInt(r, "limit")
		if err != nil {
			http.Error(w, "limit must be an integer", http.StatusBadRequest)
			return
		}
		runs, err := svc.ListRuns(r.Context(), limit)
		if err != nil {
			writeError(w, err)
			return
		}
		out := make([]runResponse, 0, len(runs))
		for _, run := range runs {
			out = append(out, toRunResponse(run))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getRunHandler godoc
// @Summary Obtener una corrida
// @Tags datasets
// @Produce json
// @Param runID path string true "ID de la corrida"
// @Success 200 {object} runResponse
// @Failure 404 {string} string "not found"
// @Router /datasets/{runID} [get]
func getRunHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		run, err := svc.GetRun(r.Context(), chi.URLParam(r, "runID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toRunResponse(run))
	}
}

// listRecordsHandler godoc
// @Summary Listar registros de una corrida
// @Tags datasets
// @Produce json
// @Param runID path string true "ID de la corrida"
// @Param status query string false "Filtrar por label final (Healthy, At Risk, Unhealthy)"
// @Param offset query int false "Desplazamiento"
// @Param limit query int false "Máximo de registros (1-500). Por defecto 50"
// @Success 200 {array} recordResponse
// @Failure 400 {string} string "parámetros inválidos"
// @Failure 404 {string} string "not found"
// @Router /datasets/{runID}/records [get]
func listRecordsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var filter RecordFilter
		if s := strings.TrimSpace(r.URL.Query().Get("status")); s != "" {
			st, ok := health.ParseStatus(s)
			if !ok {
				http.Error(w, "unknown status", http.StatusBadRequest)
				return
			}
			filter.Status = st
		}
		var err error
		if filter.Offset, err = queryInt(r, "offset"); err != nil {
			http.Error(w, "offset must be an integer", http.StatusBadRequest)
			return
		}
		if filter.Limit, err = queryInt(r, "limit"); err != nil {
			http.Error(w, "limit must be an integer", http.StatusBadRequest)
			return
		}

		items, err := svc.ListRecords(r.Context(), chi.URLParam(r, "runID"), filter)
		if err != nil {
			writeError(w, err)
			return
		}
		out := make([]recordResponse, 0, len(items))
		for _, it := range items {
			out = append(out, recordResponse{Seq: it.Seq, Category: it.Category, Record: it.Record})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// exportHandler godoc
// @Summary Exportar corrida como CSV
// @Tags datasets
// @Produce text/csv
// @Param runID path string true "ID de la corrida"
// @Success 200 {string} string "CSV con header"
// @Failure 404 {string} string "not found"
// @Router /datasets/{runID}/export [get]
func exportHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		runID := chi.URLParam(r, "runID")
		if _, err := svc.GetRun(r.Context(), runID); err != nil {
			writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="`+runID+`.csv"`)
		_ = svc.Export(r.Context(), runID, w)
	}
}

// uploadHandler godoc
// @Summary Publicar corrida en S3
// @Description Exporta la corrida como CSV y la sube al bucket configurado (EXPORT_S3_BUCKET).
// @Tags datasets
// @Produce json
// @Param runID path string true "ID de la corrida"
// @Success 200 {object} runResponse
// @Failure 404 {string} string "not found"
// @Failure 503 {string} string "upload sink not configured"
// @Router /datasets/{runID}/upload [post]
func uploadHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		run, err := svc.Upload(r.Context(), chi.URLParam(r, "runID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toRunResponse(run))
	}
}

func toRunResponse(run Run) runResponse {
	counts := make(map[string]int, len(health.Statuses))
	for _, st := range health.Statuses {
		counts[string(st)] = run.LabelCounts[st]
	}
	return runResponse{
		ID:           run.ID,
		CreatedAt:    run.CreatedAt,
		Seed:         run.Seed,
		Requested:    run.Requested,
		Supplement:   run.Supplement,
		Total:        run.Total,
		ParamsSource: run.ParamsSource,
		LabelCounts:  counts,
		Distribution: run.Distribution(),
		LabelNoise:   run.LabelNoise,
		ExportURI:    run.ExportURI,
	}
}

func queryInt(r *http.Request, key string) (int, error) {
	s := strings.TrimSpace(r.URL.Query().Get(key))
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, ErrUploadNotConfigured):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
