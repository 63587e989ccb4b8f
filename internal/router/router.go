package router

import (
	"net/http"
	"time"

	_ "cat-health-synth/docs" // registra la spec swagger
	mem "cat-health-synth/internal/adapters/storage/memory"
	"cat-health-synth/internal/domain/analysis"
	"cat-health-synth/internal/domain/datasets"
	"cat-health-synth/internal/domain/health"
	"cat-health-synth/internal/domain/synth"
	"cat-health-synth/internal/middleware"
	"cat-health-synth/internal/platform/logger"
	"cat-health-synth/internal/platform/metrics"
	"cat-health-synth/internal/ports/predictor"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Logger  logger.Logger
	Metrics *metrics.Metrics // nil => sin /metrics

	// Opcional: si no viene, in-memory.
	Datasets datasets.Repository

	// Opcionales.
	Predictor predictor.Predictor
	Uploader  datasets.Uploader

	Params       *synth.Params
	ParamsSource string
	Rules        *health.Rules

	Now func() time.Time
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.AccessLog(log, opts.Metrics))
	r.Use(middleware.Recover(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	repo := opts.Datasets
	if repo == nil {
		repo = mem.NewDatasetRepo()
	}

	rules := health.DefaultRules()
	if opts.Rules != nil {
		rules = *opts.Rules
	}
	engine := health.NewEngine(rules)

	// Services por módulo
	analysisSvc := analysis.NewService(engine, analysis.Options{
		Predictor: opts.Predictor,
		Recorder:  opts.Metrics,
		Logger:    log.With(map[string]any{"module": "analysis"}),
		Now:       opts.Now,
	})
	datasetsSvc := datasets.NewService(repo, datasets.Options{
		Params:       opts.Params,
		ParamsSource: opts.ParamsSource,
		Uploader:     opts.Uploader,
		Recorder:     opts.Metrics,
		Logger:       log.With(map[string]any{"module": "datasets"}),
		Now:          opts.Now,
	})

	// Rutas por módulo
	analysis.RegisterRoutes(r, analysisSvc)
	datasets.RegisterRoutes(r, datasetsSvc)

	return r
}
