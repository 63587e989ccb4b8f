package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"cat-health-synth/internal/adapters/export/s3"
	"cat-health-synth/internal/adapters/predictor/remote"
	mem "cat-health-synth/internal/adapters/storage/memory"
	pg "cat-health-synth/internal/adapters/storage/postgres"
	"cat-health-synth/internal/adapters/storage/sqlite"
	"cat-health-synth/internal/domain/datasets"
	"cat-health-synth/internal/domain/synth"
	"cat-health-synth/internal/platform/config"
	"cat-health-synth/internal/platform/logger"
	"cat-health-synth/internal/ports/predictor"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// errReported: el comando ya escribió su salida de error; solo falta exit 1.
var errReported = errors.New("reported")

type app struct {
	v   *viper.Viper
	cfg *config.Config
	log logger.Logger

	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{v: config.New(), in: in, out: out, errOut: errOut, log: logger.Nop()}

	var envFile string
	root := &cobra.Command{
		Use:   "catgen",
		Short: "Synthetic cat health datasets and rule-based health scoring",
		Long: `catgen genera datasets sintéticos de salud felina etiquetados con un motor
de reglas determinista, y clasifica registros individuales (Healthy / At Risk / Unhealthy).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if envFile != "" {
				config.LoadDotEnv(envFile)
			} else {
				config.LoadDotEnv()
			}
			cfg, err := config.FromViper(a.v)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log = logger.New(logger.Options{
				Level:  logger.ParseLevel(cfg.LogLevel),
				Format: logger.ParseFormat(cfg.EffectiveLogFormat()),
				App:    cfg.AppName,
				Output: a.errOut,
			})
			return nil
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&envFile, "env-file", "", "archivo .env a cargar (default .env si existe)")
	pf.String("log-level", "info", "debug|info|warn|error")
	pf.String("log-format", "", "text|json (default text con ENV=development, json si no)")
	pf.String("store", config.DriverMemory, "memory|postgres|sqlite")
	pf.String("params", "", "YAML con overrides de las tablas del sampler")
	a.bind(pf.Lookup("log-level"), "LOG_LEVEL")
	a.bind(pf.Lookup("log-format"), "LOG_FORMAT")
	a.bind(pf.Lookup("store"), "STORE_DRIVER")
	a.bind(pf.Lookup("params"), "PARAMS_FILE")

	root.AddCommand(
		newGenerateCmd(a),
		newScoreCmd(a),
		newAnalyzeCmd(a),
		newCombineCmd(a),
		newServeCmd(a),
	)
	return root
}

func (a *app) bind(f *pflag.Flag, key string) {
	_ = a.v.BindPFlag(key, f)
}

// openStore abre el repositorio de corridas según STORE_DRIVER.
func (a *app) openStore(ctx context.Context) (datasets.Repository, func(), error) {
	switch a.cfg.StoreDriver {
	case config.DriverPostgres:
		db, err := pg.Open(a.cfg.DBDSN)
		if err != nil {
			return nil, nil, err
		}
		if err := pg.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return pg.NewDatasetsRepo(db), func() { _ = db.Close() }, nil
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, a.cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return sqlite.NewDatasetsRepo(db), func() { _ = db.Close() }, nil
	default:
		return mem.NewDatasetRepo(), func() {}, nil
	}
}

// loadParams devuelve nil (tablas por defecto) si no hay PARAMS_FILE.
func (a *app) loadParams() (*synth.Params, string, error) {
	path := a.cfg.ParamsFile
	if path == "" {
		return nil, "default", nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("open params: %w", err)
	}
	defer f.Close()
	p, err := synth.LoadParams(f)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", path, err)
	}
	return &p, path, nil
}

func (a *app) predictor() (predictor.Predictor, error) {
	if a.cfg.PredictorURL == "" {
		return nil, nil
	}
	c, err := remote.NewClient(remote.Config{
		BaseURL: a.cfg.PredictorURL,
		APIKey:  a.cfg.PredictorAPIKey,
		Timeout: a.cfg.PredictorTimeout,
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// uploader devuelve nil si no hay bucket configurado.
func (a *app) uploader(ctx context.Context) (datasets.Uploader, error) {
	if a.cfg.ExportS3Bucket == "" {
		return nil, nil
	}
	u, err := s3.New(ctx, s3.Config{
		Bucket:    a.cfg.ExportS3Bucket,
		Region:    a.cfg.ExportS3Region,
		Endpoint:  a.cfg.ExportS3Endpoint,
		PathStyle: a.cfg.ExportS3PathStyle,
		Prefix:    a.cfg.ExportS3Prefix,
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}
