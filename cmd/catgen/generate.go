package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"cat-health-synth/internal/domain/datasets"

	"github.com/spf13/cobra"
)

func newGenerateCmd(a *app) *cobra.Command {
	var upload bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Genera un dataset sintético etiquetado y lo escribe como CSV",
		Example: `  catgen generate
  catgen generate -n 5000 --supplement 200 --seed 42 -o cats.csv
  catgen generate --store sqlite --upload`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if upload && a.cfg.ExportS3Bucket == "" {
				return fmt.Errorf("--upload: %w (set EXPORT_S3_BUCKET)", datasets.ErrUploadNotConfigured)
			}

			repo, closeStore, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			params, source, err := a.loadParams()
			if err != nil {
				return err
			}
			opts := datasets.Options{
				Params:       params,
				ParamsSource: source,
				Logger:       a.log.With(map[string]any{"module": "datasets"}),
			}
			if upload {
				if opts.Uploader, err = a.uploader(ctx); err != nil {
					return err
				}
			}
			svc := datasets.NewService(repo, opts)

			run, err := svc.Generate(ctx, datasets.GenerateInput{
				Records:    a.cfg.DatasetRecords,
				Supplement: a.cfg.DatasetSupplement,
				Seed:       a.cfg.Seed,
			})
			if err != nil {
				return err
			}

			// con -o - el CSV va a stdout y el resumen a stderr
			summary := a.out
			output := a.cfg.DatasetOutput
			if output == "-" {
				summary = a.errOut
				if err := svc.Export(ctx, run.ID, a.out); err != nil {
					return err
				}
			} else if err := exportFile(ctx, svc, run.ID, output); err != nil {
				return err
			}

			if output != "-" {
				fmt.Fprintf(summary, "Dataset saved to %s\n", output)
			}
			printRunSummary(summary, run)

			if upload {
				run, err = svc.Upload(ctx, run.ID)
				if err != nil {
					return err
				}
				fmt.Fprintf(summary, "Uploaded to %s\n", run.ExportURI)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.IntP("records", "n", 1000, "registros con categoría tomada del prior")
	f.Int("supplement", 50, "registros adicionales generados como Unhealthy")
	f.Uint64("seed", 0, "semilla del RNG (0 = aleatoria, queda registrada)")
	f.StringP("output", "o", "cat_health_dataset_supplemented.csv", "CSV de salida (- para stdout)")
	f.BoolVar(&upload, "upload", false, "subir el CSV a EXPORT_S3_BUCKET")
	a.bind(f.Lookup("records"), "DATASET_RECORDS")
	a.bind(f.Lookup("supplement"), "DATASET_UNHEALTHY_SUPPLEMENT")
	a.bind(f.Lookup("seed"), "SEED")
	a.bind(f.Lookup("output"), "DATASET_OUTPUT")
	return cmd
}

func exportFile(ctx context.Context, svc *datasets.Service, runID, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return svc.Export(ctx, runID, f)
}

func printRunSummary(w io.Writer, run datasets.Run) {
	fmt.Fprintf(w, "Run %s: %d records (requested %d + supplement %d), seed %d\n",
		run.ID, run.Total, run.Requested, run.Supplement, run.Seed)
	fmt.Fprintln(w, "Label distribution:")
	for _, sh := range run.Distribution() {
		fmt.Fprintf(w, "  %-10s %6d  (%5.1f%%)\n", sh.Status, sh.Count, sh.Percent)
	}
	fmt.Fprintf(w, "Label noise: %d records relabeled away from their generation category\n", run.LabelNoise)
}
