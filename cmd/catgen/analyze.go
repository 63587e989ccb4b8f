package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"cat-health-synth/internal/domain/analysis"

	"github.com/spf13/cobra"
)

func newAnalyzeCmd(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analiza un registro JSON y escribe el resultado (exit 1 si falla)",
		Long: `Lee un registro JSON de stdin (o --file) y escribe un objeto con status,
confidence_scores, textos clínicos sugeridos y el detalle del score. Si
PREDICTOR_URL está configurado se consulta el modelo remoto; ante error se
usan las reglas. En error escribe {"success": false, "status": null, "error": ...}
y termina con código 1.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res := a.analyze(cmd.Context(), file)
			enc := json.NewEncoder(a.out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(res); err != nil {
				return fmt.Errorf("write result: %w", err)
			}
			if !res.Success {
				return errReported
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "archivo JSON (default stdin)")
	return cmd
}

// analyze resuelve predictor y entrada; cualquier falla sale como Result fallido.
func (a *app) analyze(ctx context.Context, file string) analysis.Result {
	p, err := a.predictor()
	if err != nil {
		return analysis.Failure(fmt.Errorf("predictor: %w", err))
	}
	svc := analysis.NewService(nil, analysis.Options{
		Predictor: p,
		Logger:    a.log.With(map[string]any{"module": "analysis"}),
	})

	var in io.Reader = a.in
	if file != "" && file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return analysis.Failure(fmt.Errorf("read input: %w", err))
		}
		defer f.Close()
		in = f
	}
	return svc.AnalyzeJSON(ctx, in)
}
