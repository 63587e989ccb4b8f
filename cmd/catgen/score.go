package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"cat-health-synth/internal/adapters/export/csvfile"
	"cat-health-synth/internal/domain/analysis"
	"cat-health-synth/internal/domain/health"

	"github.com/spf13/cobra"
)

type scoredRow struct {
	File   string        `json:"file"`
	Row    int           `json:"row"`
	Name   string        `json:"name"`
	Score  float64       `json:"score"`
	Status health.Status `json:"status"`
	Label  health.Status `json:"label,omitempty"`
	Error  string        `json:"error,omitempty"`
}

func newScoreCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "score [file...]",
		Short: "Re-calcula score y status de registros CSV o JSON",
		Long: `Aplica el motor de reglas a cada registro. Acepta CSV (columnas del dataset)
o JSON (un registro o un array). "-" o sin argumentos lee JSON de stdin.
Si el archivo trae health_status, se reporta la concordancia con el score.
Las filas sin signos vitales o con body_condition_score fuera de 1..9 no se
puntúan y se reportan como inválidas.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"-"}
			}
			var rows []scoredRow
			for _, path := range args {
				recs, err := a.readRecords(path)
				if err != nil {
					return err
				}
				for i, rec := range recs {
					row := scoredRow{File: path, Row: i + 1, Name: rec.Name, Label: rec.HealthStatus}
					// mismas reglas de entrada que /score y analyze: sin BCS no hay score
					if err := analysis.Validate(rec); err != nil {
						row.Error = err.Error()
					} else {
						row.Score, row.Status = health.Score(rec)
					}
					rows = append(rows, row)
				}
			}

			switch strings.ToLower(format) {
			case "json":
				enc := json.NewEncoder(a.out)
				enc.SetIndent("", "  ")
				if rows == nil {
					rows = []scoredRow{}
				}
				return enc.Encode(rows)
			case "text", "":
				return printScores(a.out, rows)
			default:
				return fmt.Errorf("unknown format %q", format)
			}
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "text|json")
	return cmd
}

func (a *app) readRecords(path string) ([]health.Record, error) {
	if path == "-" {
		return decodeRecords(a.in)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		recs, err := decodeRecords(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return recs, nil
	}
	return csvfile.ReadFile(path)
}

// decodeRecords acepta un objeto o un array de registros.
func decodeRecords(r io.Reader) ([]health.Record, error) {
	var raw json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "[") {
		var recs []health.Record
		if err := json.Unmarshal(raw, &recs); err != nil {
			return nil, fmt.Errorf("invalid json: %w", err)
		}
		return recs, nil
	}
	var rec health.Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	return []health.Record{rec}, nil
}

func printScores(w io.Writer, rows []scoredRow) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tROW\tNAME\tSCORE\tSTATUS\tLABEL")
	counts := map[health.Status]int{}
	labeled, agree, invalid := 0, 0, 0
	for _, r := range rows {
		if r.Error != "" {
			fmt.Fprintf(tw, "%s\t%d\t%s\t-\tinvalid: %s\t%s\n", r.File, r.Row, r.Name, r.Error, r.Label)
			invalid++
			continue
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%.2f\t%s\t%s\n", r.File, r.Row, r.Name, r.Score, r.Status, r.Label)
		counts[r.Status]++
		if r.Label != "" {
			labeled++
			if r.Label == r.Status {
				agree++
			}
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\n%d records\n", len(rows))
	for _, st := range health.Statuses {
		fmt.Fprintf(w, "  %-10s %6d\n", st, counts[st])
	}
	if invalid > 0 {
		fmt.Fprintf(w, "  %-10s %6d\n", "invalid", invalid)
	}
	if labeled > 0 {
		fmt.Fprintf(w, "Label agreement: %d/%d\n", agree, labeled)
	}
	return nil
}
