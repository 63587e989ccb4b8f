package main

import (
	"fmt"
	"os"
	"path/filepath"

	"cat-health-synth/internal/adapters/export/csvfile"

	"github.com/spf13/cobra"
)

func newCombineCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "combine [pattern...]",
		Short: "Concatena verticalmente CSVs (default *.csv) en uno solo",
		Long: `Une los CSV que matchean los patrones glob. El header es la unión de
columnas en orden de aparición; las celdas faltantes quedan vacías.`,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			if len(args) == 0 {
				args = []string{"*.csv"}
			}
			outAbs, _ := filepath.Abs(output)

			seen := map[string]bool{}
			var paths []string
			for _, pattern := range args {
				matches, err := csvfile.Glob(pattern)
				if err != nil {
					return err
				}
				for _, m := range matches {
					abs, _ := filepath.Abs(m)
					if abs == outAbs || seen[abs] {
						continue
					}
					seen[abs] = true
					paths = append(paths, m)
				}
			}
			if len(paths) == 0 {
				return fmt.Errorf("no CSV files match %v", args)
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			defer func() {
				if cerr := f.Close(); err == nil {
					err = cerr
				}
			}()

			n, err := csvfile.Combine(f, paths)
			if err != nil {
				return err
			}
			a.log.Info("csv combined", map[string]any{"files": len(paths), "rows": n, "output": output})
			fmt.Fprintf(a.out, "Combined %d files (%d rows) into %s\n", len(paths), n, output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "combined.csv", "CSV de salida")
	return cmd
}
