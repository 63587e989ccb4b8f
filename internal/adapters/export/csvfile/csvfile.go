// Package csvfile persiste datasets de registros en CSV con un header fijo.
// Las columnas de lista se guardan como literales ("['Rabies']") y los
// booleanos como True/False, el formato que consumen los pipelines de ML.
package csvfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"cat-health-synth/internal/domain/health"
)

var ErrMissingColumn = errors.New("missing required column")

// Columns es el orden del header.
var Columns = []string{
	"species", "name", "breed", "date_of_birth", "age_in_months", "weight_kg",
	"temperature", "heart_rate", "respiratory_rate",
	"blood_pressure_systolic", "blood_pressure_diastolic",
	"body_condition_score", "hydration_status", "mucous_membrane_color", "coat_condition",
	"appetite", "energy_level", "aggression",
	"vomiting", "diarrhea", "coughing", "limping",
	"vaccinations", "diagnosis_text", "treatment_text",
	"allergies", "chronic_conditions", "prescriptions",
	"health_status",
}

func Write(w io.Writer, recs []health.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, r := range recs {
		if err := cw.Write(row(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile crea (o trunca) path y escribe el dataset.
func WriteFile(path string, recs []health.Record) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, recs); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func row(r health.Record) []string {
	return []string{
		r.Species,
		r.Name,
		string(r.Breed),
		r.DateOfBirth.String(),
		strconv.Itoa(r.AgeInMonths),
		formatFloat(r.WeightKg),
		formatFloat(r.Temperature),
		strconv.Itoa(r.HeartRate),
		strconv.Itoa(r.RespiratoryRate),
		strconv.Itoa(r.BloodPressureSystolic),
		strconv.Itoa(r.BloodPressureDiastolic),
		strconv.Itoa(r.BodyConditionScore),
		string(r.HydrationStatus),
		string(r.MucousMembraneColor),
		string(r.CoatCondition),
		string(r.Appetite),
		string(r.EnergyLevel),
		string(r.Aggression),
		formatBool(r.Vomiting),
		formatBool(r.Diarrhea),
		formatBool(r.Coughing),
		formatBool(r.Limping),
		health.FormatVaccinations(r.Vaccinations),
		r.DiagnosisText,
		r.TreatmentText,
		health.FormatStringList(r.Allergies),
		health.FormatStringList(r.ChronicConditions),
		health.FormatStringList(r.Prescriptions),
		string(r.HealthStatus),
	}
}

// formatFloat siempre deja al menos un decimal: 4 -> "4.0".
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEn") {
		s += ".0"
	}
	return s
}

func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// ReadRecords lee un CSV con header. Las columnas se ubican por nombre, así
// que el orden puede variar. Columnas desconocidas se ignoran; faltantes
// quedan en cero salvo las de signos vitales, que son obligatorias.
func ReadRecords(rd io.Reader) ([]health.Record, error) {
	cr := csv.NewReader(rd)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return []health.Record{}, nil
		}
		return nil, err
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, c := range []string{"temperature", "heart_rate", "respiratory_rate", "blood_pressure_systolic"} {
		if _, ok := idx[c]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, c)
		}
	}

	out := []health.Record{}
	line := 1
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line++
		rec, err := parseRow(cellGetter(idx, fields))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func ReadFile(path string) ([]health.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadRecords(f)
}

func cellGetter(idx map[string]int, fields []string) func(string) string {
	return func(col string) string {
		i, ok := idx[col]
		if !ok || i >= len(fields) {
			return ""
		}
		return strings.TrimSpace(fields[i])
	}
}

func parseRow(get func(string) string) (health.Record, error) {
	var (
		r   health.Record
		err error
	)
	r.Species = get("species")
	r.Name = get("name")
	r.Breed = health.Breed(get("breed"))
	if r.DateOfBirth, err = health.ParseDate(get("date_of_birth")); err != nil {
		return r, fmt.Errorf("date_of_birth: %w", err)
	}

	ints := []struct {
		col string
		dst *int
	}{
		{"age_in_months", &r.AgeInMonths},
		{"heart_rate", &r.HeartRate},
		{"respiratory_rate", &r.RespiratoryRate},
		{"blood_pressure_systolic", &r.BloodPressureSystolic},
		{"blood_pressure_diastolic", &r.BloodPressureDiastolic},
		{"body_condition_score", &r.BodyConditionScore},
	}
	for _, f := range ints {
		if *f.dst, err = parseInt(get(f.col)); err != nil {
			return r, fmt.Errorf("%s: %w", f.col, err)
		}
	}
	if r.Temperature, err = parseFloat(get("temperature")); err != nil {
		return r, fmt.Errorf("temperature: %w", err)
	}
	if r.WeightKg, err = parseFloat(get("weight_kg")); err != nil {
		return r, fmt.Errorf("weight_kg: %w", err)
	}

	r.HydrationStatus = health.ParseHydration(get("hydration_status"))
	r.MucousMembraneColor = health.ParseMucousMembrane(get("mucous_membrane_color"))
	r.CoatCondition = health.ParseCoat(get("coat_condition"))
	r.Appetite = health.ParseAppetite(get("appetite"))
	r.EnergyLevel = health.ParseEnergy(get("energy_level"))
	r.Aggression = health.ParseAggression(get("aggression"))

	r.Vomiting = parseBool(get("vomiting"))
	r.Diarrhea = parseBool(get("diarrhea"))
	r.Coughing = parseBool(get("coughing"))
	r.Limping = parseBool(get("limping"))

	// listas malformadas quedan vacías, igual que en el conteo de features
	r.Vaccinations, _ = health.ParseVaccinations(get("vaccinations"))
	r.Allergies, _ = health.ParseStringList(get("allergies"))
	r.ChronicConditions, _ = health.ParseStringList(get("chronic_conditions"))
	r.Prescriptions, _ = health.ParseStringList(get("prescriptions"))

	r.DiagnosisText = get("diagnosis_text")
	r.TreatmentText = get("treatment_text")
	if st, ok := health.ParseStatus(get("health_status")); ok {
		r.HealthStatus = st
	}
	return r, nil
}

// parseInt acepta "180" y también "180.0".
func parseInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}

// Combine concatena verticalmente los CSV de paths en w. El header es la
// unión de columnas en orden de aparición; celdas faltantes quedan vacías.
// Devuelve la cantidad de filas escritas.
func Combine(w io.Writer, paths []string) (int, error) {
	type table struct {
		header []string
		rows   [][]string
	}
	var (
		tables []table
		union  []string
		seen   = map[string]bool{}
	)
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			return 0, err
		}
		cr := csv.NewReader(f)
		cr.FieldsPerRecord = -1
		all, err := cr.ReadAll()
		_ = f.Close()
		if err != nil {
			return 0, fmt.Errorf("%s: %w", p, err)
		}
		if len(all) == 0 {
			continue
		}
		t := table{header: all[0], rows: all[1:]}
		for _, h := range t.header {
			if !seen[h] {
				seen[h] = true
				union = append(union, h)
			}
		}
		tables = append(tables, t)
	}

	cw := csv.NewWriter(w)
	if len(union) == 0 {
		cw.Flush()
		return 0, cw.Error()
	}
	if err := cw.Write(union); err != nil {
		return 0, err
	}
	pos := make(map[string]int, len(union))
	for i, h := range union {
		pos[h] = i
	}
	n := 0
	for _, t := range tables {
		for _, fields := range t.rows {
			out := make([]string, len(union))
			for i, v := range fields {
				if i < len(t.header) {
					out[pos[t.header[i]]] = v
				}
			}
			if err := cw.Write(out); err != nil {
				return n, err
			}
			n++
		}
	}
	cw.Flush()
	return n, cw.Error()
}

// Glob expande un patrón y devuelve los paths ordenados.
func Glob(pattern string) ([]string, error) {
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}
