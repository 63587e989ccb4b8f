package health

// Features son las columnas derivadas que el colaborador de entrenamiento
// agrega al dataset. Entrenamiento e inferencia deben calcularlas igual;
// por eso se exponen desde acá en vez de duplicarse.
type Features struct {
	NumVaccinations      int `json:"num_vaccinations"`
	NumAllergies         int `json:"num_allergies"`
	NumChronicConditions int `json:"num_chronic_conditions"`
	NumPrescriptions     int `json:"num_prescriptions"`
	NumVaccinesOverdue   int `json:"num_vaccines_overdue"`
}

func ExtractFeatures(r Record) Features {
	return Features{
		NumVaccinations:      len(r.Vaccinations),
		NumAllergies:         len(r.Allergies),
		NumChronicConditions: len(r.ChronicConditions),
		NumPrescriptions:     len(r.Prescriptions),
		NumVaccinesOverdue:   CountOverdue(r.Vaccinations),
	}
}

func CountOverdue(vs []Vaccination) int {
	n := 0
	for _, v := range vs {
		if v.Status == VaccineOverdue {
			n++
		}
	}
	return n
}

// CountItems cuenta elementos de un literal de lista; 0 si no se puede parsear.
func CountItems(literal string) int {
	items, err := parseList(literal)
	if err != nil {
		return 0
	}
	return len(items)
}

// CountOverdueLiteral cuenta entradas con status overdue; 0 si no se puede parsear.
func CountOverdueLiteral(literal string) int {
	items, err := parseList(literal)
	if err != nil {
		return 0
	}
	n := 0
	for _, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			continue
		}
		if st, _ := m["status"].(string); st == string(VaccineOverdue) {
			n++
		}
	}
	return n
}
