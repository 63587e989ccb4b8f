package health

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// Date es una fecha de calendario (sin hora) serializada como YYYY-MM-DD.
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// AgeInMonths: días desde el nacimiento / 30.44, truncado. Nunca negativo.
func AgeInMonths(dob Date, now time.Time) int {
	if dob.IsZero() {
		return 0
	}
	days := math.Floor(NewDate(now).Sub(dob.Time).Hours() / 24)
	if days <= 0 {
		return 0
	}
	return int(days / 30.44)
}

type Vaccination struct {
	VaccineName      string        `json:"vaccine_name"`
	AdministeredDate Date          `json:"administered_date"`
	Status           VaccineStatus `json:"status"`
}

// Vitals agrupa los signos vitales muestreados.
type Vitals struct {
	Temperature            float64 `json:"temperature"`
	HeartRate              int     `json:"heart_rate"`
	RespiratoryRate        int     `json:"respiratory_rate"`
	BloodPressureSystolic  int     `json:"blood_pressure_systolic"`
	BloodPressureDiastolic int     `json:"blood_pressure_diastolic"`
}

// Record es una observación clínica completa de un gato.
// Una vez re-etiquetado por el generador no se modifica.
type Record struct {
	Name        string `json:"name"`
	Breed       Breed  `json:"breed"`
	Species     string `json:"species"`
	DateOfBirth Date   `json:"date_of_birth"`
	AgeInMonths int    `json:"age_in_months"`

	Vitals
	WeightKg float64 `json:"weight_kg"`

	BodyConditionScore  int            `json:"body_condition_score"`
	HydrationStatus     Hydration      `json:"hydration_status"`
	MucousMembraneColor MucousMembrane `json:"mucous_membrane_color"`
	CoatCondition       Coat           `json:"coat_condition"`

	Appetite    Appetite   `json:"appetite"`
	EnergyLevel Energy     `json:"energy_level"`
	Aggression  Aggression `json:"aggression"`

	Vomiting bool `json:"vomiting"`
	Diarrhea bool `json:"diarrhea"`
	Coughing bool `json:"coughing"`
	Limping  bool `json:"limping"`

	Vaccinations      []Vaccination `json:"vaccinations"`
	Allergies         []string      `json:"allergies"`
	ChronicConditions []string      `json:"chronic_conditions"`
	Prescriptions     []string      `json:"prescriptions"`

	DiagnosisText string `json:"diagnosis_text"`
	TreatmentText string `json:"treatment_text"`

	HealthStatus Status `json:"health_status,omitempty"`
}

// SymptomCount cuenta los síntomas booleanos presentes (0..4).
func (r Record) SymptomCount() int {
	n := 0
	for _, v := range []bool{r.Vomiting, r.Diarrhea, r.Coughing, r.Limping} {
		if v {
			n++
		}
	}
	return n
}
