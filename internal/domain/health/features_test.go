package health

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractFeatures_MatchesLiteralCounts(t *testing.T) {
	d, _ := ParseDate("2024-06-01")
	r := baseline()
	r.Vaccinations = []Vaccination{
		{VaccineName: "Rabies", AdministeredDate: d, Status: VaccineOverdue},
		{VaccineName: "FeLV", AdministeredDate: d, Status: VaccineUpToDate},
		{VaccineName: "FVRCP", AdministeredDate: d, Status: VaccineOverdue},
	}
	r.Allergies = []string{"Pollen"}
	r.Prescriptions = []string{"Amoxicillin"}

	f := ExtractFeatures(r)
	assert.Equal(t, Features{
		NumVaccinations:      3,
		NumAllergies:         1,
		NumChronicConditions: 0,
		NumPrescriptions:     1,
		NumVaccinesOverdue:   2,
	}, f)

	// mismo resultado desde los literales persistidos en CSV
	assert.Equal(t, f.NumVaccinations, CountItems(FormatVaccinations(r.Vaccinations)))
	assert.Equal(t, f.NumVaccinesOverdue, CountOverdueLiteral(FormatVaccinations(r.Vaccinations)))
	assert.Equal(t, f.NumAllergies, CountItems(FormatStringList(r.Allergies)))
	assert.Equal(t, 0, CountItems(FormatStringList(r.ChronicConditions)))
}

func TestCountItems_MalformedIsZero(t *testing.T) {
	assert.Equal(t, 0, CountItems("not a list"))
	assert.Equal(t, 0, CountItems("[{'status': 'overdue'"))
	assert.Equal(t, 0, CountOverdueLiteral("garbage"))
	assert.Equal(t, 0, CountOverdueLiteral("['overdue']"))
}

func TestAgeInMonths(t *testing.T) {
	now := time.Date(2026, 1, 15, 13, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, AgeInMonths(Date{}, now))
	assert.Equal(t, 0, AgeInMonths(NewDate(now), now))
	assert.Equal(t, 0, AgeInMonths(NewDate(now.AddDate(0, 0, -30)), now))
	assert.Equal(t, 1, AgeInMonths(NewDate(now.AddDate(0, 0, -31)), now))
	// 365 / 30.44 = 11.99
	assert.Equal(t, 11, AgeInMonths(NewDate(now.AddDate(0, 0, -365)), now))
	assert.Equal(t, 12, AgeInMonths(NewDate(now.AddDate(0, 0, -366)), now))
}

func TestRecordJSON_UnknownEnumsMapToUnknownVariant(t *testing.T) {
	raw := `{
		"name": "Testy", "breed": "Siamese", "date_of_birth": "2023-01-01",
		"temperature": 37.8, "heart_rate": 120, "respiratory_rate": 22,
		"blood_pressure_systolic": 100, "blood_pressure_diastolic": 65,
		"body_condition_score": 5, "hydration_status": "Mild_Dehydration",
		"mucous_membrane_color": "green", "coat_condition": "dull",
		"appetite": "decreased", "energy_level": "lethargic", "aggression": "none",
		"vomiting": true, "vaccinations": [{"vaccine_name": "Rabies"}]
	}`

	var r Record
	require.NoError(t, json.Unmarshal([]byte(raw), &r))

	assert.Equal(t, HydrationMild, r.HydrationStatus)
	assert.Equal(t, MucousUnknown, r.MucousMembraneColor)
	assert.Equal(t, "2023-01-01", r.DateOfBirth.String())
	assert.Equal(t, "Rabies", r.Vaccinations[0].VaccineName)
	assert.Equal(t, 0, CountOverdue(r.Vaccinations))
	assert.Equal(t, 37.8, r.Temperature)
}
