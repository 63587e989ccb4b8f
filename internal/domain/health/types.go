package health

import "strings"

// Status es la clasificación de salud (también se usa como categoría de generación).
// @Enum Healthy, At Risk, Unhealthy
type Status string

const (
	StatusHealthy   Status = "Healthy"
	StatusAtRisk    Status = "At Risk"
	StatusUnhealthy Status = "Unhealthy"
)

// Statuses en el orden en que se reportan (distribuciones, confidence scores).
var Statuses = []Status{StatusHealthy, StatusAtRisk, StatusUnhealthy}

// ParseStatus acepta el label exacto o variantes con guion bajo / minúsculas ("at_risk").
func ParseStatus(s string) (Status, bool) {
	switch normalize(s) {
	case "healthy":
		return StatusHealthy, true
	case "at_risk":
		return StatusAtRisk, true
	case "unhealthy":
		return StatusUnhealthy, true
	default:
		return "", false
	}
}

func (s Status) Valid() bool {
	switch s {
	case StatusHealthy, StatusAtRisk, StatusUnhealthy:
		return true
	default:
		return false
	}
}

const Species = "Cat"

type Breed string

const (
	BreedSiamese           Breed = "Siamese"
	BreedPersian           Breed = "Persian"
	BreedMaineCoon         Breed = "Maine Coon"
	BreedBengal            Breed = "Bengal"
	BreedSphynx            Breed = "Sphynx"
	BreedDomesticShorthair Breed = "Domestic Shorthair"
	BreedRagdoll           Breed = "Ragdoll"
	BreedScottishFold      Breed = "Scottish Fold"
	BreedOther             Breed = "Other"
)

var Breeds = []Breed{
	BreedSiamese, BreedPersian, BreedMaineCoon, BreedBengal, BreedSphynx,
	BreedDomesticShorthair, BreedRagdoll, BreedScottishFold, BreedOther,
}

// Los enums clínicos son cerrados. En el borde (JSON/CSV externo) cualquier
// valor desconocido se mapea a la variante Unknown, que no suma penalidad.

type Hydration string

const (
	HydrationNormal   Hydration = "normal"
	HydrationMild     Hydration = "mild_dehydration"
	HydrationModerate Hydration = "moderate_dehydration"
	HydrationSevere   Hydration = "severe_dehydration"
	HydrationUnknown  Hydration = "unknown"
)

func ParseHydration(s string) Hydration {
	switch h := Hydration(normalize(s)); h {
	case HydrationNormal, HydrationMild, HydrationModerate, HydrationSevere:
		return h
	default:
		return HydrationUnknown
	}
}

func (h *Hydration) UnmarshalText(b []byte) error {
	*h = ParseHydration(string(b))
	return nil
}

type MucousMembrane string

const (
	MucousPink    MucousMembrane = "pink"
	MucousPale    MucousMembrane = "pale"
	MucousWhite   MucousMembrane = "white"
	MucousBlue    MucousMembrane = "blue"
	MucousYellow  MucousMembrane = "yellow"
	MucousRed     MucousMembrane = "red"
	MucousUnknown MucousMembrane = "unknown"
)

func ParseMucousMembrane(s string) MucousMembrane {
	switch m := MucousMembrane(normalize(s)); m {
	case MucousPink, MucousPale, MucousWhite, MucousBlue, MucousYellow, MucousRed:
		return m
	default:
		return MucousUnknown
	}
}

func (m *MucousMembrane) UnmarshalText(b []byte) error {
	*m = ParseMucousMembrane(string(b))
	return nil
}

type Coat string

const (
	CoatHealthy Coat = "healthy"
	CoatDull    Coat = "dull"
	CoatGreasy  Coat = "greasy"
	CoatMatted  Coat = "matted"
	CoatPatchy  Coat = "patchy"
	CoatUnknown Coat = "unknown"
)

func ParseCoat(s string) Coat {
	switch c := Coat(normalize(s)); c {
	case CoatHealthy, CoatDull, CoatGreasy, CoatMatted, CoatPatchy:
		return c
	default:
		return CoatUnknown
	}
}

func (c *Coat) UnmarshalText(b []byte) error {
	*c = ParseCoat(string(b))
	return nil
}

type Appetite string

const (
	AppetiteNormal    Appetite = "normal"
	AppetiteDecreased Appetite = "decreased"
	AppetiteIncreased Appetite = "increased"
	AppetiteAbsent    Appetite = "absent"
	AppetiteUnknown   Appetite = "unknown"
)

func ParseAppetite(s string) Appetite {
	switch a := Appetite(normalize(s)); a {
	case AppetiteNormal, AppetiteDecreased, AppetiteIncreased, AppetiteAbsent:
		return a
	default:
		return AppetiteUnknown
	}
}

func (a *Appetite) UnmarshalText(b []byte) error {
	*a = ParseAppetite(string(b))
	return nil
}

type Energy string

const (
	EnergyNormal      Energy = "normal"
	EnergyLethargic   Energy = "lethargic"
	EnergyHyperactive Energy = "hyperactive"
	EnergyUnknown     Energy = "unknown"
)

func ParseEnergy(s string) Energy {
	switch e := Energy(normalize(s)); e {
	case EnergyNormal, EnergyLethargic, EnergyHyperactive:
		return e
	default:
		return EnergyUnknown
	}
}

func (e *Energy) UnmarshalText(b []byte) error {
	*e = ParseEnergy(string(b))
	return nil
}

type Aggression string

const (
	AggressionNone     Aggression = "none"
	AggressionMild     Aggression = "mild"
	AggressionModerate Aggression = "moderate"
	AggressionSevere   Aggression = "severe"
	AggressionUnknown  Aggression = "unknown"
)

func ParseAggression(s string) Aggression {
	switch a := Aggression(normalize(s)); a {
	case AggressionNone, AggressionMild, AggressionModerate, AggressionSevere:
		return a
	default:
		return AggressionUnknown
	}
}

func (a *Aggression) UnmarshalText(b []byte) error {
	*a = ParseAggression(string(b))
	return nil
}

type VaccineStatus string

const (
	VaccineUpToDate VaccineStatus = "up_to_date"
	VaccineOverdue  VaccineStatus = "overdue"
	VaccineUnknown  VaccineStatus = "unknown"
)

func ParseVaccineStatus(s string) VaccineStatus {
	switch v := VaccineStatus(normalize(s)); v {
	case VaccineUpToDate, VaccineOverdue:
		return v
	default:
		return VaccineUnknown
	}
}

func (v *VaccineStatus) UnmarshalText(b []byte) error {
	*v = ParseVaccineStatus(string(b))
	return nil
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.ReplaceAll(s, " ", "_")
}
