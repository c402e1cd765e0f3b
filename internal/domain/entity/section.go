package entity

// Secciones estáticas (particiones organizacionales de primer nivel).
// Cada una tiene un recurso de items pre-aprovisionado por las migraciones.
const (
	SectionGeneral  = "GENERAL"
	SectionHospital = "HOSPITAL"
	SectionRelief   = "RELIEF"
)

// StaticSections devuelve las secciones pre-declaradas en orden estable.
func StaticSections() []string {
	return []string{SectionGeneral, SectionHospital, SectionRelief}
}

// IsStaticSection indica si el nombre corresponde a una sección pre-declarada.
func IsStaticSection(name string) bool {
	switch name {
	case SectionGeneral, SectionHospital, SectionRelief:
		return true
	}
	return false
}
