// Package documents renders the derived forms into distributable files:
// FDF overlays for the fillable S-21 card PDF, and spreadsheets for the
// attendance forms. Rendering is value-in, bytes-out; persistence stays in
// the derive layer.
package documents

import "fmt"

// Field identifies one logical slot on the S-21 card. Field ids on the PDF
// are looked up through cardFieldIDs only, never built ad hoc.
type Field int

const (
	FieldName Field = iota
	FieldBirthDate
	FieldBaptismDate
	FieldMale
	FieldFemale
	FieldAnointed
	FieldOtherSheep
	FieldElder
	FieldMinisterialServant
	FieldRegularPioneer
	FieldServiceYear
	FieldTotalHours
)

// Per-month fields, addressed by slot 1..12.
type slotField int

const (
	slotParticipated slotField = iota
	slotBibleCourses
	slotAuxiliaryPioneer
	slotHours
	slotNotes
)

// cardFieldIDs maps logical fields to the form-field names of the fillable
// S-21 PDF (Spanish edition).
var cardFieldIDs = map[Field]string{
	FieldName:               "Nombre",
	FieldBirthDate:          "Fecha de nacimiento",
	FieldBaptismDate:        "Fecha de bautismo",
	FieldMale:               "Marcar 1",
	FieldFemale:             "Marcar 2",
	FieldOtherSheep:         "Marcar 3",
	FieldAnointed:           "Marcar 4",
	FieldElder:              "Marcar 5",
	FieldMinisterialServant: "Marcar 6",
	FieldRegularPioneer:     "Marcar 7",
	FieldServiceYear:        "Año de servicio",
	FieldTotalHours:         "Total de horas",
}

// slotFieldID returns the PDF field name for a monthly cell. The form names
// its rows 1..12 starting at September.
func slotFieldID(f slotField, slot int) string {
	switch f {
	case slotParticipated:
		return fmt.Sprintf("Participacion %d", slot)
	case slotBibleCourses:
		return fmt.Sprintf("Cursos %d", slot)
	case slotAuxiliaryPioneer:
		return fmt.Sprintf("Auxiliar %d", slot)
	case slotHours:
		return fmt.Sprintf("Horas %d", slot)
	default:
		return fmt.Sprintf("Notas %d", slot)
	}
}
