package documents

import (
	"strconv"

	"secretario/internal/derive"
	"secretario/internal/publisher"
	dErrors "secretario/pkg/domain-errors"
)

const dateFormat = "02/01/2006"

// RenderCard fills one S-21 card into FDF bytes.
func RenderCard(card derive.Card) ([]byte, error) {
	p := card.Publisher
	if p.GivenName == "" && p.FamilyName == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "card has no publisher name")
	}

	doc := newFDF()
	doc.setText(cardFieldIDs[FieldName], p.DisplayName())
	if p.BirthDate != nil {
		doc.setText(cardFieldIDs[FieldBirthDate], p.BirthDate.Format(dateFormat))
	}
	if p.BaptismDate != nil {
		doc.setText(cardFieldIDs[FieldBaptismDate], p.BaptismDate.Format(dateFormat))
	}
	doc.setCheck(cardFieldIDs[FieldMale], p.Sex == publisher.SexMale)
	doc.setCheck(cardFieldIDs[FieldFemale], p.Sex == publisher.SexFemale)
	doc.setCheck(cardFieldIDs[FieldAnointed], p.Anointed)
	doc.setCheck(cardFieldIDs[FieldOtherSheep], !p.Anointed)
	doc.setCheck(cardFieldIDs[FieldElder], p.Privilege == publisher.PrivilegeElder)
	doc.setCheck(cardFieldIDs[FieldMinisterialServant], p.Privilege == publisher.PrivilegeMinisterialServant)
	doc.setCheck(cardFieldIDs[FieldRegularPioneer], p.Type == publisher.TypeRegularPioneer)
	doc.setText(cardFieldIDs[FieldServiceYear], strconv.Itoa(card.ServiceYear))
	if card.TotalHours > 0 {
		doc.setText(cardFieldIDs[FieldTotalHours], strconv.Itoa(card.TotalHours))
	}

	for _, slot := range card.Slots {
		if !slot.Reported {
			continue
		}
		doc.setCheck(slotFieldID(slotParticipated, slot.Slot), slot.Participated)
		doc.setCheck(slotFieldID(slotAuxiliaryPioneer, slot.Slot), slot.AuxiliaryPioneer)
		if slot.BibleCourses > 0 {
			doc.setText(slotFieldID(slotBibleCourses, slot.Slot), strconv.Itoa(slot.BibleCourses))
		}
		if slot.Hours > 0 {
			doc.setText(slotFieldID(slotHours, slot.Slot), strconv.Itoa(slot.Hours))
		}
		doc.setText(slotFieldID(slotNotes, slot.Slot), slot.Notes)
	}
	return doc.Bytes(), nil
}
