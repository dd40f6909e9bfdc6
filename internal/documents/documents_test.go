package documents

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"secretario/internal/derive"
	"secretario/internal/publisher"
)

func sampleCard(given, family string) derive.Card {
	baptism := time.Date(2010, time.June, 12, 0, 0, 0, 0, time.UTC)
	card := derive.Card{
		Publisher: publisher.Publisher{
			GivenName:   given,
			FamilyName:  family,
			Sex:         publisher.SexMale,
			Privilege:   publisher.PrivilegeElder,
			Type:        publisher.TypeRegularPioneer,
			BaptismDate: &baptism,
		},
		ServiceYear: 2025,
		TotalHours:  55,
	}
	card.Slots[0] = derive.CardSlot{
		Slot:         1,
		Month:        time.Date(2024, time.September, 1, 0, 0, 0, 0, time.UTC),
		Reported:     true,
		Participated: true,
		Hours:        55,
		BibleCourses: 2,
		Notes:        "Vuelve a predicar",
	}
	return card
}

func TestRenderCardFields(t *testing.T) {
	out, err := RenderCard(sampleCard("Juan", "Pérez"))
	require.NoError(t, err)

	fdf := string(out)
	assert.Contains(t, fdf, "%FDF-1.2")
	assert.Contains(t, fdf, "/T (Nombre) /V (Pérez, Juan)")
	assert.Contains(t, fdf, "/T (Fecha de bautismo) /V (12/06/2010)")
	assert.Contains(t, fdf, "/T (Marcar 5) /V /Yes", "elder checkbox")
	assert.Contains(t, fdf, "/T (Marcar 7) /V /Yes", "regular pioneer checkbox")
	assert.Contains(t, fdf, "/T (Horas 1) /V (55)")
	assert.Contains(t, fdf, "/T (Notas 1) /V (Vuelve a predicar)")
	assert.NotContains(t, fdf, "Horas 2", "unreported months leave their cells empty")
}

func TestRenderCardEscapesDelimiters(t *testing.T) {
	card := sampleCard("Juan (hijo)", "Pérez")
	out, err := RenderCard(card)
	require.NoError(t, err)
	assert.Contains(t, string(out), `Juan \(hijo\)`)
}

func TestCardsBundleCollectsFailures(t *testing.T) {
	service := NewService(nil, nil)
	cards := []derive.Card{
		sampleCard("Juan", "Pérez"),
		{ServiceYear: 2025}, // no publisher name
		sampleCard("Ana", "García"),
	}

	batch, err := service.CardsBundle(context.Background(), cards)
	require.NoError(t, err, "one bad card must not abort the batch")
	assert.Equal(t, 2, batch.Rendered)
	require.Len(t, batch.Errors, 1)

	zr, err := zip.NewReader(bytes.NewReader(batch.Archive), int64(len(batch.Archive)))
	require.NoError(t, err)
	require.Len(t, zr.File, 2)
	names := []string{zr.File[0].Name, zr.File[1].Name}
	assert.Contains(t, names, "S-21 Pérez, Juan.fdf")
	assert.Contains(t, names, "S-21 García, Ana.fdf")
}

func TestCardsBundleEmpty(t *testing.T) {
	service := NewService(nil, nil)
	_, err := service.CardsBundle(context.Background(), nil)
	require.Error(t, err)
}

func TestAttendanceWorkbookRoundTrip(t *testing.T) {
	service := NewService(nil, nil)
	summary := derive.AttendanceSummary{
		ServiceYear: 2025,
		Weekend: []derive.MonthlyAttendance{
			{Slot: 1, Month: time.Date(2024, time.September, 1, 0, 0, 0, 0, time.UTC), Meetings: 4, Total: 100, Average: 25},
		},
		WeekendAverage: 25,
	}

	out, err := service.AttendanceWorkbook(context.Background(), summary)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	// Block title on row 3, header on row 4, first data row on row 5.
	month, err := f.GetCellValue("S-88", "A5")
	require.NoError(t, err)
	assert.Equal(t, "Septiembre", month)

	avg, err := f.GetCellValue("S-88", "D6")
	require.NoError(t, err)
	assert.Equal(t, "25", avg)
}

func TestWeekendWorkbookRoundTrip(t *testing.T) {
	service := NewService(nil, nil)
	sheet := derive.S3{
		ServiceYear: 2025,
		Months: []derive.S3Month{{
			Slot:  1,
			Month: time.Date(2024, time.September, 1, 0, 0, 0, 0, time.UTC),
			Weeks: []derive.S3Week{
				{HeldOn: time.Date(2024, time.September, 8, 0, 0, 0, 0, time.UTC), Attendees: 28},
			},
			Average: 28,
		}},
	}

	out, err := service.WeekendWorkbook(context.Background(), sheet)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue("S-3", "A4")
	require.NoError(t, err)
	assert.Equal(t, "08/09/2024", v)
}
