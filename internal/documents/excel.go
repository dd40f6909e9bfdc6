package documents

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"secretario/internal/derive"
)

var monthNames = [...]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

func monthName(m int) string { return monthNames[m-1] }

// renderAttendanceWorkbook writes the S-88 layout: one block per meeting
// kind with monthly rows and the average-of-averages footer.
func renderAttendanceWorkbook(summary derive.AttendanceSummary) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetSheetName(sheet, "S-88"); err != nil {
		return nil, err
	}
	sheet = "S-88"

	f.SetCellValue(sheet, "A1", fmt.Sprintf("Registro de asistencia, año de servicio %d", summary.ServiceYear))

	writeBlock := func(startRow int, title string, rows []derive.MonthlyAttendance, yearAverage float64) int {
		f.SetCellValue(sheet, cell("A", startRow), title)
		header := startRow + 1
		f.SetCellValue(sheet, cell("A", header), "Mes")
		f.SetCellValue(sheet, cell("B", header), "Reuniones")
		f.SetCellValue(sheet, cell("C", header), "Asistencia total")
		f.SetCellValue(sheet, cell("D", header), "Promedio")
		r := header + 1
		for _, row := range rows {
			f.SetCellValue(sheet, cell("A", r), monthName(int(row.Month.Month())))
			f.SetCellValue(sheet, cell("B", r), row.Meetings)
			f.SetCellValue(sheet, cell("C", r), row.Total)
			f.SetCellValue(sheet, cell("D", r), row.Average)
			r++
		}
		f.SetCellValue(sheet, cell("A", r), "Promedio del año")
		f.SetCellValue(sheet, cell("D", r), yearAverage)
		return r + 2
	}

	next := writeBlock(3, "Reunión del fin de semana", summary.Weekend, summary.WeekendAverage)
	writeBlock(next, "Reunión de entre semana", summary.Midweek, summary.MidweekAverage)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// renderWeekendWorkbook writes the S-3 layout: each month's weekend
// meetings week by week with a monthly average.
func renderWeekendWorkbook(sheet derive.S3) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	name := f.GetSheetName(0)
	if err := f.SetSheetName(name, "S-3"); err != nil {
		return nil, err
	}
	name = "S-3"

	f.SetCellValue(name, "A1", fmt.Sprintf("Asistencia del fin de semana, año de servicio %d", sheet.ServiceYear))

	r := 3
	for _, month := range sheet.Months {
		f.SetCellValue(name, cell("A", r), monthName(int(month.Month.Month())))
		r++
		for _, week := range month.Weeks {
			f.SetCellValue(name, cell("A", r), week.HeldOn.Format("02/01/2006"))
			f.SetCellValue(name, cell("B", r), week.Attendees)
			r++
		}
		f.SetCellValue(name, cell("A", r), "Promedio")
		f.SetCellValue(name, cell("B", r), month.Average)
		r += 2
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
