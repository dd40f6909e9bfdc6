package derive

import (
	"sort"
	"time"

	"secretario/internal/activity"
	"secretario/internal/attendance"
	"secretario/internal/publisher"
	"secretario/internal/report"
	"secretario/internal/serviceyear"
)

// pioneerHourGoal is the annual-average monthly hour requirement the credit
// cap is anchored to.
const pioneerHourGoal = 55

// PioneerCredit returns the supplementary hours credited to a regular
// pioneer's month. The credit tops hours up to at most the goal and never
// goes negative.
func PioneerCredit(hours, supplementary int) int {
	room := pioneerHourGoal - hours
	if room < 0 {
		return 0
	}
	if supplementary < room {
		return max(supplementary, 0)
	}
	return room
}

// Average is sum/count with an explicit zero for empty periods.
func Average(sum, count int) float64 {
	if count == 0 {
		return 0
	}
	return float64(sum) / float64(count)
}

// AverageOfAverages is the arithmetic mean of the period averages. The
// paper forms average the monthly averages rather than weighting by meeting
// count, so a month with few meetings moves the year figure as much as a
// full one; that distortion is the required behavior.
func AverageOfAverages(averages []float64) float64 {
	if len(averages) == 0 {
		return 0
	}
	var sum float64
	for _, a := range averages {
		sum += a
	}
	return sum / float64(len(averages))
}

// cardHours returns the hours a report contributes to its card: pioneer
// types only, with the regular-pioneer supplementary credit applied.
func cardHours(r *report.Report) int {
	if !r.Type.ReportsHours() {
		return 0
	}
	if r.Type == publisher.TypeRegularPioneer {
		return r.Hours + PioneerCredit(r.Hours, r.SupplementaryHours)
	}
	return r.Hours
}

// BuildS1 computes the monthly congregation statistics from the month's
// reports. Only participated rows count toward the totals; the active and
// inactive figures resolve every publisher's rolling window at that month.
func BuildS1(month time.Time, rows []*report.Report, publishers []*publisher.Publisher, histories map[int64][]activity.MonthParticipation, territories int) S1 {
	month = serviceyear.FirstOfMonth(month)
	out := S1{
		Month:       month,
		ServiceYear: serviceyear.Of(month),
		Territories: territories,
	}

	byType := map[publisher.Type]*TypeTotals{}
	for _, r := range rows {
		if !r.Participated {
			continue
		}
		t, ok := byType[r.Type]
		if !ok {
			t = &TypeTotals{Type: r.Type, Label: r.Type.Label()}
			byType[r.Type] = t
		}
		t.Reports++
		t.BibleCourses += r.BibleCourses
		t.Hours += cardHours(r)
	}
	for _, t := range byType {
		out.Totals = append(out.Totals, *t)
	}
	sort.Slice(out.Totals, func(i, j int) bool { return out.Totals[i].Type < out.Totals[j].Type })

	for _, p := range publishers {
		res := activity.Resolve(histories[p.ID], month)
		if res.Status == activity.StatusActive {
			out.ActivePublishers++
		} else {
			out.InactivePublishers++
		}
	}
	return out
}

// BuildCard fills the S-21 card for one publisher and service year. rows
// must cover the service year; history must additionally cover the six
// months before it so transition notes resolve at the year boundary.
func BuildCard(p *publisher.Publisher, rows []*report.Report, year int, history []activity.MonthParticipation, exceptions activity.ExceptionList) Card {
	card := Card{Publisher: *p, ServiceYear: year}
	for slot := 1; slot <= 12; slot++ {
		card.Slots[slot-1] = CardSlot{Slot: slot, Month: serviceyear.MonthAt(year, slot)}
	}

	for _, r := range rows {
		if serviceyear.Of(r.Month) != year {
			continue
		}
		slot := &card.Slots[serviceyear.MonthSlot(r.Month)-1]
		slot.Reported = true
		slot.Participated = r.Participated
		slot.AuxiliaryPioneer = r.Type == publisher.TypeAuxiliaryPioneer
		slot.BibleCourses = r.BibleCourses
		slot.Hours = cardHours(r)
		slot.Notes = r.Notes
		if slot.Notes == "" {
			res := activity.Resolve(history, r.Month)
			slot.Notes = activity.TransitionNote(res, r.Month, exceptions)
		}
		card.TotalHours += slot.Hours
		if r.Participated {
			card.TotalCourses += slot.BibleCourses
		}
	}

	_, end := serviceyear.Bounds(year)
	card.Status = activity.Resolve(history, end.AddDate(0, -1, 0)).Status
	return card
}

// BuildAttendanceSummary computes the S-88 monthly averages for a service
// year. Each kind's table runs September through the last month with a
// meeting of that kind, so a kind whose records stop early is not diluted
// by the other's trailing months; interior months without meetings stay in
// the table with a zero average and still count toward the year figure.
func BuildAttendanceSummary(year int, meetings []*attendance.Attendance) AttendanceSummary {
	out := AttendanceSummary{ServiceYear: year}

	type bucket struct {
		meetings int
		total    int
	}
	var weekend, midweek [12]bucket
	lastWeekend, lastMidweek := 0, 0
	for _, m := range meetings {
		if serviceyear.Of(m.HeldOn) != year {
			continue
		}
		slot := serviceyear.MonthSlot(m.HeldOn)
		b, last := &midweek[slot-1], &lastMidweek
		if m.Kind() == attendance.KindWeekend {
			b, last = &weekend[slot-1], &lastWeekend
		}
		if slot > *last {
			*last = slot
		}
		b.meetings++
		b.total += m.Attendees
	}

	build := func(buckets [12]bucket, lastSlot int) ([]MonthlyAttendance, float64) {
		var rows []MonthlyAttendance
		var averages []float64
		for slot := 1; slot <= lastSlot; slot++ {
			b := buckets[slot-1]
			row := MonthlyAttendance{
				Slot:     slot,
				Month:    serviceyear.MonthAt(year, slot),
				Meetings: b.meetings,
				Total:    b.total,
				Average:  Average(b.total, b.meetings),
			}
			rows = append(rows, row)
			averages = append(averages, row.Average)
		}
		return rows, AverageOfAverages(averages)
	}

	out.Weekend, out.WeekendAverage = build(weekend, lastWeekend)
	out.Midweek, out.MidweekAverage = build(midweek, lastMidweek)
	return out
}

// BuildS3 lists the weekend meetings of a service year week by week.
func BuildS3(year int, meetings []*attendance.Attendance) S3 {
	out := S3{ServiceYear: year}

	bySlot := map[int][]S3Week{}
	for _, m := range meetings {
		if serviceyear.Of(m.HeldOn) != year || m.Kind() != attendance.KindWeekend {
			continue
		}
		slot := serviceyear.MonthSlot(m.HeldOn)
		bySlot[slot] = append(bySlot[slot], S3Week{HeldOn: m.HeldOn, Attendees: m.Attendees})
	}

	for slot := 1; slot <= 12; slot++ {
		weeks, ok := bySlot[slot]
		if !ok {
			continue
		}
		sort.Slice(weeks, func(i, j int) bool { return weeks[i].HeldOn.Before(weeks[j].HeldOn) })
		var total int
		for _, w := range weeks {
			total += w.Attendees
		}
		out.Months = append(out.Months, S3Month{
			Slot:    slot,
			Month:   serviceyear.MonthAt(year, slot),
			Weeks:   weeks,
			Average: Average(total, len(weeks)),
		})
	}
	return out
}

// BuildS10 computes the annual summary over a service year's reports.
func BuildS10(year int, rows []*report.Report, publishers []*publisher.Publisher, histories map[int64][]activity.MonthParticipation) S10 {
	out := S10{ServiceYear: year}

	byType := map[publisher.Type]*TypeTotals{}
	reportersByMonth := map[time.Time]int{}
	for _, r := range rows {
		if serviceyear.Of(r.Month) != year || !r.Participated {
			continue
		}
		t, ok := byType[r.Type]
		if !ok {
			t = &TypeTotals{Type: r.Type, Label: r.Type.Label()}
			byType[r.Type] = t
		}
		t.Reports++
		t.BibleCourses += r.BibleCourses
		t.Hours += cardHours(r)
		reportersByMonth[r.Month]++
	}
	for _, t := range byType {
		out.Totals = append(out.Totals, *t)
	}
	sort.Slice(out.Totals, func(i, j int) bool { return out.Totals[i].Type < out.Totals[j].Type })

	var monthly []float64
	for _, n := range reportersByMonth {
		if n > out.PeakReporters {
			out.PeakReporters = n
		}
		monthly = append(monthly, float64(n))
	}
	out.AverageReporters = AverageOfAverages(monthly)

	_, end := serviceyear.Bounds(year)
	closing := end.AddDate(0, -1, 0)
	for _, p := range publishers {
		if activity.Resolve(histories[p.ID], closing).Status == activity.StatusActive {
			out.ActiveAtClose++
		}
	}
	return out
}
