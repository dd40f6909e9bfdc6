package report

import (
	"time"

	"secretario/internal/publisher"
	"secretario/internal/serviceyear"
	dErrors "secretario/pkg/domain-errors"
)

// Report is one publisher's ministry activity for one calendar month.
// (PublisherID, Month) is unique; Month is always the first of the month in
// UTC.
type Report struct {
	ID             int64      `json:"id"`
	PublisherID    int64      `json:"publisher_id"`
	Month          time.Time  `json:"month"`
	SubmittedMonth *time.Time `json:"submitted_month,omitempty"`
	Participated   bool       `json:"participated"`
	BibleCourses   int        `json:"bible_courses"`
	// Type records the publisher type at the time of the report. A publisher
	// promoted to pioneer later must not retroactively change old cards.
	Type               publisher.Type `json:"type"`
	Hours              int            `json:"hours"`
	SupplementaryHours int            `json:"supplementary_hours"`
	Notes              string         `json:"notes"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

// Normalize forces the natural-key month onto the first of the month.
func (r *Report) Normalize() {
	r.Month = serviceyear.FirstOfMonth(r.Month)
	if r.SubmittedMonth != nil {
		m := serviceyear.FirstOfMonth(*r.SubmittedMonth)
		r.SubmittedMonth = &m
	}
}

// Validate enforces invariants before any write. Hours are only meaningful
// for pioneer types; a plain publisher's hours are zeroed, not rejected,
// because imported historical sheets carry stray values.
func (r *Report) Validate() error {
	if r.PublisherID == 0 {
		return dErrors.New(dErrors.CodeBadRequest, "publisher is required")
	}
	if r.Month.IsZero() {
		return dErrors.New(dErrors.CodeBadRequest, "month is required")
	}
	if r.Hours < 0 || r.SupplementaryHours < 0 || r.BibleCourses < 0 {
		return dErrors.New(dErrors.CodeBadRequest, "counts must not be negative")
	}
	return nil
}
