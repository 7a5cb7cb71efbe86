package report

import (
	"github.com/stemsi/attendance-backend/internal/model"
)

// Placeholder fills cells with no value.
const Placeholder = "-"

// NeverLabel is shown when a student has never had a Student session.
const NeverLabel = "Never"

// Report is a flat table: headers plus rows of cells in the same column order.
// Cells hold string, int, float64, bool or nil; FormatCell renders them.
type Report struct {
	Headers []string `json:"headers"`
	Rows    [][]any  `json:"rows"`
}

var identityHeaders = []string{"Name", "ID", "Classroom", "Workshop", "Specialization"}

var summaryHeaders = []string{
	"Student Sessions", "Family Sessions", "Last Session",
	"Present", "Late", "Absent", "Justified",
}

func optional(s *string) string {
	if s == nil || *s == "" {
		return Placeholder
	}
	return *s
}

// BuildTabularReport builds the full matrix report: identity columns, session summary,
// attendance tallies, then one column per recorded date in r, newest first.
// Every student gets exactly one row, in the order given.
func BuildTabularReport(students []model.Student, r DateRange, records model.AttendanceRecords, logs model.SessionLogs) Report {
	dates := RecordedDates(records, r)

	headers := make([]string, 0, len(identityHeaders)+len(summaryHeaders)+len(dates))
	headers = append(headers, identityHeaders...)
	headers = append(headers, summaryHeaders...)
	headers = append(headers, dates...)

	rows := make([][]any, 0, len(students))
	for _, s := range students {
		stats := ComputeAttendanceStats(s.ID, r, records)
		sessions := ComputeSessionStats(s.ID, r, logs)

		last := NeverLabel
		if sessions.LastStudentSessionDate != nil {
			last = *sessions.LastStudentSessionDate
		}

		row := make([]any, 0, len(headers))
		row = append(row,
			s.Name, s.ID, optional(s.Classroom), optional(s.Workshop), optional(s.Specialization),
			sessions.StudentSessions, sessions.FamilySessions, last,
			stats.Present, stats.Late, stats.Absent, stats.Justified,
		)
		for _, date := range dates {
			if status, ok := records[date][s.ID]; ok && status != "" {
				row = append(row, string(status))
			} else {
				row = append(row, Placeholder)
			}
		}
		rows = append(rows, row)
	}

	return Report{Headers: headers, Rows: rows}
}

// BuildDailyTable lists only students with at least one record in r, one column per
// recorded date (newest first) holding the status initial.
func BuildDailyTable(students []model.Student, r DateRange, records model.AttendanceRecords) Report {
	dates := RecordedDates(records, r)
	headers := append([]string{"Student Name", "Classroom"}, dates...)

	rows := [][]any{}
	for _, s := range students {
		row := []any{s.Name, optional(s.Classroom)}
		seen := false
		for _, date := range dates {
			status, ok := records[date][s.ID]
			if ok && status != "" {
				seen = true
				row = append(row, status.Initial())
			} else {
				row = append(row, Placeholder)
			}
		}
		if seen {
			rows = append(rows, row)
		}
	}
	return Report{Headers: headers, Rows: rows}
}

var socialActionHeaders = []string{
	"Student Name", "Place of Service", "Acceptance Letter", "Unit 1", "Unit 2", "Unit 3", "Total",
}

// BuildSocialActionReport builds one row per student. Students without a record
// show an empty placement and zero hours.
func BuildSocialActionReport(students []model.Student, records map[string]model.SocialActionRecord) Report {
	rows := make([][]any, 0, len(students))
	for _, s := range students {
		rec := records[s.ID]
		place := rec.Place
		if place == "" {
			place = Placeholder
		}
		rows = append(rows, []any{
			s.Name,
			place,
			rec.AcceptanceLetter,
			float64(rec.Unit1Hours),
			float64(rec.Unit2Hours),
			float64(rec.Unit3Hours),
			ComputeTotalServiceHours(&rec),
		})
	}
	return Report{Headers: append([]string(nil), socialActionHeaders...), Rows: rows}
}
