package report

import (
	"time"

	"github.com/stemsi/attendance-backend/internal/model"
)

// DefaultOverdueThresholdDays is how long a student may go without a
// Student-type session before being flagged.
const DefaultOverdueThresholdDays = 14

// AttendanceStats tallies a student's statuses over a range.
type AttendanceStats struct {
	Present   int `json:"present"`
	Late      int `json:"late"`
	Absent    int `json:"absent"`
	Justified int `json:"justified"`
}

// Total is the number of days with any status recorded.
func (s AttendanceStats) Total() int {
	return s.Present + s.Late + s.Absent + s.Justified
}

// ComputeAttendanceStats counts the statuses recorded for studentID on dates inside r.
// Dates without an entry for the student count for nothing; absence must be recorded.
func ComputeAttendanceStats(studentID string, r DateRange, records model.AttendanceRecords) AttendanceStats {
	var stats AttendanceStats
	for date, day := range records {
		if !r.Contains(date) {
			continue
		}
		switch day[studentID] {
		case model.StatusPresent:
			stats.Present++
		case model.StatusLate:
			stats.Late++
		case model.StatusAbsent:
			stats.Absent++
		case model.StatusJustified:
			stats.Justified++
		}
	}
	return stats
}

// SessionStats summarizes a student's preceptoría sessions.
type SessionStats struct {
	StudentSessions        int     `json:"student_sessions"`
	FamilySessions         int     `json:"family_sessions"`
	LastStudentSessionDate *string `json:"last_student_session_date"`
}

// ComputeSessionStats counts sessions dated inside r by type. LastStudentSessionDate
// ignores the range: it is the date of the first Student session in stored order,
// which is most recently inserted first.
func ComputeSessionStats(studentID string, r DateRange, logs model.SessionLogs) SessionStats {
	var stats SessionStats
	for _, l := range logs[studentID] {
		if l.Type == model.SessionTypeStudent && stats.LastStudentSessionDate == nil {
			date := l.Date
			stats.LastStudentSessionDate = &date
		}
		if !r.Contains(l.Date) {
			continue
		}
		switch l.Type {
		case model.SessionTypeStudent:
			stats.StudentSessions++
		case model.SessionTypeFamily:
			stats.FamilySessions++
		}
	}
	return stats
}

// DaysSince returns the number of calendar days between date and now's calendar day.
func DaysSince(date string, now time.Time) (int, bool) {
	d, err := model.ParseDate(date)
	if err != nil {
		return 0, false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(today.Sub(d).Hours() / 24), true
}

// IsOverdue reports whether more than thresholdDays calendar days have passed since
// lastSessionDate. A student with no session (or an unreadable date) is always overdue.
func IsOverdue(lastSessionDate *string, now time.Time, thresholdDays int) bool {
	if lastSessionDate == nil {
		return true
	}
	days, ok := DaysSince(*lastSessionDate, now)
	if !ok {
		return true
	}
	return days > thresholdDays
}

// CalendarEntry is one Absent or Late student on a calendar day.
type CalendarEntry struct {
	StudentName string                 `json:"student_name"`
	Status      model.AttendanceStatus `json:"status"`
}

// CalendarDay is the rollup for one day of the month.
type CalendarDay struct {
	Date        string          `json:"date"`
	AbsentCount int             `json:"absent_count"`
	LateCount   int             `json:"late_count"`
	Details     []CalendarEntry `json:"details"`
}

// DaysIn returns the number of days in the month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ComputeCalendarRollup builds a rollup for every day of the month, keyed by day of month.
// Only Absent and Late are surfaced. Students are visited in roster order, so details
// follow that order. Ids missing from the roster are left out of the counts and the details.
func ComputeCalendarRollup(month time.Month, year int, records model.AttendanceRecords, students []model.Student) map[int]CalendarDay {
	days := DaysIn(year, month)
	rollup := make(map[int]CalendarDay, days)

	for d := 1; d <= days; d++ {
		date := model.FormatDate(time.Date(year, month, d, 0, 0, 0, 0, time.UTC))
		day := CalendarDay{Date: date, Details: []CalendarEntry{}}

		if recorded, ok := records[date]; ok {
			for _, s := range students {
				switch status := recorded[s.ID]; status {
				case model.StatusAbsent:
					day.AbsentCount++
					day.Details = append(day.Details, CalendarEntry{StudentName: s.Name, Status: status})
				case model.StatusLate:
					day.LateCount++
					day.Details = append(day.Details, CalendarEntry{StudentName: s.Name, Status: status})
				}
			}
		}
		rollup[d] = day
	}
	return rollup
}

// ComputeTotalServiceHours sums the three units. A nil record has no hours.
func ComputeTotalServiceHours(rec *model.SocialActionRecord) float64 {
	if rec == nil {
		return 0
	}
	return float64(model.CoerceHours(float64(rec.Unit1Hours))) +
		float64(model.CoerceHours(float64(rec.Unit2Hours))) +
		float64(model.CoerceHours(float64(rec.Unit3Hours)))
}

// StudentSummary is one row of the matrix view.
type StudentSummary struct {
	Student    model.Student   `json:"student"`
	Attendance AttendanceStats `json:"attendance"`
	Sessions   SessionStats    `json:"sessions"`
	Overdue    bool            `json:"overdue"`
}

// Summarize computes per-student figures for every student on the roster, in roster order.
func Summarize(students []model.Student, r DateRange, records model.AttendanceRecords, logs model.SessionLogs, now time.Time, thresholdDays int) []StudentSummary {
	out := make([]StudentSummary, 0, len(students))
	for _, s := range students {
		sessions := ComputeSessionStats(s.ID, r, logs)
		out = append(out, StudentSummary{
			Student:    s,
			Attendance: ComputeAttendanceStats(s.ID, r, records),
			Sessions:   sessions,
			Overdue:    IsOverdue(sessions.LastStudentSessionDate, now, thresholdDays),
		})
	}
	return out
}

// OverdueStudent is a student flagged for a missing preceptoría.
type OverdueStudent struct {
	StudentID              string  `json:"student_id"`
	Name                   string  `json:"name"`
	LastStudentSessionDate *string `json:"last_student_session_date"`
	DaysSince              *int    `json:"days_since"`
}

// FindOverdue lists roster students whose last Student session is overdue.
func FindOverdue(students []model.Student, logs model.SessionLogs, now time.Time, thresholdDays int) []OverdueStudent {
	out := []OverdueStudent{}
	for _, s := range students {
		last := ComputeSessionStats(s.ID, DateRange{}, logs).LastStudentSessionDate
		if !IsOverdue(last, now, thresholdDays) {
			continue
		}
		entry := OverdueStudent{StudentID: s.ID, Name: s.Name, LastStudentSessionDate: last}
		if last != nil {
			if days, ok := DaysSince(*last, now); ok {
				entry.DaysSince = &days
			}
		}
		out = append(out, entry)
	}
	return out
}
