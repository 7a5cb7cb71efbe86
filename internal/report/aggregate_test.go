package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stemsi/attendance-backend/internal/model"
)

func strPtr(s string) *string { return &s }

func fixtureStudents() []model.Student {
	return []model.Student{
		{ID: "s1", Name: "Alice Johnson", Classroom: strPtr("International"), Workshop: strPtr("Art"), Specialization: strPtr("Design")},
		{ID: "s2", Name: "Bob Smith", Classroom: strPtr("GAC")},
	}
}

func fixtureRecords() model.AttendanceRecords {
	return model.AttendanceRecords{
		"2024-01-01": {"s1": model.StatusPresent, "s2": model.StatusLate},
		"2024-01-02": {"s1": model.StatusAbsent},
		"2024-02-10": {"s1": model.StatusJustified, "s2": model.StatusAbsent, "ghost": model.StatusAbsent},
	}
}

func TestComputeAttendanceStats(t *testing.T) {
	records := fixtureRecords()

	t.Run("january only", func(t *testing.T) {
		r, err := NewDateRange("2024-01-01", "2024-01-31")
		require.NoError(t, err)

		stats := ComputeAttendanceStats("s1", r, records)
		assert.Equal(t, AttendanceStats{Present: 1, Absent: 1}, stats)
		assert.Equal(t, 2, stats.Total())
	})

	t.Run("open range counts everything", func(t *testing.T) {
		stats := ComputeAttendanceStats("s1", DateRange{}, records)
		assert.Equal(t, AttendanceStats{Present: 1, Absent: 1, Justified: 1}, stats)
	})

	t.Run("unknown student has zero counts", func(t *testing.T) {
		assert.Zero(t, ComputeAttendanceStats("nobody", DateRange{}, records).Total())
	})

	t.Run("total never exceeds recorded dates in range", func(t *testing.T) {
		r := DateRange{From: "2024-01-02"}
		for _, id := range []string{"s1", "s2", "ghost"} {
			assert.LessOrEqual(t, ComputeAttendanceStats(id, r, records).Total(), len(RecordedDates(records, r)))
		}
	})
}

func TestNewDateRange(t *testing.T) {
	_, err := NewDateRange("2024-02-01", "2024-01-01")
	assert.ErrorIs(t, err, ErrInvertedRange)

	_, err = NewDateRange("01/02/2024", "")
	assert.ErrorIs(t, err, model.ErrInvalidDate)

	r, err := NewDateRange("", "2024-01-31")
	require.NoError(t, err)
	assert.True(t, r.Contains("1999-12-31"))
	assert.True(t, r.Contains("2024-01-31"))
	assert.False(t, r.Contains("2024-02-01"))
}

func TestRecordedDatesNewestFirst(t *testing.T) {
	dates := RecordedDates(fixtureRecords(), DateRange{})
	assert.Equal(t, []string{"2024-02-10", "2024-01-02", "2024-01-01"}, dates)
}

func TestComputeSessionStats(t *testing.T) {
	logs := model.SessionLogs{
		"s1": {
			{Date: "2024-01-15", Type: model.SessionTypeStudent},
			{Date: "2024-01-20", Type: model.SessionTypeFamily},
			{Date: "2024-01-01", Type: model.SessionTypeStudent},
		},
	}

	stats := ComputeSessionStats("s1", DateRange{}, logs)
	assert.Equal(t, 2, stats.StudentSessions)
	assert.Equal(t, 1, stats.FamilySessions)
	require.NotNil(t, stats.LastStudentSessionDate)
	assert.Equal(t, "2024-01-15", *stats.LastStudentSessionDate)

	t.Run("range narrows counts but not the last date", func(t *testing.T) {
		stats := ComputeSessionStats("s1", DateRange{From: "2024-01-16"}, logs)
		assert.Equal(t, 0, stats.StudentSessions)
		assert.Equal(t, 1, stats.FamilySessions)
		require.NotNil(t, stats.LastStudentSessionDate)
		assert.Equal(t, "2024-01-15", *stats.LastStudentSessionDate)
	})

	t.Run("family only has no last date", func(t *testing.T) {
		stats := ComputeSessionStats("s2", DateRange{}, model.SessionLogs{
			"s2": {{Date: "2024-01-20", Type: model.SessionTypeFamily}},
		})
		assert.Nil(t, stats.LastStudentSessionDate)
	})
}

func TestIsOverdue(t *testing.T) {
	now := time.Date(2024, 3, 20, 17, 30, 0, 0, time.UTC)
	today := model.FormatDate(now)

	assert.True(t, IsOverdue(nil, now, DefaultOverdueThresholdDays))
	assert.False(t, IsOverdue(&today, now, DefaultOverdueThresholdDays))
	assert.True(t, IsOverdue(strPtr(model.FormatDate(now.AddDate(0, 0, -15))), now, DefaultOverdueThresholdDays))
	assert.False(t, IsOverdue(strPtr(model.FormatDate(now.AddDate(0, 0, -14))), now, DefaultOverdueThresholdDays))
	assert.True(t, IsOverdue(strPtr("not-a-date"), now, DefaultOverdueThresholdDays))
	assert.True(t, IsOverdue(strPtr(model.FormatDate(now.AddDate(0, 0, -3))), now, 2))
}

func TestDaysSinceIgnoresTimeOfDay(t *testing.T) {
	late := time.Date(2024, 3, 20, 23, 59, 0, 0, time.UTC)
	early := time.Date(2024, 3, 20, 0, 1, 0, 0, time.UTC)

	d1, ok := DaysSince("2024-03-19", late)
	require.True(t, ok)
	d2, _ := DaysSince("2024-03-19", early)
	assert.Equal(t, 1, d1)
	assert.Equal(t, d1, d2)
}

func TestComputeCalendarRollup(t *testing.T) {
	rollup := ComputeCalendarRollup(time.February, 2024, fixtureRecords(), fixtureStudents())

	assert.Len(t, rollup, 29)
	for d := 1; d <= 29; d++ {
		day, ok := rollup[d]
		require.True(t, ok, "day %d", d)
		assert.Equal(t, len(day.Details), day.AbsentCount+day.LateCount)
		assert.NotNil(t, day.Details)
	}

	day := rollup[10]
	assert.Equal(t, "2024-02-10", day.Date)
	assert.Equal(t, 1, day.AbsentCount)
	assert.Equal(t, 0, day.LateCount)
	assert.Equal(t, []CalendarEntry{{StudentName: "Bob Smith", Status: model.StatusAbsent}}, day.Details)

	assert.Empty(t, rollup[1].Details)
}

func TestComputeCalendarRollupDetailsFollowRoster(t *testing.T) {
	rollup := ComputeCalendarRollup(time.January, 2024, fixtureRecords(), fixtureStudents())
	assert.Len(t, rollup, 31)
	assert.Equal(t, []CalendarEntry{{StudentName: "Bob Smith", Status: model.StatusLate}}, rollup[1].Details)
	assert.Equal(t, 1, rollup[1].LateCount)
	assert.Equal(t, []CalendarEntry{{StudentName: "Alice Johnson", Status: model.StatusAbsent}}, rollup[2].Details)
}

func TestComputeCalendarRollupSkipsOrphans(t *testing.T) {
	students := fixtureStudents()
	records := model.AttendanceRecords{
		"2024-03-04": {
			students[0].ID: model.StatusAbsent,
			"deleted-one":  model.StatusAbsent,
			"deleted-two":  model.StatusLate,
		},
	}

	day := ComputeCalendarRollup(time.March, 2024, records, students)[4]
	assert.Equal(t, 1, day.AbsentCount)
	assert.Equal(t, 0, day.LateCount)
	assert.Equal(t, []CalendarEntry{{StudentName: students[0].Name, Status: model.StatusAbsent}}, day.Details)
}

func TestComputeTotalServiceHours(t *testing.T) {
	assert.Zero(t, ComputeTotalServiceHours(nil))

	rec := model.SocialActionRecord{
		Unit1Hours: model.CoerceHours("10"),
		Unit2Hours: model.CoerceHours(5.5),
		Unit3Hours: model.CoerceHours("abc"),
	}
	assert.InDelta(t, 15.5, ComputeTotalServiceHours(&rec), 1e-9)
}

func TestSummarizeAndFindOverdue(t *testing.T) {
	now := time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC)
	logs := model.SessionLogs{
		"s1": {{Date: "2024-01-15", Type: model.SessionTypeStudent}},
	}
	students := fixtureStudents()

	summary := Summarize(students, DateRange{}, fixtureRecords(), logs, now, DefaultOverdueThresholdDays)
	require.Len(t, summary, 2)
	assert.Equal(t, "s1", summary[0].Student.ID)
	assert.False(t, summary[0].Overdue)
	assert.True(t, summary[1].Overdue)

	overdue := FindOverdue(students, logs, now, DefaultOverdueThresholdDays)
	require.Len(t, overdue, 1)
	assert.Equal(t, "s2", overdue[0].StudentID)
	assert.Nil(t, overdue[0].LastStudentSessionDate)
	assert.Nil(t, overdue[0].DaysSince)

	later := now.AddDate(0, 1, 0)
	overdue = FindOverdue(students, logs, later, DefaultOverdueThresholdDays)
	require.Len(t, overdue, 2)
	require.NotNil(t, overdue[0].DaysSince)
	assert.Equal(t, 36, *overdue[0].DaysSince)

	assert.NotNil(t, FindOverdue(nil, nil, now, DefaultOverdueThresholdDays))
}
