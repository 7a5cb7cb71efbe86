package report

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stemsi/attendance-backend/internal/model"
)

func TestBuildTabularReport(t *testing.T) {
	students := fixtureStudents()
	logs := model.SessionLogs{
		"s1": {
			{Date: "2024-01-15", Type: model.SessionTypeStudent},
			{Date: "2024-01-10", Type: model.SessionTypeFamily},
		},
	}

	rep := BuildTabularReport(students, DateRange{From: "2024-01-01", To: "2024-01-31"}, fixtureRecords(), logs)

	assert.Equal(t, []string{
		"Name", "ID", "Classroom", "Workshop", "Specialization",
		"Student Sessions", "Family Sessions", "Last Session",
		"Present", "Late", "Absent", "Justified",
		"2024-01-02", "2024-01-01",
	}, rep.Headers)
	require.Len(t, rep.Rows, len(students))

	for _, row := range rep.Rows {
		assert.Len(t, row, len(rep.Headers))
	}

	assert.Equal(t, []any{
		"Alice Johnson", "s1", "International", "Art", "Design",
		1, 1, "2024-01-15",
		1, 0, 1, 0,
		"Absent", "Present",
	}, rep.Rows[0])

	assert.Equal(t, []any{
		"Bob Smith", "s2", "GAC", "-", "-",
		0, 0, "Never",
		0, 1, 0, 0,
		"-", "Late",
	}, rep.Rows[1])
}

func TestBuildTabularReportEmptyRoster(t *testing.T) {
	rep := BuildTabularReport(nil, DateRange{}, nil, nil)
	assert.Len(t, rep.Headers, 12)
	assert.NotNil(t, rep.Rows)
	assert.Empty(t, rep.Rows)
}

func TestBuildDailyTable(t *testing.T) {
	students := append(fixtureStudents(), model.Student{ID: "s3", Name: "Charlie Brown"})

	rep := BuildDailyTable(students, DateRange{}, fixtureRecords())
	assert.Equal(t, []string{"Student Name", "Classroom", "2024-02-10", "2024-01-02", "2024-01-01"}, rep.Headers)
	require.Len(t, rep.Rows, 2)
	assert.Equal(t, []any{"Alice Johnson", "International", "J", "A", "P"}, rep.Rows[0])
	assert.Equal(t, []any{"Bob Smith", "GAC", "A", "-", "L"}, rep.Rows[1])
}

func TestBuildSocialActionReport(t *testing.T) {
	students := fixtureStudents()
	records := map[string]model.SocialActionRecord{
		"s1": {StudentID: "s1", Place: "Food Bank", AcceptanceLetter: true, Unit1Hours: 10, Unit2Hours: 2.5},
	}

	rep := BuildSocialActionReport(students, records)
	assert.Equal(t, []string{"Student Name", "Place of Service", "Acceptance Letter", "Unit 1", "Unit 2", "Unit 3", "Total"}, rep.Headers)
	require.Len(t, rep.Rows, 2)
	assert.Equal(t, []any{"Alice Johnson", "Food Bank", true, 10.0, 2.5, 0.0, 12.5}, rep.Rows[0])
	assert.Equal(t, []any{"Bob Smith", "-", false, 0.0, 0.0, 0.0, 0.0}, rep.Rows[1])

	assert.Equal(t, "Alice Johnson\tFood Bank\tYes\t10.0\t2.5\t0.0\t12.5", strings.Split(EncodeDelimited(rep, Tab), "\n")[1])
}

func TestFormatCell(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{nil, "-"},
		{"Present", "Present"},
		{3, "3"},
		{int64(7), "7"},
		{12.26, "12.3"},
		{4.0, "4.0"},
		{true, "Yes"},
		{false, "No"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatCell(tc.in))
	}
}

func TestFormatCellNamedTypes(t *testing.T) {
	type count int
	hours := model.Hours(2.5)
	var missing *model.Hours

	assert.Equal(t, "2.5", FormatCell(model.Hours(2.5)))
	assert.Equal(t, "3.0", FormatCell(model.Hours(3)))
	assert.Equal(t, "4", FormatCell(count(4)))
	assert.Equal(t, "Late", FormatCell(model.StatusLate))
	assert.Equal(t, "2.5", FormatCell(&hours))
	assert.Equal(t, "-", FormatCell(missing))
	assert.Equal(t, "-", FormatCell([]string{"x"}))
}

func TestEncodeDelimitedRoundTrip(t *testing.T) {
	rep := Report{
		Headers: []string{"Name", "Notes"},
		Rows: [][]any{
			{"Doe, Jane", `said "hi"`},
			{"Plain", nil},
		},
	}

	out := EncodeDelimited(rep, Comma)
	assert.False(t, strings.HasSuffix(out, "\n"))

	parsed, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Name", "Notes"},
		{"Doe, Jane", `said "hi"`},
		{"Plain", "-"},
	}, parsed)
}

func TestEncodeDelimitedFullReport(t *testing.T) {
	students := fixtureStudents()
	rep := BuildTabularReport(students, DateRange{}, fixtureRecords(), nil)

	out := EncodeDelimited(rep, Comma)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, len(students)+1)
	assert.True(t, strings.HasPrefix(lines[0], "Name,ID,Classroom"))

	r := csv.NewReader(strings.NewReader(out))
	parsed, err := r.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, rep.Headers, parsed[0])
	assert.Equal(t, FormatRow(rep.Rows[0]), parsed[1])
}

func TestEncodeDelimitedTabAndFallback(t *testing.T) {
	rep := Report{Headers: []string{"a", "b"}, Rows: [][]any{{1, 2.0}}}

	assert.Equal(t, "a\tb\n1\t2.0", EncodeDelimited(rep, Tab))
	assert.Equal(t, "a,b\n1,2.0", EncodeDelimited(rep, Delimiter(';')))
}
