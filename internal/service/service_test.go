package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stemsi/attendance-backend/internal/config"
	"github.com/stemsi/attendance-backend/internal/model"
	"github.com/stemsi/attendance-backend/internal/report"
	"github.com/stemsi/attendance-backend/internal/repository"
	"github.com/stemsi/attendance-backend/internal/repository/memory"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []model.DashboardEvent
}

func (p *recordingPublisher) Publish(_ context.Context, evt model.DashboardEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
}

func (p *recordingPublisher) types() []model.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]model.EventType, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

type fixture struct {
	store  *memory.Store
	events *recordingPublisher
	now    time.Time
}

func newFixture() *fixture {
	return &fixture{
		store:  memory.NewStore(),
		events: &recordingPublisher{},
		now:    time.Date(2024, 1, 20, 10, 0, 0, 0, time.UTC),
	}
}

func (f *fixture) clock() time.Time { return f.now }

func (f *fixture) addStudent(t *testing.T, name string) model.Student {
	t.Helper()
	s := model.Student{Name: name}
	require.NoError(t, f.store.Students.Create(context.Background(), &s))
	return s
}

func testConfig() *config.Config {
	return &config.Config{
		Location:             time.UTC,
		OverdueThresholdDays: report.DefaultOverdueThresholdDays,
		JWTSecret:            "test-secret",
		JWTExpiry:            time.Hour,
		BcryptCost:           4,
	}
}

func TestParseNames(t *testing.T) {
	assert.Equal(t, []string{"Ann", "Ben", "Cid Doe"}, ParseNames(" Ann ,Ben\n\n  Cid Doe ,, \n"))
	assert.Empty(t, ParseNames(" , \n "))
}

func TestStudentService(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := NewStudentService(f.store.Students, f.events)

	t.Run("create trims and blanks optional fields", func(t *testing.T) {
		s, err := svc.Create(ctx, model.CreateStudentRequest{Name: "  Zoe  ", Classroom: " GAC ", Workshop: "  "})
		require.NoError(t, err)
		assert.Equal(t, "Zoe", s.Name)
		require.NotNil(t, s.Classroom)
		assert.Equal(t, "GAC", *s.Classroom)
		assert.Nil(t, s.Workshop)
	})

	t.Run("blank name rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, model.CreateStudentRequest{Name: "   "})
		assert.ErrorIs(t, err, ErrNameRequired)
	})

	t.Run("bulk import", func(t *testing.T) {
		created, err := svc.BulkImport(ctx, "Ann, Ben\nCid")
		require.NoError(t, err)
		require.Len(t, created, 3)
		for _, s := range created {
			assert.NotEmpty(t, s.ID)
		}

		_, err = svc.BulkImport(ctx, " ,\n")
		assert.ErrorIs(t, err, ErrNoNames)
	})

	t.Run("search", func(t *testing.T) {
		found, err := svc.List(ctx, " ann ")
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "Ann", found[0].Name)
	})

	t.Run("update and delete unknown", func(t *testing.T) {
		_, err := svc.Update(ctx, "missing", model.UpdateStudentRequest{Name: "X"})
		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.ErrorIs(t, svc.Delete(ctx, "missing"), repository.ErrNotFound)
	})

	assert.Equal(t, []model.EventType{model.EventStudentsChanged, model.EventStudentsChanged}, f.events.types())
}

func TestAttendanceService(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	alice := f.addStudent(t, "Alice")
	bob := f.addStudent(t, "Bob")
	svc := NewAttendanceService(f.store.Attendance, f.events)

	day, err := svc.SaveDay(ctx, "2024-01-01", map[string]model.AttendanceStatus{
		alice.ID: "present",
		bob.ID:   model.StatusLate,
	})
	require.NoError(t, err)
	assert.Equal(t, model.DayAttendance{alice.ID: model.StatusPresent, bob.ID: model.StatusLate}, day)

	day, err = svc.SaveDay(ctx, "2024-01-01", map[string]model.AttendanceStatus{alice.ID: model.StatusAbsent})
	require.NoError(t, err)
	assert.Equal(t, model.StatusAbsent, day[alice.ID])
	assert.Equal(t, model.StatusLate, day[bob.ID])

	_, err = svc.SaveDay(ctx, "2024-13-01", nil)
	assert.ErrorIs(t, err, model.ErrInvalidDate)

	_, err = svc.SaveDay(ctx, "2024-01-02", map[string]model.AttendanceStatus{alice.ID: "Sick"})
	assert.ErrorIs(t, err, model.ErrInvalidStatus)

	_, err = svc.SaveDay(ctx, "2024-01-02", map[string]model.AttendanceStatus{"not-a-uuid": model.StatusPresent})
	assert.ErrorIs(t, err, ErrInvalidStudentID)

	got, err := svc.GetDay(ctx, "2024-01-02")
	require.NoError(t, err)
	assert.Empty(t, got)

	assert.Equal(t, []model.EventType{model.EventAttendanceSaved, model.EventAttendanceSaved}, f.events.types())
	for _, evt := range f.events.events {
		assert.Equal(t, "2024-01-01", evt.Date)
		assert.True(t, evt.At.IsZero(), "publisher stamps the event time")
	}
}

func TestSessionService(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	alice := f.addStudent(t, "Alice")
	svc := NewSessionService(f.store.Students, f.store.SessionLogs, f.events, f.clock)

	log, err := svc.Add(ctx, alice.ID, model.CreateSessionLogRequest{Notes: "  first talk "})
	require.NoError(t, err)
	assert.Equal(t, "2024-01-20", log.Date)
	assert.Equal(t, model.SessionTypeStudent, log.Type)
	assert.Equal(t, "first talk", log.Notes)

	_, err = svc.Add(ctx, alice.ID, model.CreateSessionLogRequest{Date: "2024-01-02", Type: "family", Notes: "parents"})
	require.NoError(t, err)

	logs, err := svc.List(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, model.SessionTypeFamily, logs[0].Type)
	assert.Equal(t, "2024-01-02", logs[0].Date)

	_, err = svc.Add(ctx, alice.ID, model.CreateSessionLogRequest{Notes: "   "})
	assert.ErrorIs(t, err, ErrNotesRequired)

	_, err = svc.Add(ctx, alice.ID, model.CreateSessionLogRequest{Date: "20-01-2024", Notes: "x"})
	assert.ErrorIs(t, err, model.ErrInvalidDate)

	_, err = svc.Add(ctx, "missing", model.CreateSessionLogRequest{Notes: "x"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSocialActionServiceMergesFields(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	alice := f.addStudent(t, "Alice")
	svc := NewSocialActionService(f.store.Students, f.store.SocialActions, f.events)

	place := " Food Bank "
	hours := model.Hours(4)
	rec, err := svc.Save(ctx, alice.ID, model.UpdateSocialActionRequest{Place: &place, Unit1Hours: &hours})
	require.NoError(t, err)
	assert.Equal(t, "Food Bank", rec.Place)

	letter := true
	rec, err = svc.Save(ctx, alice.ID, model.UpdateSocialActionRequest{AcceptanceLetter: &letter})
	require.NoError(t, err)
	assert.Equal(t, "Food Bank", rec.Place)
	assert.True(t, rec.AcceptanceLetter)
	assert.Equal(t, model.Hours(4), rec.Unit1Hours)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, *rec, all[alice.ID])

	_, err = svc.Save(ctx, "missing", model.UpdateSocialActionRequest{})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

type failingAttendance struct{}

func (failingAttendance) ListByDate(context.Context, string) (model.DayAttendance, error) {
	return nil, errors.New("connection refused")
}
func (failingAttendance) ListAll(context.Context) (model.AttendanceRecords, error) {
	return nil, errors.New("connection refused")
}
func (failingAttendance) UpsertDay(context.Context, string, model.DayAttendance) error {
	return errors.New("connection refused")
}

type mapCache struct {
	mu       sync.Mutex
	version  int64
	summary  map[string]*SummaryReport
	overdue  *OverdueSnapshot
	sumHits  int
	overHits int
}

func newMapCache() *mapCache { return &mapCache{summary: map[string]*SummaryReport{}} }

func (c *mapCache) key(v int64, r report.DateRange) string {
	return config.CacheKey.SummaryReportKey(v, r.From, r.To)
}

func (c *mapCache) Version(context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version, nil
}

func (c *mapCache) GetSummary(_ context.Context, v int64, r report.DateRange) (*SummaryReport, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.summary[c.key(v, r)]
	if ok {
		c.sumHits++
	}
	return s, ok
}

func (c *mapCache) SetSummary(_ context.Context, v int64, r report.DateRange, s *SummaryReport) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.summary[c.key(v, r)] = s
}

func (c *mapCache) GetOverdue(context.Context) (*OverdueSnapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.overdue == nil {
		return nil, false
	}
	c.overHits++
	return c.overdue, true
}

func (c *mapCache) SetOverdue(_ context.Context, snap *OverdueSnapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.overdue = snap
}

func (c *mapCache) bump() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.version++
}

func newReportService(f *fixture, attendance AttendanceStore, cache ReportCache) *ReportService {
	svc := NewReportService(testConfig(), f.store.Students, attendance, f.store.SessionLogs, f.store.SocialActions, cache, zerolog.Nop())
	svc.now = f.clock
	return svc
}

func TestReportServiceSummary(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	alice := f.addStudent(t, "Alice Johnson")
	bob := f.addStudent(t, "Bob Smith")

	require.NoError(t, f.store.Attendance.UpsertDay(ctx, "2024-01-01", model.DayAttendance{alice.ID: model.StatusPresent}))
	require.NoError(t, f.store.Attendance.UpsertDay(ctx, "2024-01-02", model.DayAttendance{alice.ID: model.StatusAbsent}))
	require.NoError(t, f.store.SessionLogs.Create(ctx, &model.SessionLog{StudentID: alice.ID, Date: "2024-01-15", Type: model.SessionTypeStudent}))

	svc := newReportService(f, f.store.Attendance, nil)
	rng, err := report.NewDateRange("2024-01-01", "2024-01-31")
	require.NoError(t, err)

	summary := svc.Summary(ctx, rng)
	require.Len(t, summary.Students, 2)
	require.Len(t, summary.Table.Rows, 2)

	assert.Equal(t, alice.ID, summary.Students[0].Student.ID)
	assert.Equal(t, report.AttendanceStats{Present: 1, Absent: 1}, summary.Students[0].Attendance)
	require.NotNil(t, summary.Students[0].Sessions.LastStudentSessionDate)
	assert.Equal(t, "2024-01-15", *summary.Students[0].Sessions.LastStudentSessionDate)
	assert.False(t, summary.Students[0].Overdue)

	assert.Equal(t, bob.ID, summary.Students[1].Student.ID)
	assert.True(t, summary.Students[1].Overdue)
}

func TestReportServiceFailOpen(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.addStudent(t, "Alice")

	svc := newReportService(f, failingAttendance{}, nil)

	snap := svc.LoadSnapshot(ctx)
	assert.Len(t, snap.Students, 1)
	assert.NotNil(t, snap.Attendance)
	assert.Empty(t, snap.Attendance)

	summary := svc.Summary(ctx, report.DateRange{})
	require.Len(t, summary.Students, 1)
	assert.Zero(t, summary.Students[0].Attendance.Total())
}

func TestReportServiceCachesByVersion(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.addStudent(t, "Alice")
	cache := newMapCache()
	svc := newReportService(f, f.store.Attendance, cache)

	first := svc.Summary(ctx, report.DateRange{})
	second := svc.Summary(ctx, report.DateRange{})
	assert.Same(t, first, second)
	assert.Equal(t, 1, cache.sumHits)

	f.addStudent(t, "Bob")
	cache.bump()

	third := svc.Summary(ctx, report.DateRange{})
	assert.Len(t, third.Students, 2)
}

func TestReportServiceOverdueSnapshot(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	alice := f.addStudent(t, "Alice")
	cache := newMapCache()
	svc := newReportService(f, f.store.Attendance, cache)

	stored := svc.RefreshOverdueSnapshot(ctx)
	require.Len(t, stored.Students, 1)
	assert.Equal(t, report.DefaultOverdueThresholdDays, stored.ThresholdDays)

	assert.Same(t, stored, svc.Overdue(ctx))

	require.NoError(t, f.store.SessionLogs.Create(ctx, &model.SessionLog{StudentID: alice.ID, Date: "2024-01-19", Type: model.SessionTypeStudent}))
	cache.bump()

	fresh := svc.Overdue(ctx)
	assert.NotSame(t, stored, fresh)
	assert.Empty(t, fresh.Students)

	t.Run("stale day is recomputed", func(t *testing.T) {
		svc.RefreshOverdueSnapshot(ctx)
		f.now = f.now.AddDate(0, 0, 1)
		assert.NotSame(t, cache.overdue.Report, svc.Overdue(ctx))
	})
}

func TestReportServiceCalendarAndExports(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	alice := f.addStudent(t, "Alice")
	require.NoError(t, f.store.Attendance.UpsertDay(ctx, "2024-02-05", model.DayAttendance{alice.ID: model.StatusLate}))
	svc := newReportService(f, f.store.Attendance, nil)

	cal, err := svc.Calendar(ctx, 2024, 2)
	require.NoError(t, err)
	require.Len(t, cal.Days, 29)
	assert.Equal(t, "2024-02-01", cal.Days[0].Date)
	assert.Equal(t, 1, cal.Days[4].LateCount)

	_, err = svc.Calendar(ctx, 2024, 13)
	assert.ErrorIs(t, err, ErrInvalidMonth)

	file, err := svc.Export(ctx, report.DateRange{}, FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "attendance_full_report.csv", file.Filename)
	assert.Contains(t, string(file.Data), "Alice,")

	file, err = svc.Export(ctx, report.DateRange{}, FormatXLSX)
	require.NoError(t, err)
	assert.Equal(t, "attendance_full_report.xlsx", file.Filename)
	assert.NotEmpty(t, file.Data)

	file, err = svc.ExportSocialAction(ctx, FormatTSV)
	require.NoError(t, err)
	assert.True(t, file.Inline)
	assert.Equal(t, "Alice\t-\tNo\t0.0\t0.0\t0.0\t0.0", string(file.Data[len("Student Name\tPlace of Service\tAcceptance Letter\tUnit 1\tUnit 2\tUnit 3\tTotal\n"):]))

	_, err = svc.Export(ctx, report.DateRange{}, FormatJSON)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	daily := svc.Daily(ctx, report.DateRange{})
	assert.Equal(t, []any{"Alice", "-", "L"}, daily.Rows[0])
}

func TestParseExportFormat(t *testing.T) {
	f, err := ParseExportFormat("", FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	f, err = ParseExportFormat(" XLSX ", FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)

	_, err = ParseExportFormat("pdf", FormatCSV)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestAuthServiceLogin(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	auth := NewAuthService(testConfig(), f.store.Admins)
	admins := NewAdminService(f.store.Admins, auth)

	_, err := admins.Create(ctx, "teacher@school.test", "Tess", "secret123", "teacher")
	require.NoError(t, err)

	_, err = admins.Create(ctx, "x@school.test", "X", "secret123", "JANITOR")
	assert.ErrorIs(t, err, ErrInvalidRole)

	resp, err := auth.Login(ctx, model.AdminLoginRequest{Email: "teacher@school.test", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, model.RoleTeacher, resp.Admin.Role)
	assert.Contains(t, resp.Permissions, model.PermissionAttendanceWrite)
	assert.NotContains(t, resp.Permissions, model.PermissionStudentsDelete)

	claims, err := auth.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.Admin.ID, claims.AdminID)
	assert.True(t, claims.HasPermission(model.PermissionReportsExport))

	_, err = auth.Login(ctx, model.AdminLoginRequest{Email: "teacher@school.test", Password: "wrong-pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = auth.Login(ctx, model.AdminLoginRequest{Email: "nobody@school.test", Password: "secret123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = auth.ValidateToken(resp.Token + "x")
	assert.Error(t, err)
}

func TestAdminServiceBootstrap(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	cfg := testConfig()
	auth := NewAuthService(cfg, f.store.Admins)
	admins := NewAdminService(f.store.Admins, auth)

	_, err := admins.Bootstrap(ctx, cfg)
	assert.ErrorIs(t, err, ErrBootstrapAccountUnset)

	cfg.AdminEmail = " head@school.test "
	cfg.AdminName = "Head"
	cfg.AdminPassword = "secret123"
	cfg.AdminRole = "admin"

	created, err := admins.Bootstrap(ctx, cfg)
	require.NoError(t, err)
	assert.Equal(t, "head@school.test", created.Email)
	assert.Equal(t, model.RoleAdmin, created.Role)

	resp, err := auth.Login(ctx, model.AdminLoginRequest{Email: "head@school.test", Password: "secret123"})
	require.NoError(t, err)
	assert.Contains(t, resp.Permissions, model.PermissionSystemRead)

	// A restart with a changed password keeps the stored account.
	cfg.AdminPassword = "other-pass"
	again, err := admins.Bootstrap(ctx, cfg)
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)
	_, err = auth.Login(ctx, model.AdminLoginRequest{Email: "head@school.test", Password: "secret123"})
	assert.NoError(t, err)

	cfg.AdminEmail = "janitor@school.test"
	cfg.AdminRole = "JANITOR"
	_, err = admins.Bootstrap(ctx, cfg)
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestEventServiceStampsUnsetTime(t *testing.T) {
	svc := NewEventService(nil, zerolog.Nop())
	fixed := time.Date(2024, 3, 1, 9, 30, 0, 0, time.FixedZone("WIB", 7*3600))
	svc.now = func() time.Time { return fixed }

	evt := svc.stamp(model.DashboardEvent{Type: model.EventStudentsChanged})
	assert.Equal(t, fixed.UTC(), evt.At)
	assert.Equal(t, time.UTC, evt.At.Location())

	earlier := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	evt = svc.stamp(model.DashboardEvent{Type: model.EventStudentsChanged, At: earlier})
	assert.Equal(t, earlier, evt.At)
}

func TestEventServiceWithoutRedisIsNoop(t *testing.T) {
	svc := NewEventService(nil, zerolog.Nop())
	assert.False(t, svc.Enabled())
	assert.Nil(t, svc.Subscribe(context.Background()))
	svc.Publish(context.Background(), model.DashboardEvent{Type: model.EventAttendanceSaved})
}
