package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/attendance-backend/internal/config"
	"github.com/stemsi/attendance-backend/internal/model"
	"github.com/stemsi/attendance-backend/internal/report"
)

// ExportFormat selects the encoding of a downloadable report.
type ExportFormat string

const (
	FormatJSON ExportFormat = "json"
	FormatCSV  ExportFormat = "csv"
	FormatTSV  ExportFormat = "tsv"
	FormatXLSX ExportFormat = "xlsx"
)

// ParseExportFormat accepts any letter case. An empty value is def.
func ParseExportFormat(raw string, def ExportFormat) (ExportFormat, error) {
	switch f := ExportFormat(strings.ToLower(strings.TrimSpace(raw))); f {
	case "":
		return def, nil
	case FormatJSON, FormatCSV, FormatTSV, FormatXLSX:
		return f, nil
	}
	return "", ErrUnsupportedFormat
}

const (
	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeTSV  = "text/tab-separated-values; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	socialActionBaseName = "social_action_report"
)

// ExportFile is an encoded report ready to be written to the client.
// Inline files (clipboard text) are meant to be shown rather than saved.
type ExportFile struct {
	Filename    string
	ContentType string
	Inline      bool
	Data        []byte
}

// Snapshot is one consistent-enough read of all four collections.
type Snapshot struct {
	Students      []model.Student
	Attendance    model.AttendanceRecords
	SessionLogs   model.SessionLogs
	SocialActions map[string]model.SocialActionRecord
}

// SummaryReport is the matrix view: per-student figures plus the flat table.
type SummaryReport struct {
	Range       report.DateRange        `json:"range"`
	GeneratedAt time.Time               `json:"generated_at"`
	Students    []report.StudentSummary `json:"students"`
	Table       report.Report           `json:"table"`
}

// CalendarReport is the monthly rollup, one entry per day in order.
type CalendarReport struct {
	Year  int                  `json:"year"`
	Month int                  `json:"month"`
	Days  []report.CalendarDay `json:"days"`
}

// OverdueReport lists students without a recent Student session.
type OverdueReport struct {
	GeneratedAt   time.Time               `json:"generated_at"`
	ThresholdDays int                     `json:"threshold_days"`
	Students      []report.OverdueStudent `json:"students"`
}

// ReportService loads snapshots from the record store and runs them through
// the aggregation engine.
type ReportService struct {
	students      StudentStore
	attendance    AttendanceStore
	sessions      SessionLogStore
	socialActions SocialActionStore
	cache         ReportCache
	threshold     int
	now           func() time.Time
	log           zerolog.Logger
}

// NewReportService creates a new ReportService. cache may be nil.
func NewReportService(
	cfg *config.Config,
	students StudentStore,
	attendance AttendanceStore,
	sessions SessionLogStore,
	socialActions SocialActionStore,
	cache ReportCache,
	log zerolog.Logger,
) *ReportService {
	threshold := cfg.OverdueThresholdDays
	if threshold <= 0 {
		threshold = report.DefaultOverdueThresholdDays
	}
	return &ReportService{
		students:      students,
		attendance:    attendance,
		sessions:      sessions,
		socialActions: socialActions,
		cache:         cache,
		threshold:     threshold,
		now:           cfg.Now,
		log:           log.With().Str("component", "report_service").Logger(),
	}
}

// LoadSnapshot fetches the four collections concurrently. A failed fetch is
// logged and replaced by an empty collection so reports still render.
func (s *ReportService) LoadSnapshot(ctx context.Context) *Snapshot {
	var (
		students      []model.Student
		attendance    model.AttendanceRecords
		sessionLogs   model.SessionLogs
		socialActions map[string]model.SocialActionRecord
		studentsErr   error
		attendanceErr error
		sessionsErr   error
		socialErr     error
		wg            sync.WaitGroup
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		students, studentsErr = s.students.List(ctx, "")
	}()
	go func() {
		defer wg.Done()
		attendance, attendanceErr = s.attendance.ListAll(ctx)
	}()
	go func() {
		defer wg.Done()
		sessionLogs, sessionsErr = s.sessions.ListAll(ctx)
	}()
	go func() {
		defer wg.Done()
		socialActions, socialErr = s.socialActions.ListAll(ctx)
	}()
	wg.Wait()

	snap := &Snapshot{
		Students:      []model.Student{},
		Attendance:    model.AttendanceRecords{},
		SessionLogs:   model.SessionLogs{},
		SocialActions: map[string]model.SocialActionRecord{},
	}

	if studentsErr != nil {
		s.log.Warn().Err(studentsErr).Str("collection", "students").Msg("Fetch failed, using empty collection")
	} else if students != nil {
		snap.Students = students
	}
	if attendanceErr != nil {
		s.log.Warn().Err(attendanceErr).Str("collection", "attendance").Msg("Fetch failed, using empty collection")
	} else if attendance != nil {
		snap.Attendance = attendance
	}
	if sessionsErr != nil {
		s.log.Warn().Err(sessionsErr).Str("collection", "session_logs").Msg("Fetch failed, using empty collection")
	} else if sessionLogs != nil {
		snap.SessionLogs = sessionLogs
	}
	if socialErr != nil {
		s.log.Warn().Err(socialErr).Str("collection", "social_actions").Msg("Fetch failed, using empty collection")
	} else if socialActions != nil {
		snap.SocialActions = socialActions
	}

	return snap
}

// Summary returns the matrix view for r, from cache when the data has not changed since.
func (s *ReportService) Summary(ctx context.Context, r report.DateRange) *SummaryReport {
	version, cacheable := s.cacheVersion(ctx)
	if cacheable {
		if cached, ok := s.cache.GetSummary(ctx, version, r); ok {
			return cached
		}
	}

	snap := s.LoadSnapshot(ctx)
	now := s.now()
	summary := &SummaryReport{
		Range:       r,
		GeneratedAt: now,
		Students:    report.Summarize(snap.Students, r, snap.Attendance, snap.SessionLogs, now, s.threshold),
		Table:       report.BuildTabularReport(snap.Students, r, snap.Attendance, snap.SessionLogs),
	}

	if cacheable {
		s.cache.SetSummary(ctx, version, r, summary)
	}
	return summary
}

// Export encodes the full matrix report for r. JSON is not an export format here.
func (s *ReportService) Export(ctx context.Context, r report.DateRange, format ExportFormat) (*ExportFile, error) {
	snap := s.LoadSnapshot(ctx)
	table := report.BuildTabularReport(snap.Students, r, snap.Attendance, snap.SessionLogs)
	return encodeReport(table, format, strings.TrimSuffix(report.CSVFilename, ".csv"), "Attendance")
}

// Calendar returns the Absent/Late rollup for every day of the month.
func (s *ReportService) Calendar(ctx context.Context, year, month int) (*CalendarReport, error) {
	if month < 1 || month > 12 {
		return nil, ErrInvalidMonth
	}
	if year < 1 || year > 9999 {
		return nil, model.ErrInvalidDate
	}

	snap := s.LoadSnapshot(ctx)
	rollup := report.ComputeCalendarRollup(time.Month(month), year, snap.Attendance, snap.Students)

	days := make([]report.CalendarDay, 0, len(rollup))
	for d := 1; d <= len(rollup); d++ {
		days = append(days, rollup[d])
	}
	return &CalendarReport{Year: year, Month: month, Days: days}, nil
}

// Daily returns the per-day status initials for students with records in r.
func (s *ReportService) Daily(ctx context.Context, r report.DateRange) report.Report {
	snap := s.LoadSnapshot(ctx)
	return report.BuildDailyTable(snap.Students, r, snap.Attendance)
}

// SocialAction returns the community-service table.
func (s *ReportService) SocialAction(ctx context.Context) report.Report {
	snap := s.LoadSnapshot(ctx)
	return report.BuildSocialActionReport(snap.Students, snap.SocialActions)
}

// ExportSocialAction encodes the community-service table.
func (s *ReportService) ExportSocialAction(ctx context.Context, format ExportFormat) (*ExportFile, error) {
	return encodeReport(s.SocialAction(ctx), format, socialActionBaseName, "Social Action")
}

// Overdue returns the overdue list, reusing the scheduled snapshot when it was
// taken today at the current data version.
func (s *ReportService) Overdue(ctx context.Context) *OverdueReport {
	now := s.now()
	if version, ok := s.cacheVersion(ctx); ok {
		if snap, hit := s.cache.GetOverdue(ctx); hit && snap.Version == version &&
			model.FormatDate(snap.Report.GeneratedAt.In(now.Location())) == model.FormatDate(now) {
			return snap.Report
		}
	}
	return s.computeOverdue(ctx, now)
}

// RefreshOverdueSnapshot recomputes the overdue list and stores it for Overdue to reuse.
func (s *ReportService) RefreshOverdueSnapshot(ctx context.Context) *OverdueReport {
	version, cacheable := s.cacheVersion(ctx)
	rep := s.computeOverdue(ctx, s.now())
	if cacheable {
		s.cache.SetOverdue(ctx, &OverdueSnapshot{Version: version, Report: rep})
	}
	return rep
}

func (s *ReportService) computeOverdue(ctx context.Context, now time.Time) *OverdueReport {
	snap := s.LoadSnapshot(ctx)
	return &OverdueReport{
		GeneratedAt:   now,
		ThresholdDays: s.threshold,
		Students:      report.FindOverdue(snap.Students, snap.SessionLogs, now, s.threshold),
	}
}

// cacheVersion reads the data version before any snapshot is loaded, so an entry
// written after a concurrent change is stored under the older version.
func (s *ReportService) cacheVersion(ctx context.Context) (int64, bool) {
	if s.cache == nil {
		return 0, false
	}
	version, err := s.cache.Version(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("Report cache unavailable")
		return 0, false
	}
	return version, true
}

func encodeReport(table report.Report, format ExportFormat, baseName, sheet string) (*ExportFile, error) {
	switch format {
	case FormatCSV:
		return &ExportFile{
			Filename:    baseName + ".csv",
			ContentType: contentTypeCSV,
			Data:        []byte(report.EncodeDelimited(table, report.Comma)),
		}, nil
	case FormatTSV:
		return &ExportFile{
			Filename:    baseName + ".tsv",
			ContentType: contentTypeTSV,
			Inline:      true,
			Data:        []byte(report.EncodeDelimited(table, report.Tab)),
		}, nil
	case FormatXLSX:
		data, err := report.EncodeXLSX(report.Sheet{Name: sheet, Report: table})
		if err != nil {
			return nil, err
		}
		return &ExportFile{
			Filename:    baseName + ".xlsx",
			ContentType: contentTypeXLSX,
			Data:        data,
		}, nil
	}
	return nil, ErrUnsupportedFormat
}
