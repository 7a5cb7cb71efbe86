package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseOrigins(t *testing.T) {
	assert.Nil(t, parseOrigins(""))
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, parseOrigins(" http://a.test, ,http://b.test "))
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("OVERDUE_THRESHOLD_DAYS", "")
	t.Setenv("TIMEZONE", "Not/AZone")
	t.Setenv("STORE_DRIVER", "MEMORY")
	t.Setenv("REPORT_CACHE_TTL_SECONDS", "abc")

	cfg := Load()

	assert.Equal(t, 14, cfg.OverdueThresholdDays)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.Equal(t, StoreDriverMemory, cfg.StoreDriver)
	assert.Equal(t, 60*time.Second, cfg.ReportCacheTTL)
}

func TestLoadBootstrapAccount(t *testing.T) {
	t.Setenv("ADMIN_EMAIL", "")
	t.Setenv("ADMIN_PASSWORD", "")
	t.Setenv("ADMIN_ROLE", "")

	cfg := Load()
	assert.Empty(t, cfg.AdminEmail)
	assert.Empty(t, cfg.AdminPassword)
	assert.Equal(t, "ADMIN", cfg.AdminRole)
	assert.Equal(t, "Administrator", cfg.AdminName)

	t.Setenv("ADMIN_EMAIL", "head@school.test")
	t.Setenv("ADMIN_PASSWORD", "s3cret-pass")
	t.Setenv("ADMIN_ROLE", "teacher")

	cfg = Load()
	assert.Equal(t, "head@school.test", cfg.AdminEmail)
	assert.Equal(t, "s3cret-pass", cfg.AdminPassword)
	assert.Equal(t, "teacher", cfg.AdminRole)
}

func TestSummaryReportKeyOpenBounds(t *testing.T) {
	assert.Equal(t, "report:summary:v3:*:2024-01-31", CacheKey.SummaryReportKey(3, "", "2024-01-31"))
}
