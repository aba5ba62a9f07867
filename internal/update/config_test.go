package update

import (
	"testing"
	"time"
)

func TestDefaultRuntimeConfig(t *testing.T) {
	cfg := DefaultRuntimeConfig()
	if cfg.ResetPolicy != "per_quest" {
		t.Errorf("expected per_quest default policy, got %s", cfg.ResetPolicy)
	}
	if cfg.ResetCheckInterval != 10*time.Second {
		t.Errorf("expected 10s reset check interval, got %s", cfg.ResetCheckInterval)
	}
	if cfg.SchedulerBuffer != 64 {
		t.Errorf("expected scheduler buffer 64, got %d", cfg.SchedulerBuffer)
	}
	if cfg.DesktopNotifications {
		t.Error("desktop notifications should default to off")
	}
	if cfg.DBPath == "" {
		t.Error("expected a default database path")
	}
}

func TestRuntimeConfigFromEnv(t *testing.T) {
	t.Setenv("QUESTD_DB_PATH", "/tmp/other.db")
	t.Setenv("QUESTD_LOG_PATH", "/tmp/questd.log")
	t.Setenv("QUESTD_RESET_POLICY", "global")
	t.Setenv("QUESTD_RESET_CHECK_SECONDS", "30")
	t.Setenv("QUESTD_DESKTOP_NOTIFICATIONS", "true")
	t.Setenv("QUESTD_SCHEDULER_BUFFER", "128")

	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())

	if cfg.DBPath != "/tmp/other.db" {
		t.Errorf("db path not overridden: %s", cfg.DBPath)
	}
	if cfg.LogPath != "/tmp/questd.log" {
		t.Errorf("log path not overridden: %s", cfg.LogPath)
	}
	if cfg.ResetPolicy != "global" {
		t.Errorf("reset policy not overridden: %s", cfg.ResetPolicy)
	}
	if cfg.ResetCheckInterval != 30*time.Second {
		t.Errorf("reset check interval not overridden: %s", cfg.ResetCheckInterval)
	}
	if !cfg.DesktopNotifications {
		t.Error("desktop notifications not overridden")
	}
	if cfg.SchedulerBuffer != 128 {
		t.Errorf("scheduler buffer not overridden: %d", cfg.SchedulerBuffer)
	}
}

func TestRuntimeConfigFromEnvIgnoresInvalidValues(t *testing.T) {
	t.Setenv("QUESTD_RESET_CHECK_SECONDS", "not-a-number")
	t.Setenv("QUESTD_SCHEDULER_BUFFER", "-3")
	t.Setenv("QUESTD_DESKTOP_NOTIFICATIONS", "maybe")

	base := DefaultRuntimeConfig()
	cfg := RuntimeConfigFromEnv(base)

	if cfg.ResetCheckInterval != base.ResetCheckInterval {
		t.Errorf("invalid interval should be ignored, got %s", cfg.ResetCheckInterval)
	}
	if cfg.SchedulerBuffer != base.SchedulerBuffer {
		t.Errorf("non-positive buffer should be ignored, got %d", cfg.SchedulerBuffer)
	}
	if cfg.DesktopNotifications != base.DesktopNotifications {
		t.Error("unparseable bool should be ignored")
	}
}
