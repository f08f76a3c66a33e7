// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"testing"
)

func newTestScheduler(t *testing.T, jobs ...Job) *Scheduler {
	t.Helper()
	s := New(testLogger())
	for _, j := range jobs {
		if err := s.Add(j); err != nil {
			t.Fatalf("Add(%s:%s) error = %v", j.Source, j.Name, err)
		}
	}
	return s
}

func TestList(t *testing.T) {
	s := newTestScheduler(t,
		Job{Source: "geoip", Name: "reload", Schedule: "@daily", Run: noop, Manual: true},
		Job{Source: "catalog", Name: "refresh", Schedule: "@every 15m", Run: noop},
		Job{Source: "catalog", Name: "audit", Schedule: "@weekly", Run: noop},
	)

	jobs := s.Registry().List()
	if len(jobs) != 3 {
		t.Fatalf("List() len = %d, want 3", len(jobs))
	}

	want := []string{"catalog:audit", "catalog:refresh", "geoip:reload"}
	for i, j := range jobs {
		if got := j.Source + ":" + j.Name; got != want[i] {
			t.Errorf("List()[%d] = %q, want %q", i, got, want[i])
		}
	}
	if jobs[1].CanTrigger {
		t.Error("catalog:refresh CanTrigger = true, want false")
	}
	if !jobs[2].CanTrigger {
		t.Error("geoip:reload CanTrigger = false, want true")
	}
	if jobs[0].IsOverridden {
		t.Error("IsOverridden = true for default schedule")
	}
}

func TestTriggerNow_Errors(t *testing.T) {
	s := newTestScheduler(t, Job{Source: "catalog", Name: "refresh", Schedule: "@hourly", Run: noop})

	if err := s.Registry().TriggerNow("catalog", "missing"); err == nil {
		t.Error("TriggerNow(missing) error = nil, want error")
	}
	if err := s.Registry().TriggerNow("catalog", "refresh"); err == nil {
		t.Error("TriggerNow(non-manual) error = nil, want error")
	}
}

func TestUpdateAndResetSchedule(t *testing.T) {
	s := newTestScheduler(t, Job{Source: "catalog", Name: "refresh", Schedule: "@every 15m", Run: noop})
	reg := s.Registry()

	if err := reg.UpdateSchedule("catalog", "refresh", "not a schedule"); err == nil {
		t.Error("UpdateSchedule(invalid) error = nil, want error")
	}
	if err := reg.UpdateSchedule("catalog", "missing", "@hourly"); err == nil {
		t.Error("UpdateSchedule(missing) error = nil, want error")
	}

	if err := reg.UpdateSchedule("catalog", "refresh", "*/5 * * * *"); err != nil {
		t.Fatalf("UpdateSchedule() error = %v", err)
	}
	info := reg.List()[0]
	if info.Schedule != "*/5 * * * *" || !info.IsOverridden {
		t.Errorf("after update: schedule = %q overridden = %v", info.Schedule, info.IsOverridden)
	}
	if n := len(s.cron.Entries()); n != 1 {
		t.Errorf("cron entries = %d, want 1", n)
	}

	if err := reg.ResetSchedule("catalog", "refresh"); err != nil {
		t.Fatalf("ResetSchedule() error = %v", err)
	}
	info = reg.List()[0]
	if info.Schedule != "@every 15m" || info.IsOverridden {
		t.Errorf("after reset: schedule = %q overridden = %v", info.Schedule, info.IsOverridden)
	}
	// already at default
	if err := reg.ResetSchedule("catalog", "refresh"); err != nil {
		t.Errorf("ResetSchedule() again error = %v", err)
	}
}

func TestUnregister(t *testing.T) {
	s := newTestScheduler(t, Job{Source: "catalog", Name: "refresh", Schedule: "@hourly", Run: noop})

	s.Registry().Unregister("catalog", "refresh")
	s.Registry().Unregister("catalog", "refresh")

	if n := len(s.Registry().List()); n != 0 {
		t.Errorf("List() len = %d, want 0", n)
	}
	if n := len(s.cron.Entries()); n != 0 {
		t.Errorf("cron entries = %d, want 0", n)
	}
}
