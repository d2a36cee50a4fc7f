package observability

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewMetrics(t *testing.T) {
	t.Run("creates and registers all metrics", func(t *testing.T) {
		registry := prometheus.NewRegistry()
		metrics := NewMetrics(registry)

		if metrics == nil {
			t.Fatal("NewMetrics returned nil")
		}
		if metrics.Registry() != registry {
			t.Error("metrics registered with the wrong registry")
		}

		metrics.RecordRun(false, nil, time.Second, 1)
		metrics.RecordRuleCheck("r")
		metrics.RecordFailure("r", false)
		metrics.RecordFlush(1, 0)
		metrics.RecordGraph(1)

		families, err := registry.Gather()
		if err != nil {
			t.Fatalf("Gather() failed: %v", err)
		}
		if len(families) != 7 {
			t.Errorf("expected 7 metric families, got %d", len(families))
		}
	})

	t.Run("nil registry gets a private one", func(t *testing.T) {
		metrics := NewMetrics(nil)
		if metrics.Registry() == nil {
			t.Error("expected a registry")
		}
	})
}

func TestMetrics_Record(t *testing.T) {
	metrics := NewMetrics(prometheus.NewRegistry())

	metrics.RecordRun(true, nil, 10*time.Millisecond, 3)
	metrics.RecordRun(false, errors.New("boom"), 10*time.Millisecond, 3)
	metrics.RecordRuleCheck("require-dependency")
	metrics.RecordRuleCheck("require-dependency")
	metrics.RecordFailure("require-dependency", true)
	metrics.RecordFailure("require-dependency", false)
	metrics.RecordFlush(4, 1)
	metrics.RecordGraph(12)

	if got := testutil.ToFloat64(metrics.RunsTotal.WithLabelValues("fix", "success")); got != 1 {
		t.Errorf("fix runs = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.RunsTotal.WithLabelValues("check", "error")); got != 1 {
		t.Errorf("failed check runs = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.RuleChecksTotal.WithLabelValues("require-dependency")); got != 2 {
		t.Errorf("rule checks = %v, want 2", got)
	}
	if got := testutil.ToFloat64(metrics.FailuresTotal.WithLabelValues("require-dependency", "true")); got != 1 {
		t.Errorf("fixed failures = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.FlushOpsTotal.WithLabelValues("success")); got != 3 {
		t.Errorf("flush successes = %v, want 3", got)
	}
	if got := testutil.ToFloat64(metrics.FlushOpsTotal.WithLabelValues("failure")); got != 1 {
		t.Errorf("flush failures = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.GraphNodes); got != 12 {
		t.Errorf("graph nodes = %v, want 12", got)
	}
	if got := testutil.ToFloat64(metrics.PackagesTotal); got != 3 {
		t.Errorf("packages = %v, want 3", got)
	}
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var metrics *Metrics

	metrics.RecordRun(true, nil, time.Second, 1)
	metrics.RecordRuleCheck("r")
	metrics.RecordFailure("r", true)
	metrics.RecordFlush(1, 1)
	metrics.RecordGraph(1)

	if err := metrics.WriteToTextfile(filepath.Join(t.TempDir(), "m.prom")); err != nil {
		t.Errorf("WriteToTextfile on nil metrics returned %v", err)
	}
}

func TestMetrics_WriteToTextfile(t *testing.T) {
	metrics := NewMetrics(prometheus.NewRegistry())
	metrics.RecordRuleCheck("alphabetical-dependencies")

	path := filepath.Join(t.TempDir(), "pkglint.prom")
	if err := metrics.WriteToTextfile(path); err != nil {
		t.Fatalf("WriteToTextfile() failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read metrics file: %v", err)
	}
	if !strings.Contains(string(data), `pkglint_rule_checks_total{rule="alphabetical-dependencies"} 1`) {
		t.Errorf("metrics file missing rule check counter:\n%s", data)
	}
}
