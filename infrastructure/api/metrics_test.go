package api

import (
	"context"
	"testing"

	dto "github.com/prometheus/client_model/go"

	"github.com/timsexperiments/sitenav/application/service"
	"github.com/timsexperiments/sitenav/course"
	"github.com/timsexperiments/sitenav/domain/navigation"
	"github.com/timsexperiments/sitenav/domain/site"
)

// gather returns the metric families of the registry keyed by name.
func gather(t *testing.T, m *Metrics) map[string]*dto.MetricFamily {
	t.Helper()
	families, err := m.Registry.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	out := make(map[string]*dto.MetricFamily, len(families))
	for _, f := range families {
		out[f.GetName()] = f
	}
	return out
}

// labelled returns the metric in family whose label name has value.
func labelled(family *dto.MetricFamily, name, value string) *dto.Metric {
	if family == nil {
		return nil
	}
	for _, m := range family.GetMetric() {
		for _, l := range m.GetLabel() {
			if l.GetName() == name && l.GetValue() == value {
				return m
			}
		}
	}
	return nil
}

func validate(t *testing.T, s site.Site) service.Report {
	t.Helper()
	report, err := service.NewNavigation(s, nil, nil).Validate(context.Background())
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	return report
}

func TestMetrics_BuildInfo(t *testing.T) {
	m := NewMetrics("1.2.3", "go1.25")

	info := labelled(gather(t, m)["sitenav_info"], "version", "1.2.3")
	if info == nil {
		t.Fatal("sitenav_info missing version label")
	}
	if got := info.GetGauge().GetValue(); got != 1 {
		t.Errorf("sitenav_info = %v, want 1", got)
	}
}

func TestMetrics_ObserveValidation(t *testing.T) {
	m := NewMetrics("dev", "go")

	broken := site.New("Broken",
		site.WithURL("https://example.com"),
		site.WithSidebar(navigation.NewTree(
			navigation.Leaf("First", "intro"),
			navigation.Leaf("Second", "intro"),
			navigation.Group("Empty"),
		)),
	)
	m.ObserveValidation(validate(t, broken))

	families := gather(t, m)
	if c := labelled(families["sitenav_validations_total"], "result", "invalid"); c.GetCounter().GetValue() != 1 {
		t.Errorf("invalid validations = %v, want 1", c.GetCounter().GetValue())
	}
	if g := labelled(families["sitenav_validation_errors"], "kind", "duplicate_slug"); g.GetGauge().GetValue() != 1 {
		t.Errorf("duplicate_slug errors = %v, want 1", g.GetGauge().GetValue())
	}
	if g := labelled(families["sitenav_validation_errors"], "kind", "malformed_node"); g.GetGauge().GetValue() != 1 {
		t.Errorf("malformed_node errors = %v, want 1", g.GetGauge().GetValue())
	}
	if got := families["sitenav_sidebar_leaves"].GetMetric()[0].GetGauge().GetValue(); got != 2 {
		t.Errorf("sidebar leaves = %v, want 2", got)
	}

	// A later valid run clears the error gauges.
	m.ObserveValidation(validate(t, course.Site()))

	families = gather(t, m)
	if g := labelled(families["sitenav_validation_errors"], "kind", "duplicate_slug"); g.GetGauge().GetValue() != 0 {
		t.Errorf("duplicate_slug errors after valid run = %v, want 0", g.GetGauge().GetValue())
	}
	if c := labelled(families["sitenav_validations_total"], "result", "valid"); c.GetCounter().GetValue() != 1 {
		t.Errorf("valid validations = %v, want 1", c.GetCounter().GetValue())
	}
	if got := families["sitenav_sidebar_leaves"].GetMetric()[0].GetGauge().GetValue(); got != 17 {
		t.Errorf("sidebar leaves = %v, want 17", got)
	}
}
