package handler

import (
	"bytes"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/MarcAntoine-Arnaud/subscriber/core"
)

func TestCollector(t *testing.T) {
	d := NewDispatcher(Config{
		Stdout:       &bytes.Buffer{},
		Stderr:       failingWriter{},
		OnWriteError: DropOnWriteError,
	})
	d.OnEvent(&core.Event{Level: core.InfoLevel}, nil)
	d.OnEvent(&core.Event{Level: core.DebugLevel}, nil)
	d.OnEvent(&core.Event{Level: core.ErrorLevel}, nil)

	reg := prometheus.NewRegistry()
	reg.MustRegister(NewCollector("subscriber", d))

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	got := map[string]float64{}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			key := mf.GetName() + "/" + m.GetLabel()[0].GetValue()
			got[key] = m.GetCounter().GetValue()
		}
	}

	want := map[string]float64{
		"subscriber_lines_written_total/stdout":  2,
		"subscriber_lines_written_total/stderr":  0,
		"subscriber_write_failures_total/stdout": 0,
		"subscriber_write_failures_total/stderr": 1,
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %v, want %v", k, got[k], v)
		}
	}
}
