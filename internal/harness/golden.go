package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/timeline/internal/model"
	"github.com/roach88/timeline/internal/timeline"
)

// Snapshot is the golden form of a scenario run: the final packed rows and
// the flow trace, serialized as canonical JSON.
func Snapshot(name string, result *Result) ([]byte, error) {
	rows := make([]any, len(result.Rows))
	for i, row := range result.Rows {
		bars := make([]any, len(row))
		for j, t := range row {
			bars[j] = map[string]any{
				"ref":      result.RefOf(t.ID),
				"title":    t.Title,
				"start":    t.Start,
				"end":      t.End,
				"status":   string(t.Status),
				"progress": timeline.Progress(t.Checklist),
			}
		}
		rows[i] = bars
	}

	trace := make([]any, len(result.Trace))
	for i, ev := range result.Trace {
		m := map[string]any{
			"seq":     ev.Seq,
			"op":      ev.Op,
			"outcome": ev.Outcome,
		}
		if ev.Task != "" {
			m["task"] = ev.Task
		}
		if ev.Item != "" {
			m["item"] = ev.Item
		}
		trace[i] = m
	}

	return model.MarshalCanonical(map[string]any{
		"name":  name,
		"rows":  rows,
		"trace": trace,
	})
}

// RunWithGolden executes a scenario and compares its snapshot against a
// golden file stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if the snapshot doesn't match.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result against its golden file without
// re-running the scenario.
func AssertGolden(t *testing.T, name string, result *Result) error {
	t.Helper()

	data, err := Snapshot(name, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)

	return nil
}
