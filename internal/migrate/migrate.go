// Package migrate decodes persisted timeline_tasks payloads of any known
// layout into current task records.
//
// Each record is inspected on its own: Detect names its layout version and
// the per-version upgrades are applied in order until the record reaches
// Current. Upgrades are pure functions over the raw record bytes, so they can
// be tested without a store.
package migrate

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/roach88/timeline/internal/model"
	"github.com/roach88/timeline/internal/timeline"
)

// Version identifies a record layout.
type Version int

const (
	// V0 stored start and end as month indices into the chart window.
	V0 Version = iota
	// V1 stores start and end as YYYY-MM-DD strings.
	V1
)

// Current is the layout produced by Decode.
const Current = V1

// Upgrade rewrites a record from one version to the next.
type Upgrade func(record []byte, w timeline.Window) ([]byte, error)

// upgrades[v] lifts a record from v to v+1.
var upgrades = map[Version]Upgrade{
	V0: UpgradeV0,
}

// Result is a decoded payload.
type Result struct {
	Tasks []model.Task

	// Upgraded counts records that needed at least one upgrade.
	Upgraded int
}

// Detect reports the layout version of a single task record.
func Detect(record gjson.Result) Version {
	if record.Get("start").Type == gjson.Number || record.Get("end").Type == gjson.Number {
		return V0
	}
	return V1
}

// Decode parses a timeline_tasks payload. The payload must be a JSON array of
// objects; anything else is an error and callers fall back to defaults.
//
// Decoded tasks always carry a non-nil checklist and a status derived from it.
// Duplicate task IDs, or duplicate item IDs within a task, are errors.
func Decode(raw []byte, w timeline.Window) (*Result, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("payload is not valid JSON")
	}
	root := gjson.ParseBytes(raw)
	if !root.IsArray() {
		return nil, fmt.Errorf("payload is not an array")
	}

	res := &Result{Tasks: make([]model.Task, 0)}
	seen := make(map[int64]bool)

	for i, rec := range root.Array() {
		if !rec.IsObject() {
			return nil, fmt.Errorf("record %d: not an object", i)
		}

		data, upgraded, err := upgrade([]byte(rec.Raw), Detect(rec), w)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if upgraded {
			res.Upgraded++
		}

		task, err := decodeCurrent(data)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if seen[task.ID] {
			return nil, fmt.Errorf("record %d: duplicate task id %d", i, task.ID)
		}
		seen[task.ID] = true

		res.Tasks = append(res.Tasks, task)
	}

	return res, nil
}

// upgrade applies upgrades from v until the record reaches Current.
func upgrade(record []byte, v Version, w timeline.Window) ([]byte, bool, error) {
	upgraded := false
	for ; v < Current; v++ {
		up, ok := upgrades[v]
		if !ok {
			return nil, false, fmt.Errorf("no upgrade from version %d", v)
		}
		next, err := up(record, w)
		if err != nil {
			return nil, false, fmt.Errorf("upgrade from version %d: %w", v, err)
		}
		record = next
		upgraded = true
	}
	return record, upgraded, nil
}

func decodeCurrent(record []byte) (model.Task, error) {
	var t model.Task
	if err := json.Unmarshal(record, &t); err != nil {
		return model.Task{}, fmt.Errorf("decode task: %w", err)
	}

	seen := make(map[int64]bool, len(t.Checklist))
	for _, item := range t.Checklist {
		if seen[item.ID] {
			return model.Task{}, fmt.Errorf("task %d: duplicate checklist item id %d", t.ID, item.ID)
		}
		seen[item.ID] = true
	}

	t = t.Clone()
	t.Status = timeline.StatusOf(t.Checklist)
	return t, nil
}
