package migrate

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/tidwall/gjson"

	"github.com/roach88/timeline/internal/timeline"
)

// UpgradeV0 converts month-index dates to calendar dates: a start index
// becomes the first day of that window month, an end index the last day.
// Fields that are already strings are left alone. An index outside the
// window is an error.
func UpgradeV0(record []byte, w timeline.Window) ([]byte, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(record, &fields); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}

	if start := gjson.GetBytes(record, "start"); start.Type == gjson.Number {
		m, err := monthAt(start, w)
		if err != nil {
			return nil, fmt.Errorf("start: %w", err)
		}
		fields["start"] = quote(m.FirstDay())
	}

	if end := gjson.GetBytes(record, "end"); end.Type == gjson.Number {
		m, err := monthAt(end, w)
		if err != nil {
			return nil, fmt.Errorf("end: %w", err)
		}
		fields["end"] = quote(m.LastDay())
	}

	out, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	return out, nil
}

func monthAt(v gjson.Result, w timeline.Window) (timeline.YearMonth, error) {
	f := v.Float()
	if f != math.Trunc(f) {
		return timeline.YearMonth{}, fmt.Errorf("month index %v is not an integer", v.Raw)
	}
	m, ok := w.Month(int(f))
	if !ok {
		return timeline.YearMonth{}, fmt.Errorf("month index %d outside window of %d months", int(f), w.Len())
	}
	return m, nil
}

func quote(s string) json.RawMessage {
	b, _ := json.Marshal(s)
	return b
}
