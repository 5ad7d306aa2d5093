package harness

import "github.com/roach88/timeline/internal/model"

// Outcome of a successful step in the trace.
const OutcomeOK = "ok"

// TraceEvent records one executed step.
type TraceEvent struct {
	Seq     int64  `json:"seq"`
	Op      string `json:"op"`
	Task    string `json:"task,omitempty"`
	Item    string `json:"item,omitempty"`
	Outcome string `json:"outcome"` // OutcomeOK or the rejection code
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall test success.
	Pass bool `json:"pass"`

	// Trace contains every executed flow step in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Rows is the final packed timeline.
	Rows [][]model.Task `json:"-"`

	// Rejected counts flow steps the store rejected.
	Rejected int `json:"rejected"`

	// refs maps task IDs back to scenario references.
	refs map[int64]string
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
		refs:   make(map[int64]string),
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends a step to the trace.
func (r *Result) AddTrace(ev TraceEvent) {
	r.Trace = append(r.Trace, ev)
}

// RefOf returns the scenario reference of a task, or its numeric ID.
func (r *Result) RefOf(id int64) string {
	if ref, ok := r.refs[id]; ok {
		return ref
	}
	return formatID(id)
}

// RowRefs returns the packed rows as task references.
func (r *Result) RowRefs() [][]string {
	out := make([][]string, len(r.Rows))
	for i, row := range r.Rows {
		out[i] = make([]string, len(row))
		for j, t := range row {
			out[i][j] = r.RefOf(t.ID)
		}
	}
	return out
}
