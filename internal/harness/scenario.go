package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/timeline/internal/tasks"
	"github.com/roach88/timeline/internal/timeline"
)

// Scenario defines a task store scenario.
// A scenario runs a sequence of store operations against a fresh store and
// then asserts on the packed rows, statuses and projections.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Months overrides the chart window. Empty means the default window.
	Months []string `yaml:"months,omitempty"`

	// Defaults starts from the built-in dataset instead of an empty
	// collection. Default tasks and items are addressed by their numeric IDs.
	Defaults bool `yaml:"defaults,omitempty"`

	// Setup contains steps that establish initial state.
	// Every setup step must succeed.
	Setup []Step `yaml:"setup,omitempty"`

	// Flow contains the steps under test. A step may expect a rejection.
	Flow []Step `yaml:"flow"`

	// Assertions validate the final state.
	Assertions []Assertion `yaml:"assertions"`
}

// Step is a single store operation.
//
// Task and Item name scenario references created by an earlier step's As
// field, or numeric IDs.
type Step struct {
	// Op is the operation, one of the Op* constants.
	Op string `yaml:"op"`

	// Task references the target task.
	Task string `yaml:"task,omitempty"`

	// Item references the target checklist item.
	Item string `yaml:"item,omitempty"`

	// As names the task or item created by add_task or add_item.
	As string `yaml:"as,omitempty"`

	// Draft fields for add_task.
	Title       string `yaml:"title,omitempty"`
	Start       string `yaml:"start,omitempty"`
	End         string `yaml:"end,omitempty"`
	Assignee    string `yaml:"assignee,omitempty"`
	Description string `yaml:"description,omitempty"`
	Color       string `yaml:"color,omitempty"`

	// Items are checklist entries created right after add_task, or the new
	// checklist for update_field with field "checklist".
	Items []ItemSpec `yaml:"items,omitempty"`

	// Field and Value are the update_field arguments. Value is used for
	// every field except checklist.
	Field string `yaml:"field,omitempty"`
	Value string `yaml:"value,omitempty"`

	// Text is the new item text for edit_item.
	Text string `yaml:"text,omitempty"`

	// Repeat runs the step this many times. Zero means once.
	Repeat int `yaml:"repeat,omitempty"`

	// ExpectError is the error code the step must be rejected with.
	ExpectError string `yaml:"expect_error,omitempty"`
}

// ItemSpec describes a checklist entry.
type ItemSpec struct {
	Ref       string `yaml:"ref,omitempty"`
	Text      string `yaml:"text,omitempty"`
	Completed bool   `yaml:"completed,omitempty"`
}

// Step operations.
const (
	OpAddTask     = "add_task"
	OpUpdateField = "update_field"
	OpRemoveTask  = "remove_task"
	OpAddItem     = "add_item"
	OpToggleItem  = "toggle_item"
	OpEditItem    = "edit_item"
	OpRemoveItem  = "remove_item"
)

// Assertion validates the final state.
type Assertion struct {
	// Type specifies the assertion type:
	// - "rows": packed rows equal Rows, as task references
	// - "status": Task has Status
	// - "progress": Task has Progress percent
	// - "count": the collection holds Count tasks
	// - "rejected": Count flow steps were rejected
	// - "revision": the tasks snapshot was written Count times
	// - "position": Date projects to Position
	// - "today": Date used as today projects to Position, or is Outside
	Type string `yaml:"type"`

	Rows     [][]string `yaml:"rows,omitempty"`
	Task     string     `yaml:"task,omitempty"`
	Status   string     `yaml:"status,omitempty"`
	Progress int        `yaml:"progress,omitempty"`
	Count    int        `yaml:"count,omitempty"`
	Date     string     `yaml:"date,omitempty"`
	Position float64    `yaml:"position,omitempty"`
	Outside  bool       `yaml:"outside,omitempty"`
}

// Assertion type constants.
const (
	AssertRows     = "rows"
	AssertStatus   = "status"
	AssertProgress = "progress"
	AssertCount    = "count"
	AssertRejected = "rejected"
	AssertRevision = "revision"
	AssertPosition = "position"
	AssertToday    = "today"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Months) > 0 {
		if _, err := timeline.NewWindow(s.Months...); err != nil {
			return fmt.Errorf("months: %w", err)
		}
	}

	if len(s.Flow) == 0 {
		return fmt.Errorf("flow list is required and must be non-empty")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, step := range s.Setup {
		if err := validateStep(step); err != nil {
			return fmt.Errorf("setup[%d]: %w", i, err)
		}
		if step.ExpectError != "" {
			return fmt.Errorf("setup[%d]: setup steps cannot expect errors", i)
		}
	}

	for i, step := range s.Flow {
		if err := validateStep(step); err != nil {
			return fmt.Errorf("flow[%d]: %w", i, err)
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

func validateStep(step Step) error {
	if step.Repeat < 0 {
		return fmt.Errorf("repeat must be non-negative")
	}
	if step.Repeat > 1 && step.As != "" {
		return fmt.Errorf("as cannot be combined with repeat")
	}

	switch step.Op {
	case OpAddTask:
	case OpUpdateField:
		if step.Task == "" || step.Field == "" {
			return fmt.Errorf("update_field requires task and field")
		}
	case OpRemoveTask, OpAddItem:
		if step.Task == "" {
			return fmt.Errorf("%s requires task", step.Op)
		}
	case OpToggleItem, OpEditItem, OpRemoveItem:
		if step.Task == "" || step.Item == "" {
			return fmt.Errorf("%s requires task and item", step.Op)
		}
	case "":
		return fmt.Errorf("op is required")
	default:
		return fmt.Errorf("unknown op %q", step.Op)
	}

	if step.ExpectError != "" {
		switch tasks.ErrorCode(step.ExpectError) {
		case tasks.ErrCodeCapacityExceeded, tasks.ErrCodeTaskNotFound, tasks.ErrCodeItemNotFound,
			tasks.ErrCodeInvalidField, tasks.ErrCodeInvalidValue:
		default:
			return fmt.Errorf("unknown error code %q", step.ExpectError)
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	switch a.Type {
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	case AssertRows:
		if a.Rows == nil {
			return fmt.Errorf("assertions[%d]: rows is required for rows", index)
		}
	case AssertStatus:
		if a.Task == "" || a.Status == "" {
			return fmt.Errorf("assertions[%d]: task and status are required for status", index)
		}
	case AssertProgress:
		if a.Task == "" {
			return fmt.Errorf("assertions[%d]: task is required for progress", index)
		}
	case AssertCount, AssertRejected, AssertRevision:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for %s", index, a.Type)
		}
	case AssertPosition, AssertToday:
		if a.Date == "" {
			return fmt.Errorf("assertions[%d]: date is required for %s", index, a.Type)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
