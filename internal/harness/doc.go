// Package harness runs YAML scenarios against the task store.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: overlap_packing
//	description: "Overlapping tasks open a second row"
//	setup:
//	  - op: add_task
//	    as: a
//	    title: A
//	    start: "2026-01-01"
//	    end: "2026-01-10"
//	    items:
//	      - { ref: a1, text: "draft", completed: true }
//	flow:
//	  - op: toggle_item
//	    task: a
//	    item: a1
//	  - op: remove_task
//	    task: missing
//	    expect_error: TASK_NOT_FOUND
//	assertions:
//	  - type: rows
//	    rows: [[a]]
//	  - type: status
//	    task: a
//	    status: todo
//
// # Operations
//
// add_task, update_field, remove_task, add_item, toggle_item, edit_item and
// remove_item map one-to-one onto the task store mutations. Tasks and items
// are addressed by the names given in "as" or "ref", or by numeric ID when
// the scenario starts from the default dataset.
//
// # Assertion Types
//
//   - rows: the packed rows, as task references
//   - status / progress: derived state of one task
//   - count: number of tasks
//   - rejected: number of rejected flow steps
//   - revision: number of snapshots written to the database
//   - position / today: date projections onto the chart window
//
// # Deterministic Testing
//
// Every scenario runs against a fresh in-memory SQLite database with
// testutil.DeterministicClock as ID source, so IDs, rows and the golden
// snapshot are identical across runs.
package harness
