// Package timeline projects task date ranges onto a fixed chart window and
// packs them into display rows.
//
// Everything here is a pure function of its inputs: the task store calls in on
// every render and on every checklist change, and nothing is cached.
//
// # Packing
//
// Pack is greedy first-fit over tasks sorted by (start, end, id). A task joins
// the first row whose last bar ends at least one day before it starts,
// otherwise it opens a new row. This is not optimal interval colouring and is
// kept that way: row assignment is part of the observable output.
//
// # Bad Data
//
// Tasks already in a snapshot may carry unparseable or inverted dates.
// Projection maps unparseable dates to 0. Inverted ranges are normalized so
// the earlier date is treated as the start. A task whose start cannot be
// parsed never joins an existing row.
package timeline
