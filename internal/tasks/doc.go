// Package tasks owns the canonical task collection.
//
// A Store loads the persisted timeline_tasks payload once, applies every
// mutation in memory and then writes a full canonical snapshot back to its
// backend. Status is never set directly: it is re-derived whenever a
// checklist changes. The read side exposes the packed rows, bar layout and
// date projections the presentation layer draws.
package tasks
