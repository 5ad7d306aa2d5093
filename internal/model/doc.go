// Package model defines the task and checklist records shared by the timeline
// engine, the task store and the persistence layer.
//
// Records are plain values. Task dates are kept as the calendar-date strings
// the user entered ("YYYY-MM-DD"); parsing happens at the projection boundary
// so that bad data already in a snapshot never prevents it from loading.
//
// # Snapshot Encoding
//
// MarshalTasks produces canonical JSON for the timeline_tasks snapshot:
//   - Object keys sorted by UTF-16 code units
//   - No HTML escaping
//   - Strings NFC normalized
//   - Floats rejected
//
// The same collection always yields byte-identical output, so snapshots can be
// compared directly in golden tests.
package model
