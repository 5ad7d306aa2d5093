package model

// Version constants for the persisted snapshot and the engine.
const (
	// SnapshotVersion is the current timeline_tasks record layout.
	// Version 0 stored start/end as month indices into the chart window.
	SnapshotVersion = 1

	// EngineVersion is the timeline engine release.
	EngineVersion = "0.1.0"
)
