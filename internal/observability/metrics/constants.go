// Package metrics provides constants used across metric definitions.
package metrics

// Operation label values for commit-level session mutations.
const (
	OpAddCase        = "add_case"
	OpRemoveCase     = "remove_case"
	OpUpdateCase     = "update_case"
	OpAddPoint       = "add_point"
	OpRemovePoint    = "remove_point"
	OpLabelPoint     = "label_point"
	OpAddProcess     = "add_process"
	OpRemoveProcess  = "remove_process"
	OpHeatRecovery   = "heat_recovery"
	OpCoil           = "coil"
	OpHydraulics     = "hydraulics"
	OpClearAll       = "clear_all"
	OpSetActiveCase  = "set_active_case"
	OpDragProcess    = "drag_process"
	OpCurveGenerate  = "curve_generate"
	OpPaint          = "paint"
	OpExportDocument = "export_document"
)

// Status label values.
const (
	StatusSuccess  = "success"
	StatusRejected = "rejected"
	StatusError    = "error"
)

// History action label values.
const (
	ActionUndo = "undo"
	ActionRedo = "redo"
	ActionNoop = "noop"
)

// Frame kind label values.
const (
	FrameEvent     = "event"
	FrameAnimation = "animation"
	FrameResize    = "resize"
)

// Histogram bucket configuration.
const (
	// BucketStart100us is the starting bucket for 0.1ms histograms (0.1ms to ~400ms range).
	BucketStart100us = 0.0001
	// BucketStart1ms is the starting bucket for 1ms histograms (1ms to ~1s range).
	BucketStart1ms = 0.001
	// BucketFactor2 is the exponential growth factor for histogram buckets.
	BucketFactor2 = 2
	// BucketCount12 defines 12 exponential buckets.
	BucketCount12 = 12
	// BucketCount10 defines 10 exponential buckets.
	BucketCount10 = 10
)
