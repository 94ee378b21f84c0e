package metrics

// Common metric attribute keys to keep telemetry consistent/searchable.
const (
	AttrMethod     = "method"
	AttrPath       = "path"
	AttrStatus     = "status"
	AttrCollection = "collection"
	AttrOperation  = "operation"
)

// Document store operation names.
const (
	OpLoad = "load"
	OpSave = "save"
)
