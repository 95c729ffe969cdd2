package logger

// Standard field keys for structured logging. Using these consistently keeps
// logs queryable across the browse, fileops and metastore layers.
const (
	// Request handling
	KeyRequestID = "request_id" // HTTP request id (chi middleware)
	KeyBatchID   = "batch_id"   // file-operation batch id
	KeyOperation = "op"         // operation name: move, copy, rename, delete, attach
	KeyClientIP  = "client_ip"

	// Filesystem
	KeyPath      = "path"
	KeyOldPath   = "old_path"
	KeyNewPath   = "new_path"
	KeyTargetDir = "target_dir"
	KeyType      = "type" // file or folder
	KeySize      = "size"

	// Metadata store
	KeyBackend = "backend" // sqlite or postgres
	KeyTagID   = "tag_id"
	KeyTagName = "tag_name"
	KeyFileID  = "file_id"

	// Outcome
	KeyError      = "error"
	KeyDurationMS = "duration_ms"
	KeyCount      = "count"
)
