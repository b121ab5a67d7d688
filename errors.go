package goStats

import "errors"

var (
	// ErrUnknownMetric is the panic value (wrapped) for a lookup of a name
	// or ID that is not in the catalog.
	ErrUnknownMetric = errors.New("unknown metric")
	// ErrDuplicateMetric reports two catalog entries with the same name.
	ErrDuplicateMetric = errors.New("duplicate metric name")
	// ErrDuplicateMetricID reports two catalog entries with the same ID.
	ErrDuplicateMetricID = errors.New("duplicate metric id")
	// ErrInvalidMetricName reports an empty name, an empty segment, or an unknown kind.
	ErrInvalidMetricName = errors.New("invalid metric name")
	// ErrNameCollision reports a name that is a dot-prefix of another name,
	// or nested input that cannot be expanded without overwriting a value.
	ErrNameCollision = errors.New("metric name collision")
	// ErrInvalidSnapshot reports nested input that Flatten cannot map back to counter values.
	ErrInvalidSnapshot = errors.New("invalid snapshot")
	// ErrInvalidWindow reports a non-positive rolling window.
	ErrInvalidWindow = errors.New("invalid rolling window")
	// ErrInvalidConfig wraps every configuration validation failure.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrNilRegistry is returned by constructors that require a registry.
	ErrNilRegistry = errors.New("nil registry")
	// ErrReporterClosed is returned by Reporter operations after Close.
	ErrReporterClosed = errors.New("reporter closed")
	// ErrReporterStarted is returned when Start is called twice.
	ErrReporterStarted = errors.New("reporter already started")
	// ErrSnapshotDropped is returned by Flush when the queue rejected the snapshot.
	ErrSnapshotDropped = errors.New("snapshot dropped")
)

// Request error classes. Handlers wrap their failures with one of these so
// that [Registry.RecordError] can count them under the matching exception.*
// metric and pick the response status.
var (
	ErrStatus           = errors.New("request failed with explicit status")
	ErrSecurity         = errors.New("security check failed")
	ErrVersionConflict  = errors.New("version conflict")
	ErrIndexNotFound    = errors.New("index not found")
	ErrInvalidIndexName = errors.New("invalid index name")
	ErrIllegalArgument  = errors.New("illegal argument")
	ErrIllegalState     = errors.New("illegal state")
)
