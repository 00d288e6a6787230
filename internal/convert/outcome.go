package convert

// State tracks an item through the fetch-and-transcode machine. States are
// logged as the item advances; the terminal state determines the outcome.
type State string

const (
	StatePending         State = "pending"
	StateFetched         State = "fetched"
	StateAlreadyTarget   State = "already_target_format"
	StateTranscoding     State = "transcoding"
	StateDone            State = "done"
	StateFetchFailed     State = "fetch_failed"
	StateTranscodeFailed State = "transcode_failed"
)

// Class is the terminal classification of an item.
type Class string

const (
	ClassSuccess Class = "success"
	ClassSkipped Class = "skipped"
	ClassFailure Class = "failed"
)

// FailureKind is the short human-readable failure classification. User
// output shows the kind plus the external tool's diagnostic, never a stack
// trace.
type FailureKind string

const (
	FailureInput     FailureKind = "input error"
	FailureFetch     FailureKind = "fetch failed"
	FailureLocate    FailureKind = "could not locate output"
	FailureTranscode FailureKind = "transcode failed"
)

// Outcome is the tagged per-item result.
type Outcome struct {
	Title  string
	Class  Class
	Path   string
	Kind   FailureKind
	Detail string
}

// Success reports a produced output file.
func Success(title, path string) Outcome {
	return Outcome{Title: title, Class: ClassSuccess, Path: path}
}

// Skipped reports an item already satisfied on disk.
func Skipped(title, existingPath string) Outcome {
	return Outcome{Title: title, Class: ClassSkipped, Path: existingPath}
}

// Failure reports a terminal failure with a classification and optional
// tool diagnostic.
func Failure(title string, kind FailureKind, detail string) Outcome {
	return Outcome{Title: title, Class: ClassFailure, Kind: kind, Detail: detail}
}
