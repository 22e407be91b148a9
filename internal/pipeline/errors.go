package pipeline

import "fmt"

// Stage identifies where in the pipeline an item failed.
type Stage string

const (
	StageParse    Stage = "parse"
	StageValidate Stage = "validate"
)

// ItemError tags a per-item failure with its stage and the item's best-effort
// external identifier, so batch reporting and triage can name the item even
// when the payload itself was unreadable.
type ItemError struct {
	Stage      Stage
	ExternalID string
	Err        error
}

func (e *ItemError) Error() string {
	id := e.ExternalID
	if id == "" {
		id = "<unknown>"
	}
	return fmt.Sprintf("%s failed for item %s: %v", e.Stage, id, e.Err)
}

func (e *ItemError) Unwrap() error {
	return e.Err
}
