package sheet

import (
	"errors"
	"fmt"
)

// ErrNoSheets indicates the workbook decoded but contains no worksheets.
var ErrNoSheets = errors.New("workbook has no worksheets")

// ErrUnexpectedStatus indicates the spreadsheet host answered with a non-2xx status.
var ErrUnexpectedStatus = errors.New("unexpected upstream status")

// Stage names the step of a fetch that failed.
type Stage string

const (
	StageFetch  Stage = "fetch"
	StageStatus Stage = "status"
	StageParse  Stage = "parse"
)

// FetchError represents a failure while retrieving or decoding the workbook.
type FetchError struct {
	Stage Stage
	Err   error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("sheet %s: %v", e.Stage, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func newFetchError(stage Stage, err error) *FetchError {
	return &FetchError{Stage: stage, Err: err}
}

// StageOf reports the failed stage of err, or "" if err is not a FetchError.
func StageOf(err error) Stage {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Stage
	}
	return ""
}
