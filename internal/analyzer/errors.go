package analyzer

import "errors"

var (
	ErrNotReady       = errors.New("analysis pipeline not initialized")
	ErrAnalysisFailed = errors.New("analysis failed")
)
