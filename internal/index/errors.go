package index

import "errors"

var (
	ErrEmptyCorpus       = errors.New("index built from zero chunks")
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
	ErrInvalidK          = errors.New("k must be at least 1")
)
