package domain

import (
	"errors"
	"fmt"
)

// ============================================================================
// Artifact Errors
// ============================================================================

var (
	ErrArtifactNotFound     = errors.New("not found")
	ErrArtifactInvalid      = errors.New("artifact content is invalid")
	ErrArtifactIncompatible = errors.New("vectorizer and classifier artifacts are incompatible")
)

// ArtifactLoadError reports why a model artifact could not be loaded at startup.
// It is always fatal: the process must not serve traffic without both artifacts.
type ArtifactLoadError struct {
	Artifact string // "vectorizer" or "classifier"
	Path     string
	Err      error
}

func (e *ArtifactLoadError) Error() string {
	return fmt.Sprintf("load %s artifact %q: %v", e.Artifact, e.Path, e.Err)
}

func (e *ArtifactLoadError) Unwrap() error {
	return e.Err
}

// ============================================================================
// Prediction Errors
// ============================================================================

// Validation errors
var (
	ErrNotJSON    = errors.New("request must be in JSON format")
	ErrEmptyEmail = errors.New("email subject and body cannot both be empty")
)

// Inference errors
var (
	ErrMalformedRequest  = errors.New("malformed request body")
	ErrInference         = errors.New("inference failed")
	ErrDimensionMismatch = errors.New("feature vector dimension mismatch")
)
