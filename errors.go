package dossier

import "errors"

var (
	// ErrPersonNameRequired is returned when a run is started without a subject.
	ErrPersonNameRequired = errors.New("dossier: person name is required")

	// ErrNoSearcher is returned when deep research runs without a search backend.
	ErrNoSearcher = errors.New("dossier: no search backend configured")

	// ErrNoSynthesizer is returned when deep research runs without a synthesis provider.
	ErrNoSynthesizer = errors.New("dossier: no synthesizer configured")

	// ErrSynthesisFailed is returned when the synthesis provider fails.
	ErrSynthesisFailed = errors.New("dossier: synthesis failed")

	// ErrRunNotFound is returned when a run ID does not exist.
	ErrRunNotFound = errors.New("dossier: run not found")

	// ErrInvalidConfig is returned for invalid configuration values.
	ErrInvalidConfig = errors.New("dossier: invalid configuration")
)
