package domain

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrCredentialMissing  = errors.New("credential missing")
	ErrCredentialRequired = errors.New("credential required")
	ErrCredentialInvalid  = errors.New("credential rejected")
	ErrGenerationFailed   = errors.New("generation failed")
	ErrNoLocator          = errors.New("no video locator in result")
	ErrArtifactFetch      = errors.New("artifact fetch failed")
	ErrBusy               = errors.New("generation already in flight")
	ErrNotFound           = errors.New("not found")
)
