package browse

import "errors"

// Sentinel errors.
var (
	ErrEmptyDocument   = errors.New("document has no keys")
	ErrUnexpectedModel = errors.New("unexpected final model")
)
