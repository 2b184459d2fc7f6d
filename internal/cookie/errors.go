package cookie

import "errors"

// ErrInvalidRecord is returned when persisted cookie data cannot be loaded.
var ErrInvalidRecord = errors.New("invalid cookie record")
