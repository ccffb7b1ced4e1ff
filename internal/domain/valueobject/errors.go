package valueobject

import "errors"

// ErrUnknownValue is wrapped by every constructor that rejects a string
// outside the value object's closed set.
var ErrUnknownValue = errors.New("unknown value")
