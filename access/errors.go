package access

import "errors"

// ErrInvalidPath is returned by [Parse] for a malformed dot-notation
// expression.
var ErrInvalidPath = errors.New("access: invalid path expression")
