package repositories

import "errors"

// ErrNotFound is wrapped by every repository when a referenced id (or email)
// does not resolve. Handlers map it to a 404 with errors.Is.
var ErrNotFound = errors.New("not found")
