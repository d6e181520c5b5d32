package directory

import "errors"

var ErrNotFound = errors.New("doctor not found")
