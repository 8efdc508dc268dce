package interfaces

import "github.com/m-mizutani/goerr/v2"

// ErrNotFound is wrapped by every store when a lookup finds nothing
var ErrNotFound = goerr.New("not found")
