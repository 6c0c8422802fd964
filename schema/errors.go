package schema

import "errors"

// ErrNotClientSafe indicates a client schema declared a field whose name
// lacks the required public prefix.
var ErrNotClientSafe = errors.New("client schema field is not client-safe")
