package bgapi

import "errors"

// ErrArgumentMismatch indicates encode was called with a field set that
// does not match the schema's declared arguments.
var ErrArgumentMismatch = errors.New("argument mismatch")
