// Provides common elemeta errors definitions.
package elemeta_errors

import "errors"

var (
	ErrNotFound      = errors.New("elemeta: no store at this path")
	ErrCorrupt       = errors.New("elemeta: store is corrupt")
	ErrSerialization = errors.New("elemeta: record serialization failed")
	ErrClosed        = errors.New("elemeta: no store open")
	ErrKeyMissing    = errors.New("elemeta: key not present in the store")
)
