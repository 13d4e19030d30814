package recordstore

import "fmt"

// PersistenceError means the record store call itself failed: the request
// could not be sent, or the store answered with a non-2xx status. Callers
// should leave their prior state untouched and offer a retry. "Nothing
// matched" is never a PersistenceError; those outcomes are returned as nil
// values.
type PersistenceError struct {
	Op     string // e.g. "PUT /posts/12"
	Status int    // 0 when the request never completed
	Err    error
}

func (e *PersistenceError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("record store: %s returned status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("record store: %s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
