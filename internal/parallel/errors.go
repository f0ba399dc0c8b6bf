package parallel

import "sync"

// ErrorCollector keeps the first non-nil error reported by concurrent workers.
// The zero value is ready to use.
type ErrorCollector struct {
	once sync.Once
	err  error
}

// SetError records err if it is the first non-nil error seen.
func (c *ErrorCollector) SetError(err error) {
	if err == nil {
		return
	}
	c.once.Do(func() { c.err = err })
}

// Err returns the first recorded error. It must be called after all writers
// have finished.
func (c *ErrorCollector) Err() error {
	return c.err
}
