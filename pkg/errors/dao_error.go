package errors

import "fmt"

// DaoError is the error type returned by the data access layer. The
// NotFound and BadValidation flags drive the HTTP status mapping in
// HttpCodeForDaoError.
type DaoError struct {
	Message       string
	Err           error
	NotFound      bool
	BadValidation bool
}

func (e *DaoError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DaoError) Unwrap() error { return e.Err }

// Wrap attaches the underlying cause, typically a gorm error.
func (e *DaoError) Wrap(err error) { e.Err = err }
