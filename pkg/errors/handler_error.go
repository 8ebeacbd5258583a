package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// HandlerError is one entry in the error document returned to API
// clients.
type HandlerError struct {
	Status int    `json:"status,omitempty"` // HTTP status code applicable to the error
	Title  string `json:"title,omitempty"`  // A summary of the problem
	Detail string `json:"detail,omitempty"` // An explanation specific to the problem
}

func (er HandlerError) Error() string {
	return fmt.Sprintf("code=%d, title=%v, detail=%v", er.Status, er.Title, er.Detail)
}

// ErrorResponse is the JSON error document for the whole request. It
// implements error so handlers can return it directly to echo.
type ErrorResponse struct {
	Errors []HandlerError `json:"errors"`
}

func (er ErrorResponse) Error() string {
	msgs := make([]string, 0, len(er.Errors))
	for _, err := range er.Errors {
		msgs = append(msgs, fmt.Sprintf("error: %s", err.Error()))
	}
	return strings.Join(msgs, "\n")
}

func NewErrorResponse(code int, title string, detail string) ErrorResponse {
	return ErrorResponse{Errors: []HandlerError{{
		Status: code,
		Title:  title,
		Detail: detail,
	}}}
}

// NewErrorResponseFromError builds a response from one or more errors,
// deriving each status from the dao error flags.
func NewErrorResponseFromError(title string, errs ...error) ErrorResponse {
	response := ErrorResponse{Errors: make([]HandlerError, len(errs))}
	for i, err := range errs {
		if err == nil {
			continue
		}
		response.Errors[i] = HandlerError{
			Status: HttpCodeForDaoError(err),
			Title:  title,
			Detail: err.Error(),
		}
	}
	return response
}

// NewErrorResponseFromEchoError converts errors raised by echo itself,
// such as routing 404s and 405s, into the common error document.
func NewErrorResponseFromEchoError(echoErr *echo.HTTPError) ErrorResponse {
	detail, ok := echoErr.Message.(string)
	if !ok {
		detail = echoErr.Error()
	}
	return NewErrorResponse(echoErr.Code, "", detail)
}

// HttpCodeForDaoError maps a dao error to its HTTP status. Anything
// that is not a DaoError is a 500.
func HttpCodeForDaoError(err error) int {
	var daoError *DaoError
	if !errors.As(err, &daoError) {
		return http.StatusInternalServerError
	}
	switch {
	case daoError.NotFound:
		return http.StatusNotFound
	case daoError.BadValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// GetGeneralResponseCode reduces a multi-error response to a single
// status: the highest status class present, as its base code.
func GetGeneralResponseCode(response ErrorResponse) int {
	if len(response.Errors) == 0 {
		return http.StatusOK
	}
	if len(response.Errors) == 1 {
		return response.Errors[0].Status
	}

	worst := 0
	for _, err := range response.Errors {
		class := err.Status / 100
		if class == 0 {
			class = 2
		}
		if class > worst {
			worst = class
		}
	}
	return worst * 100
}
