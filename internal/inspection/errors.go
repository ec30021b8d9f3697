package inspection

import "errors"

// Code identifies the failure class of an inspection operation.
// Handlers map these onto the API error envelope, so the values are
// part of the external contract.
type Code string

const (
	CodeInvalidInput    Code = "INVALID_INPUT"
	CodeForbidden       Code = "FORBIDDEN"
	CodeTicketNotFound  Code = "TICKET_NOT_FOUND"
	CodeTicketNotActive Code = "TICKET_NOT_ACTIVE"
)

type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return string(e.Code) + ": " + e.Message
}

// AsError unwraps err into a typed inspection error, if it is one.
func AsError(err error) (*Error, bool) {
	var typed *Error
	if errors.As(err, &typed) {
		return typed, true
	}
	return nil, false
}

func errInvalidInput(message string) *Error {
	return &Error{Code: CodeInvalidInput, Message: message}
}

func errForbidden() *Error {
	return &Error{Code: CodeForbidden, Message: "You don't have permission to inspect this ticket."}
}

func errTicketNotFound() *Error {
	return &Error{Code: CodeTicketNotFound, Message: "Ticket not found."}
}

func errTicketNotActive() *Error {
	return &Error{Code: CodeTicketNotActive, Message: "Ticket is not active."}
}
