package models

import "errors"

// Mensagens devolvidas ao cliente quando o payload não cumpre o contrato.
const (
	MsgMissingReservationFields = "Campos obrigatórios faltando"
	MsgMissingUserFields        = "Campos obrigatórios: nome, email, senha"
)

// ValidationError is raised before any store interaction.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

// ConnectionError means the store could not be reached.
type ConnectionError struct {
	Op  string
	Err error
}

func (e *ConnectionError) Error() string { return e.Err.Error() }

func (e *ConnectionError) Unwrap() error { return e.Err }

// QueryError covers malformed statements and constraint violations.
// Error() returns the driver text unchanged; it is what the caller sees.
type QueryError struct {
	Op  string
	Err error
}

func (e *QueryError) Error() string { return e.Err.Error() }

func (e *QueryError) Unwrap() error { return e.Err }

// InternalError is a server-side fault unrelated to the store or the
// caller's input, such as a failed password hash.
type InternalError struct {
	Op  string
	Err error
}

func (e *InternalError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *InternalError) Unwrap() error { return e.Err }

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsConnection(err error) bool {
	var c *ConnectionError
	return errors.As(err, &c)
}

func IsQuery(err error) bool {
	var q *QueryError
	return errors.As(err, &q)
}

func IsInternal(err error) bool {
	var i *InternalError
	return errors.As(err, &i)
}
