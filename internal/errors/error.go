package errors

import "errors"

var (
	ErrRecordNotFound   = errors.New("record with provided key was not found")
	ErrSessionNotFound  = errors.New("editing session was not found")
	ErrMalformedRecord  = errors.New("malformed game record")
	ErrInvalidProperty  = errors.New("invalid property value")
	ErrInvalidCommand   = errors.New("invalid editor command")
	ErrIllegalMove      = errors.New("illegal move")
	ErrCreateRecordFail = errors.New("create record failed")
	ErrInternal         = errors.New("internal error")
)
