package services

import "net/http"

// ErrorKind classifies a failed submission for the HTTP layer.
type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindMalformedLocation
	KindStorage
	KindPersistence
)

// Client facing messages. Causes stay in SubmitError.Err and the log.
const (
	MsgValidation        = "Title and description are required."
	MsgMalformedLocation = "Invalid JSON in location field."
	MsgStorage           = "Failed to upload file to storage."
	MsgPersistence       = "Failed to save submission."
	MsgUnexpected        = "An unexpected error occurred."
)

// SubmitError is returned by SubmissionService.Submit for every classified failure.
type SubmitError struct {
	Kind ErrorKind
	Err  error
}

func (e *SubmitError) Error() string {
	if e.Err == nil {
		return e.Message()
	}
	return e.Message() + ": " + e.Err.Error()
}

func (e *SubmitError) Unwrap() error { return e.Err }

// Status is the HTTP status for the error kind.
func (e *SubmitError) Status() int {
	switch e.Kind {
	case KindValidation, KindMalformedLocation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Message is the text returned to the client.
func (e *SubmitError) Message() string {
	switch e.Kind {
	case KindValidation:
		return MsgValidation
	case KindMalformedLocation:
		return MsgMalformedLocation
	case KindStorage:
		return MsgStorage
	case KindPersistence:
		return MsgPersistence
	default:
		return MsgUnexpected
	}
}

// Outcome is the metrics label for the error kind.
func (e *SubmitError) Outcome() string {
	switch e.Kind {
	case KindValidation:
		return "validation"
	case KindMalformedLocation:
		return "malformed_location"
	case KindStorage:
		return "storage"
	case KindPersistence:
		return "persistence"
	default:
		return "unexpected"
	}
}
