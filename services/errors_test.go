package services

import (
	"errors"
	"net/http"
	"testing"
)

func TestSubmitErrorMapping(t *testing.T) {
	cause := errors.New("boom")
	cases := []struct {
		kind    ErrorKind
		status  int
		message string
		outcome string
	}{
		{KindValidation, http.StatusBadRequest, MsgValidation, "validation"},
		{KindMalformedLocation, http.StatusBadRequest, MsgMalformedLocation, "malformed_location"},
		{KindStorage, http.StatusInternalServerError, MsgStorage, "storage"},
		{KindPersistence, http.StatusInternalServerError, MsgPersistence, "persistence"},
		{ErrorKind(0), http.StatusInternalServerError, MsgUnexpected, "unexpected"},
	}
	for _, tc := range cases {
		t.Run(tc.outcome, func(t *testing.T) {
			err := &SubmitError{Kind: tc.kind, Err: cause}
			if err.Status() != tc.status || err.Message() != tc.message || err.Outcome() != tc.outcome {
				t.Fatalf("got %d %q %q", err.Status(), err.Message(), err.Outcome())
			}
			if !errors.Is(err, cause) {
				t.Fatalf("errors.Is(cause) = false")
			}
		})
	}
}
