package server

import (
	"encoding/json"
	"net/http"

	"github.com/matzehuels/recipecost/pkg/errors"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// writeJSON encodes v before writing the status, so a value JSON cannot
// represent (an overflowed cost is +Inf) becomes a 400 instead of an empty
// 200.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		status = errors.HTTPStatus(errors.ErrCodeInvalidInput)
		data, _ = json.Marshal(errorBody{
			Code:    errors.ErrCodeInvalidInput,
			Message: "figures out of range: " + err.Error(),
		})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(data, '\n'))
}

// writeError renders err with the status of its code. Errors without a
// code are reported as INTERNAL_ERROR without their text.
func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	msg := errors.UserMessage(err)
	if code == "" {
		code = errors.ErrCodeInternal
		msg = "internal error"
	}
	writeJSON(w, errors.HTTPStatus(code), errorBody{Code: code, Message: msg})
}

// decode reads a JSON body into v, capped at maxBodyBytes.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body: %v", err)
	}
	return nil
}

func notFound(path string) error {
	return errors.New(errors.ErrCodeNotFound, "no route for %s", path)
}
