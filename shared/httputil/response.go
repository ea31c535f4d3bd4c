package httputil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog/hlog"
)

// MaxBodyBytes caps JSON request bodies.
const MaxBodyBytes = 1 << 20

// ErrEmptyBody is returned by DecodeJSON when the request carries no body.
var ErrEmptyBody = errors.New("empty request body")

// Message is the error envelope returned to clients.
type Message struct {
	Msg string `json:"msg"`
}

// JSON writes a JSON response with status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// Error writes {"msg": "..."} with a given status.
func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, Message{Msg: msg})
}

// InternalError logs err with a stack trace and answers with a generic 500.
func InternalError(w http.ResponseWriter, r *http.Request, err error) {
	hlog.FromRequest(r).Error().Stack().Err(pkgerrors.WithStack(err)).Msg("unhandled error")
	Error(w, http.StatusInternalServerError, "Internal Server Error")
}

// DecodeJSON parses the JSON body of r into v.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	if r.Body == nil || r.Body == http.NoBody {
		return ErrEmptyBody
	}

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return err
	}

	return nil
}
