// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package restutil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/vechain/tokenomy/builtin/reverts"
	"github.com/vechain/tokenomy/log"
)

var logger = log.WithContext("pkg", "restutil")

type httpError struct {
	cause  error
	status int
}

func (e *httpError) Error() string {
	return e.cause.Error()
}

// HTTPError create an error with http status code.
func HTTPError(cause error, status int) error {
	return &httpError{
		cause:  cause,
		status: status,
	}
}

// BadRequest convenience method to create http bad request error.
func BadRequest(cause error) error {
	return &httpError{
		cause:  cause,
		status: http.StatusBadRequest,
	}
}

// Forbidden convenience method to create http forbidden error.
func Forbidden(cause error) error {
	return &httpError{
		cause:  cause,
		status: http.StatusForbidden,
	}
}

// NotFound convenience method to create http not found error.
func NotFound(cause error) error {
	return &httpError{
		cause:  cause,
		status: http.StatusNotFound,
	}
}

// RevertStatus maps a revert category to the status it is responded with.
func RevertStatus(category reverts.Category) int {
	switch category {
	case reverts.Validation:
		return http.StatusBadRequest
	case reverts.Insufficient:
		return http.StatusUnprocessableEntity
	case reverts.Temporal, reverts.Ordering:
		return http.StatusConflict
	case reverts.Authorization:
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

// Revert is the response body of a reverted invocation.
type Revert struct {
	Error    string `json:"error"`
	Category string `json:"category"`
	Message  string `json:"message,omitempty"`
}

// HandlerFunc like http.HandlerFunc, bu it returns an error.
// If the returned error is httpError type, httpError.status will be responded.
// Reverts are responded as json with a status by category,
// otherwise http.StatusInternalServerError responded.
type HandlerFunc func(http.ResponseWriter, *http.Request) error

// WrapHandlerFunc convert HandlerFunc to http.HandlerFunc.
func WrapHandlerFunc(f HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := f(w, r)
		if err == nil {
			return
		}
		var (
			he *httpError
			re *reverts.ErrRevert
		)
		switch {
		case errors.As(err, &he):
			if he.cause != nil {
				http.Error(w, he.cause.Error(), he.status)
			} else {
				w.WriteHeader(he.status)
			}
		case errors.As(err, &re):
			w.Header().Set("Content-Type", JSONContentType)
			w.WriteHeader(RevertStatus(re.Category()))
			_ = json.NewEncoder(w).Encode(&Revert{
				Error:    re.Kind().String(),
				Category: re.Category().String(),
				Message:  re.Message(),
			})
		default:
			logger.Debug("all errors", "URI", r.RequestURI, "err", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

// content types
const (
	JSONContentType = "application/json; charset=utf-8"
)

// ParseJSON parse a JSON object using strict mode.
func ParseJSON(r io.Reader, v any) error {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

// WriteJSON response an object in JSON encoding.
func WriteJSON(w http.ResponseWriter, obj any) error {
	w.Header().Set("Content-Type", JSONContentType)
	return json.NewEncoder(w).Encode(obj)
}

// M shortcut for type map[string]any.
type M map[string]any
