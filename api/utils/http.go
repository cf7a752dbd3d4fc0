// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/ident"
	"github.com/vechain/stakepool/log"
)

var logger = log.WithContext("pkg", "api")

const JSONContentType = "application/json; charset=utf-8"

// Error is answered with its Status. Any other error is answered with 500.
type Error struct {
	Status int
	Cause  error
}

func (e *Error) Error() string { return e.Cause.Error() }
func (e *Error) Unwrap() error { return e.Cause }

func BadRequest(cause error) error { return &Error{http.StatusBadRequest, cause} }
func NotFound(cause error) error   { return &Error{http.StatusNotFound, cause} }
func Conflict(cause error) error   { return &Error{http.StatusConflict, cause} }

// ErrorBody is the JSON body of a failed request.
type ErrorBody struct {
	Error string `json:"error"`
}

// HandlerFunc is a http.HandlerFunc that may fail.
type HandlerFunc func(http.ResponseWriter, *http.Request) error

// WrapHandlerFunc answers the error of f, if any, as an ErrorBody.
func WrapHandlerFunc(f HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := f(w, r)
		if err == nil {
			return
		}
		status := http.StatusInternalServerError
		var e *Error
		if errors.As(err, &e) {
			status = e.Status
		} else {
			logger.Error("request failed", "uri", r.URL.String(), "error", err)
		}
		if werr := writeJSON(w, status, &ErrorBody{Error: err.Error()}); werr != nil {
			logger.Debug("failed to write error", "error", werr)
		}
	}
}

// ParseJSON decodes a request body, rejecting unknown fields.
func ParseJSON(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// WriteJSON answers 200 with v.
func WriteJSON(w http.ResponseWriter, v any) error {
	return writeJSON(w, http.StatusOK, v)
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", JSONContentType)
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// PathAddress parses the route variable name as an address.
func PathAddress(r *http.Request, name string) (ident.Address, error) {
	return parseAddress(mux.Vars(r)[name], name)
}

// QueryAddress parses the required query parameter name as an address.
func QueryAddress(r *http.Request, name string) (ident.Address, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return ident.Address{}, BadRequest(errors.Errorf("missing query parameter %q", name))
	}
	return parseAddress(v, name)
}

func parseAddress(s, name string) (ident.Address, error) {
	addr, err := ident.ParseAddress(s)
	if err != nil {
		return ident.Address{}, BadRequest(errors.WithMessage(err, name))
	}
	return addr, nil
}
