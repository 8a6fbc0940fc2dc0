package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
)

type errorResponse struct {
	Error string `json:"error"`
}

type successResponse struct {
	Success bool `json:"success"`
}

// writeJSON encodes v with the given status. Headers set by middleware
// (CORS, request id) are already on w.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// requestError is a client error detected before the service is called.
type requestError struct {
	status int
	msg    string
}

func (e *requestError) Error() string { return e.msg }

func badRequest(format string, args ...any) error {
	return &requestError{status: http.StatusBadRequest, msg: fmt.Sprintf(format, args...)}
}

// decodeJSON reads the whole request body and unmarshals it into dst.
// Unknown fields are ignored. The returned error is always a *requestError:
// 413 when the body exceeds the MaxBodySize limit, 400 otherwise.
func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return badRequest("request body is required")
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return &requestError{
				status: http.StatusRequestEntityTooLarge,
				msg:    fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit),
			}
		}
		return badRequest("read request body: %v", err)
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return badRequest("request body is required")
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return badRequest("malformed JSON body: %v", err)
	}
	return nil
}

// field pairs a JSON field name with whether the request carried it.
type field struct {
	name    string
	present bool
}

// requireFields reports every absent field in one error.
func requireFields(fields ...field) error {
	var missing []string
	for _, f := range fields {
		if !f.present {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return badRequest("missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

// number is a float64 that also accepts a quoted numeric string, since map
// clients commonly send coordinates taken straight from form inputs.
type number float64

func (n *number) UnmarshalJSON(b []byte) error {
	s := string(b)
	if strings.HasPrefix(s, `"`) {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("%q is not a number", s)
	}
	*n = number(f)
	return nil
}

// identifier is a row id that also accepts a quoted integer.
type identifier int64

func (id *identifier) UnmarshalJSON(b []byte) error {
	s := string(b)
	if strings.HasPrefix(s, `"`) {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
	}
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return fmt.Errorf("%q is not an integer id", s)
	}
	*id = identifier(v)
	return nil
}

// gidRequest is the body of the travel point and route delete endpoints.
type gidRequest struct {
	GID *identifier `json:"gid"`
}

// decodeGID reads a {"gid": n} body.
func decodeGID(r *http.Request) (int64, error) {
	var req gidRequest
	if err := decodeJSON(r, &req); err != nil {
		return 0, err
	}
	if err := requireFields(field{"gid", req.GID != nil}); err != nil {
		return 0, err
	}
	return int64(*req.GID), nil
}
