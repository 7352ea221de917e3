package server

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/Drasnov/mtga-reader/internal/errs"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error string `json:"error"`
}

// writeError maps taxonomy kinds onto status codes. Anything not
// attributable to the request is logged and reported as a 500.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errs.IsInvalidInput(err):
		status = http.StatusBadRequest
	case errs.IsNotFound(err):
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		s.log.With().Err(err).Logger().Error("request failed")
	}
	writeJSON(w, status, errorBody{Error: err.Error()})
}
