package devserver

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vcrobe/valkyrja/ajax"
)

func init() {
	chi.RegisterMethod(ajax.MethodUpdate)
}

// Echo is the body /api/echo answers with.
type Echo struct {
	Method        string `json:"method"`
	Body          string `json:"body"`
	ContentType   string `json:"contentType"`
	RequestedWith string `json:"requestedWith"`
}

// echo reflects the request back as JSON, for any verb.
func (s *Server) echo(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if s.metrics != nil {
		s.metrics.Echoed.WithLabelValues(r.Method).Inc()
	}
	writeJSON(w, http.StatusOK, Echo{
		Method:        r.Method,
		Body:          string(body),
		ContentType:   r.Header.Get("Content-Type"),
		RequestedWith: r.Header.Get("X-Requested-With"),
	})
}

// status answers with the status code named in the path.
func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	code, err := strconv.Atoi(chi.URLParam(r, "code"))
	if err != nil || code < 200 || code > 599 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid status code"})
		return
	}
	writeJSON(w, code, map[string]any{"status": code, "text": http.StatusText(code)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
