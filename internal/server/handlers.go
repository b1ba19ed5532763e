package server

import (
	"net/http"
	"strings"

	"github.com/nikhilmaddirala/carnatic-abc/internal/notation"
)

const maxSourceSize = 1 * 1024 * 1024 // 1MB of notation is plenty

// handleIndex serves the paste form
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, "index.html", nil)
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// handleConvert converts pasted CABC notation and renders the result
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSourceSize)

	if err := r.ParseForm(); err != nil {
		s.renderError(w, "Input too large. Maximum size is 1MB.", http.StatusBadRequest)
		return
	}

	source := r.FormValue("source")
	if strings.TrimSpace(source) == "" {
		s.renderError(w, "Please paste CABC notation to convert.", http.StatusBadRequest)
		return
	}

	abc := notation.Convert(source)
	withSwaras := notation.AddSwaraLyrics(abc)

	data := map[string]any{
		"ABC":    abc,
		"Swaras": withSwaras,
	}
	if r.FormValue("strip") == "on" {
		stripped := notation.StripLyrics(abc)
		data["ABC"] = stripped
		data["Swaras"] = notation.AddSwaraLyrics(stripped)
	}

	s.render(w, "result.html", data)
}

// render renders a template
func (s *Server) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Error("template error", "template", name, "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
	}
}

// renderError renders an error message
func (s *Server) renderError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	s.templates.ExecuteTemplate(w, "error.html", map[string]any{
		"Error": message,
	})
}
