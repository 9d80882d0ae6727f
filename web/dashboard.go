package web

import (
	"bytes"
	"net/http"

	"go.uber.org/zap"
)

type dashboardData struct {
	Title          string
	PollIntervalMS int64
}

func (s *Server) HandleIndex(w http.ResponseWriter, r *http.Request) {
	c := s.config()
	data := dashboardData{
		Title:          c.Dashboard.Title,
		PollIntervalMS: int64(c.Dashboard.PollInterval * 1000),
	}

	var buf bytes.Buffer
	if err := s.index.Execute(&buf, data); err != nil {
		s.log.Error("error rendering dashboard", zap.Any("err", err))
		http.Error(w, "ui unavailable", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
