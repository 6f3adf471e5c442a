package api

import (
	"net/http"

	"github.com/jonwraymond/coursecms/observe"
)

func (s *Server) cacheStats(w http.ResponseWriter, r *http.Request) {
	writeOK(w, http.StatusOK, s.cache.Stats(r.Context()))
}

func (s *Server) cacheClear(w http.ResponseWriter, r *http.Request) {
	before := s.cache.Stats(r.Context()).Size
	if err := s.cache.Clear(r.Context()); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Info(r.Context(), "cache cleared",
		observe.Field{Key: "removed", Value: before},
		observe.Field{Key: "principal", Value: principal(r)},
	)
	writeOK(w, http.StatusOK, map[string]int{"removed": before})
}
