package server

import (
	"net/http"

	"lawfirm-site/internal/common/errors"
	"lawfirm-site/internal/content"
)

// getSite serves every section, each resolved independently.
func (s *Server) getSite(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.opts.Resolver.ResolveAll(r.Context()))
}

func (s *Server) getSection(w http.ResponseWriter, r *http.Request) {
	key, ok := content.ParseKey(r.PathValue("key"))
	if !ok {
		s.writeError(w, r, errors.NewUnknownSectionError(r.PathValue("key")))
		return
	}
	writeJSON(w, http.StatusOK, s.opts.Resolver.ResolveOne(r.Context(), key))
}
