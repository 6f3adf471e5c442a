package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jonwraymond/coursecms/auth"
	"github.com/jonwraymond/coursecms/catalog"
)

// maxBodyBytes bounds write request bodies.
const maxBodyBytes = 1 << 20

// filterParam narrows instructor and course lists.
const filterParam = "institutionId"

type entityHandler[T any, P catalog.Record[T]] struct {
	srv *Server
	res *catalog.Resource[T, P]
}

// mount registers the five entity routes under path. Reads of private
// entities go through the same auth chain as writes.
func mount[T any, P catalog.Record[T]](r chi.Router, s *Server, path string, res *catalog.Resource[T, P], private bool) {
	h := &entityHandler[T, P]{srv: s, res: res}
	ns := res.Table().Namespace

	r.Route(path, func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if private {
				r.Use(s.requireIdentity, s.requirePermission(ns, auth.ActionRead))
			}
			r.Get("/", h.list)
			r.Get("/{id}", h.get)
		})
		r.Group(func(r chi.Router) {
			r.Use(s.requireIdentity, s.requirePermission(ns, auth.ActionWrite))
			r.Post("/", h.create)
			r.Put("/{id}", h.update)
			r.Delete("/{id}", h.delete)
		})
	})
}

func (h *entityHandler[T, P]) list(w http.ResponseWriter, r *http.Request) {
	body, err := h.res.List(r.Context(), r.URL.Query().Get(filterParam))
	if err != nil {
		h.srv.writeError(w, r, err)
		return
	}
	writeRaw(w, http.StatusOK, body)
}

func (h *entityHandler[T, P]) get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := h.res.Get(r.Context(), id)
	if err != nil {
		h.srv.writeError(w, r, h.wrap(err, id))
		return
	}
	writeOK(w, http.StatusOK, rec)
}

func (h *entityHandler[T, P]) create(w http.ResponseWriter, r *http.Request) {
	rec, err := h.decode(w, r)
	if err != nil {
		h.srv.writeError(w, r, err)
		return
	}
	if err := h.res.Create(r.Context(), rec); err != nil {
		h.srv.writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusCreated, rec)
}

func (h *entityHandler[T, P]) update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := h.decode(w, r)
	if err != nil {
		h.srv.writeError(w, r, err)
		return
	}
	if err := h.res.Update(r.Context(), id, rec); err != nil {
		h.srv.writeError(w, r, h.wrap(err, id))
		return
	}
	writeOK(w, http.StatusOK, rec)
}

func (h *entityHandler[T, P]) delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.res.Delete(r.Context(), id); err != nil {
		h.srv.writeError(w, r, h.wrap(err, id))
		return
	}
	writeOK(w, http.StatusOK, map[string]string{"id": id})
}

func (h *entityHandler[T, P]) decode(w http.ResponseWriter, r *http.Request) (P, error) {
	rec := P(new(T))
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(rec); err != nil {
		return nil, fmt.Errorf("%w: %v", errBadBody, err)
	}
	return rec, nil
}

func (h *entityHandler[T, P]) wrap(err error, id string) error {
	if catalog.IsNotFound(err) {
		return &notFoundError{entity: h.res.Table().Namespace, id: id}
	}
	return err
}
