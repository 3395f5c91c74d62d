package httpserver

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"review_intake/internal/app"
	"review_intake/internal/domain"
)

const maxBodyBytes = 64 << 10

type Handlers struct{ Svc *app.ReviewService }

type errorBody struct {
	Error string `json:"error"`
}

type createReviewRequest struct {
	Text *string `json:"text"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/health", h.health)
	s.mux.Get("/readyz", h.ready)
	s.mux.With(s.write...).Post("/reviews", h.createReview)
	s.mux.Get("/reviews", h.listReviews)
}

// marshal encodes v without HTML escaping so Cyrillic and punctuation stay readable.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("marshal JSON response failed")
		status, body = http.StatusInternalServerError, []byte(`{"error":"internal error"}`+"\n")
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// fail maps validation errors to 400 and everything else to 500.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		writeError(w, http.StatusBadRequest, ve.Message)
		return
	}
	log.Error().Err(err).
		Str("request_id", chimw.GetReqID(r.Context())).
		Str("path", r.URL.Path).
		Msg("request failed")
	writeError(w, http.StatusInternalServerError, err.Error())
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte, error) {
	body, err := marshal(v)
	if err != nil {
		return "", nil, err
	}
	sum := sha1.Sum(body)
	return `W/"` + hex.EncodeToString(sum[:]) + `"`, body, nil
}

func (h *Handlers) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Svc.Health(r.Context()))
}

func (h *Handlers) ready(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Ready(r.Context()); err != nil {
		log.Warn().Err(err).Msg("readiness check failed")
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, domain.Health{Status: "ok", Message: "ready"})
}

func (h *Handlers) createReview(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req createReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		// not JSON, not an object, or text is not a string
		fail(w, r, domain.TextRequired())
		return
	}
	if req.Text == nil {
		fail(w, r, domain.TextRequired())
		return
	}

	rv, err := h.Svc.Create(r.Context(), *req.Text)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rv)
}

func (h *Handlers) listReviews(w http.ResponseWriter, r *http.Request) {
	out, err := h.Svc.List(r.Context(), r.URL.Query().Get("sentiment"))
	if err != nil {
		fail(w, r, err)
		return
	}

	etag, body, err := calcETagAndBody(out)
	if err != nil {
		fail(w, r, err)
		return
	}
	// If client already has this version, short-circuit.
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write listReviews body")
	}
}
