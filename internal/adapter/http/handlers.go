package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/couchcryptid/coffee-catalog/internal/catalog"
	"github.com/couchcryptid/coffee-catalog/internal/domain"
)

// maxReviewBody bounds the size of a submitted review payload.
const maxReviewBody = 64 << 10

type coffeeList struct {
	Count   int             `json:"count"`
	Coffees []domain.Coffee `json:"coffees"`
}

// coffeeDetail adds the session review perception to the catalog view.
type coffeeDetail struct {
	catalog.CoffeeDetail
	Perception domain.Perception `json:"perception"`
}

type reviewList struct {
	Reviews    []domain.Review   `json:"reviews"`
	Perception domain.Perception `json:"perception"`
}

func (s *Server) listCoffees(w http.ResponseWriter, r *http.Request) {
	crit, err := parseCriteria(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	coffees := s.catalog.Coffees(crit)
	writeJSON(w, http.StatusOK, coffeeList{Count: len(coffees), Coffees: coffees})
}

func (s *Server) getCoffee(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	d, err := s.catalog.CoffeeDetail(id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	perception, err := s.reviews.Perception(id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, coffeeDetail{CoffeeDetail: d, Perception: perception})
}

func (s *Server) listReviews(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	reviews, err := s.reviews.List(id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	perception, err := s.reviews.Perception(id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reviewList{Reviews: reviews, Perception: perception})
}

func (s *Server) submitReview(w http.ResponseWriter, r *http.Request) {
	var in domain.ReviewInput
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxReviewBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		s.writeError(w, r, &bodyError{err: err})
		return
	}

	review, err := s.reviews.Submit(r.Context(), r.PathValue("id"), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, review)
}

func (s *Server) getFacets(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.Facets())
}

func (s *Server) listRoasters(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.Roasters())
}

func (s *Server) getRoaster(w http.ResponseWriter, r *http.Request) {
	d, err := s.catalog.Roaster(r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) listProducers(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.Producers())
}

func (s *Server) getProducer(w http.ResponseWriter, r *http.Request) {
	d, err := s.catalog.Producer(r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) checkLocation(w http.ResponseWriter, r *http.Request) {
	if s.locations == nil {
		writeJSON(w, http.StatusNotImplemented, map[string]string{"error": "location checks disabled"})
		return
	}
	check, err := s.locations.CheckLocation(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, check)
}

func (s *Server) producerMap(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(markersToGeoJSON(s.catalog.ProducerMarkers())) //nolint:errcheck // client went away
}

func (s *Server) flavorMap(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.FlavorMap())
}

func (s *Server) flavorFocus(w http.ResponseWriter, r *http.Request) {
	focus, err := s.catalog.FlavorFocus(r.PathValue("note"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, focus)
}

// bodyError reports a request body that could not be decoded.
type bodyError struct {
	err error
}

func (e *bodyError) Error() string { return fmt.Sprintf("request body: %v", e.err) }

func (e *bodyError) Unwrap() error { return e.err }

// writeError maps err onto a status code and a JSON error body.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		qerr *queryError
		berr *bodyError
	)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, domain.ErrInvalidReview):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	case errors.As(err, &qerr), errors.As(err, &berr):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}
