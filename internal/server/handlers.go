package server

import (
	"context"
	"image/png"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Drasnov/mtga-reader/internal/assets"
	"github.com/Drasnov/mtga-reader/internal/errs"
	"github.com/Drasnov/mtga-reader/internal/mtga"
)

type healthBody struct {
	Status   string     `json:"status"`
	Language string     `json:"language"`
	Stats    mtga.Stats `json:"stats"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthBody{
		Status:   "ok",
		Language: s.reader.ActiveLanguage(),
		Stats:    s.reader.Stats(),
	})
}

type languagesBody struct {
	Active    string   `json:"active"`
	Default   string   `json:"default"`
	Available []string `json:"available"`
}

func (s *Server) handleLanguages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, languagesBody{
		Active:    s.reader.ActiveLanguage(),
		Default:   s.reader.DefaultLanguage(),
		Available: s.reader.AvailableLanguages(),
	})
}

func (s *Server) handleEnums(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.reader.Enums())
}

func (s *Server) handleEnum(w http.ResponseWriter, r *http.Request) {
	typ := chi.URLParam(r, "type")
	values, ok := s.reader.Enum(typ)
	if !ok {
		s.writeError(w, errs.New(errs.ErrKindNotFound, "no enum category "+typ))
		return
	}
	writeJSON(w, http.StatusOK, values)
}

func (s *Server) handleCardByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	card, err := s.reader.CardByID(r.Context(), id, false)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if card == nil {
		s.writeError(w, errs.Newf(errs.ErrKindNotFound, "no card %d", id))
		return
	}
	writeJSON(w, http.StatusOK, card)
}

type cardsBody struct {
	Cards []mtga.Record `json:"cards"`
	Count int           `json:"count"`
}

func (s *Server) handleCardsByName(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		s.writeError(w, errs.New(errs.ErrKindInvalidInput, "name query parameter required"))
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			s.writeError(w, errs.New(errs.ErrKindInvalidInput, "limit must be a non-negative integer"))
			return
		}
		limit = n
	}

	cards, err := s.reader.CardsByName(r.Context(), name, limit, false)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if cards == nil {
		cards = []mtga.Record{}
	}
	writeJSON(w, http.StatusOK, cardsBody{Cards: cards, Count: len(cards)})
}

type artInfo struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (s *Server) handleCardArt(w http.ResponseWriter, r *http.Request) {
	art, id, err := s.resolveArt(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	if len(art) == 0 {
		s.writeError(w, errs.Newf(errs.ErrKindNotFound, "no art bundles for card %d", id))
		return
	}

	roles := make(map[string]artInfo, len(art))
	for label, img := range art {
		b := img.Bounds()
		roles[label] = artInfo{Width: b.Dx(), Height: b.Dy()}
	}
	writeJSON(w, http.StatusOK, roles)
}

func (s *Server) handleCardArtImage(w http.ResponseWriter, r *http.Request) {
	art, id, err := s.resolveArt(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	role := chi.URLParam(r, "role")
	img, ok := art[role]
	if !ok {
		s.writeError(w, errs.Newf(errs.ErrKindNotFound, "no %q art for card %d", role, id))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if err := png.Encode(w, img); err != nil {
		s.log.With().Int64("card_id", id).Str("role", role).Err(err).Logger().
			Error("art encode failed")
	}
}

// resolveArt loads the card row and extracts the images behind its art
// reference.
func (s *Server) resolveArt(ctx context.Context, rawID string) (assets.ArtResult, int64, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, 0, err
	}

	card, err := s.reader.CardByID(ctx, id, false)
	if err != nil {
		return nil, id, err
	}
	if card == nil {
		return nil, id, errs.Newf(errs.ErrKindNotFound, "no card %d", id)
	}

	artID, ok := card["art"].(int64)
	if !ok {
		return nil, id, errs.Newf(errs.ErrKindNotFound, "card %d has no art reference", id)
	}

	art, err := s.reader.CardArt(artID)
	if err != nil {
		return nil, id, err
	}
	return art, id, nil
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errs.New(errs.ErrKindInvalidInput, "card id must be an integer")
	}
	return id, nil
}
