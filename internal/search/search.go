// Package search looks up catalog entries by one caller-chosen field.
package search

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"gamevault-backend/internal/games"
	"gamevault-backend/internal/platform/apperr"
	"gamevault-backend/internal/platform/db"
)

// FilterKind selects the column SearchGames matches on.
type FilterKind string

const (
	ByID       FilterKind = "ID"
	ByTitle    FilterKind = "Title"
	ByGenre    FilterKind = "Genre"
	ByPlatform FilterKind = "Platform"
)

var kinds = []FilterKind{ByID, ByTitle, ByGenre, ByPlatform}

// ParseFilterKind accepts any letter case and returns the canonical kind.
func ParseFilterKind(s string) (FilterKind, error) {
	s = strings.TrimSpace(s)
	for _, k := range kinds {
		if strings.EqualFold(s, string(k)) {
			return k, nil
		}
	}
	return "", apperr.ErrInvalid("unknown filter kind: " + s + " (want ID, Title, Genre or Platform)")
}

type Service struct {
	gw  *db.Gateway
	log *zap.Logger
}

func NewService(gw *db.Gateway, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{gw: gw, log: log.Named("search")}
}

// Search runs the SearchGames procedure. No match is an empty slice.
func (s *Service) Search(ctx context.Context, kind FilterKind, value string) ([]games.Game, error) {
	kind, err := ParseFilterKind(string(kind))
	if err != nil {
		return nil, err
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, apperr.ErrInvalid("search value is required")
	}
	if kind == ByID {
		if id, err := strconv.ParseInt(value, 10, 64); err != nil || id <= 0 {
			return nil, apperr.ErrInvalid("ID search needs a positive integer")
		}
	}

	var out []games.Game
	err = s.gw.WithConnection(ctx, "games.search", func(ctx context.Context, conn db.DBTX) error {
		rows, err := conn.QueryContext(ctx, `CALL SearchGames(?, ?)`, string(kind), value)
		if err != nil {
			return err
		}
		out, err = games.CollectGames(rows)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.log.Debug("search", zap.String("kind", string(kind)), zap.Int("hits", len(out)))
	return out, nil
}
