package services

import (
	"context"
	"fmt"

	"gamestore/internal/domain"
	"gamestore/internal/metrics"
)

// Image is an uploaded picture for a game.
type Image struct {
	Data     []byte
	MimeType string
}

type AdminService struct {
	Games   GameRepository
	Metrics *metrics.StoreMetrics
}

func NewAdminService(games GameRepository, m *metrics.StoreMetrics) *AdminService {
	return &AdminService{Games: games, Metrics: m}
}

func (s *AdminService) List(ctx context.Context) ([]domain.Game, error) {
	return s.Games.List(ctx, domain.GameQuery{})
}

func (s *AdminService) Get(ctx context.Context, id int64) (domain.Game, error) {
	return s.Games.Get(ctx, id)
}

// Save stores g and returns the confirmation message for the admin list.
// A nil img keeps whatever picture the game already had.
func (s *AdminService) Save(ctx context.Context, g *domain.Game, img *Image) (string, error) {
	op := "create"
	if g.ID != 0 {
		op = "update"
	}
	if img != nil {
		g.ImageData = img.Data
		g.ImageMimeType = img.MimeType
	} else if g.ID != 0 {
		existing, err := s.Games.Get(ctx, g.ID)
		if err != nil {
			return "", err
		}
		g.ImageData = existing.ImageData
		g.ImageMimeType = existing.ImageMimeType
	}
	if err := s.Games.Save(ctx, g); err != nil {
		return "", err
	}
	s.Metrics.RecordCatalogWrite(op)
	return fmt.Sprintf("%s has been saved", g.Name), nil
}

// Delete returns an empty message when no game had that id.
func (s *AdminService) Delete(ctx context.Context, id int64) (string, error) {
	g, err := s.Games.Delete(ctx, id)
	if err != nil {
		return "", err
	}
	if g == nil {
		return "", nil
	}
	s.Metrics.RecordCatalogWrite("delete")
	return fmt.Sprintf("%s was deleted", g.Name), nil
}
