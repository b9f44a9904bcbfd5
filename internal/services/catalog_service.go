package services

import (
	"context"
	"strconv"

	"golang.org/x/sync/singleflight"

	"gamestore/internal/domain"
	"gamestore/internal/repos"
)

const DefaultPageSize = 4

type CatalogService struct {
	Games    GameRepository
	PageSize int

	images singleflight.Group // collapses concurrent reads of one image
}

func NewCatalogService(games GameRepository, pageSize int) *CatalogService {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &CatalogService{Games: games, PageSize: pageSize}
}

// List returns one page of games plus paging info counted under the same filter.
func (s *CatalogService) List(ctx context.Context, q domain.GameQuery) (domain.GamesPage, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize <= 0 {
		q.PageSize = s.PageSize
	}
	games, err := s.Games.List(ctx, q)
	if err != nil {
		return domain.GamesPage{}, err
	}
	total, err := s.Games.Count(ctx, q.Category)
	if err != nil {
		return domain.GamesPage{}, err
	}
	return domain.GamesPage{
		Games: games,
		Paging: domain.Paging{
			TotalItems:   total,
			ItemsPerPage: q.PageSize,
			CurrentPage:  q.Page,
		},
		CurrentCategory: q.Category,
	}, nil
}

func (s *CatalogService) Categories(ctx context.Context) ([]string, error) {
	return s.Games.Categories(ctx)
}

func (s *CatalogService) Game(ctx context.Context, id int64) (domain.Game, error) {
	return s.Games.Get(ctx, id)
}

type image struct {
	data []byte
	mime string
}

// Image returns the stored picture for a game. Games without one report repos.ErrNotFound.
// The shared lookup runs detached from any single caller's cancellation; each
// caller still stops waiting when its own ctx is done.
func (s *CatalogService) Image(ctx context.Context, id int64) ([]byte, string, error) {
	lookupCtx := context.WithoutCancel(ctx)
	ch := s.images.DoChan(strconv.FormatInt(id, 10), func() (any, error) {
		g, err := s.Games.Get(lookupCtx, id)
		if err != nil {
			return nil, err
		}
		if !g.HasImage() {
			return nil, repos.ErrNotFound
		}
		return image{data: g.ImageData, mime: g.ImageMimeType}, nil
	})
	select {
	case <-ctx.Done():
		return nil, "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, "", res.Err
		}
		img := res.Val.(image)
		return img.data, img.mime, nil
	}
}
