package domain

import "github.com/shopspring/decimal"

// Game is a catalog item. ID 0 marks a game that has not been stored yet.
type Game struct {
	ID            int64           `db:"id"`
	Name          string          `db:"name"`
	Description   string          `db:"description"`
	Category      string          `db:"category"`
	Price         decimal.Decimal `db:"price"`
	ImageData     []byte          `db:"image_data"`
	ImageMimeType string          `db:"image_mime_type"`
}

func (g Game) HasImage() bool { return len(g.ImageData) > 0 && g.ImageMimeType != "" }

// GameQuery filters and pages catalog listings. An empty Category matches all games.
type GameQuery struct {
	Category string
	Page     int
	PageSize int
}

func (q GameQuery) Offset() int {
	if q.Page < 1 {
		return 0
	}
	return (q.Page - 1) * q.PageSize
}
