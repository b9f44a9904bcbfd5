package repos

import (
	"context"

	"github.com/jmoiron/sqlx"

	"gamestore/internal/domain"
)

type GameRepo struct{ db *sqlx.DB }

func NewGameRepo(db *sqlx.DB) *GameRepo { return &GameRepo{db: db} }

const gameCols = `id, name, description, category, price, image_data, image_mime_type`

// List returns one page of games in id order, optionally filtered by category.
func (r *GameRepo) List(ctx context.Context, q domain.GameQuery) ([]domain.Game, error) {
	where := `1 = 1`
	args := []any{}
	if q.Category != "" {
		where += ` AND category = ?`
		args = append(args, q.Category)
	}
	query := `SELECT ` + gameCols + ` FROM games WHERE ` + where + ` ORDER BY id`
	if q.PageSize > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, q.PageSize, q.Offset())
	}
	out := []domain.Game{}
	err := r.db.SelectContext(ctx, &out, query, args...)
	return out, err
}

func (r *GameRepo) Count(ctx context.Context, category string) (int, error) {
	var n int
	var err error
	if category == "" {
		err = r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM games`)
	} else {
		err = r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM games WHERE category = ?`, category)
	}
	return n, err
}

func (r *GameRepo) Categories(ctx context.Context) ([]string, error) {
	out := []string{}
	err := r.db.SelectContext(ctx, &out, `
	  SELECT DISTINCT category FROM games
	  WHERE category != ''
	  ORDER BY category
	`)
	return out, err
}

func (r *GameRepo) Get(ctx context.Context, id int64) (domain.Game, error) {
	var g domain.Game
	err := r.db.GetContext(ctx, &g, `SELECT `+gameCols+` FROM games WHERE id = ?`, id)
	return g, notFound(err)
}

// Save inserts games with ID 0 (setting g.ID) and updates the rest.
func (r *GameRepo) Save(ctx context.Context, g *domain.Game) error {
	if g.ID == 0 {
		res, err := r.db.ExecContext(ctx, `
		  INSERT INTO games(name, description, category, price, image_data, image_mime_type, created_at)
		  VALUES(?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		`, g.Name, g.Description, g.Category, g.Price, g.ImageData, g.ImageMimeType)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		g.ID = id
		return nil
	}

	res, err := r.db.ExecContext(ctx, `
	  UPDATE games
	  SET name = ?, description = ?, category = ?, price = ?,
	      image_data = ?, image_mime_type = ?, updated_at = CURRENT_TIMESTAMP
	  WHERE id = ?
	`, g.Name, g.Description, g.Category, g.Price, g.ImageData, g.ImageMimeType, g.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a game and returns it, or (nil, nil) when no such game exists.
func (r *GameRepo) Delete(ctx context.Context, id int64) (*domain.Game, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var g domain.Game
	if err := tx.GetContext(ctx, &g, `SELECT `+gameCols+` FROM games WHERE id = ?`, id); err != nil {
		if notFound(err) == ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM games WHERE id = ?`, id); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &g, nil
}
