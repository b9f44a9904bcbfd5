package repos

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"gamestore/internal/domain"
)

// CartRepo stores one cart per session id. Prices always come from the
// games table at load time, never from what the client last saw.
type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

type cartRow struct {
	domain.Game
	Qty int `db:"qty"`
}

// Load rebuilds the session's cart. A session without rows gets an empty cart.
func (r *CartRepo) Load(ctx context.Context, sessionID string) (*domain.Cart, error) {
	rows := []cartRow{}
	if err := r.db.SelectContext(ctx, &rows, `
	  SELECT g.id, g.name, g.description, g.category, g.price, g.image_data, g.image_mime_type, ci.qty
	  FROM cart_items ci JOIN games g ON g.id = ci.game_id
	  WHERE ci.session_id = ?
	  ORDER BY ci.position
	`, sessionID); err != nil {
		return nil, err
	}
	cart := domain.NewCart()
	for _, row := range rows {
		if err := cart.AddItem(row.Game, row.Qty); err != nil {
			return nil, fmt.Errorf("cart row for game %d: %w", row.ID, err)
		}
	}
	return cart, nil
}

// Save replaces the stored lines with the cart's current lines, keeping their order.
func (r *CartRepo) Save(ctx context.Context, sessionID string, cart *domain.Cart) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE session_id = ?`, sessionID); err != nil {
		return err
	}
	for i, l := range cart.Lines() {
		if _, err := tx.ExecContext(ctx, `
		  INSERT INTO cart_items(session_id, game_id, qty, position, updated_at)
		  VALUES(?, ?, ?, ?, CURRENT_TIMESTAMP)
		`, sessionID, l.Game.ID, l.Quantity, i); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *CartRepo) Clear(ctx context.Context, sessionID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE session_id = ?`, sessionID)
	return err
}

// Move re-keys the rows of one session id to another. Rows already stored
// under the target id are replaced.
func (r *CartRepo) Move(ctx context.Context, from, to string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE session_id = ?`, to); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE cart_items SET session_id = ?, updated_at = CURRENT_TIMESTAMP WHERE session_id = ?`, to, from); err != nil {
		return err
	}
	return tx.Commit()
}
