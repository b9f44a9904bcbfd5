package repos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

// ---------- Order header ----------
type OrderRow struct {
	ID        string          `db:"id"`
	Name      string          `db:"name"`
	Line1     string          `db:"line1"`
	Line2     string          `db:"line2"`
	Line3     string          `db:"line3"`
	City      string          `db:"city"`
	State     string          `db:"state"`
	Zip       string          `db:"zip"`
	Country   string          `db:"country"`
	GiftWrap  bool            `db:"gift_wrap"`
	Total     decimal.Decimal `db:"total"`
	Status    string          `db:"status"`
	CreatedAt string          `db:"created_at"`
}

type OrderItemRow struct {
	GameID int64           `db:"game_id"`
	Name   string          `db:"name"`
	Qty    int             `db:"qty"`
	Price  decimal.Decimal `db:"price"`
}

func (it OrderItemRow) Subtotal() decimal.Decimal {
	return it.Price.Mul(decimal.NewFromInt(int64(it.Qty)))
}

// Create writes the header and all items in one transaction.
func (r *OrderRepo) Create(ctx context.Context, o OrderRow, items []OrderItemRow) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.NamedExecContext(ctx, `
	  INSERT INTO orders
	    (id, name, line1, line2, line3, city, state, zip, country, gift_wrap, total, status, created_at)
	  VALUES
	    (:id, :name, :line1, :line2, :line3, :city, :state, :zip, :country, :gift_wrap, :total, 'PLACED', CURRENT_TIMESTAMP)
	`, o); err != nil {
		return err
	}
	for _, it := range items {
		if _, err := tx.ExecContext(ctx, `
		  INSERT INTO order_items(order_id, game_id, name, qty, price)
		  VALUES(?, ?, ?, ?, ?)
		`, o.ID, it.GameID, it.Name, it.Qty, it.Price); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *OrderRepo) Get(ctx context.Context, orderID string) (OrderRow, []OrderItemRow, error) {
	var o OrderRow
	if err := r.db.GetContext(ctx, &o, `
		SELECT id, name, line1, line2, line3, city, state, zip, country,
		       gift_wrap, total, status, created_at
		FROM orders WHERE id = ?
	`, orderID); err != nil {
		return OrderRow{}, nil, notFound(err)
	}

	items := []OrderItemRow{}
	if err := r.db.SelectContext(ctx, &items, `
		SELECT game_id, name, qty, price
		FROM order_items
		WHERE order_id = ?
		ORDER BY rowid
	`, orderID); err != nil {
		return OrderRow{}, nil, err
	}
	return o, items, nil
}

// ListLatest feeds the admin orders page.
func (r *OrderRepo) ListLatest(ctx context.Context, limit int) ([]OrderRow, error) {
	if limit <= 0 {
		limit = 100
	}
	out := []OrderRow{}
	err := r.db.SelectContext(ctx, &out, `
		SELECT id, name, line1, line2, line3, city, state, zip, country,
		       gift_wrap, total, status, created_at
		FROM orders
		ORDER BY datetime(created_at) DESC, rowid DESC
		LIMIT ?
	`, limit)
	return out, err
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE orders SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
