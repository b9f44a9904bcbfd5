package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrInvalidQuantity = errors.New("quantity must be at least 1")

type CartLine struct {
	Game     Game
	Quantity int
}

func (l CartLine) Subtotal() decimal.Decimal {
	return l.Game.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart holds one line per game ID in first-added order.
// A Cart is owned by a single request; it does no locking.
type Cart struct {
	lines []CartLine
}

func NewCart() *Cart { return &Cart{} }

// AddItem merges quantity into the line for game.ID, or appends a new line.
func (c *Cart) AddItem(game Game, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	if i := c.index(game.ID); i >= 0 {
		c.lines[i].Quantity += quantity
		return nil
	}
	c.lines = append(c.lines, CartLine{Game: game, Quantity: quantity})
	return nil
}

// RemoveLine drops the line for game.ID. Absent games are ignored.
func (c *Cart) RemoveLine(game Game) {
	i := c.index(game.ID)
	if i < 0 {
		return
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
}

func (c *Cart) ComputeTotalValue() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

func (c *Cart) Clear() { c.lines = nil }

// Lines returns a copy; changing it does not change the cart.
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Len() int { return len(c.lines) }

func (c *Cart) IsEmpty() bool { return len(c.lines) == 0 }

// Quantity reports how many of the given game are in the cart.
func (c *Cart) Quantity(gameID int64) int {
	if i := c.index(gameID); i >= 0 {
		return c.lines[i].Quantity
	}
	return 0
}

func (c *Cart) index(gameID int64) int {
	for i := range c.lines {
		if c.lines[i].Game.ID == gameID {
			return i
		}
	}
	return -1
}
