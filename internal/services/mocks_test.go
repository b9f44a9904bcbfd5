package services_test

import (
	"context"
	"sort"
	"sync"

	"gamestore/internal/domain"
	"gamestore/internal/repos"
)

// mockGameRepo implements services.GameRepository over a map.
type mockGameRepo struct {
	mu     sync.Mutex
	games  map[int64]domain.Game
	nextID int64
	gets   int
	err    error
	// onGet, if set, runs before each Get outside the lock.
	onGet func(ctx context.Context)
}

func newMockGameRepo(games ...domain.Game) *mockGameRepo {
	m := &mockGameRepo{games: map[int64]domain.Game{}}
	for _, g := range games {
		m.games[g.ID] = g
		if g.ID > m.nextID {
			m.nextID = g.ID
		}
	}
	return m
}

func (m *mockGameRepo) sorted(category string) []domain.Game {
	out := []domain.Game{}
	for _, g := range m.games {
		if category == "" || g.Category == category {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *mockGameRepo) List(_ context.Context, q domain.GameQuery) ([]domain.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	all := m.sorted(q.Category)
	if q.PageSize <= 0 {
		return all, nil
	}
	start := q.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := start + q.PageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

func (m *mockGameRepo) Count(_ context.Context, category string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sorted(category)), m.err
}

func (m *mockGameRepo) Categories(context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := map[string]bool{}
	out := []string{}
	for _, g := range m.sorted("") {
		if g.Category != "" && !seen[g.Category] {
			seen[g.Category] = true
			out = append(out, g.Category)
		}
	}
	sort.Strings(out)
	return out, m.err
}

func (m *mockGameRepo) Get(ctx context.Context, id int64) (domain.Game, error) {
	if m.onGet != nil {
		m.onGet(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	if m.err != nil {
		return domain.Game{}, m.err
	}
	g, ok := m.games[id]
	if !ok {
		return domain.Game{}, repos.ErrNotFound
	}
	return g, nil
}

func (m *mockGameRepo) Save(_ context.Context, g *domain.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if g.ID == 0 {
		m.nextID++
		g.ID = m.nextID
	} else if _, ok := m.games[g.ID]; !ok {
		return repos.ErrNotFound
	}
	m.games[g.ID] = *g
	return nil
}

func (m *mockGameRepo) Delete(_ context.Context, id int64) (*domain.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	g, ok := m.games[id]
	if !ok {
		return nil, nil
	}
	delete(m.games, id)
	return &g, nil
}

// mockCartStore implements services.CartStore keeping carts by session.
type mockCartStore struct {
	carts map[string][]domain.CartLine
	saves int
	err   error
}

func newMockCartStore() *mockCartStore { return &mockCartStore{carts: map[string][]domain.CartLine{}} }

func (m *mockCartStore) Load(_ context.Context, sid string) (*domain.Cart, error) {
	if m.err != nil {
		return nil, m.err
	}
	c := domain.NewCart()
	for _, l := range m.carts[sid] {
		if err := c.AddItem(l.Game, l.Quantity); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (m *mockCartStore) Save(_ context.Context, sid string, c *domain.Cart) error {
	if m.err != nil {
		return m.err
	}
	m.saves++
	m.carts[sid] = c.Lines()
	return nil
}

func (m *mockCartStore) Clear(_ context.Context, sid string) error {
	if m.err != nil {
		return m.err
	}
	delete(m.carts, sid)
	return nil
}

func (m *mockCartStore) Move(_ context.Context, from, to string) error {
	if m.err != nil {
		return m.err
	}
	delete(m.carts, to)
	if lines, ok := m.carts[from]; ok {
		m.carts[to] = lines
		delete(m.carts, from)
	}
	return nil
}

// mockProcessor implements services.OrderProcessor and records calls.
type mockProcessor struct {
	calls    int
	lastCart []domain.CartLine
	lastShip domain.ShippingDetails
	err      error
}

func (m *mockProcessor) ProcessOrder(_ context.Context, c *domain.Cart, s domain.ShippingDetails) error {
	m.calls++
	m.lastCart = c.Lines()
	m.lastShip = s
	return m.err
}

// mockOrderWriter implements services.OrderWriter.
type mockOrderWriter struct {
	order repos.OrderRow
	items []repos.OrderItemRow
	err   error
}

func (m *mockOrderWriter) Create(_ context.Context, o repos.OrderRow, items []repos.OrderItemRow) error {
	m.order = o
	m.items = items
	return m.err
}
