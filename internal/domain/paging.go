package domain

type Paging struct {
	TotalItems   int
	ItemsPerPage int
	CurrentPage  int
}

func (p Paging) TotalPages() int {
	if p.ItemsPerPage <= 0 {
		return 0
	}
	return (p.TotalItems + p.ItemsPerPage - 1) / p.ItemsPerPage
}

// Pages lists page numbers 1..TotalPages for the pager links.
func (p Paging) Pages() []int {
	n := p.TotalPages()
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

type GamesPage struct {
	Games           []Game
	Paging          Paging
	CurrentCategory string
}
