package validate

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"gamestore/internal/domain"
)

const MaxQty = 50

var (
	reZIP      = regexp.MustCompile(`^[A-Za-z0-9 -]{3,10}$`)
	reUser     = regexp.MustCompile(`^[A-Za-z0-9_.-]{1,32}$`)
	reCategory = regexp.MustCompile(`^[A-Za-z0-9 &'-]{1,40}$`)
	reMime     = regexp.MustCompile(`^image/(png|jpeg|gif|webp)$`)
)

// Errors maps a form field name to a user-facing message.
type Errors map[string]string

func (e Errors) OK() bool { return len(e) == 0 }

// ID parses a positive numeric catalog id.
func ID(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// Qty parses a cart quantity. Large values are clamped to avoid abuse.
func Qty(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 1, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, false
	}
	if n > MaxQty {
		n = MaxQty
	}
	return n, true
}

// Page parses a 1-based page number; anything unusable becomes page 1.
func Page(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Category validates an optional category filter.
func Category(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", true
	}
	return s, reCategory.MatchString(s)
}

// ReturnURL only allows local absolute paths so redirects cannot leave the site.
func ReturnURL(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || !strings.HasPrefix(s, "/") || strings.HasPrefix(s, "//") || strings.Contains(s, `\`) {
		return "/"
	}
	return s
}

func Username(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reUser.MatchString(s)
}

// Password enforces a length window for login checks.
func Password(s string) bool {
	l := len(s)
	return l >= 4 && l <= 64
}

func required(errs Errors, field, v string, max int, msg string) string {
	v = strings.TrimSpace(v)
	if v == "" || len(v) > max {
		errs[field] = msg
	}
	return v
}

// Shipping trims the form and reports missing or malformed fields.
func Shipping(d domain.ShippingDetails) (domain.ShippingDetails, Errors) {
	errs := Errors{}
	d.Name = required(errs, "Name", d.Name, 80, "Please enter a name")
	d.Line1 = required(errs, "Line1", d.Line1, 120, "Please enter the first address line")
	d.Line2 = strings.TrimSpace(d.Line2)
	d.Line3 = strings.TrimSpace(d.Line3)
	d.City = required(errs, "City", d.City, 80, "Please enter a city name")
	d.State = required(errs, "State", d.State, 80, "Please enter a state name")
	d.Country = required(errs, "Country", d.Country, 80, "Please enter a country name")
	d.Zip = strings.TrimSpace(d.Zip)
	if d.Zip != "" && !reZIP.MatchString(d.Zip) {
		errs["Zip"] = "Please enter a valid zip code"
	}
	if len(d.Line2) > 120 || len(d.Line3) > 120 {
		errs["Line2"] = "Address lines must be at most 120 characters"
	}
	return d, errs
}

// GameForm checks the admin edit form and parses the price.
func GameForm(name, description, category, price string) (domain.Game, Errors) {
	errs := Errors{}
	g := domain.Game{
		Name:        required(errs, "Name", name, 100, "Please enter a game name"),
		Description: required(errs, "Description", description, 2000, "Please enter a description"),
	}
	cat, ok := Category(category)
	if !ok || cat == "" {
		errs["Category"] = "Please specify a category"
	}
	g.Category = cat

	p, err := decimal.NewFromString(strings.TrimSpace(price))
	if err != nil || p.IsNegative() {
		errs["Price"] = "Please enter a non-negative price"
	} else {
		g.Price = p.Round(2)
	}
	return g, errs
}

// ImageMime accepts the upload media types the store serves back.
func ImageMime(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if i := strings.IndexByte(s, ';'); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	return s, reMime.MatchString(s)
}

var orderStatuses = map[string]bool{"PLACED": true, "SHIPPED": true, "CANCELLED": true}

// OrderStatus normalizes an admin status change.
func OrderStatus(s string) (string, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	return s, orderStatuses[s]
}
