package handlers_test

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

// oversized POST rejected with 413
func TestBodySizeLimit(t *testing.T) {
	cfg := testConfig()
	cfg.MaxBodyBytes = 1 << 10
	app, _ := newTestApp(t, cfg)
	b := newBrowser(t, app)
	tok := b.csrf()

	oversize := append([]byte("csrf="+tok+"&gameId=1&pad="), bytes.Repeat([]byte("A"), 2<<10)...)
	req := httptest.NewRequest("POST", "/cart/add", bytes.NewReader(oversize))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "csrf_", Value: tok})
	resp, err := app.Test(req, -1)
	// Fiber returns an error instead of a response when body too large; treat that as pass
	if err != nil {
		if strings.Contains(err.Error(), "body size exceeds") || strings.Contains(err.Error(), "too large") {
			return
		}
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected 413 for oversize, got %d body=%s", resp.StatusCode, string(body))
	}
}

func TestMetricsEndpointCountsCheckouts(t *testing.T) {
	app, _ := newTestApp(t, testConfig())
	b := newBrowser(t, app)
	b.post("/checkout", shippingForm())

	resp := b.get("/metrics")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("metrics expected 200, got %d", resp.StatusCode)
	}
	body := readBody(t, resp)
	if !strings.Contains(body, `gamestore_checkout_submissions_total{outcome="empty_cart"}`) {
		t.Fatalf("checkout counter missing from /metrics")
	}
}

func TestCartAddLogsAreRequestScoped(t *testing.T) {
	app, _ := newTestApp(t, testConfig())
	b := newBrowser(t, app)
	b.csrf()

	logs := captureLogs(t, func() {
		b.post("/cart/add", url.Values{"gameId": {"1"}, "qty": {"3"}})
	})
	e, ok := findLog(logs, "cart.add")
	if !ok {
		t.Fatal("cart.add log not found")
	}
	if e.Kind != "app" || e.Fields["game_id"] != float64(1) || e.Fields["qty"] != float64(3) {
		t.Fatalf("unexpected cart.add entry: %+v", e)
	}
}
