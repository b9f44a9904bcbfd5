package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"gamestore/internal/config"
	"gamestore/internal/http/handlers"
	applog "gamestore/internal/log"
	"gamestore/internal/metrics"
	"gamestore/internal/repos"
)

const (
	adminUser = "admin"
	adminPass = "Passw0rd!"
)

func testConfig() config.Config {
	return config.Config{
		Port:          "8080",
		DBDSN:         ":memory:",
		TemplateDir:   "../../web/templates",
		PageSize:      4,
		MaxBodyBytes:  1 << 20,
		AdminUser:     adminUser,
		AdminPassword: adminPass,
	}
}

// newTestApp wires the real routes over a fresh in-memory database.
func newTestApp(t *testing.T, cfg config.Config) (*fiber.App, *sqlx.DB) {
	t.Helper()
	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := repos.SeedAdmin(context.Background(), db, adminUser, adminPass); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	app := handlers.NewApp(cfg, handlers.NewDeps(db, cfg, metrics.NewStoreMetrics()))
	return app, db
}

// browser keeps cookies between requests the way a real client would.
type browser struct {
	t       *testing.T
	app     *fiber.App
	cookies map[string]string
}

func newBrowser(t *testing.T, app *fiber.App) *browser {
	return &browser{t: t, app: app, cookies: map[string]string{}}
}

func (b *browser) do(req *http.Request) *http.Response {
	b.t.Helper()
	for k, v := range b.cookies {
		req.AddCookie(&http.Cookie{Name: k, Value: v})
	}
	resp, err := b.app.Test(req, -1)
	if err != nil {
		b.t.Fatalf("%s %s: %v", req.Method, req.URL, err)
	}
	for _, c := range resp.Cookies() {
		if c.Value == "" || (!c.Expires.IsZero() && c.Expires.Before(time.Now())) {
			delete(b.cookies, c.Name)
			continue
		}
		b.cookies[c.Name] = c.Value
	}
	return resp
}

func (b *browser) get(path string) *http.Response {
	return b.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (b *browser) csrf() string {
	if tok := b.cookies["csrf_"]; tok != "" {
		return tok
	}
	b.get("/login")
	tok := b.cookies["csrf_"]
	if tok == "" {
		b.t.Fatal("csrf token missing")
	}
	return tok
}

func (b *browser) post(path string, form url.Values) *http.Response {
	if form == nil {
		form = url.Values{}
	}
	form.Set("csrf", b.csrf())
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req)
}

func (b *browser) postMultipart(path string, fields map[string]string, file []byte) *http.Response {
	b.t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	_ = w.WriteField("csrf", b.csrf())
	for k, v := range fields {
		_ = w.WriteField(k, v)
	}
	if file != nil {
		fw, err := w.CreateFormFile("image", "upload.bin")
		if err != nil {
			b.t.Fatal(err)
		}
		_, _ = fw.Write(file)
	}
	_ = w.Close()
	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return b.do(req)
}

func (b *browser) login(user, pass string) *http.Response {
	return b.post("/login", url.Values{"username": {user}, "password": {pass}})
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return string(body)
}

type logEntry struct {
	Level  string         `json:"level"`
	Kind   string         `json:"kind"`
	Action string         `json:"action"`
	Fields map[string]any `json:"fields"`
}

type lockedWriter struct {
	mu sync.Mutex
	w  bytes.Buffer
}

func (lw *lockedWriter) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	return lw.w.Write(p)
}

// captureLogs redirects the app logger while fn runs and parses the JSON lines.
func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	lw := &lockedWriter{}
	applog.SetOutput(lw)
	defer applog.SetOutput(os.Stdout)

	fn()

	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(lw.w.String()), "\n") {
		var e logEntry
		if err := json.Unmarshal([]byte(strings.TrimSpace(line)), &e); err == nil && e.Action != "" {
			entries = append(entries, e)
		}
	}
	return entries
}

func findLog(entries []logEntry, action string) (logEntry, bool) {
	for _, e := range entries {
		if e.Action == action {
			return e, true
		}
	}
	return logEntry{}, false
}
