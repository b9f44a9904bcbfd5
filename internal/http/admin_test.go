package handlers_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func adminBrowser(t *testing.T) (*browser, func(query string, args ...any) string) {
	t.Helper()
	app, db := newTestApp(t, testConfig())
	b := newBrowser(t, app)
	require.Equal(t, http.StatusFound, b.login(adminUser, adminPass).StatusCode)
	scalar := func(query string, args ...any) string {
		var s string
		require.NoError(t, db.QueryRow(query, args...).Scan(&s))
		return s
	}
	return b, scalar
}

func TestAdminCreateGameWithImage(t *testing.T) {
	b, scalar := adminBrowser(t)

	assert.Equal(t, http.StatusOK, b.get("/admin/create").StatusCode)

	var resp *http.Response
	logs := captureLogs(t, func() {
		resp = b.postMultipart("/admin/edit", map[string]string{
			"id": "0", "name": "Mahjong", "description": "Tiles", "category": "Board", "price": "21.10",
		}, pngBytes)
	})
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin", resp.Header.Get("Location"))
	_, ok := findLog(logs, "admin.games.save")
	assert.True(t, ok, "admin.games.save audit log missing")

	// flash is shown once
	body := readBody(t, b.get("/admin"))
	assert.Contains(t, body, "Mahjong has been saved")
	assert.NotContains(t, readBody(t, b.get("/admin")), "Mahjong has been saved")

	id := scalar(`SELECT id FROM games WHERE name='Mahjong'`)
	assert.Equal(t, "image/png", scalar(`SELECT image_mime_type FROM games WHERE id=?`, id))
	assert.Equal(t, "21.1", scalar(`SELECT price FROM games WHERE id=?`, id))

	img := b.get("/game/" + id + "/image")
	require.Equal(t, http.StatusOK, img.StatusCode)
	assert.Equal(t, "image/png", img.Header.Get("Content-Type"))
}

func TestAdminEditWithoutUploadKeepsImage(t *testing.T) {
	b, scalar := adminBrowser(t)
	require.Equal(t, http.StatusFound, b.postMultipart("/admin/edit", map[string]string{
		"name": "Mahjong", "description": "Tiles", "category": "Board", "price": "20",
	}, pngBytes).StatusCode)
	id := scalar(`SELECT id FROM games WHERE name='Mahjong'`)

	assert.Contains(t, readBody(t, b.get("/admin/edit/"+id)), "Edit Mahjong")

	resp := b.postMultipart("/admin/edit", map[string]string{
		"id": id, "name": "Mahjong Deluxe", "description": "More tiles", "category": "Board", "price": "25.00",
	}, nil)
	require.Equal(t, http.StatusFound, resp.StatusCode)

	assert.Equal(t, "Mahjong Deluxe", scalar(`SELECT name FROM games WHERE id=?`, id))
	assert.Equal(t, "image/png", scalar(`SELECT image_mime_type FROM games WHERE id=?`, id))
	assert.Equal(t, http.StatusOK, b.get("/game/"+id+"/image").StatusCode)
}

func TestAdminSaveInvalidFormRerenders(t *testing.T) {
	b, scalar := adminBrowser(t)

	resp := b.postMultipart("/admin/edit", map[string]string{
		"name": "", "description": "x", "category": "Board", "price": "-1",
	}, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := readBody(t, resp)
	assert.Contains(t, body, "Please enter a game name")
	assert.Contains(t, body, "Please enter a non-negative price")
	assert.Equal(t, "6", scalar(`SELECT COUNT(*) FROM games`))
}

func TestAdminSaveRejectsNonImageUpload(t *testing.T) {
	b, scalar := adminBrowser(t)

	resp := b.postMultipart("/admin/edit", map[string]string{
		"name": "Script", "description": "x", "category": "Board", "price": "1",
	}, []byte("<html><script>alert(1)</script></html>"))
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Please upload a PNG, JPEG, GIF or WebP image")
	assert.Equal(t, "0", scalar(`SELECT COUNT(*) FROM games WHERE name='Script'`))
}

func TestAdminEditUnknownGame(t *testing.T) {
	b, _ := adminBrowser(t)
	assert.Equal(t, http.StatusNotFound, b.get("/admin/edit/999").StatusCode)
	assert.Equal(t, http.StatusNotFound, b.postMultipart("/admin/edit", map[string]string{
		"id": "999", "name": "Ghost", "description": "x", "category": "Board", "price": "1",
	}, nil).StatusCode)
}

func TestAdminDelete(t *testing.T) {
	b, scalar := adminBrowser(t)

	resp := b.post("/admin/delete", url.Values{"gameId": {"1"}})
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Contains(t, readBody(t, b.get("/admin")), "Chess was deleted")
	assert.Equal(t, "5", scalar(`SELECT COUNT(*) FROM games`))

	// deleting again is quiet
	resp = b.post("/admin/delete", url.Values{"gameId": {"1"}})
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.NotContains(t, readBody(t, b.get("/admin")), "was deleted")
}

func TestAdminOrdersAndStatus(t *testing.T) {
	b, scalar := adminBrowser(t)
	b.post("/cart/add", url.Values{"gameId": {"2"}})
	require.Equal(t, http.StatusOK, b.post("/checkout", shippingForm()).StatusCode)
	id := scalar(`SELECT id FROM orders`)

	body := readBody(t, b.get("/admin/orders"))
	assert.Contains(t, body, id)
	assert.Contains(t, body, "$34.50")

	resp := b.post("/admin/orders/"+id+"/status", url.Values{"status": {"shipped"}})
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "SHIPPED", scalar(`SELECT status FROM orders WHERE id=?`, id))
	assert.Contains(t, readBody(t, b.get("/admin/orders")), "is now SHIPPED")

	resp = b.get("/admin/orders/" + id)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	detail := readBody(t, resp)
	assert.Contains(t, detail, "<td>Go</td>")
	assert.Contains(t, detail, "1 Main St")
	assert.Contains(t, detail, "$34.50")
	assert.Equal(t, http.StatusNotFound, b.get("/admin/orders/nope").StatusCode)

	assert.Equal(t, http.StatusBadRequest, b.post("/admin/orders/"+id+"/status", url.Values{"status": {"LOST"}}).StatusCode)
	assert.Equal(t, http.StatusNotFound, b.post("/admin/orders/nope/status", url.Values{"status": {"SHIPPED"}}).StatusCode)
}
