package server

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ggdaltoso/aleph.js/core/config"
)

func newTestServer(t *testing.T) (*DevServer, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Dev.AppDir = dir
	return NewDevServer(cfg), dir
}

func TestHandleModuleInstrumentsSource(t *testing.T) {
	s, dir := newTestServer(t)
	src := `function App() {
  const [n,setN] = useState(0);
  return null;
}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.jsx"), []byte(src), 0o644))

	rec := httptest.NewRecorder()
	s.handleModule(rec, httptest.NewRequest("GET", "/app.jsx", nil))

	require.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "javascript")
	body := rec.Body.String()
	assert.Contains(t, body, "var _s = $RefreshSig$();")
	assert.Contains(t, body, `$RefreshReg$(App, "App");`)
}

func TestHandleModuleServesOtherFilesVerbatim(t *testing.T) {
	s, dir := newTestServer(t)
	css := "body { margin: 0; }\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.css"), []byte(css), 0o644))

	rec := httptest.NewRecorder()
	s.handleModule(rec, httptest.NewRequest("GET", "/app.css", nil))

	require.Equal(t, 200, rec.Code)
	assert.Equal(t, css, rec.Body.String())
}

func TestHandleModuleMissingFile(t *testing.T) {
	s, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	s.handleModule(rec, httptest.NewRequest("GET", "/nope.jsx", nil))
	assert.Equal(t, 404, rec.Code)
}

func TestHMRBroadcast(t *testing.T) {
	s, dir := newTestServer(t)

	srv := httptest.NewServer(http.HandlerFunc(s.handleHMR))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/-/hmr"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	// Give the server a beat to register the client.
	require.Eventually(t, func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		return len(s.clients) == 1
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, s.NotifyUpdate(filepath.Join(dir, "pages", "index.jsx")))

	var event hmrEvent
	conn.SetReadDeadline(time.Now().Add(time.Second))
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, "update", event.Type)
	assert.Equal(t, "/pages/index.jsx", event.URL)
}
