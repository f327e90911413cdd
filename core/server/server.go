package server

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/ggdaltoso/aleph.js/core/cache"
	"github.com/ggdaltoso/aleph.js/core/config"
	"github.com/ggdaltoso/aleph.js/core/jsast"
	"github.com/ggdaltoso/aleph.js/core/logger"
	"github.com/ggdaltoso/aleph.js/core/parser"
	"github.com/ggdaltoso/aleph.js/core/refresh"
)

// DevServer serves app modules with fast-refresh instrumentation applied
// and pushes update events to connected clients over a websocket when the
// watcher reports an edit.
type DevServer struct {
	Config *config.Config

	cache    *cache.TransformCache
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

type hmrEvent struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

func NewDevServer(cfg *config.Config) *DevServer {
	return &DevServer{
		Config:   cfg,
		cache:    cache.GetCache(),
		upgrader: websocket.Upgrader{},
		clients:  make(map[*websocket.Conn]struct{}),
	}
}

func (s *DevServer) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/-/hmr", s.handleHMR)
	mux.HandleFunc("/", s.handleModule)

	addr := fmt.Sprintf("%s:%d", s.Config.Server.Host, s.Config.Server.Port)
	logger.Info("Starting dev server on http://%s", addr)
	return http.ListenAndServe(addr, mux)
}

func (s *DevServer) handleModule(w http.ResponseWriter, r *http.Request) {
	path := filepath.Join(s.Config.Dev.AppDir, filepath.Clean("/"+r.URL.Path))

	if !isModulePath(path) {
		http.ServeFile(w, r, path)
		return
	}

	src, err := os.ReadFile(path)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	code, err := s.transform(r, src)
	if err != nil {
		logger.Error("Transform failed for %s: %v", path, err)
		// Serving the module untransformed only loses hot state.
		code = string(src)
	}

	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Write([]byte(code))
}

func (s *DevServer) transform(r *http.Request, src []byte) (string, error) {
	key := cache.Key(src)
	if code, ok := s.cache.Get(key); ok {
		return code, nil
	}

	mod, err := parser.ParseModule(r.Context(), src)
	if err != nil {
		return "", fmt.Errorf("failed to parse module: %w", err)
	}
	out := refresh.Transform(mod, refresh.Options{
		RegFunc: s.Config.Refresh.RegFunc,
		SigFunc: s.Config.Refresh.SigFunc,
	})
	code := jsast.Print(out)
	s.cache.Set(key, code)
	return code, nil
}

func (s *DevServer) handleHMR(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("HMR upgrade failed: %v", err)
		return
	}

	s.mu.Lock()
	s.clients[conn] = struct{}{}
	count := len(s.clients)
	s.mu.Unlock()
	logger.Debug("HMR client connected (%d total)", count)

	// Reads are discarded; the loop exists to notice the close.
	go func() {
		defer s.dropClient(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (s *DevServer) dropClient(conn *websocket.Conn) {
	s.mu.Lock()
	delete(s.clients, conn)
	s.mu.Unlock()
	conn.Close()
	logger.Debug("HMR client disconnected")
}

// NotifyUpdate broadcasts an update event for the edited file to every
// connected client.
func (s *DevServer) NotifyUpdate(path string) error {
	rel, err := filepath.Rel(s.Config.Dev.AppDir, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	event := hmrEvent{Type: "update", URL: "/" + filepath.ToSlash(rel)}

	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.clients {
		if err := conn.WriteJSON(event); err != nil {
			logger.Error("HMR write failed: %v", err)
		}
	}
	logger.Info("HMR update: %s (%d clients)", event.URL, len(s.clients))
	return nil
}

func isModulePath(path string) bool {
	switch filepath.Ext(path) {
	case ".js", ".jsx", ".mjs", ".ts", ".tsx":
		return true
	default:
		return false
	}
}
