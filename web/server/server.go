package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/df07/go-minirt/pkg/log"
	"github.com/df07/go-minirt/pkg/scene"
)

var logger = log.New("server")

// Server exposes render and inspection endpoints over HTTP
type Server struct {
	port   int
	scenes map[string]*scene.Scene // Read-only after construction, shared by requests
}

// NewServer creates a web server for the named scenes
func NewServer(port int, scenes map[string]*scene.Scene) *Server {
	return &Server{port: port, scenes: scenes}
}

// Handler returns the API routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	return mux
}

// Start starts the web server and blocks until it fails
func (s *Server) Start() error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	logger.Noticef("starting web server on http://localhost%s (%d scenes)", srv.Addr, len(s.scenes))
	return srv.ListenAndServe()
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// SceneInfo summarizes one servable scene
type SceneInfo struct {
	Name       string         `json:"name"`
	Primitives int            `json:"primitives"`
	Kinds      map[string]int `json:"kinds"`
}

// handleScenes lists the scenes that can be rendered
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	infos := make([]SceneInfo, 0, len(s.scenes))
	for name, sc := range s.scenes {
		kinds := make(map[string]int)
		for kind, n := range sc.Counts() {
			kinds[kind.String()] = n
		}
		infos = append(infos, SceneInfo{Name: name, Primitives: len(sc.Primitives), Kinds: kinds})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	writeJSON(w, http.StatusOK, infos)
}

// FrameRequest holds the parameters shared by render and inspect requests
type FrameRequest struct {
	Scene   string
	Width   int
	Height  int
	Normals bool
}

// parseFrameRequest parses the scene and frame size parameters
func (s *Server) parseFrameRequest(values url.Values) (*FrameRequest, *scene.Scene, error) {
	req := &FrameRequest{Scene: values.Get("scene")}
	if req.Scene == "" {
		req.Scene = "default"
	}
	sc, ok := s.scenes[req.Scene]
	if !ok {
		return nil, nil, fmt.Errorf("unknown scene: %s", req.Scene)
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", 400, 16, 2000); err != nil {
		return nil, nil, err
	}
	if req.Height, err = parseIntParam(values, "height", 300, 16, 2000); err != nil {
		return nil, nil, err
	}
	if v := values.Get("normals"); v != "" {
		if req.Normals, err = strconv.ParseBool(v); err != nil {
			return nil, nil, fmt.Errorf("invalid normals: %s", v)
		}
	}
	return req, sc, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warningf("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
