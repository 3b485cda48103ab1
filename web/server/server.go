package server

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"
	"net/url"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/ioreshnikov/rtrace/pkg/renderer"
	"github.com/ioreshnikov/rtrace/pkg/scene"
)

// Server handles web requests for the progressive path tracer
type Server struct {
	port      int
	scenesDir string
	publisher *Publisher // nil disables publishing
}

// NewServer creates a new web server. Scene files are looked up as
// <scenesDir>/<name>.json; a nil publisher disables S3 publishing.
func NewServer(port int, scenesDir string, publisher *Publisher) *Server {
	return &Server{
		port:      port,
		scenesDir: scenesDir,
		publisher: publisher,
	}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene   string // Scene name ("default" or a scene file name)
	Width   int
	Height  int
	Samples int // Samples per pixel, one per pass
	Depth   int // Maximum bounce depth
	Seed    int64
	Workers int // 0 = CPU count
}

// Start starts the web server
func (s *Server) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	mux.HandleFunc("/api/inspect", s.handleInspect)

	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, mux)
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// parseRenderRequest parses and validates request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()

	req := &RenderRequest{Scene: query.Get("scene")}
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 400, 16, 2000); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 400, 16, 2000); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(query, "samples", 25, 1, 1000); err != nil {
		return nil, err
	}
	if req.Depth, err = parseIntParam(query, "depth", 7, 1, 64); err != nil {
		return nil, err
	}
	if req.Seed, err = parseInt64Param(query, "seed", 42, 1, math.MaxInt64); err != nil {
		return nil, err
	}
	if req.Workers, err = parseIntParam(query, "workers", 0, 0, 256); err != nil {
		return nil, err
	}

	if req.Width*req.Height > 800*600 && req.Samples > 100 {
		log.Printf("Render warning: large image with high samples may render slowly")
	}

	return req, nil
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

// parseInt64Param parses an int64 parameter from URL query with validation
func parseInt64Param(values url.Values, key string, defaultValue, min, max int64) (int64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseInt(value, 10, 64)
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

var sceneNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// buildScene assembles the scene for a render request. Named scenes
// load from the scenes directory; request parameters override the
// file's settings.
func (s *Server) buildScene(req *RenderRequest) (*scene.Scene, error) {
	cfg := scene.DefaultConfig()
	if req.Scene != "default" {
		if !sceneNamePattern.MatchString(req.Scene) {
			return nil, fmt.Errorf("invalid scene name: %s", req.Scene)
		}
		loaded, err := scene.LoadConfig(filepath.Join(s.scenesDir, req.Scene+".json"))
		if err != nil {
			return nil, err
		}
		cfg = *loaded
	}

	cfg.Width = req.Width
	cfg.Height = req.Height
	cfg.SamplesPerPixel = req.Samples
	cfg.MaxDepth = req.Depth
	cfg.Seed = req.Seed

	return cfg.Build()
}

// handleScenes lists the scenes available to render: the built-in
// default plus every scene file in the scenes directory
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	scenes, err := scene.ListScenes(s.scenesDir)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to list scenes: %v", err))
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(scenes)
}

// handleSceneConfig returns render defaults and validation limits for
// the client UI
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	config := renderer.DefaultSamplingConfig()
	response := map[string]interface{}{
		"defaults": map[string]interface{}{
			"width":   400,
			"height":  400,
			"samples": 25,
			"depth":   config.MaxDepth,
			"seed":    config.Seed,
		},
		"limits": map[string]interface{}{
			"width":   map[string]int{"min": 16, "max": 2000},
			"height":  map[string]int{"min": 16, "max": 2000},
			"samples": map[string]int{"min": 1, "max": 1000},
			"depth":   map[string]int{"min": 1, "max": 64},
			"workers": map[string]int{"min": 0, "max": 256},
		},
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// handleIndex serves the progressive render viewer page
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, indexHTML)
}

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<title>rtrace</title>
<style>
body { font-family: sans-serif; margin: 2em; background: #1e1e1e; color: #ddd; }
img { image-rendering: pixelated; border: 1px solid #444; }
#console { background: #111; padding: 0.5em; height: 8em; overflow-y: scroll; font-family: monospace; font-size: 0.8em; white-space: pre; }
label { margin-right: 1em; }
input { width: 5em; }
</style>
</head>
<body>
<h1>rtrace</h1>
<form id="controls">
<label>scene <select name="scene"><option value="default">Default Scene</option></select></label>
<label>width <input name="width" value="400"></label>
<label>height <input name="height" value="400"></label>
<label>samples <input name="samples" value="25"></label>
<label>depth <input name="depth" value="7"></label>
<label>seed <input name="seed" value="42"></label>
<button type="submit">Render</button>
</form>
<p id="status"></p>
<img id="render" width="400" height="400">
<div id="console"></div>
<script>
fetch('/api/scenes').then(r => r.json()).then(function(scenes) {
	const select = document.querySelector('select[name=scene]');
	select.innerHTML = '';
	for (const s of scenes) {
		const option = document.createElement('option');
		option.value = s.id;
		option.textContent = s.name;
		if (s.description) option.title = s.description;
		select.appendChild(option);
	}
});
let source = null;
document.getElementById('controls').addEventListener('submit', function(e) {
	e.preventDefault();
	if (source) source.close();
	const params = new URLSearchParams(new FormData(this));
	const img = document.getElementById('render');
	img.width = this.width.value;
	img.height = this.height.value;
	source = new EventSource('/api/render?' + params);
	source.addEventListener('progress', function(e) {
		const update = JSON.parse(e.data);
		img.src = 'data:image/png;base64,' + update.imageData;
		document.getElementById('status').textContent =
			'pass ' + update.passNumber + '/' + update.totalPasses +
			' | ' + update.stats.samplesPerPixel + ' spp' +
			' | ' + (update.elapsedMs / 1000).toFixed(1) + 's';
	});
	source.addEventListener('console', function(e) {
		const msg = JSON.parse(e.data);
		const el = document.getElementById('console');
		el.textContent += msg.message;
		el.scrollTop = el.scrollHeight;
	});
	source.addEventListener('published', function(e) {
		const result = JSON.parse(e.data);
		document.getElementById('status').textContent += ' | published: ' + result.imageUrl;
	});
	source.addEventListener('error', function(e) {
		if (e.data) document.getElementById('status').textContent = 'error: ' + e.data;
		source.close();
	});
	source.addEventListener('complete', function() { source.close(); });
});
</script>
</body>
</html>
`
