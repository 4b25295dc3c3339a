package demoserver

import (
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"sort"
	"sync"
)

// DemoServer serves a small local site whose pages can be flipped between a
// benign and a phishing-style variant, giving the scorer a reproducible target
// without touching the real web. Run sitetrustd with the http capture backend
// and analyze http://localhost:<port>/login while switching variants.
type DemoServer struct {
	cfg      Config
	pages    map[string]PageDefinition
	variants map[string]string // path -> active variant
	mu       sync.RWMutex
}

// NewDemoServer creates a new demo server instance.
func NewDemoServer(cfg Config) *DemoServer {
	if cfg.InitialVariant == "" {
		cfg.InitialVariant = VariantBenign
	}

	pages := GetAllPages()
	pageMap := make(map[string]PageDefinition)
	variants := make(map[string]string)

	for _, p := range pages {
		pageMap[p.Path] = p
		variants[p.Path] = cfg.InitialVariant
	}

	return &DemoServer{
		cfg:      cfg,
		pages:    pageMap,
		variants: variants,
	}
}

// Handler returns the demo site's http.Handler, for tests and embedding.
func (s *DemoServer) Handler() http.Handler {
	mux := http.NewServeMux()

	for path := range s.pages {
		p := path // capture for closure
		mux.HandleFunc(p, s.pageHandler(p))
	}

	// Control endpoints for variant switching
	mux.HandleFunc("/demo/control", s.controlPanelHandler)
	mux.HandleFunc("/demo/set-variant", s.setVariantHandler)
	mux.HandleFunc("/demo/variants", s.variantsHandler)
	mux.HandleFunc("/demo/reset", s.resetHandler)

	return mux
}

// Start starts the demo server.
func (s *DemoServer) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	fmt.Printf("Demo site starting on http://localhost%s\n", addr)
	fmt.Printf("Control panel at http://localhost%s/demo/control\n", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// pageHandler returns a handler for a specific page path.
func (s *DemoServer) pageHandler(path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.RLock()
		pageDef, ok := s.pages[path]
		variant := s.variants[path]
		s.mu.RUnlock()

		if !ok || r.URL.Path != path {
			http.NotFound(w, r)
			return
		}

		pv, ok := pageDef.Variants[variant]
		if !ok {
			// Pages without the active variant fall back to benign.
			pv = pageDef.Variants[VariantBenign]
		}

		for k, v := range pv.Headers {
			w.Header().Set(k, v)
		}

		contentType := pv.ContentType
		if contentType == "" {
			contentType = "text/html"
		}
		w.Header().Set("Content-Type", contentType)

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(pv.HTML))
	}
}

// setVariantHandler sets the active variant for a specific page.
func (s *DemoServer) setVariantHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	path := r.FormValue("path")
	variant := r.FormValue("variant")
	if variant != VariantBenign && variant != VariantPhishing {
		http.Error(w, "Unknown variant", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	if _, ok := s.pages[path]; ok {
		s.variants[path] = variant
	}
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"path":    path,
		"variant": variant,
	})
}

// variantsHandler returns the current variant of every page.
func (s *DemoServer) variantsHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type PageInfo struct {
		Path              string   `json:"path"`
		Description       string   `json:"description"`
		CurrentVariant    string   `json:"current_variant"`
		AvailableVariants []string `json:"available_variants"`
	}

	var pages []PageInfo
	for path, pageDef := range s.pages {
		var variants []string
		for v := range pageDef.Variants {
			variants = append(variants, v)
		}
		sort.Strings(variants)
		pages = append(pages, PageInfo{
			Path:              path,
			Description:       pageDef.Description,
			CurrentVariant:    s.variants[path],
			AvailableVariants: variants,
		})
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].Path < pages[j].Path })

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(pages)
}

// resetHandler resets all pages to the initial variant.
func (s *DemoServer) resetHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.mu.Lock()
	for path := range s.variants {
		s.variants[path] = s.cfg.InitialVariant
	}
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "All pages reset to " + s.cfg.InitialVariant,
	})
}

// controlPanelHandler serves the control panel for variant switching.
func (s *DemoServer) controlPanelHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tmpl := template.Must(template.New("control").Parse(controlPanelHTML))
	data := struct {
		Pages    map[string]PageDefinition
		Variants map[string]string
		Port     int
	}{
		Pages:    s.pages,
		Variants: s.variants,
		Port:     s.cfg.Port,
	}
	w.Header().Set("Content-Type", "text/html")
	_ = tmpl.Execute(w, data)
}

const controlPanelHTML = `<!DOCTYPE html>
<html>
<head>
    <title>Demo Site Control Panel</title>
    <style>
        body { font-family: system-ui, sans-serif; max-width: 900px; margin: 0 auto; padding: 20px; }
        h1 { border-bottom: 2px solid #007bff; padding-bottom: 10px; }
        .page-card { border: 1px solid #ddd; border-radius: 8px; padding: 16px; margin: 12px 0; }
        .page-path { font-weight: bold; color: #007bff; text-decoration: none; }
        .page-desc { color: #666; margin: 6px 0; }
        .variant-btn { padding: 6px 14px; border: 1px solid #ccc; border-radius: 4px; cursor: pointer; }
        .variant-btn.active { background: #007bff; color: white; border-color: #007bff; }
        .reset-btn { background: #dc3545; color: white; border: none; padding: 8px 16px; border-radius: 4px; cursor: pointer; }
        .info-box { background: #e7f3ff; padding: 12px; border-radius: 8px; border-left: 4px solid #007bff; }
    </style>
</head>
<body>
    <h1>Demo Site Control Panel</h1>

    <div class="info-box">
        Switch pages between their benign and phishing variants, then analyze
        them with sitetrustd (http capture backend) to watch the trust score move.
    </div>

    <p><button class="reset-btn" onclick="resetAll()">Reset All</button></p>

    {{range $path, $page := .Pages}}
    <div class="page-card">
        <a href="{{$path}}" target="_blank" class="page-path">{{$path}}</a>
        <div class="page-desc">{{$page.Description}}</div>
        <div>
            {{range $v, $_ := $page.Variants}}
            <button class="variant-btn {{if eq (index $.Variants $path) $v}}active{{end}}"
                    onclick="setVariant('{{$path}}', '{{$v}}')">{{$v}}</button>
            {{end}}
        </div>
    </div>
    {{end}}

    <script>
        function setVariant(path, variant) {
            fetch('/demo/set-variant', {
                method: 'POST',
                headers: {'Content-Type': 'application/x-www-form-urlencoded'},
                body: 'path=' + encodeURIComponent(path) + '&variant=' + variant
            }).then(function() { location.reload(); });
        }
        function resetAll() {
            fetch('/demo/reset', {method: 'POST'}).then(function() { location.reload(); });
        }
    </script>
</body>
</html>`
