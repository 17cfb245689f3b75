package web

import (
	"embed"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//go:embed static/index.html
var staticFS embed.FS

// Server hosts the chat page locally and reverse-proxies /api/* to the
// backend, the same topology the hosted frontend uses in development.
type Server struct {
	engine *gin.Engine
	logger *zap.Logger
}

// New creates the local web server. apiBaseURL is the backend base including
// its API prefix, e.g. "http://localhost:8000/api".
func New(apiBaseURL string, logger *zap.Logger) (*Server, error) {
	backend, err := url.Parse(apiBaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api base url: %w", err)
	}
	if backend.Scheme == "" || backend.Host == "" {
		return nil, fmt.Errorf("api base url must be absolute: %s", apiBaseURL)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(CORS([]string{"*"}))

	// Local health check (the backend's own /health sits behind the proxy)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "finsync-cli"})
	})

	r.GET("/", servePage)

	proxy := newProxy(backend, logger)
	r.Any("/api/*path", gin.WrapH(proxy))

	return &Server{engine: r, logger: logger}, nil
}

// Handler returns the HTTP handler for mounting on an http.Server
func (s *Server) Handler() http.Handler {
	return s.engine
}

func servePage(c *gin.Context) {
	content, err := staticFS.ReadFile("static/index.html")
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to read page")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", content)
}

// newProxy forwards /api/<rest> to <backend base path>/<rest> on the backend
// origin, so the page can address a literal /api the way the SPA does.
func newProxy(backend *url.URL, logger *zap.Logger) *httputil.ReverseProxy {
	basePath := strings.TrimRight(backend.Path, "/")

	return &httputil.ReverseProxy{
		Director: func(req *http.Request) {
			req.URL.Scheme = backend.Scheme
			req.URL.Host = backend.Host
			req.URL.Path = basePath + strings.TrimPrefix(req.URL.Path, "/api")
			req.Host = backend.Host
		},
		ErrorHandler: func(w http.ResponseWriter, req *http.Request, err error) {
			logger.Warn("proxy request failed",
				zap.String("path", req.URL.Path),
				zap.Error(err),
			)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadGateway)
			fmt.Fprint(w, `{"detail":"backend unreachable"}`)
		},
	}
}
