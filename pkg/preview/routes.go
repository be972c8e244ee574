package preview

import (
	"fmt"
	"net/http"
	"strings"
)

// Mux is the minimal interface required to register a net/http handler.
// It is satisfied by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

const (
	fieldRoute   = "/field"
	actionsRoute = "/actions"
	valueRoute   = "/value"
	optionsRoute = "/options"
)

type route struct {
	path    string
	handler http.Handler
}

// RegisterRoutes mounts the preview handlers under basePath on mux and
// returns the registered patterns. The options route is only mounted when the
// server was built WithCatalog.
func (s *Server) RegisterRoutes(mux Mux, basePath string) ([]string, error) {
	if mux == nil {
		return nil, fmt.Errorf("preview: missing mux")
	}
	routes := []route{
		{fieldRoute, s.FieldHandler()},
		{actionsRoute, s.ActionHandler()},
		{valueRoute, s.ValueHandler()},
	}
	if handler := s.OptionsHandler(); handler != nil {
		routes = append(routes, route{optionsRoute, handler})
	}

	patterns := make([]string, 0, len(routes))
	for _, r := range routes {
		pattern := mountPath(basePath, r.path)
		mux.Handle(pattern, r.handler)
		patterns = append(patterns, pattern)
	}
	return patterns, nil
}

// MountPath returns the full path for a preview route under basePath.
func MountPath(basePath, routePath string) string {
	return mountPath(basePath, routePath)
}

func mountPath(basePath, routePath string) string {
	basePath = strings.TrimSpace(basePath)
	routePath = strings.TrimSpace(routePath)

	if routePath == "" {
		routePath = "/"
	}
	if !strings.HasPrefix(routePath, "/") {
		routePath = "/" + routePath
	}

	if basePath == "" || basePath == "/" {
		return routePath
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	basePath = strings.TrimRight(basePath, "/")
	return basePath + routePath
}
