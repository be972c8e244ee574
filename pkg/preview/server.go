package preview

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/goccy/go-json"

	"github.com/goliatone/go-formfields/pkg/association"
	"github.com/goliatone/go-formfields/pkg/catalog"
	"github.com/goliatone/go-formfields/pkg/choice"
	"github.com/goliatone/go-formfields/pkg/fields"
	"github.com/goliatone/go-formfields/pkg/model"
)

const (
	actionSelect = "select"
	maxBodyBytes = 1 << 16
)

// Option configures a Server.
type Option func(*Server)

// WithCatalog exposes the catalogue search endpoint next to the field.
func WithCatalog(c *catalog.Catalog, fns ...catalog.HandlerOption) Option {
	return func(s *Server) {
		s.catalog = c
		s.catalogOpts = append(s.catalogOpts, fns...)
	}
}

// Server renders one field and applies interactions posted back to it.
// Actions and renders are serialised, so an action reads the value, applies
// the change and writes it back without another request interleaving.
type Server struct {
	mu          sync.Mutex
	registry    *fields.Registry
	source      fields.DataSource
	catalog     *catalog.Catalog
	catalogOpts []catalog.HandlerOption
}

// New builds a preview server over source using registry to render it.
func New(registry *fields.Registry, source fields.DataSource, opts ...Option) (*Server, error) {
	if registry == nil {
		return nil, fmt.Errorf("preview: registry is required")
	}
	if source == nil {
		return nil, fmt.Errorf("preview: data source is required")
	}
	s := &Server{registry: registry, source: source}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// ActionRequest is the JSON body accepted by the action endpoint. Association
// fields use add, remove and query; radio fields use select with Value.
// Remove takes Option (first match) or Index; a request with neither is
// rejected.
type ActionRequest struct {
	Action string `json:"action"`
	Option string `json:"option,omitempty"`
	Index  *int   `json:"index,omitempty"`
	Term   string `json:"term,omitempty"`
	Value  string `json:"value,omitempty"`
}

// ActionResponse reports how an action was applied along with the value
// after it.
type ActionResponse struct {
	Outcome string `json:"outcome"`
	Error   string `json:"error,omitempty"`
	Value   any    `json:"value"`
}

// FieldHandler renders the field. A q parameter updates the query term first.
func (s *Server) FieldHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !allowMethods(w, r, http.MethodGet, http.MethodHead) {
			return
		}
		var buf bytes.Buffer
		if err := s.render(&buf, r); err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, fields.ErrNoRenderer) {
				status = http.StatusNotImplemented
			}
			http.Error(w, err.Error(), status)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return
		}
		_, _ = buf.WriteTo(w)
	})
}

// ActionHandler applies a posted ActionRequest. Rejected adds and removes
// answer 409, malformed requests 400.
func (s *Server) ActionHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !allowMethods(w, r, http.MethodPost) {
			return
		}

		var req ActionRequest
		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err == nil {
			err = json.Unmarshal(body, &req)
		}
		if err != nil {
			writeJSON(w, http.StatusBadRequest, ActionResponse{
				Outcome: "invalid",
				Error:   fmt.Sprintf("preview: decode action: %v", err),
				Value:   s.value(),
			})
			return
		}

		s.mu.Lock()
		status, resp := s.apply(req)
		s.mu.Unlock()
		writeJSON(w, status, resp)
	})
}

// ValueHandler returns the current field value as JSON.
func (s *Server) ValueHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !allowMethods(w, r, http.MethodGet, http.MethodHead) {
			return
		}
		key := s.source.Snapshot().Field.Key
		writeJSON(w, http.StatusOK, map[string]any{key: s.value()})
	})
}

// OptionsHandler returns the catalogue search handler, or nil when the server
// has no catalogue.
func (s *Server) OptionsHandler() http.Handler {
	if s.catalog == nil {
		return nil
	}
	return catalog.Handler(s.catalog, s.catalogOpts...)
}

func (s *Server) render(buf *bytes.Buffer, r *http.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := r.URL.Query()
	if query.Has("q") {
		s.source.OnQueryTermChange(strings.TrimSpace(query.Get("q")))
	}
	return s.registry.Render(buf, s.source)
}

// apply must be called with s.mu held.
func (s *Server) apply(req ActionRequest) (int, ActionResponse) {
	field := s.source.Snapshot().Field
	kind := strings.ToLower(strings.TrimSpace(req.Action))

	if field.Type == model.FieldTypeAssociation {
		control, err := association.New(s.source)
		if err != nil {
			return s.failure(http.StatusInternalServerError, "error", err)
		}
		outcome, err := control.Dispatch(association.Action{
			Kind:      association.ActionKind(kind),
			OptionKey: req.Option,
			Index:     req.Index,
			Term:      req.Term,
		})
		if err != nil {
			return s.failure(http.StatusBadRequest, "invalid", err)
		}
		if !outcome.OK() {
			return s.failure(http.StatusConflict, outcome.String(), outcome.Err())
		}
		return http.StatusOK, ActionResponse{Outcome: outcome.String(), Value: s.value()}
	}

	if kind != actionSelect {
		return s.failure(http.StatusBadRequest, "invalid", fmt.Errorf("%w: %q", association.ErrUnknownAction, req.Action))
	}
	adapter, err := choice.New(s.source)
	if err != nil {
		return s.failure(http.StatusInternalServerError, "error", err)
	}
	if err := adapter.Select(req.Value); err != nil {
		return s.failure(http.StatusBadRequest, "invalid", err)
	}
	return http.StatusOK, ActionResponse{Outcome: association.Accepted.String(), Value: s.value()}
}

func (s *Server) failure(status int, outcome string, err error) (int, ActionResponse) {
	resp := ActionResponse{Outcome: outcome, Value: s.value()}
	if err != nil {
		resp.Error = err.Error()
	}
	return status, resp
}

func (s *Server) value() any {
	snap := s.source.Snapshot()
	if snap.Field.Type == model.FieldTypeAssociation {
		selection, err := model.SelectionFrom(snap.Value)
		if err != nil || selection == nil {
			return model.Selection{}
		}
		return selection
	}
	value, err := model.ChoiceFrom(snap.Value)
	if err != nil {
		return ""
	}
	return value
}

func allowMethods(w http.ResponseWriter, r *http.Request, methods ...string) bool {
	for _, method := range methods {
		if r.Method == method {
			return true
		}
	}
	w.Header().Set("Allow", strings.Join(methods, ", "))
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	return false
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(payload)
}
