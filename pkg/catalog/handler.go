package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/goliatone/go-formfields/pkg/model"
)

// GuardFunc authorises a search request. Returning an error that implements
// HTTPError selects the response status; any other error yields 403.
type GuardFunc func(r *http.Request) error

// HTTPError carries a status code for guard failures.
type HTTPError interface {
	error
	StatusCode() int
}

// StatusError is a ready-made HTTPError.
type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// HandlerOptions configures the search endpoint.
type HandlerOptions struct {
	SearchParam  string
	LimitParam   string
	DefaultLimit int
	MaxLimit     int
	Guard        GuardFunc
}

// HandlerOption mutates HandlerOptions.
type HandlerOption func(*HandlerOptions)

// WithSearchParam renames the query term parameter (default "q").
func WithSearchParam(name string) HandlerOption {
	return func(o *HandlerOptions) {
		o.SearchParam = name
	}
}

// WithLimitParam renames the limit parameter (default "limit").
func WithLimitParam(name string) HandlerOption {
	return func(o *HandlerOptions) {
		o.LimitParam = name
	}
}

// WithLimits sets the default and maximum result counts.
func WithLimits(defaultLimit, maxLimit int) HandlerOption {
	return func(o *HandlerOptions) {
		o.DefaultLimit = defaultLimit
		o.MaxLimit = maxLimit
	}
}

// WithGuard installs an authorisation guard.
func WithGuard(guard GuardFunc) HandlerOption {
	return func(o *HandlerOptions) {
		o.Guard = guard
	}
}

// NewHandlerOptions applies fns over the defaults and clamps invalid values.
func NewHandlerOptions(fns ...HandlerOption) HandlerOptions {
	opts := HandlerOptions{
		SearchParam:  "q",
		LimitParam:   "limit",
		DefaultLimit: 20,
		MaxLimit:     100,
	}
	for _, fn := range fns {
		if fn != nil {
			fn(&opts)
		}
	}
	if opts.SearchParam == "" {
		opts.SearchParam = "q"
	}
	if opts.LimitParam == "" {
		opts.LimitParam = "limit"
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = 100
	}
	if opts.DefaultLimit <= 0 || opts.DefaultLimit > opts.MaxLimit {
		opts.DefaultLimit = opts.MaxLimit
	}
	return opts
}

// SearchResponse is the JSON payload returned by Handler.
type SearchResponse struct {
	Data  []model.Option `json:"data"`
	Total int            `json:"total"`
}

// Handler serves catalogue searches over GET and HEAD.
func Handler(c *Catalog, fns ...HandlerOption) http.Handler {
	opts := NewHandlerOptions(fns...)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				writeGuardError(w, err)
				return
			}
		}

		query := r.URL.Query()
		limit := clampLimit(parseInt(query.Get(opts.LimitParam)), opts)
		results := c.Search(query.Get(opts.SearchParam), limit)
		if results == nil {
			results = []model.Option{}
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return
		}

		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(true)
		_ = enc.Encode(SearchResponse{Data: results, Total: c.Len()})
	})
}

func clampLimit(limit int, opts HandlerOptions) int {
	if limit <= 0 {
		return opts.DefaultLimit
	}
	if limit > opts.MaxLimit {
		return opts.MaxLimit
	}
	return limit
}

func writeGuardError(w http.ResponseWriter, err error) {
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		if status := httpErr.StatusCode(); status > 0 {
			code = status
		}
	}
	http.Error(w, http.StatusText(code), code)
}

func parseInt(raw string) int {
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return value
}
