package demo

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/goliatone/go-autocomplete/internal/logging"
	"github.com/goliatone/go-autocomplete/pkg/adapters/ginadapter"
	"github.com/goliatone/go-autocomplete/pkg/apidoc"
	"github.com/goliatone/go-autocomplete/pkg/autocomplete"
	"github.com/goliatone/go-autocomplete/pkg/handler"
	"github.com/goliatone/go-autocomplete/pkg/render"
	"github.com/goliatone/go-autocomplete/pkg/renderers/htmx"
)

// Routers accepted by Options.Router.
const (
	RouterMux = "mux"
	RouterGin = "gin"
)

// Options configures the demo application.
type Options struct {
	DSN      string
	BasePath string
	Renderer string
	Variant  string
	Router   string
	Version  string
	Logger   *zap.Logger
}

// App holds the wired demo: database, service and the selected renderer.
type App struct {
	DB        *sql.DB
	Service   *autocomplete.Service
	Renderers *render.Registry
	Renderer  render.Renderer

	opts Options
	page *page
}

// New opens the database and wires sources, field types and renderers.
func New(ctx context.Context, opts Options) (*App, error) {
	if opts.BasePath == "" {
		opts.BasePath = autocomplete.DefaultBasePath
	}
	if opts.Router == "" {
		opts.Router = RouterMux
	}
	if opts.Logger == nil {
		opts.Logger = logging.GetLogger()
	}

	db, err := OpenDatabase(ctx, opts.DSN)
	if err != nil {
		return nil, err
	}
	app, err := wire(db, opts)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return app, nil
}

func wire(db *sql.DB, opts Options) (*App, error) {
	sources, err := Sources(db)
	if err != nil {
		return nil, err
	}
	registry, err := NewRegistry(sources)
	if err != nil {
		return nil, err
	}
	renderers, err := NewRenderers(opts.Variant)
	if err != nil {
		return nil, err
	}
	renderer, err := renderers.Select(opts.Renderer, RendererPlain)
	if err != nil {
		return nil, err
	}
	pg, err := newPage()
	if err != nil {
		return nil, err
	}
	return &App{
		DB:        db,
		Service:   autocomplete.NewService(registry),
		Renderers: renderers,
		Renderer:  renderer,
		opts:      opts,
		page:      pg,
	}, nil
}

// Close releases the database.
func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

// HandlerOptions returns the options used for the autocomplete endpoints.
func (a *App) HandlerOptions() []handler.OptionFn {
	return []handler.OptionFn{
		handler.WithBasePath(a.opts.BasePath),
		handler.WithRenderer(a.Renderer),
		handler.WithLogger(a.opts.Logger),
	}
}

// OpenAPI describes the autocomplete endpoints of this app.
func (a *App) OpenAPI(ctx context.Context) (*openapi3.T, error) {
	doc := apidoc.Build(
		apidoc.WithTitle("Autocomplete demo"),
		apidoc.WithVersion(a.opts.Version),
		apidoc.WithBasePath(a.opts.BasePath),
		apidoc.WithRegistry(a.Service.Registry()),
	)
	if err := apidoc.Validate(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Handler returns the complete HTTP surface on the configured router.
func (a *App) Handler() (http.Handler, error) {
	switch strings.ToLower(a.opts.Router) {
	case RouterMux:
		return a.logRequests(a.muxHandler()), nil
	case RouterGin:
		h, err := a.ginHandler()
		if err != nil {
			return nil, err
		}
		return a.logRequests(h), nil
	default:
		return nil, fmt.Errorf("demo: unknown router %q", a.opts.Router)
	}
}

func (a *App) muxHandler() http.Handler {
	mux := http.NewServeMux()
	if _, err := handler.RegisterRoutes(mux, a.Service, a.HandlerOptions()...); err != nil {
		// RegisterRoutes only fails on a nil mux or service.
		panic(err)
	}
	mux.Handle("/assets/", http.StripPrefix("/assets/", http.FileServer(http.FS(htmx.AssetsFS()))))
	mux.HandleFunc("/openapi.json", a.serveAPIDocument)
	mux.HandleFunc("/healthz", serveHealth)
	mux.HandleFunc("/", a.serveForm)
	return mux
}

func (a *App) ginHandler() (http.Handler, error) {
	engine := gin.New()
	engine.Use(gin.Recovery())
	if _, err := ginadapter.Register(engine, a.Service, a.HandlerOptions()...); err != nil {
		return nil, err
	}
	engine.StaticFS("/assets", http.FS(htmx.AssetsFS()))
	engine.GET("/openapi.json", gin.WrapF(a.serveAPIDocument))
	engine.GET("/healthz", gin.WrapF(serveHealth))
	engine.GET("/", gin.WrapF(a.serveForm))
	engine.POST("/", gin.WrapF(a.serveForm))
	return engine, nil
}

func (a *App) serveForm(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	out, err := a.RenderForm(r.Context(), r.Form, r.Method == http.MethodPost)
	if err != nil {
		a.opts.Logger.Error("render form", zap.Error(err))
		status := autocomplete.StatusCode(err)
		http.Error(w, http.StatusText(status), status)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(out))
}

func (a *App) serveAPIDocument(w http.ResponseWriter, r *http.Request) {
	body, err := a.openAPIJSON(r.Context())
	if err != nil {
		a.opts.Logger.Error("build api document", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}

func (a *App) openAPIJSON(ctx context.Context) ([]byte, error) {
	doc, err := a.OpenAPI(ctx)
	if err != nil {
		return nil, err
	}
	return apidoc.MarshalJSON(doc)
}

func serveHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
