// Package app builds the application context: one value holding the
// document, topic bus, router, cache, cookies, ajax client, logger and
// metrics, created at startup and torn down by Close.
package app

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/vcrobe/valkyrja/ajax"
	"github.com/vcrobe/valkyrja/cache"
	"github.com/vcrobe/valkyrja/config"
	"github.com/vcrobe/valkyrja/console"
	"github.com/vcrobe/valkyrja/cookies"
	"github.com/vcrobe/valkyrja/dom"
	"github.com/vcrobe/valkyrja/metric"
	"github.com/vcrobe/valkyrja/router"
	"github.com/vcrobe/valkyrja/tmpl"
	"github.com/vcrobe/valkyrja/topics"
	"github.com/vcrobe/valkyrja/useragent"
)

var (
	ErrNoDocument = errors.New("app: platform has no document")
	ErrStarted    = errors.New("app: already started")
)

// Platform is the set of browser services the application runs on.
type Platform struct {
	Document  dom.Document
	Location  router.Location
	Storage   cache.Storage
	Cookies   cookies.Source
	UserAgent string
	// Release frees platform resources on Close. Optional.
	Release func()
}

// App is the application context.
type App struct {
	Config    *config.Config
	Logger    *slog.Logger
	Document  dom.Document
	Elems     *dom.Elems
	Bus       *topics.Bus
	Templates *tmpl.Set
	Router    *router.Router
	Cache     *cache.Cache
	Cookies   *cookies.Cookies
	HTTP      *ajax.Client
	Metrics   *metric.Metrics
	UserAgent useragent.Info

	platform Platform
	started  bool
}

type options struct {
	logger     *slog.Logger
	templates  *tmpl.Set
	httpClient *http.Client
	codec      cache.Codec
	metrics    *metric.Metrics
}

// Option configures New.
type Option func(*options)

// WithLogger replaces the console logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithTemplates supplies a template set with precompiled renderers.
func WithTemplates(s *tmpl.Set) Option {
	return func(o *options) {
		o.templates = s
	}
}

// WithHTTPClient replaces the client used by the ajax helper.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

// WithCacheCodec replaces the JSON cache codec.
func WithCacheCodec(c cache.Codec) Option {
	return func(o *options) {
		o.codec = c
	}
}

// WithMetrics shares a metrics set, for instance with a server exposing it.
func WithMetrics(m *metric.Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// New wires the application context. A nil cfg uses config.Default.
func New(cfg *config.Config, p Platform, opts ...Option) (*App, error) {
	if p.Document == nil {
		return nil, ErrNoDocument
	}
	if cfg == nil {
		cfg = config.Default()
	}
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	console.SetDebug(cfg.Debug)
	logger := o.logger
	if logger == nil {
		logger = console.Logger()
	}
	m := o.metrics
	if m == nil {
		m = metric.New("valkyrja")
	}
	templates := o.templates
	if templates == nil {
		templates = tmpl.NewSet(nil)
	}
	storage := p.Storage
	if storage == nil {
		storage = cache.NewMemoryStorage()
	}
	jar := p.Cookies
	if jar == nil {
		jar = cookies.NewJar()
	}

	cacheOpts := []cache.Option{cache.WithLogger(logger.With(slog.String("component", "cache")))}
	if o.codec != nil {
		cacheOpts = append(cacheOpts, cache.WithCodec(o.codec))
	}
	ajaxOpts := []ajax.Option{
		ajax.WithBaseURL(cfg.BaseURL),
		ajax.WithLogger(logger.With(slog.String("component", "ajax"))),
		ajax.WithHooks(m.AjaxHooks()),
	}
	if o.httpClient != nil {
		ajaxOpts = append(ajaxOpts, ajax.WithHTTPClient(o.httpClient))
	}

	a := &App{
		Config:    cfg,
		Logger:    logger,
		Document:  p.Document,
		Elems:     dom.NewElems(p.Document, cfg.MainID),
		Bus:       topics.NewBus(logger.With(slog.String("component", "topics")), topics.WithHooks(m.TopicHooks())),
		Templates: templates,
		Router: router.New(p.Document, templates,
			router.WithLogger(logger.With(slog.String("component", "router"))),
			router.WithMainID(cfg.MainID),
			router.WithErrorTemplateID(cfg.ErrorTemplateID),
			router.WithHooks(m.RouterHooks()),
		),
		Cache:     cache.New(storage, cacheOpts...),
		Cookies:   cookies.New(jar, logger.With(slog.String("component", "cookies"))),
		HTTP:      ajax.New(ajaxOpts...),
		Metrics:   m,
		UserAgent: useragent.Parse(p.UserAgent),
		platform:  p,
	}
	return a, nil
}

// Start registers the configured routes and binds the router to the
// platform location. Controllers named by the routes must be registered
// on a.Router before Start.
func (a *App) Start() error {
	if a.started {
		return ErrStarted
	}
	for _, r := range a.Config.Routes {
		if err := a.Router.Route(r.Path, r.Template, r.Controller, r.Params); err != nil {
			return fmt.Errorf("app: route %s: %w", r.Path, err)
		}
	}
	if a.platform.Location == nil {
		a.platform.Location = router.NewMemoryLocation("")
	}
	a.started = true
	a.Logger.Info("starting", slog.String("version", a.Config.Version), slog.Int("routes", len(a.Config.Routes)))
	a.Router.Start(a.platform.Location)
	return nil
}

// Navigate moves to hash through the platform location.
func (a *App) Navigate(hash string) {
	a.Router.Navigate(hash)
}

// Close unbinds the router, removes the active controller, drops every
// topic and releases the platform.
func (a *App) Close() {
	a.Router.Stop()
	if rm, ok := a.Router.Current().(router.Remover); ok {
		rm.Remove()
	}
	a.Bus.RemoveTopics()
	if a.platform.Release != nil {
		a.platform.Release()
	}
	a.started = false
	a.Logger.Info("closed")
}
