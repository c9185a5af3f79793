package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/five82/catalog/internal/catalog"
	"github.com/five82/catalog/internal/config"
	"github.com/five82/catalog/internal/logging"
	"github.com/five82/catalog/internal/prefs"
	"github.com/five82/catalog/internal/render"
	"github.com/five82/catalog/internal/source"
	"github.com/five82/catalog/internal/state"
	"github.com/five82/catalog/internal/ui"
	"github.com/five82/catalog/internal/watch"
)

// Options configure the catalog commands.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/catalog/prefs.toml
	Source     string // overrides the configured source when set
	Verbose    bool
}

// Query selects the records a one-shot command prints.
type Query struct {
	Text     string
	Category string // empty means all
}

type env struct {
	cfg    config.Config
	logger *zap.Logger
	client *source.Client
}

// setup loads configuration and builds the logger and loader. logPath
// overrides the configured log file; "stderr" logs to standard error.
func setup(opts Options, logPath string) (env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return env{}, fmt.Errorf("load config: %w", err)
	}
	if opts.Source != "" {
		cfg.Source = opts.Source
	}
	if logPath == "" {
		logPath = cfg.LogFile
	}

	logger, err := logging.New(logging.Options{Path: logPath, Verbose: opts.Verbose})
	if err != nil {
		return env{}, fmt.Errorf("init logger: %w", err)
	}

	var clientOpts []source.Option
	if cfg.RequestTimeout > 0 {
		clientOpts = append(clientOpts, source.WithTimeout(cfg.RequestTimeout))
	}
	client, err := source.NewClient(cfg.Source, clientOpts...)
	if err != nil {
		_ = logger.Sync()
		return env{}, fmt.Errorf("init source: %w", err)
	}

	return env{cfg: cfg, logger: logger, client: client}, nil
}

// Run boots the interactive viewer until the user quits or the context is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	e, err := setup(opts, "")
	if err != nil {
		return err
	}
	defer func() { _ = e.logger.Sync() }()

	userPrefs := prefs.Load(opts.PrefsPath)

	uiOpts := ui.Options{
		Context:    ctx,
		Loader:     e.client,
		Store:      &state.Store{},
		Renderer:   render.New(e.client),
		Logger:     e.logger,
		Categories: e.cfg.Categories,
		ThemeName:  userPrefs.Theme,
		Layout:     userPrefs.Layout,
		PrefsPath:  opts.PrefsPath,
	}

	if w := startWatcher(ctx, e); w != nil {
		defer func() { _ = w.Stop() }()
		uiOpts.Reloads = w.Changes()
	}

	e.logger.Info("catalog viewer starting", zap.String("source", e.client.Location()))
	return ui.Run(uiOpts)
}

// startWatcher returns a running watcher when watching is enabled and the
// source is a local file. Watch failures are logged and never fatal.
func startWatcher(ctx context.Context, e env) *watch.Watcher {
	if !e.cfg.Watch {
		return nil
	}
	path := e.client.LocalPath()
	if path == "" {
		e.logger.Warn("watch ignored for remote source", zap.String("source", e.client.Location()))
		return nil
	}
	w, err := watch.New(watch.Config{Path: path, Logger: e.logger})
	if err != nil {
		e.logger.Warn("watch unavailable", zap.Error(err))
		return nil
	}
	if err := w.Start(ctx); err != nil {
		_ = w.Stop()
		e.logger.Warn("watch unavailable", zap.Error(err))
		return nil
	}
	return w
}

// List loads the catalogue once and writes the matching records as a
// plain-text table.
func List(ctx context.Context, opts Options, q Query, w io.Writer) error {
	surface, _, err := loadOnce(ctx, opts, q, false)
	if err != nil {
		return err
	}
	return render.WriteText(w, surface)
}

// Export loads the catalogue once and writes the matching records as a
// static HTML page. Links from a local source are written as they appear in
// the file so the page works when served next to it.
func Export(ctx context.Context, opts Options, q Query, w io.Writer) error {
	surface, total, err := loadOnce(ctx, opts, q, true)
	if err != nil {
		return err
	}
	category := q.Category
	if catalog.IsAll(category) {
		category = ""
	}
	return render.WriteHTML(w, render.Page{
		Query:    q.Text,
		Category: category,
		Total:    total,
		Surface:  surface,
	})
}

// loadOnce runs load, filter and render for the one-shot commands. A load
// failure is returned so the command exits non-zero. With rawLocal set,
// links from a local source are left unresolved.
func loadOnce(ctx context.Context, opts Options, q Query, rawLocal bool) (render.Surface, int, error) {
	e, err := setup(opts, "stderr")
	if err != nil {
		return render.Surface{}, 0, err
	}
	defer func() { _ = e.logger.Sync() }()

	records, err := e.client.Load(ctx)
	if err != nil {
		logLoadError(e.logger, e.client.Location(), err)
		return render.Surface{}, 0, err
	}
	e.logger.Debug("catalog loaded",
		zap.String("source", e.client.Location()),
		zap.Int("records", len(records)),
	)

	category := q.Category
	if category == "" {
		category = catalog.CategoryAll
	}
	visible := catalog.Filter(records, q.Text, category)

	var links render.LinkResolver = e.client
	if rawLocal && e.client.LocalPath() != "" {
		links = nil
	}
	return render.New(links).Render(visible), len(records), nil
}

func logLoadError(logger *zap.Logger, location string, err error) {
	fields := []zap.Field{zap.String("source", location), zap.Error(err)}
	var loadErr *source.LoadError
	if errors.As(err, &loadErr) {
		fields = append(fields, zap.String("op", loadErr.Op))
	}
	logger.Error("catalog load failed", fields...)
}
