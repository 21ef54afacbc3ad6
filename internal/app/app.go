// Package app implements the application layer for rsym.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/rsym/internal/adapters/detector"
	"go.trai.ch/rsym/internal/adapters/render"
	"go.trai.ch/rsym/internal/adapters/telemetry"
	"go.trai.ch/rsym/internal/adapters/watcher"
	"go.trai.ch/rsym/internal/core/domain"
	"go.trai.ch/rsym/internal/core/ports"
	"go.trai.ch/rsym/internal/engine/resolver"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	workspace    *resolver.Workspace
	resolver     *resolver.Resolver
	filters      ports.FilterCompiler
	watcher      ports.Watcher
	logger       ports.Logger
	stdout       io.Writer
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	workspace *resolver.Workspace,
	filters ports.FilterCompiler,
	w ports.Watcher,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		workspace:    workspace,
		resolver:     resolver.New(),
		filters:      filters,
		watcher:      w,
		logger:       log,
		stdout:       os.Stdout,
	}
}

// WithOutput sets the writer command results are printed to.
func (a *App) WithOutput(w io.Writer) *App {
	a.stdout = w
	return a
}

// Options are shared by every command that builds views.
type Options struct {
	// Dir is the working directory used for discovery. Empty means ".".
	Dir string
	// NoCache bypasses the table cache.
	NoCache bool
	// Jobs bounds concurrent table generation. Zero means one per CPU.
	Jobs int
	// Trace logs a timing line for every span.
	Trace bool
	// JSON switches log output to JSON lines.
	JSON bool
}

// Configure applies the process wide options: log format and tracing.
// The returned function flushes tracing and must be called before exit.
func (a *App) Configure(opts Options) func(context.Context) error {
	if l, ok := a.logger.(interface{ SetJSON(bool) }); ok {
		l.SetJSON(opts.JSON)
	}
	if !opts.Trace {
		return func(context.Context) error { return nil }
	}
	return telemetry.Setup(a.logger)
}

// ResolveOptions configures Resolve.
type ResolveOptions struct {
	Options
	// Namespace selects the view to resolve against. Empty selects by directory.
	Namespace string
}

// Resolve resolves each reference against the selected namespace's view and
// prints one "reference id origin" line per reference. It stops at the first
// reference that does not resolve.
func (a *App) Resolve(ctx context.Context, refs []string, opts ResolveOptions) error {
	if len(refs) == 0 {
		return domain.ErrNoReferences
	}

	result, cwd, err := a.build(ctx, opts.Options)
	if err != nil {
		return err
	}

	view, err := a.selectView(result, cwd, opts.Namespace)
	if err != nil {
		return err
	}

	for _, ref := range refs {
		res, err := a.resolver.ResolveReference(view, ref)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(a.stdout, "%s\t0x%08x\t%s\n", res.Reference, res.ID, res.Origin); err != nil {
			return err
		}
	}
	return nil
}

// TableOptions configures Table.
type TableOptions struct {
	Options
	// Namespace selects the view to list. Empty selects by directory.
	Namespace string
	// Format is one of text, rtxt or json.
	Format string
	// Filter is an optional row predicate expression.
	Filter string
	// Style overrides terminal detection for the text format: auto, pretty or plain.
	Style string
}

// Table prints the merged view of the selected namespace.
func (a *App) Table(ctx context.Context, opts TableOptions) error {
	mode := detector.ResolveMode(detectOutput(a.stdout), opts.Style)
	renderer, err := render.New(opts.Format, mode)
	if err != nil {
		return err
	}

	var pred ports.Predicate
	if opts.Filter != "" {
		if pred, err = a.filters.Compile(opts.Filter); err != nil {
			return err
		}
	}

	result, cwd, err := a.build(ctx, opts.Options)
	if err != nil {
		return err
	}

	view, err := a.selectView(result, cwd, opts.Namespace)
	if err != nil {
		return err
	}

	rows := make([]domain.ViewEntry, 0, view.Len())
	for row := range view.Entries() {
		if pred != nil {
			keep, err := pred(view, row)
			if err != nil {
				return err
			}
			if !keep {
				continue
			}
		}
		rows = append(rows, row)
	}

	return renderer.Render(a.stdout, view, rows)
}

// Check builds every namespace and logs a summary line per namespace.
func (a *App) Check(ctx context.Context, opts Options) error {
	start := time.Now()
	result, _, err := a.build(ctx, opts)
	if err != nil {
		return err
	}
	a.report(result, time.Since(start))
	return nil
}

// WatchOptions configures Watch.
type WatchOptions struct {
	Options
	// Debounce is the quiet period before a rebuild. Zero means the watcher default.
	Debounce time.Duration
}

// Watch checks the workspace, then checks it again whenever a file below the
// workspace root changes. Failed rebuilds are logged and watching continues.
// It returns when ctx is canceled.
func (a *App) Watch(ctx context.Context, opts WatchOptions) error {
	cwd, err := absDir(opts.Dir)
	if err != nil {
		return err
	}
	root, err := a.configLoader.DiscoverRoot(cwd)
	if err != nil {
		return err
	}

	if err := a.Check(ctx, opts.Options); err != nil {
		a.logger.Error(err)
	}

	if err := a.watcher.Start(ctx, root); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to start watcher"), "root", root)
	}
	defer func() { _ = a.watcher.Stop() }()

	window := opts.Debounce
	if window <= 0 {
		window = watcher.DefaultDebounceWindow
	}
	changes := make(chan []string, 1)
	debouncer := watcher.NewDebouncer(window, func(paths []string) {
		select {
		case changes <- paths:
		default:
			// A rebuild is already queued and reloads everything.
		}
	})
	defer debouncer.Stop()

	go func() {
		for event := range a.watcher.Events() {
			debouncer.Add(event.Path)
		}
	}()

	a.logger.Info(fmt.Sprintf("watching %s", root))
	for {
		select {
		case <-ctx.Done():
			return nil
		case paths := <-changes:
			a.logger.Info(fmt.Sprintf("%d file(s) changed, rebuilding", len(paths)))
			if err := a.Check(ctx, opts.Options); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				a.logger.Error(err)
			}
		}
	}
}

// CleanOptions configures Clean.
type CleanOptions struct {
	Dir string
}

// Clean removes the state directory of the workspace, including the table cache.
func (a *App) Clean(_ context.Context, opts CleanOptions) error {
	cwd, err := absDir(opts.Dir)
	if err != nil {
		return err
	}
	root, err := a.configLoader.DiscoverRoot(cwd)
	if err != nil {
		return err
	}

	path := domain.StatePath(root)
	a.logger.Info("removing table cache...")
	if err := os.RemoveAll(path); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to remove table cache"), "path", path)
	}
	a.logger.Info("removed table cache")
	return nil
}

// build loads the configuration governing opts.Dir and builds every view.
func (a *App) build(ctx context.Context, opts Options) (*resolver.BuildResult, string, error) {
	cwd, err := absDir(opts.Dir)
	if err != nil {
		return nil, "", err
	}

	graph, err := a.configLoader.Load(cwd)
	if err != nil {
		return nil, "", zerr.Wrap(err, "failed to load configuration")
	}

	result, err := a.workspace.BuildAll(ctx, graph, resolver.BuildOptions{
		Parallelism: opts.Jobs,
		NoCache:     opts.NoCache,
	})
	if err != nil {
		return nil, "", err
	}
	return result, cwd, nil
}

// selectView picks the view named explicitly, else the namespace whose
// directory most closely contains cwd, else the first project namespace.
func (a *App) selectView(result *resolver.BuildResult, cwd, explicit string) (*domain.MergedView, error) {
	if explicit != "" {
		return result.View(explicit)
	}

	var best *domain.Namespace
	var firstProject *domain.Namespace
	for ns := range result.Graph.Namespaces() {
		if firstProject == nil && ns.Kind == domain.KindProject {
			firstProject = ns
		}
		if ns.Dir == "" || !within(cwd, ns.Dir) {
			continue
		}
		if best == nil || len(ns.Dir) > len(best.Dir) {
			best = ns
		}
	}

	switch {
	case best != nil:
		return result.View(best.Name.String())
	case firstProject != nil:
		return result.View(firstProject.Name.String())
	default:
		return nil, domain.ErrNamespaceRequired
	}
}

func (a *App) report(result *resolver.BuildResult, elapsed time.Duration) {
	for ns := range result.Graph.Walk() {
		name := ns.Name.String()
		view := result.Views[name]

		line := fmt.Sprintf("%s: %d resources", name, view.Len())
		if n := len(view.Shadowed()); n > 0 {
			line += fmt.Sprintf(", %d shadowed", n)
		}
		if result.Cached[name] {
			line += " (cached)"
		}
		a.logger.Info(line)
	}
	a.logger.Info(fmt.Sprintf("checked %d namespaces in %s", result.Graph.Len(), elapsed.Round(time.Millisecond)))
}

func absDir(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to resolve directory"), "dir", dir)
	}
	return abs, nil
}

// within reports whether path is dir or lies below it.
func within(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// detectOutput returns the auto-detected mode for w; only files can be terminals.
func detectOutput(w io.Writer) detector.OutputMode {
	if f, ok := w.(*os.File); ok {
		return detector.DetectEnvironment(f)
	}
	return detector.ModePlain
}
