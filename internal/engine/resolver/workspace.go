package resolver

import (
	"context"
	"runtime"
	"sync"

	"github.com/google/uuid"
	"go.trai.ch/rsym/internal/core/domain"
	"go.trai.ch/rsym/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// BuildOptions configures Workspace.BuildAll.
type BuildOptions struct {
	// Parallelism bounds concurrent table generation. Zero means runtime.NumCPU().
	Parallelism int
	// NoCache regenerates every table and skips the table cache entirely.
	NoCache bool
}

// BuildResult holds every table and merged view of one workspace build.
type BuildResult struct {
	RunID  string
	Graph  *domain.NamespaceGraph
	Tables map[string]*domain.ResourceTable
	Views  map[string]*domain.MergedView
	// Cached lists namespaces whose table came from the cache.
	Cached map[string]bool
}

// View returns the merged view of namespace.
func (r *BuildResult) View(namespace string) (*domain.MergedView, error) {
	v, ok := r.Views[namespace]
	if !ok {
		return nil, zerr.With(domain.ErrUnknownNamespace, "namespace", namespace)
	}
	return v, nil
}

// Workspace builds the tables and views of every namespace in a graph.
type Workspace struct {
	resolver *Resolver
	cache    ports.TableCache
	hasher   ports.Hasher
	tracer   ports.Tracer
	logger   ports.Logger
}

// NewWorkspace creates a new Workspace with the given dependencies.
func NewWorkspace(
	resolver *Resolver,
	cache ports.TableCache,
	hasher ports.Hasher,
	tracer ports.Tracer,
	logger ports.Logger,
) *Workspace {
	return &Workspace{
		resolver: resolver,
		cache:    cache,
		hasher:   hasher,
		tracer:   tracer,
		logger:   logger,
	}
}

// BuildAll validates the graph, generates every namespace table and then
// builds every namespace's merged view. All tables are complete before the
// first view is merged.
func (w *Workspace) BuildAll(
	ctx context.Context,
	graph *domain.NamespaceGraph,
	opts BuildOptions,
) (*BuildResult, error) {
	if err := graph.Validate(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	ctx, span := w.tracer.Start(ctx, "build", ports.WithRoot())
	defer span.End()
	span.SetAttribute("rsym.run_id", runID)

	planned := make([]string, 0, graph.Len())
	for ns := range graph.Walk() {
		planned = append(planned, ns.Name.String())
	}
	w.tracer.EmitPlan(ctx, planned)

	res := &BuildResult{
		RunID:  runID,
		Graph:  graph,
		Tables: make(map[string]*domain.ResourceTable, graph.Len()),
		Views:  make(map[string]*domain.MergedView, graph.Len()),
		Cached: make(map[string]bool),
	}

	if err := w.generateTables(ctx, graph, opts, res); err != nil {
		span.RecordError(err)
		return nil, err
	}
	if err := w.buildViews(ctx, graph, opts, res); err != nil {
		span.RecordError(err)
		return nil, err
	}
	return res, nil
}

// generateTables produces the own table of every namespace concurrently.
func (w *Workspace) generateTables(
	ctx context.Context,
	graph *domain.NamespaceGraph,
	opts BuildOptions,
	res *BuildResult,
) error {
	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism(opts))

	for ns := range graph.Walk() {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			table, cached, err := w.generateTable(ctx, graph.Root(), ns, opts.NoCache)
			if err != nil {
				return zerr.With(zerr.Wrap(err, domain.ErrBuildFailed.Error()), "namespace", ns.Name.String())
			}
			mu.Lock()
			defer mu.Unlock()
			res.Tables[ns.Name.String()] = table
			if cached {
				res.Cached[ns.Name.String()] = true
			}
			return nil
		})
	}
	return g.Wait()
}

func (w *Workspace) generateTable(
	ctx context.Context,
	root string,
	ns *domain.Namespace,
	noCache bool,
) (table *domain.ResourceTable, cached bool, err error) {
	_, span := w.tracer.Start(ctx, ns.Name.String())
	defer span.End()
	span.SetAttribute("rsym.kind", string(ns.Kind))

	if ns.Prebuilt() {
		table, err = domain.NewResourceTable(ns.Name.String(), ns.Symbols)
		if err != nil {
			span.RecordError(err)
		}
		return table, false, err
	}

	if noCache {
		table, err = generate(ns)
		if err != nil {
			span.RecordError(err)
		}
		return table, false, err
	}

	key, err := w.hasher.HashNamespace(ns)
	if err != nil {
		span.RecordError(err)
		return nil, false, err
	}

	table, err = w.cache.Get(root, key)
	if err != nil {
		// A corrupt entry is regenerated and overwritten.
		w.logger.Warn("ignoring cached table for " + ns.Name.String() + ": " + err.Error())
		table = nil
	}
	if table != nil && table.Namespace() == ns.Name.String() {
		span.SetAttribute("rsym.cached", true)
		return table, true, nil
	}

	table, err = generate(ns)
	if err != nil {
		span.RecordError(err)
		return nil, false, err
	}
	if err := w.cache.Put(root, key, table); err != nil {
		w.logger.Warn("failed to cache table for " + ns.Name.String() + ": " + err.Error())
	}
	return table, false, nil
}

func generate(ns *domain.Namespace) (*domain.ResourceTable, error) {
	packageID := ns.PackageID
	if packageID == 0 {
		packageID = domain.DefaultPackageID
	}
	return domain.GenerateTable(ns.Name.String(), packageID, ns.Definitions)
}

// buildViews merges every namespace's view from the finished tables.
func (w *Workspace) buildViews(
	ctx context.Context,
	graph *domain.NamespaceGraph,
	opts BuildOptions,
	res *BuildResult,
) error {
	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism(opts))

	for ns := range graph.Walk() {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			view, err := w.buildView(graph, ns.Name.String(), res.Tables)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			res.Views[ns.Name.String()] = view
			return nil
		})
	}
	return g.Wait()
}

// buildView reads tables only; it never writes to the map.
func (w *Workspace) buildView(
	graph *domain.NamespaceGraph,
	name string,
	tables map[string]*domain.ResourceTable,
) (*domain.MergedView, error) {
	flat, err := graph.Flatten(name)
	if err != nil {
		return nil, err
	}
	deps := make([]*domain.ResourceTable, 0, len(flat))
	for _, dep := range flat {
		deps = append(deps, tables[dep.Name.String()])
	}
	return w.resolver.Build(tables[name], deps)
}

func parallelism(opts BuildOptions) int {
	if opts.Parallelism > 0 {
		return opts.Parallelism
	}
	return runtime.NumCPU()
}
