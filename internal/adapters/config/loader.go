// Package config provides the configuration loader for rsym.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/rsym/internal/adapters/rtxt"
	"go.trai.ch/rsym/internal/core/domain"
	"go.trai.ch/rsym/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using YAML files.
type Loader struct {
	Logger  ports.Logger
	Scanner ports.ResourceScanner
}

// NewLoader creates a new Loader with the given logger and res/ scanner.
func NewLoader(logger ports.Logger, scanner ports.ResourceScanner) *Loader {
	return &Loader{Logger: logger, Scanner: scanner}
}

// Mode represents the configuration mode of rsym.
type Mode string

const (
	// ModeWorkspace indicates that rsym has a workfile.
	ModeWorkspace Mode = "workspace"
	// ModeStandalone indicates that rsym has only one namespace file.
	ModeStandalone Mode = "standalone"
)

// Load finds the configuration governing cwd and returns the namespace graph.
func (l *Loader) Load(cwd string) (*domain.NamespaceGraph, error) {
	configPath, mode, err := l.findConfiguration(cwd)
	if err != nil {
		return nil, err
	}

	switch mode {
	case ModeStandalone:
		return l.loadStandalone(configPath)
	case ModeWorkspace:
		return l.loadWorkfile(configPath)
	default:
		return nil, zerr.With(domain.ErrConfigNotFound, "mode", mode)
	}
}

// DiscoverRoot returns the directory holding the governing configuration file.
func (l *Loader) DiscoverRoot(cwd string) (string, error) {
	configPath, mode, err := l.findConfiguration(cwd)
	if err != nil {
		return "", err
	}
	if mode == ModeWorkspace {
		var workfile Workfile
		if err := readAndUnmarshalYAML(configPath, &workfile); err != nil {
			return "", err
		}
		return resolveRoot(configPath, workfile.Root), nil
	}
	return filepath.Dir(configPath), nil
}

// DiscoverConfigPaths returns every file the graph is loaded from together with
// its modification time in UnixNano. A change to any of them requires a reload.
func (l *Loader) DiscoverConfigPaths(cwd string) (map[string]int64, error) {
	configPath, mode, err := l.findConfiguration(cwd)
	if err != nil {
		return nil, err
	}

	paths := []string{configPath}
	if mode == ModeWorkspace {
		var workfile Workfile
		if err := readAndUnmarshalYAML(configPath, &workfile); err != nil {
			return nil, err
		}
		dirs, err := resolveNamespacePaths(resolveRoot(configPath, workfile.Root), workfile.Namespaces)
		if err != nil {
			return nil, err
		}
		for _, dir := range dirs {
			paths = append(paths, filepath.Join(dir, domain.NamespaceFileName))
		}
	}

	result := make(map[string]int64, len(paths))
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			// Globs may match directories without a namespace file.
			continue
		}
		result[p] = info.ModTime().UnixNano()
	}
	return result, nil
}

func (l *Loader) findConfiguration(cwd string) (string, Mode, error) {
	currentDir := cwd
	var standaloneCandidate string

	for {
		workfilePath := filepath.Join(currentDir, domain.WorkFileName)
		if _, err := os.Stat(workfilePath); err == nil {
			return workfilePath, ModeWorkspace, nil
		}

		if standaloneCandidate == "" {
			nsPath := filepath.Join(currentDir, domain.NamespaceFileName)
			if _, err := os.Stat(nsPath); err == nil {
				standaloneCandidate = nsPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	if standaloneCandidate != "" {
		return standaloneCandidate, ModeStandalone, nil
	}

	return "", "", zerr.With(domain.ErrConfigNotFound, "cwd", cwd)
}

func (l *Loader) loadStandalone(configPath string) (*domain.NamespaceGraph, error) {
	dir := filepath.Dir(configPath)

	g := domain.NewNamespaceGraph()
	g.SetRoot(dir)

	ns, err := l.loadNamespace(configPath, ".")
	if err != nil {
		return nil, err
	}
	if err := g.AddNamespace(ns); err != nil {
		return nil, err
	}
	return g, nil
}

func (l *Loader) loadWorkfile(configPath string) (*domain.NamespaceGraph, error) {
	var workfile Workfile
	if err := readAndUnmarshalYAML(configPath, &workfile); err != nil {
		return nil, err
	}

	g := domain.NewNamespaceGraph()
	workspaceRoot := resolveRoot(configPath, workfile.Root)
	g.SetRoot(workspaceRoot)

	dirs, err := resolveNamespacePaths(workspaceRoot, workfile.Namespaces)
	if err != nil {
		return nil, err
	}

	// Track namespace names to report both locations of a duplicate.
	seen := make(map[string]string)
	for _, dir := range dirs {
		if err := l.processNamespaceDir(g, workspaceRoot, dir, seen); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// resolveNamespacePaths expands the workfile globs into a sorted, deduplicated list.
func resolveNamespacePaths(workspaceRoot string, patterns []string) ([]string, error) {
	paths := make(map[string]struct{})

	for _, pattern := range patterns {
		absPattern := filepath.Join(workspaceRoot, pattern)

		matches, err := filepath.Glob(absPattern)
		if err != nil {
			return nil, zerr.Wrap(err, "glob pattern failed: "+pattern)
		}

		for _, match := range matches {
			paths[match] = struct{}{}
		}
	}

	sorted := make([]string, 0, len(paths))
	for p := range paths {
		sorted = append(sorted, p)
	}
	slices.Sort(sorted)

	return sorted, nil
}

func (l *Loader) processNamespaceDir(
	g *domain.NamespaceGraph,
	workspaceRoot, dir string,
	seen map[string]string,
) error {
	relPath, _ := filepath.Rel(workspaceRoot, dir)

	info, err := os.Stat(dir)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", dir)
	}
	// Globs match files too.
	if !info.IsDir() {
		return nil
	}

	nsPath := filepath.Join(dir, domain.NamespaceFileName)
	if _, statErr := os.Stat(nsPath); os.IsNotExist(statErr) {
		l.Logger.Warn(fmt.Sprintf("%s missing in %s, skipping", domain.NamespaceFileName, relPath))
		return nil
	}

	ns, err := l.loadNamespace(nsPath, relPath)
	if err != nil {
		return err
	}

	if existing, ok := seen[ns.Name.String()]; ok {
		err := zerr.With(domain.ErrDuplicateNamespace, "namespace", ns.Name.String())
		err = zerr.With(err, "first_occurrence", existing)
		return zerr.With(err, "duplicate_at", relPath)
	}
	seen[ns.Name.String()] = relPath

	return g.AddNamespace(ns)
}

// loadNamespace reads one namespace file. relPath only labels errors.
func (l *Loader) loadNamespace(configPath, relPath string) (*domain.Namespace, error) {
	var file Namespacefile
	if err := readAndUnmarshalYAML(configPath, &file); err != nil {
		return nil, zerr.With(err, "directory", relPath)
	}

	ns, err := l.buildNamespace(&file, configPath)
	if err != nil {
		return nil, zerr.With(err, "directory", relPath)
	}
	return ns, nil
}

func (l *Loader) buildNamespace(file *Namespacefile, configPath string) (*domain.Namespace, error) {
	if file.Package == "" {
		return nil, domain.ErrMissingNamespaceName
	}
	if err := domain.ValidateNamespaceName(file.Package); err != nil {
		return nil, err
	}

	kind, err := domain.ParseNamespaceKind(file.Kind)
	if err != nil {
		return nil, zerr.With(err, "namespace", file.Package)
	}

	packageID, err := parsePackageID(file.PackageID)
	if err != nil {
		return nil, zerr.With(err, "namespace", file.Package)
	}

	for _, dep := range file.Dependencies {
		if err := domain.ValidateNamespaceName(dep); err != nil {
			return nil, zerr.With(err, "required_by", file.Package)
		}
	}

	dir := filepath.Dir(configPath)
	ns := &domain.Namespace{
		Name:         domain.NewInternedString(file.Package),
		Kind:         kind,
		PackageID:    packageID,
		Dependencies: domain.NewInternedStrings(file.Dependencies),
		Sources:      []string{configPath},
		Dir:          dir,
	}

	if ns.Prebuilt() {
		if err := l.loadSymbols(ns, file, dir); err != nil {
			return nil, err
		}
		return ns, nil
	}

	if file.Symbols != "" {
		l.Logger.Warn(fmt.Sprintf("'symbols' in %s has no effect for kind %s", configPath, kind))
	}

	defs, err := declaredDefinitions(file.Resources, configPath)
	if err != nil {
		return nil, zerr.With(err, "namespace", file.Package)
	}
	ns.Definitions = defs

	if file.Res != "" {
		resDir := resolvePath(dir, file.Res)
		scanned, err := l.Scanner.Scan(resDir)
		if err != nil {
			return nil, zerr.With(err, "namespace", file.Package)
		}
		ns.Definitions = append(ns.Definitions, scanned...)
		ns.Sources = append(ns.Sources, resDir)
	}

	return ns, nil
}

func (l *Loader) loadSymbols(ns *domain.Namespace, file *Namespacefile, dir string) error {
	if file.Symbols == "" {
		return zerr.With(domain.ErrMissingSymbols, "namespace", file.Package)
	}
	if len(file.Resources) > 0 || file.Res != "" {
		l.Logger.Warn(fmt.Sprintf("'resources' and 'res' are ignored for archive %s", file.Package))
	}

	symbolsPath := resolvePath(dir, file.Symbols)
	entries, err := rtxt.ReadFile(symbolsPath)
	if err != nil {
		return zerr.With(err, "namespace", file.Package)
	}
	ns.Symbols = entries
	ns.Sources = append(ns.Sources, symbolsPath)
	return nil
}

// declaredDefinitions converts the resources map in canonical type order.
// Names keep their declaration order within a type and are flattened like
// the names found under res/.
func declaredDefinitions(resources map[string][]string, source string) ([]domain.Definition, error) {
	typeNames := make([]string, 0, len(resources))
	for name := range resources {
		typeNames = append(typeNames, name)
	}
	slices.Sort(typeNames)

	var defs []domain.Definition
	for _, typeName := range typeNames {
		typ, err := domain.ParseResourceType(typeName)
		if err != nil {
			return nil, err
		}
		for _, name := range resources[typeName] {
			defs = append(defs, domain.Definition{Type: typ, Name: domain.FlattenResourceName(name), Source: source})
		}
	}
	return defs, nil
}

func parsePackageID(v *int) (uint8, error) {
	if v == nil {
		return 0, nil
	}
	if *v < 0x01 || *v > 0xff {
		return 0, zerr.With(domain.ErrInvalidPackageID, "package_id", *v)
	}
	return uint8(*v), nil
}

func resolvePath(base, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Clean(filepath.Join(base, p))
}

func resolveRoot(configPath, configuredRoot string) string {
	configDir := filepath.Dir(configPath)
	if configuredRoot == "" {
		return filepath.Clean(configDir)
	}
	return resolvePath(configDir, configuredRoot)
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is discovered by the loader
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", configPath)
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.With(zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error()), "path", configPath)
	}

	return nil
}
