package domain

import (
	"errors"

	"go.trai.ch/zerr"
)

var (
	// ErrDuplicateDefinition is returned when one namespace declares the same (type, name) twice.
	ErrDuplicateDefinition = zerr.New("duplicate resource definition")

	// ErrUnknownResource is returned when a reference names a (type, name) absent from the applicable view.
	ErrUnknownResource = zerr.New("unknown resource")

	// ErrUnknownNamespace is returned when a namespace is referenced but not declared as a dependency.
	ErrUnknownNamespace = zerr.New("unknown namespace")

	// ErrCyclicDependency is returned when the namespace dependency graph contains a cycle.
	ErrCyclicDependency = zerr.New("cyclic namespace dependency")

	// ErrUnknownResourceType is returned when a resource type name is not recognized.
	ErrUnknownResourceType = zerr.New("unknown resource type")

	// ErrInvalidResourceName is returned when a resource name is not a valid R field name.
	ErrInvalidResourceName = zerr.New("invalid resource name, expected a Java identifier")

	// ErrInvalidResourceID is returned when a resource id is negative or out of range.
	ErrInvalidResourceID = zerr.New("invalid resource id")

	// ErrInvalidReference is returned when a resource reference cannot be parsed.
	ErrInvalidReference = zerr.New("invalid resource reference, expected [package.]R.type.name")

	// ErrDuplicateNamespace is returned when two namespaces share the same package name.
	ErrDuplicateNamespace = zerr.New("duplicate namespace")

	// ErrInvalidNamespaceName is returned when a namespace is not a dotted package identifier.
	ErrInvalidNamespaceName = zerr.New("invalid namespace name")

	// ErrInvalidNamespaceKind is returned when a namespace kind is not project, library or archive.
	ErrInvalidNamespaceKind = zerr.New("invalid namespace kind, expected 'project', 'library' or 'archive'")

	// ErrMissingSymbols is returned when an archive namespace does not declare a symbol table file.
	ErrMissingSymbols = zerr.New("archive namespace requires a symbols file")

	// ErrTooManyResources is returned when generated ids overflow the type or entry range.
	ErrTooManyResources = zerr.New("too many resources for id allocation")

	// ErrNamespaceRequired is returned when the target namespace cannot be inferred.
	ErrNamespaceRequired = zerr.New("namespace required, pass --namespace")

	// ErrNoReferences is returned when resolve is called without references.
	ErrNoReferences = zerr.New("no references specified")

	// ErrInvalidPackageID is returned when a namespace file declares a packageId outside 0x01..0xff.
	ErrInvalidPackageID = zerr.New("invalid packageId, expected a value between 0x01 and 0xff")

	// ErrMissingNamespaceName is returned when a namespace file does not declare its package.
	ErrMissingNamespaceName = zerr.New("namespace file is missing 'package'")

	// ErrConfigReadFailed is returned when a config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when a config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigNotFound is returned when neither a workfile nor a namespace file can be found.
	ErrConfigNotFound = zerr.New("could not find rsym.yaml or rsym.work.yaml")

	// ErrSymbolsReadFailed is returned when an R.txt symbol file cannot be read.
	ErrSymbolsReadFailed = zerr.New("failed to read symbols file")

	// ErrSymbolsParseFailed is returned when an R.txt line cannot be parsed.
	ErrSymbolsParseFailed = zerr.New("failed to parse symbols file")

	// ErrResourceScanFailed is returned when a res/ directory cannot be scanned.
	ErrResourceScanFailed = zerr.New("failed to scan resource directory")

	// ErrStoreCreateFailed is returned when the table store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create table store directory")

	// ErrStoreReadFailed is returned when a cached table cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read cached table")

	// ErrStoreUnmarshalFailed is returned when a cached table cannot be decoded.
	ErrStoreUnmarshalFailed = zerr.New("failed to decode cached table")

	// ErrStoreMarshalFailed is returned when a table cannot be encoded.
	ErrStoreMarshalFailed = zerr.New("failed to encode table")

	// ErrStoreWriteFailed is returned when a table cannot be written to the store.
	ErrStoreWriteFailed = zerr.New("failed to write cached table")

	// ErrInvalidFilter is returned when a table filter expression does not compile.
	ErrInvalidFilter = zerr.New("invalid filter expression")

	// ErrUnknownFormat is returned when an output format is not supported.
	ErrUnknownFormat = zerr.New("unknown output format, expected 'text', 'rtxt' or 'json'")

	// ErrBuildFailed is returned when building the workspace views fails.
	ErrBuildFailed = zerr.New("failed to build resource views")
)

// IsKind reports whether any error in err's chain was derived from the sentinel kind.
// zerr.With copies the sentinel, so errors.Is cannot match annotated errors.
func IsKind(err, kind error) bool {
	k, ok := kind.(*zerr.Error)
	if !ok {
		return errors.Is(err, kind)
	}
	for ; err != nil; err = errors.Unwrap(err) {
		if z, ok := err.(*zerr.Error); ok && z.Message() == k.Message() {
			return true
		}
	}
	return false
}
