// Package resdir derives resource definitions from an Android res/ tree.
package resdir

import (
	"encoding/xml"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/rsym/internal/adapters/fs"
	"go.trai.ch/rsym/internal/core/domain"
	"go.trai.ch/rsym/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ResourceScanner = (*Scanner)(nil)

const (
	valuesDir   = "values"
	newIDPrefix = "@+id/"
)

// fileTypes are the directory types whose files each define one resource.
var fileTypes = map[domain.ResourceType]bool{
	domain.TypeAnim:         true,
	domain.TypeAnimator:     true,
	domain.TypeColor:        true,
	domain.TypeDrawable:     true,
	domain.TypeFont:         true,
	domain.TypeInterpolator: true,
	domain.TypeLayout:       true,
	domain.TypeMenu:         true,
	domain.TypeMipmap:       true,
	domain.TypeRaw:          true,
	domain.TypeTransition:   true,
	domain.TypeXML:          true,
}

// valueTypes maps element names inside <resources> to the type they declare.
var valueTypes = map[string]domain.ResourceType{
	"array":             domain.TypeArray,
	"attr":              domain.TypeAttr,
	"bool":              domain.TypeBool,
	"color":             domain.TypeColor,
	"declare-styleable": domain.TypeStyleable,
	"dimen":             domain.TypeDimen,
	"drawable":          domain.TypeDrawable,
	"fraction":          domain.TypeFraction,
	"id":                domain.TypeID,
	"integer":           domain.TypeInteger,
	"integer-array":     domain.TypeArray,
	"plurals":           domain.TypePlurals,
	"string":            domain.TypeString,
	"string-array":      domain.TypeArray,
	"style":             domain.TypeStyle,
}

// Scanner implements ports.ResourceScanner over the local file system.
type Scanner struct {
	walker *fs.Walker
}

// NewScanner creates a new Scanner.
func NewScanner(walker *fs.Walker) *Scanner {
	return &Scanner{walker: walker}
}

// Scan walks dir and returns one definition per (type, name). Qualified
// directories such as layout-land or values-de collapse onto their base type.
// A resource declared twice under the same qualifiers fails with
// ErrDuplicateDefinition. Definitions are returned in first-seen order; the
// walk is lexical.
func (s *Scanner) Scan(dir string) ([]domain.Definition, error) {
	info, err := os.Stat(dir)
	if err != nil {
		err = zerr.Wrap(err, domain.ErrResourceScanFailed.Error())
		return nil, zerr.With(err, "path", dir)
	}
	if !info.IsDir() {
		return nil, zerr.With(domain.ErrResourceScanFailed, "path", dir)
	}

	c := newCollector()
	for path, err := range s.walker.WalkFiles(dir, []string{".*"}) {
		if err != nil {
			err = zerr.Wrap(err, domain.ErrResourceScanFailed.Error())
			return nil, zerr.With(err, "root", dir)
		}
		if err := s.scanFile(c, dir, path); err != nil {
			return nil, zerr.With(err, "path", path)
		}
	}
	return c.defs, nil
}

func (s *Scanner) scanFile(c *collector, root, path string) error {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return zerr.Wrap(err, domain.ErrResourceScanFailed.Error())
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	// Only res/<type>[-qualifiers]/<file> is meaningful.
	if len(parts) != 2 {
		return nil
	}

	base, qualifiers, _ := strings.Cut(parts[0], "-")
	c.qualifiers = qualifiers
	file := parts[1]
	isXML := strings.EqualFold(filepath.Ext(file), ".xml")

	if base == valuesDir {
		if !isXML {
			return nil
		}
		return s.scanXML(c, path, true)
	}

	typ, err := domain.ParseResourceType(base)
	if err != nil || !fileTypes[typ] {
		return nil
	}
	stem, _, _ := strings.Cut(file, ".")
	if err := c.declare(typ, stem, path); err != nil {
		return err
	}

	if isXML && typ != domain.TypeRaw {
		return s.scanXML(c, path, false)
	}
	return nil
}

// scanXML collects @+id declarations from any XML file and, for values
// files, the resources declared by the children of <resources>.
func (s *Scanner) scanXML(c *collector, path string, values bool) error {
	// #nosec G304 -- path is yielded by the walker below the scanned dir
	f, err := os.Open(path)
	if err != nil {
		return zerr.Wrap(err, domain.ErrResourceScanFailed.Error())
	}
	defer f.Close() //nolint:errcheck // Read-only file

	dec := xml.NewDecoder(f)
	var stack []string
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return zerr.Wrap(err, domain.ErrResourceScanFailed.Error())
		}

		switch el := tok.(type) {
		case xml.StartElement:
			for _, attr := range el.Attr {
				if name, ok := strings.CutPrefix(attr.Value, newIDPrefix); ok {
					c.reference(domain.TypeID, name, path)
				}
			}
			if values {
				if err := c.addValue(stack, el, path); err != nil {
					return err
				}
			}
			stack = append(stack, el.Name.Local)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}
}

type declaration struct {
	qualifiers string
	sym        domain.Symbol
}

// collector gathers definitions across the tree. Declarations are unique per
// qualifier set; @+id names and styleable attr references may repeat freely.
type collector struct {
	qualifiers string
	seen       map[domain.Symbol]struct{}
	declared   map[declaration]string
	defs       []domain.Definition
}

func newCollector() *collector {
	return &collector{
		seen:     make(map[domain.Symbol]struct{}),
		declared: make(map[declaration]string),
	}
}

// declare records a resource defined by a file or a values element. Ids may
// be declared any number of times.
func (c *collector) declare(typ domain.ResourceType, name, source string) error {
	name = domain.FlattenResourceName(name)
	if name == "" {
		return nil
	}
	if typ == domain.TypeID {
		c.reference(typ, name, source)
		return nil
	}
	key := declaration{qualifiers: c.qualifiers, sym: domain.NewSymbol(typ, name)}
	if first, ok := c.declared[key]; ok {
		err := zerr.With(domain.ErrDuplicateDefinition, "type", typ.String())
		err = zerr.With(err, "name", name)
		err = zerr.With(err, "first_occurrence", first)
		return zerr.With(err, "duplicate_at", source)
	}
	c.declared[key] = source
	c.reference(typ, name, source)
	return nil
}

// reference records a resource without claiming it for the current qualifiers.
func (c *collector) reference(typ domain.ResourceType, name, source string) {
	name = domain.FlattenResourceName(name)
	if name == "" {
		return
	}
	sym := domain.NewSymbol(typ, name)
	if _, ok := c.seen[sym]; ok {
		return
	}
	c.seen[sym] = struct{}{}
	c.defs = append(c.defs, domain.Definition{Type: typ, Name: name, Source: source})
}

func (c *collector) addValue(stack []string, el xml.StartElement, source string) error {
	name := attrValue(el, "name")
	switch {
	case len(stack) == 1 && stack[0] == "resources":
		typ, ok := valueTypes[el.Name.Local]
		if el.Name.Local == "item" {
			typ, ok = itemType(el)
		}
		if ok {
			return c.declare(typ, name, source)
		}
	case len(stack) == 2 && stack[1] == "declare-styleable" && el.Name.Local == "attr":
		// Framework attrs referenced by a styleable are not ours to define.
		if !strings.HasPrefix(name, "android:") {
			c.reference(domain.TypeAttr, name, source)
		}
	}
	return nil
}

func itemType(el xml.StartElement) (domain.ResourceType, bool) {
	typ, err := domain.ParseResourceType(attrValue(el, "type"))
	if err != nil {
		return domain.TypeUnknown, false
	}
	return typ, true
}

func attrValue(el xml.StartElement, local string) string {
	for _, a := range el.Attr {
		if a.Name.Local == local && a.Name.Space == "" {
			return a.Value
		}
	}
	return ""
}
