package wsdl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/beevik/etree"

	"github.com/suitegate/go-suitetalk/cache"
)

// Fetcher retrieves documents by URL.
type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Definition is a parsed service definition.
type Definition struct {
	// URL the definition was loaded from.
	URL string

	// ServiceAddress is the soap:address location of the service port,
	// i.e. the URL operations are POSTed to.
	ServiceAddress string

	// Operations maps operation names to their SOAPAction values.
	Operations map[string]string

	// Schemas lists the absolute URLs of imported schema documents.
	Schemas []string
}

// SOAPAction returns the action for an operation. SuiteTalk actions equal
// the operation name, so unknown operations fall back to the name itself.
func (d *Definition) SOAPAction(operation string) string {
	if action, ok := d.Operations[operation]; ok && action != "" {
		return action
	}
	return operation
}

// Loader fetches and parses service definitions, reading every document
// through an optional cache.
type Loader struct {
	fetcher Fetcher
	cache   cache.Cache
	logger  *slog.Logger
}

// NewLoader creates a loader. cache and logger may be nil.
func NewLoader(fetcher Fetcher, c cache.Cache, logger *slog.Logger) *Loader {
	return &Loader{
		fetcher: fetcher,
		cache:   c,
		logger:  logger,
	}
}

// Load fetches and parses the WSDL at rawURL.
func (l *Loader) Load(ctx context.Context, rawURL string) (*Definition, error) {
	content, err := l.fetch(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("wsdl: load %s: %w", rawURL, err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(content); err != nil {
		return nil, fmt.Errorf("wsdl: parse %s: %w", rawURL, err)
	}

	def := &Definition{
		URL:        rawURL,
		Operations: make(map[string]string),
	}

	if address := doc.FindElement("//service/port/address"); address != nil {
		def.ServiceAddress = address.SelectAttrValue("location", "")
	}

	for _, op := range doc.FindElements("//binding/operation") {
		name := op.SelectAttrValue("name", "")
		if name == "" {
			continue
		}
		action := name
		if soapOp := op.SelectElement("operation"); soapOp != nil {
			if a := soapOp.SelectAttrValue("soapAction", ""); a != "" {
				action = a
			}
		}
		def.Operations[name] = action
	}

	def.Schemas = schemaImports(doc, rawURL)

	return def, nil
}

// Prefetch warms the cache with every schema the definition imports.
// Returns the first fetch error; the cache keeps whatever loaded before
// the failure.
func (l *Loader) Prefetch(ctx context.Context, def *Definition) error {
	for _, schemaURL := range def.Schemas {
		if _, err := l.fetch(ctx, schemaURL); err != nil {
			return fmt.Errorf("wsdl: prefetch %s: %w", schemaURL, err)
		}
	}
	return nil
}

// fetch reads a document through the cache.
func (l *Loader) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if l.cache != nil {
		content, err := l.cache.Get(ctx, rawURL)
		if err == nil {
			if l.logger != nil {
				l.logger.DebugContext(ctx, "document cache hit", "url", rawURL)
			}
			return content, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) && l.logger != nil {
			l.logger.WarnContext(ctx, "document cache read failed", "url", rawURL, "error", err)
		}
	}

	content, err := l.fetcher.Get(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	if l.cache != nil {
		if err := l.cache.Put(ctx, rawURL, content); err != nil && l.logger != nil {
			l.logger.WarnContext(ctx, "document cache write failed", "url", rawURL, "error", err)
		}
	}
	return content, nil
}

// schemaImports collects import and include locations from a definition
// document, resolved against the document's own URL.
func schemaImports(doc *etree.Document, docURL string) []string {
	base, baseErr := url.Parse(docURL)

	refs := doc.FindElements("//import")
	refs = append(refs, doc.FindElements("//include")...)

	var schemas []string
	seen := make(map[string]bool)
	for _, imp := range refs {
		location := imp.SelectAttrValue("schemaLocation", "")
		if location == "" {
			location = imp.SelectAttrValue("location", "")
		}
		if location == "" {
			continue
		}
		if baseErr == nil {
			if ref, err := base.Parse(location); err == nil {
				location = ref.String()
			}
		}
		if !seen[location] {
			seen[location] = true
			schemas = append(schemas, location)
		}
	}
	return schemas
}
