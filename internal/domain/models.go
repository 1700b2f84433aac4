package domain

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// Document is the raw content of a referenced file together with its origin.
type Document struct {
	Ref    string
	Origin SourceOrigin
	Data   []byte
}

// Ext returns the lower-cased extension of the document reference.
func (d *Document) Ext() string {
	return RefExt(d.Ref)
}

// RefExt returns the lower-cased extension of the path component of ref.
// Query strings and fragments of URLs are ignored.
func RefExt(ref string) string {
	if u, err := url.Parse(ref); err == nil && u.Scheme != "" && u.Host != "" {
		return strings.ToLower(path.Ext(u.Path))
	}
	return strings.ToLower(filepath.Ext(ref))
}

// PDFText holds both text variants produced for a PDF.
// Layout is only populated for documents read from the local filesystem.
type PDFText struct {
	Wrapped string
	Layout  string
}

// Variants returns the non-empty text variants, wrapped text first.
func (p *PDFText) Variants() []string {
	var out []string
	if strings.TrimSpace(p.Wrapped) != "" {
		out = append(out, p.Wrapped)
	}
	if strings.TrimSpace(p.Layout) != "" {
		out = append(out, p.Layout)
	}
	return out
}

// POMatch is a purchase-order or invoice number found in text.
type POMatch struct {
	Number  string
	Span    string
	Labeled bool
}

// POResult is the outcome of a PO number lookup over a document.
// InvoiceNo is nil when text was extracted but no number matched.
type POResult struct {
	InvoiceNo *string
	Match     *POMatch
}

// Found reports whether a PO number was matched.
func (r *POResult) Found() bool {
	return r != nil && r.InvoiceNo != nil
}
