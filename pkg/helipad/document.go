package helipad

import "time"

// Document is a note as returned by the service. Every field except ID is
// optional: list endpoints omit source and tags, so a nil pointer or nil
// slice means the element was not in the response.
type Document struct {
	ID        int
	Title     *string
	Source    *string
	Tags      []string
	CreatedOn *time.Time
	UpdatedOn *time.Time
	// ShareURL is nil when the document is not shared.
	ShareURL  *string
	Approved  *bool
	Dangerous *bool

	// Extra holds elements without a dedicated field, keyed by element name.
	Extra map[string]string
	// Raw is the XML fragment the document was parsed from.
	Raw string

	present map[string]bool
}

// Has reports whether the response carried the named element, using the
// wire name (e.g. "created-on").
func (d *Document) Has(element string) bool {
	return d.present[element]
}

// TitleOr returns the title, or def when the response had none.
func (d *Document) TitleOr(def string) string {
	if d.Title == nil {
		return def
	}
	return *d.Title
}

// SourceOr returns the source, or def when the response had none.
func (d *Document) SourceOr(def string) string {
	if d.Source == nil {
		return def
	}
	return *d.Source
}

// Result is the acknowledgement returned by Create, Update and Destroy.
// Create and Update fill Saved and DocID; Destroy fills Deleted.
type Result struct {
	Saved   *bool
	Deleted *bool
	DocID   *int

	Extra map[string]string
	Raw   string
}

// IsSaved reports whether the service acknowledged a save.
func (r *Result) IsSaved() bool { return r.Saved != nil && *r.Saved }

// IsDeleted reports whether the service acknowledged a delete.
func (r *Result) IsDeleted() bool { return r.Deleted != nil && *r.Deleted }
