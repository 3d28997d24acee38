package document

import (
	"encoding/xml"
	"strings"
	"time"
)

// Document is the padserver's stored note. Owner is the email of the account
// that created it; every lookup is scoped to it.
type Document struct {
	ID        int       `bson:"id"`
	Owner     string    `bson:"owner"`
	Title     string    `bson:"title"`
	Source    string    `bson:"source"`
	Tags      []string  `bson:"tags"`
	Share     string    `bson:"share,omitempty"`
	Approved  bool      `bson:"approved"`
	Dangerous bool      `bson:"dangerous"`
	CreatedOn time.Time `bson:"createdOn"`
	UpdatedOn time.Time `bson:"updatedOn"`
}

// Patch carries the fields of an update; nil means unchanged.
type Patch struct {
	Title  *string
	Source *string
	Tags   *string
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Title == nil && p.Source == nil && p.Tags == nil
}

// SplitTags turns the wire's space-separated tag string into tag names,
// dropping blanks and keeping order.
func SplitTags(s string) []string {
	return strings.Fields(s)
}

// Envelope is an incoming <request> body.
type Envelope struct {
	XMLName        xml.Name `xml:"request"`
	Authentication struct {
		Email    string `xml:"email"`
		Password string `xml:"password"`
	} `xml:"authentication"`
	Document *struct {
		Title  *string `xml:"title"`
		Source *string `xml:"source"`
		Tags   *string `xml:"tags"`
	} `xml:"document"`
	Search *string `xml:"search"`
}

// Patch extracts the document block, if any.
func (e *Envelope) Patch() Patch {
	if e.Document == nil {
		return Patch{}
	}
	return Patch{Title: e.Document.Title, Source: e.Document.Source, Tags: e.Document.Tags}
}

// ParseEnvelope decodes a request body.
func ParseEnvelope(body []byte) (*Envelope, error) {
	var env Envelope
	if err := xml.Unmarshal(body, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// Apply writes the patch onto d and stamps the update time.
func (d *Document) Apply(p Patch, now time.Time) {
	if p.Title != nil {
		d.Title = *p.Title
	}
	if p.Source != nil {
		d.Source = *p.Source
	}
	if p.Tags != nil {
		d.Tags = SplitTags(*p.Tags)
	}
	d.UpdatedOn = now
}

// HasTag reports whether d carries tag exactly.
func (d *Document) HasTag(tag string) bool {
	for _, t := range d.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Matches reports whether term occurs in the title or source, ignoring case.
func (d *Document) Matches(term string) bool {
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(d.Title), term) ||
		strings.Contains(strings.ToLower(d.Source), term)
}
