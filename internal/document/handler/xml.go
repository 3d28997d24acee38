package handler

import (
	"encoding/xml"
	"strconv"
	"time"

	"github.com/padkit/helipad/internal/document"
)

// Response bodies follow the Rails XML serializer: dashed element names,
// type attributes on non-string values and nil="true" for empty values.

type typedValue struct {
	Type  string `xml:"type,attr"`
	Value string `xml:",chardata"`
}

type nullable struct {
	Nil   string `xml:"nil,attr,omitempty"`
	Value string `xml:",chardata"`
}

type tagXML struct {
	Name string `xml:"name"`
}

type tagsXML struct {
	Type string   `xml:"type,attr"`
	Tags []tagXML `xml:"tag"`
}

type documentXML struct {
	XMLName   xml.Name    `xml:"document"`
	Approved  *typedValue `xml:"approved,omitempty"`
	CreatedOn *typedValue `xml:"created-on,omitempty"`
	Dangerous *typedValue `xml:"dangerous,omitempty"`
	ID        typedValue  `xml:"id"`
	Share     *nullable   `xml:"share,omitempty"`
	Source    *string     `xml:"source,omitempty"`
	Title     string      `xml:"title"`
	UpdatedOn *typedValue `xml:"updated-on,omitempty"`
	Tags      *tagsXML    `xml:"tags,omitempty"`
}

type documentsXML struct {
	XMLName   xml.Name      `xml:"documents"`
	Type      string        `xml:"type,attr"`
	Documents []documentXML `xml:"document"`
}

type responseXML struct {
	XMLName xml.Name    `xml:"response"`
	Saved   *string     `xml:"saved,omitempty"`
	Deleted *string     `xml:"deleted,omitempty"`
	ID      *typedValue `xml:"id,omitempty"`
}

type htmlXML struct {
	XMLName xml.Name `xml:"html"`
	Body    string   `xml:",chardata"`
}

func boolValue(b bool) *typedValue {
	return &typedValue{Type: "boolean", Value: strconv.FormatBool(b)}
}

func timeValue(t time.Time) *typedValue {
	return &typedValue{Type: "datetime", Value: t.UTC().Format(time.RFC3339)}
}

func intValue(i int) typedValue {
	return typedValue{Type: "integer", Value: strconv.Itoa(i)}
}

// fullDocument renders every field.
func fullDocument(d *document.Document) documentXML {
	share := &nullable{Value: d.Share}
	if d.Share == "" {
		share.Nil = "true"
	}
	source := d.Source
	tags := &tagsXML{Type: "array", Tags: make([]tagXML, 0, len(d.Tags))}
	for _, t := range d.Tags {
		tags.Tags = append(tags.Tags, tagXML{Name: t})
	}
	return documentXML{
		Approved:  boolValue(d.Approved),
		CreatedOn: timeValue(d.CreatedOn),
		Dangerous: boolValue(d.Dangerous),
		ID:        intValue(d.ID),
		Share:     share,
		Source:    &source,
		Title:     d.Title,
		UpdatedOn: timeValue(d.UpdatedOn),
		Tags:      tags,
	}
}

// titleOnly renders id and title.
func titleOnly(d *document.Document) documentXML {
	return documentXML{ID: intValue(d.ID), Title: d.Title}
}

func documentList(docs []*document.Document, render func(*document.Document) documentXML) documentsXML {
	out := documentsXML{Type: "array", Documents: make([]documentXML, 0, len(docs))}
	for _, d := range docs {
		out.Documents = append(out.Documents, render(d))
	}
	return out
}

func savedResponse(id int) responseXML {
	t := "true"
	v := intValue(id)
	return responseXML{Saved: &t, ID: &v}
}

func deletedResponse() responseXML {
	t := "true"
	return responseXML{Deleted: &t}
}
