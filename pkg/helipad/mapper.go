package helipad

import (
	"encoding/xml"
	"errors"
	"io"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// element is one node of a parsed response. text is the character data
// directly under the element; raw is the element's own XML.
type element struct {
	name     string
	attrs    map[string]string
	text     string
	children []*element
	raw      string
}

func (e *element) isNil() bool { return e.attrs["nil"] == "true" }

func (e *element) trimmed() string { return strings.TrimSpace(e.text) }

// parseTree decodes body into a single-rooted element tree.
func parseTree(op, body string) (*element, error) {
	if strings.TrimSpace(body) == "" {
		return nil, &ParseError{Op: op, Msg: "empty response body"}
	}

	dec := xml.NewDecoder(strings.NewReader(body))
	var (
		root   *element
		stack  []*element
		starts []int64
	)
	for {
		off := dec.InputOffset()
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &ParseError{Op: op, Msg: "malformed XML", Err: err}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &element{name: t.Name.Local, attrs: make(map[string]string, len(t.Attr))}
			for _, a := range t.Attr {
				el.attrs[a.Name.Local] = a.Value
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, &ParseError{Op: op, Msg: "more than one root element"}
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, el)
			}
			stack = append(stack, el)
			starts = append(starts, off)
		case xml.EndElement:
			n := len(stack) - 1
			stack[n].raw = body[starts[n]:dec.InputOffset()]
			stack, starts = stack[:n], starts[:n]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text += string(t)
			} else if strings.TrimSpace(string(t)) != "" {
				return nil, &ParseError{Op: op, Msg: "text outside the root element"}
			}
		}
	}
	if root == nil {
		return nil, &ParseError{Op: op, Msg: "no root element"}
	}
	return root, nil
}

// mapper turns response trees into Documents and Results. baseURL is used to
// expand share tokens into public links.
type mapper struct {
	baseURL string
}

func (m mapper) parseDocument(op, body string) (*Document, error) {
	root, err := parseTree(op, body)
	if err != nil {
		return nil, err
	}
	if root.name != "document" {
		return nil, &ParseError{Op: op, Msg: "expected <document> root, got <" + root.name + ">"}
	}
	return m.document(op, root)
}

// parseDocuments returns every document element in the response, however it
// is wrapped. The slice is empty, not nil, when there are none.
func (m mapper) parseDocuments(op, body string) ([]*Document, error) {
	root, err := parseTree(op, body)
	if err != nil {
		return nil, err
	}
	if root.name == "errors" {
		return nil, &ParseError{Op: op, Msg: "service returned errors: " + errorMessages(root)}
	}
	docs := []*Document{}
	var walk func(*element) error
	walk = func(el *element) error {
		if el.name == "document" {
			d, err := m.document(op, el)
			if err != nil {
				return err
			}
			docs = append(docs, d)
			return nil
		}
		for _, c := range el.children {
			if err := walk(c); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(root); err != nil {
		return nil, err
	}
	return docs, nil
}

func (m mapper) document(op string, el *element) (*Document, error) {
	d := &Document{Raw: el.raw, present: map[string]bool{}}
	haveID := false

	for _, c := range el.children {
		d.present[c.name] = true
		if c.isNil() && c.name != "share" {
			continue
		}
		switch c.name {
		case "id":
			id, err := strconv.Atoi(c.trimmed())
			if err != nil {
				return nil, &ParseError{Op: op, Msg: "document id", Err: err}
			}
			d.ID = id
			haveID = true
		case "title":
			d.Title = strPtr(c.text)
		case "source":
			d.Source = strPtr(c.text)
		case "tags":
			d.Tags = tagNames(c)
		case "created-on":
			ts, err := parseTime(c.trimmed())
			if err != nil {
				return nil, &ParseError{Op: op, Msg: "created-on", Err: err}
			}
			d.CreatedOn = ts
		case "updated-on":
			ts, err := parseTime(c.trimmed())
			if err != nil {
				return nil, &ParseError{Op: op, Msg: "updated-on", Err: err}
			}
			d.UpdatedOn = ts
		case "share":
			d.ShareURL = m.shareURL(c)
		case "approved":
			d.Approved = boolPtr(c.trimmed() == "true")
		case "dangerous":
			d.Dangerous = boolPtr(c.trimmed() == "true")
		default:
			if d.Extra == nil {
				d.Extra = map[string]string{}
			}
			d.Extra[c.name] = c.text
		}
	}

	if !haveID {
		return nil, &ParseError{Op: op, Msg: "document without id"}
	}
	return d, nil
}

// tagNames collects tag/name text in document order.
func tagNames(tags *element) []string {
	out := []string{}
	for _, tag := range tags.children {
		if tag.name != "tag" {
			continue
		}
		for _, name := range tag.children {
			if name.name == "name" {
				out = append(out, name.text)
			}
		}
	}
	return out
}

func (m mapper) shareURL(el *element) *string {
	if el.isNil() {
		return nil
	}
	token := el.trimmed()
	if token == "" {
		return nil
	}
	if u, err := url.Parse(token); err == nil && u.IsAbs() {
		return &token
	}
	link := strings.TrimRight(m.baseURL, "/") + "/document/public/" + token
	return &link
}

// errorMessages joins the <error> texts of an <errors> body.
func errorMessages(root *element) string {
	msgs := make([]string, 0, len(root.children))
	for _, c := range root.children {
		if c.name == "error" {
			msgs = append(msgs, c.trimmed())
		}
	}
	if len(msgs) == 0 {
		return "(no message)"
	}
	return strings.Join(msgs, "; ")
}

// parseResult maps a <response> acknowledgement. Every descendant of the root
// is inspected; the root itself is not. Elements marked nil="true" are left
// unset.
func (m mapper) parseResult(op, body string) (*Result, error) {
	root, err := parseTree(op, body)
	if err != nil {
		return nil, err
	}
	if root.name != "response" {
		return nil, &ParseError{Op: op, Msg: "expected <response> root, got <" + root.name + ">"}
	}

	r := &Result{Raw: body}
	var walk func(*element) error
	walk = func(el *element) error {
		for _, c := range el.children {
			if c.isNil() {
				continue
			}
			switch c.name {
			case "saved":
				r.Saved = boolPtr(c.trimmed() == "true")
			case "deleted":
				r.Deleted = boolPtr(c.trimmed() == "true")
			case "id":
				id, err := strconv.Atoi(c.trimmed())
				if err != nil {
					return &ParseError{Op: op, Msg: "response id", Err: err}
				}
				r.DocID = &id
			default:
				if r.Extra == nil {
					r.Extra = map[string]string{}
				}
				r.Extra[c.name] = c.text
			}
			if err := walk(c); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(root); err != nil {
		return nil, err
	}
	return r, nil
}

// parseHTML returns the text directly under the <html> root, trimmed.
func (m mapper) parseHTML(op, body string) (string, error) {
	root, err := parseTree(op, body)
	if err != nil {
		return "", err
	}
	if root.name != "html" {
		return "", &ParseError{Op: op, Msg: "expected <html> root, got <" + root.name + ">"}
	}
	return root.trimmed(), nil
}

func parseTime(s string) (*time.Time, error) {
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }
