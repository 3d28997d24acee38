// Package helipad is a client for the Helipad note pad XML API.
//
// A Client holds the account credential and sends it with every request:
//
//	hp, err := helipad.New("me@example.com", "secret")
//	doc, err := hp.Get(ctx, 3)
//	fmt.Println(doc.SourceOr(""))
//
// Create, Update and Destroy return a *Result acknowledgement; Get returns a
// *Document; GetAll, GetTitles and Find return slices of documents.
//
//	res, err := hp.Create(ctx, helipad.Fields{
//		helipad.FieldTitle:  "Delicious Chocolate Cake",
//		helipad.FieldTags:   "recipe dessert",
//		helipad.FieldSource: recipe,
//	})
//	if err == nil && res.IsSaved() {
//		fmt.Println("recipe saved as", *res.DocID)
//	}
//
//	docs, err := hp.Find(ctx, helipad.ByTag, "work")
//
// Every call is a single synchronous POST. The client does not retry, cache or
// rate limit, and is safe for concurrent use.
package helipad

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/padkit/helipad/pkg/logger"
	"github.com/padkit/helipad/pkg/metrics"
)

// Client talks to one Helipad account. It is immutable after New.
type Client struct {
	cred      Credential
	transport Transport
	mapper    mapper
}

type options struct {
	baseURL    string
	httpClient *http.Client
	transport  Transport
}

// Option configures a Client.
type Option func(*options)

// WithBaseURL points the client at another origin, e.g. a local stand-in
// server.
func WithBaseURL(u string) Option {
	return func(o *options) { o.baseURL = u }
}

// WithHTTPClient sends requests through hc instead of the default client.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

// WithTransport replaces the HTTP transport entirely.
func WithTransport(t Transport) Option {
	return func(o *options) { o.transport = t }
}

// New returns a client for the given account. A missing email or password is
// a *ValidationError.
func New(email, password string, opts ...Option) (*Client, error) {
	cred := Credential{Email: email, Password: password}
	if err := cred.Validate(); err != nil {
		return nil, &ValidationError{Op: "new", Msg: "invalid credential", Err: err}
	}

	o := options{baseURL: DefaultBaseURL}
	for _, opt := range opts {
		opt(&o)
	}

	u, err := url.Parse(o.baseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, &ValidationError{Op: "new", Msg: fmt.Sprintf("invalid base URL %q", o.baseURL), Err: err}
	}

	t := o.transport
	if t == nil {
		t = NewHTTPTransport(o.baseURL, o.httpClient)
	}

	return &Client{
		cred:      cred,
		transport: t,
		mapper:    mapper{baseURL: o.baseURL},
	}, nil
}

// Email returns the account the client authenticates as.
func (c *Client) Email() string { return c.cred.Email }

// post sends one request and records its outcome.
func (c *Client) post(ctx context.Context, op, path, body string) (string, error) {
	start := time.Now()
	logger.Debugf("helipad: %s POST /%s", op, path)
	raw, err := c.transport.Send(ctx, path, body)
	metrics.ObserveClientRequest(op, outcome(err), time.Since(start))
	return raw, err
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	var te *TransportError
	if errors.As(err, &te) && te.StatusCode != 0 {
		return "http_error"
	}
	return "network_error"
}

func checkID(op string, id int) error {
	if err := validation.Validate(id, validation.Required, validation.Min(1)); err != nil {
		return &ValidationError{Op: op, Msg: fmt.Sprintf("invalid document id %d", id), Err: err}
	}
	return nil
}

// Create stores a new document. fields must include a non-empty title.
func (c *Client) Create(ctx context.Context, fields Fields) (*Result, error) {
	const op = "create"
	if err := checkFields(op, fields); err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, &ValidationError{Op: op, Msg: "no document options specified"}
	}
	if err := validation.Validate(fields[FieldTitle], validation.Required); err != nil {
		return nil, &ValidationError{Op: op, Msg: "document must have a title", Err: err}
	}

	body, err := buildRequest(c.cred, fields)
	if err != nil {
		return nil, err
	}
	raw, err := c.post(ctx, op, "document/create", body)
	if err != nil {
		return nil, err
	}
	return c.mapper.parseResult(op, raw)
}

// Get fetches one document with all its fields.
func (c *Client) Get(ctx context.Context, id int) (*Document, error) {
	const op = "get"
	if err := checkID(op, id); err != nil {
		return nil, err
	}
	body, err := buildRequest(c.cred, nil)
	if err != nil {
		return nil, err
	}
	raw, err := c.post(ctx, op, fmt.Sprintf("document/%d/get", id), body)
	if err != nil {
		return nil, err
	}
	return c.mapper.parseDocument(op, raw)
}

// GetAll fetches every document in the account. The slice is empty, not nil,
// when the account has none.
func (c *Client) GetAll(ctx context.Context) ([]*Document, error) {
	const op = "get all"
	body, err := buildRequest(c.cred, nil)
	if err != nil {
		return nil, err
	}
	raw, err := c.post(ctx, op, "", body)
	if err != nil {
		return nil, err
	}
	return c.mapper.parseDocuments(op, raw)
}

// GetTitles lists documents with only their id and title populated. Source
// and tags are dropped even if the service sends them.
func (c *Client) GetTitles(ctx context.Context) ([]*Document, error) {
	const op = "get titles"
	body, err := buildRequest(c.cred, nil)
	if err != nil {
		return nil, err
	}
	raw, err := c.post(ctx, op, "documents/titles", body)
	if err != nil {
		return nil, err
	}
	docs, err := c.mapper.parseDocuments(op, raw)
	if err != nil {
		return nil, err
	}
	for _, d := range docs {
		d.Source, d.Tags = nil, nil
		delete(d.present, "source")
		delete(d.present, "tags")
	}
	return docs, nil
}

// GetHTML returns the document body rendered as HTML.
func (c *Client) GetHTML(ctx context.Context, id int) (string, error) {
	const op = "get html"
	if err := checkID(op, id); err != nil {
		return "", err
	}
	body, err := buildRequest(c.cred, nil)
	if err != nil {
		return "", err
	}
	raw, err := c.post(ctx, op, fmt.Sprintf("document/%d/format/html", id), body)
	if err != nil {
		return "", err
	}
	return c.mapper.parseHTML(op, raw)
}

// Update changes the given fields of a document. At least one of title, tags
// or source is required.
func (c *Client) Update(ctx context.Context, id int, fields Fields) (*Result, error) {
	const op = "update"
	if err := checkID(op, id); err != nil {
		return nil, err
	}
	if err := checkFields(op, fields); err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, &ValidationError{Op: op, Msg: "no options specified"}
	}

	body, err := buildRequest(c.cred, fields)
	if err != nil {
		return nil, err
	}
	raw, err := c.post(ctx, op, fmt.Sprintf("document/%d/update", id), body)
	if err != nil {
		return nil, err
	}
	return c.mapper.parseResult(op, raw)
}

// Destroy deletes a document.
func (c *Client) Destroy(ctx context.Context, id int) (*Result, error) {
	const op = "destroy"
	if err := checkID(op, id); err != nil {
		return nil, err
	}
	body, err := buildRequest(c.cred, nil)
	if err != nil {
		return nil, err
	}
	raw, err := c.post(ctx, op, fmt.Sprintf("document/%d/destroy", id), body)
	if err != nil {
		return nil, err
	}
	return c.mapper.parseResult(op, raw)
}
