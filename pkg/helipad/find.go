package helipad

import (
	"context"
	"fmt"
	"net/url"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ByTag, given as the first argument to Find, switches it to a tag search.
const ByTag = ":tag"

// findArgs decodes Find's arguments into a search mode and term.
func findArgs(args []string) (byTag bool, term string, err error) {
	const op = "find"
	switch len(args) {
	case 0:
		return false, "", &ValidationError{Op: op, Msg: "no find arguments supplied"}
	case 1:
		if args[0] == ByTag {
			return false, "", &ValidationError{Op: op, Msg: "no tag supplied"}
		}
		return false, args[0], nil
	case 2:
		if args[0] != ByTag {
			return false, "", &ValidationError{Op: op, Msg: fmt.Sprintf("unknown find option %q supplied", args[0])}
		}
		return true, args[1], nil
	default:
		return false, "", &ValidationError{Op: op, Msg: fmt.Sprintf("too many find arguments (%d)", len(args))}
	}
}

// Find runs a text search, Find(ctx, term), or a tag search,
// Find(ctx, ByTag, tag). It returns nil when nothing matches.
func (c *Client) Find(ctx context.Context, args ...string) ([]*Document, error) {
	byTag, term, err := findArgs(args)
	if err != nil {
		return nil, err
	}
	if byTag {
		return c.FindByTag(ctx, term)
	}
	return c.Search(ctx, term)
}

// Search finds documents whose text matches term. It returns nil when nothing
// matches.
func (c *Client) Search(ctx context.Context, term string) ([]*Document, error) {
	const op = "search"
	if err := validation.Validate(term, validation.Required); err != nil {
		return nil, &ValidationError{Op: op, Msg: "no search term supplied", Err: err}
	}
	body, err := buildSearchRequest(c.cred, term)
	if err != nil {
		return nil, err
	}
	raw, err := c.post(ctx, op, "document/search", body)
	if err != nil {
		return nil, err
	}
	return c.matches(op, raw)
}

// FindByTag finds documents carrying tag. It returns nil when nothing
// matches.
func (c *Client) FindByTag(ctx context.Context, tag string) ([]*Document, error) {
	const op = "find by tag"
	if err := validation.Validate(tag, validation.Required); err != nil {
		return nil, &ValidationError{Op: op, Msg: "no tag supplied", Err: err}
	}
	body, err := buildRequest(c.cred, nil)
	if err != nil {
		return nil, err
	}
	raw, err := c.post(ctx, op, "document/tag/"+url.PathEscape(tag), body)
	if err != nil {
		return nil, err
	}
	return c.matches(op, raw)
}

// matches is parseDocuments with the search convention of nil for no hits.
func (c *Client) matches(op, raw string) ([]*Document, error) {
	docs, err := c.mapper.parseDocuments(op, raw)
	if err != nil || len(docs) == 0 {
		return nil, err
	}
	return docs, nil
}
