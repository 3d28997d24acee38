package helipad

import (
	"encoding/xml"
	"fmt"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Document field keys accepted by Create and Update.
const (
	FieldTitle  = "title"
	FieldTags   = "tags"
	FieldSource = "source"
)

// Fields holds document values keyed by FieldTitle, FieldTags and FieldSource.
// Tags are a single space-separated string, as the service expects.
type Fields map[string]string

// Credential is the account email and password sent with every request.
type Credential struct {
	Email    string
	Password string
}

// Validate checks that both halves of the credential are set.
func (c Credential) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Email, validation.Required.Error("email address not specified")),
		validation.Field(&c.Password, validation.Required.Error("password not specified")),
	)
}

type authentication struct {
	Email    string `xml:"email"`
	Password string `xml:"password"`
}

type documentBlock struct {
	Title  *string `xml:"title,omitempty"`
	Source *string `xml:"source,omitempty"`
	Tags   *string `xml:"tags,omitempty"`
}

type requestEnvelope struct {
	XMLName        xml.Name       `xml:"request"`
	Authentication authentication `xml:"authentication"`
	Document       *documentBlock `xml:"document,omitempty"`
	Search         *string        `xml:"search,omitempty"`
}

var validFieldKeys = []interface{}{FieldTitle, FieldTags, FieldSource}

// checkFields rejects keys other than title, tags and source, naming every
// offending key.
func checkFields(op string, fields Fields) error {
	errs := validation.Errors{}
	for k := range fields {
		if k == "" {
			errs[k] = validation.ErrInInvalid
			continue
		}
		if err := validation.Validate(k, validation.In(validFieldKeys...)); err != nil {
			errs[k] = err
		}
	}
	if len(errs) == 0 {
		return nil
	}
	unknown := make([]string, 0, len(errs))
	for k := range errs {
		unknown = append(unknown, fmt.Sprintf("%q", k))
	}
	sort.Strings(unknown)
	return &ValidationError{
		Op:  op,
		Msg: "unknown key(s): " + strings.Join(unknown, ", "),
		Err: errs,
	}
}

func newEnvelope(cred Credential) requestEnvelope {
	return requestEnvelope{
		Authentication: authentication{Email: cred.Email, Password: cred.Password},
	}
}

// buildRequest serializes the credential and any supplied fields. The
// document block is only present when at least one field is set. Callers
// validate fields first.
func buildRequest(cred Credential, fields Fields) (string, error) {
	env := newEnvelope(cred)
	if len(fields) > 0 {
		block := &documentBlock{}
		if v, ok := fields[FieldTitle]; ok {
			block.Title = &v
		}
		if v, ok := fields[FieldSource]; ok {
			block.Source = &v
		}
		if v, ok := fields[FieldTags]; ok {
			block.Tags = &v
		}
		env.Document = block
	}
	return marshalEnvelope(env)
}

// buildSearchRequest serializes a text search for term.
func buildSearchRequest(cred Credential, term string) (string, error) {
	env := newEnvelope(cred)
	env.Search = &term
	return marshalEnvelope(env)
}

func marshalEnvelope(env requestEnvelope) (string, error) {
	b, err := xml.Marshal(env)
	if err != nil {
		return "", fmt.Errorf("helipad: encode request: %w", err)
	}
	return string(b), nil
}
