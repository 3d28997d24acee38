package helipad

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCred = Credential{Email: "me@example.com", Password: "secret"}

func TestBuildRequestAuthOnly(t *testing.T) {
	body, err := buildRequest(testCred, nil)
	require.NoError(t, err)
	assert.Equal(t,
		"<request><authentication><email>me@example.com</email><password>secret</password></authentication></request>",
		body)
}

func TestBuildRequestEscapesValues(t *testing.T) {
	cred := Credential{Email: "a&b@example.com", Password: "<pw>"}
	body, err := buildRequest(cred, Fields{FieldTitle: `Fish & "Chips"`, FieldSource: "1 < 2 > 0"})
	require.NoError(t, err)

	assert.Contains(t, body, "<email>a&amp;b@example.com</email>")
	assert.Contains(t, body, "<password>&lt;pw&gt;</password>")
	assert.Contains(t, body, "<title>Fish &amp; &#34;Chips&#34;</title>")
	assert.Contains(t, body, "<source>1 &lt; 2 &gt; 0</source>")
}

func TestBuildRequestSingleDocumentBlock(t *testing.T) {
	body, err := buildRequest(testCred, Fields{FieldTitle: "t", FieldTags: "a b", FieldSource: "s"})
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(body, "<document>"))
	assert.Contains(t, body, "<document><title>t</title><source>s</source><tags>a b</tags></document>")
}

func TestBuildRequestKeepsEmptyValues(t *testing.T) {
	body, err := buildRequest(testCred, Fields{FieldTags: ""})
	require.NoError(t, err)
	assert.Contains(t, body, "<document><tags></tags></document>")
}

func TestBuildSearchRequest(t *testing.T) {
	body, err := buildSearchRequest(testCred, "cake & cream")
	require.NoError(t, err)
	assert.Contains(t, body, "<search>cake &amp; cream</search>")
	assert.NotContains(t, body, "<document>")
}

func TestCheckFieldsNamesUnknownKeys(t *testing.T) {
	require.NoError(t, checkFields("create", Fields{FieldTitle: "x", FieldTags: "", FieldSource: ""}))
	require.NoError(t, checkFields("create", nil))

	err := checkFields("update", Fields{FieldTitle: "x", "colour": "red", "body": "b"})
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "update", ve.Op)
	assert.Contains(t, ve.Error(), `"body"`)
	assert.Contains(t, ve.Error(), `"colour"`)

	err = checkFields("create", Fields{"": "x"})
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Error(), `""`)
}

func TestCredentialValidate(t *testing.T) {
	require.NoError(t, testCred.Validate())

	err := Credential{Email: "", Password: "x"}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email address not specified")

	err = Credential{Email: "x", Password: ""}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password not specified")
}
