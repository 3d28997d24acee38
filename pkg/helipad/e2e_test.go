package helipad_test

import (
	"context"
	"testing"

	"github.com/padkit/helipad/internal/padtest"
	"github.com/padkit/helipad/pkg/helipad"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) *helipad.Client {
	t.Helper()
	srv := padtest.NewServer(t)
	c, err := helipad.New(padtest.Email, padtest.Password, helipad.WithBaseURL(srv.URL))
	require.NoError(t, err)
	return c
}

func create(t *testing.T, c *helipad.Client, f helipad.Fields) int {
	t.Helper()
	res, err := c.Create(context.Background(), f)
	require.NoError(t, err)
	require.True(t, res.IsSaved())
	require.NotNil(t, res.DocID)
	return *res.DocID
}

func TestCreateThenGet(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()

	id := create(t, c, helipad.Fields{
		helipad.FieldTitle:  "Delicious Chocolate Cake",
		helipad.FieldTags:   "recipe dessert",
		helipad.FieldSource: "Mix <flour> & cocoa.",
	})

	doc, err := c.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, doc.ID)
	assert.Equal(t, "Delicious Chocolate Cake", doc.TitleOr(""))
	assert.Equal(t, "Mix <flour> & cocoa.", doc.SourceOr(""))
	assert.Equal(t, []string{"recipe", "dessert"}, doc.Tags)
	assert.Nil(t, doc.ShareURL)
	require.NotNil(t, doc.CreatedOn)
	require.NotNil(t, doc.UpdatedOn)
	require.NotNil(t, doc.Approved)
}

func TestDestroyThenGetIsNotFound(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()
	id := create(t, c, helipad.Fields{helipad.FieldTitle: "Temporary"})

	_, err := c.Get(ctx, id)
	require.NoError(t, err)

	res, err := c.Destroy(ctx, id)
	require.NoError(t, err)
	assert.True(t, res.IsDeleted())

	_, err = c.Get(ctx, id)
	require.Error(t, err)
	assert.True(t, helipad.IsNotFound(err))
}

func TestUpdateTitleKeepsOtherFields(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()
	id := create(t, c, helipad.Fields{
		helipad.FieldTitle:  "Before",
		helipad.FieldTags:   "work urgent",
		helipad.FieldSource: "body text",
	})
	before, err := c.Get(ctx, id)
	require.NoError(t, err)

	res, err := c.Update(ctx, id, helipad.Fields{helipad.FieldTitle: "X"})
	require.NoError(t, err)
	assert.True(t, res.IsSaved())

	after, err := c.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "X", after.TitleOr(""))
	assert.Equal(t, before.SourceOr(""), after.SourceOr(""))
	assert.Equal(t, before.Tags, after.Tags)
	assert.Equal(t, before.CreatedOn, after.CreatedOn)
}

func TestUpdateMissingDocumentIsNotFound(t *testing.T) {
	c := newClient(t)
	_, err := c.Update(context.Background(), 42, helipad.Fields{helipad.FieldTitle: "X"})
	assert.True(t, helipad.IsNotFound(err))
}

func TestFind(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()
	create(t, c, helipad.Fields{helipad.FieldTitle: "Cake", helipad.FieldTags: "recipe dessert chocolate", helipad.FieldSource: "cocoa"})
	create(t, c, helipad.Fields{helipad.FieldTitle: "Taxes", helipad.FieldTags: "work"})

	docs, err := c.Find(ctx, "nothing like this")
	require.NoError(t, err)
	assert.Nil(t, docs)

	docs, err = c.Find(ctx, "cocoa")
	require.NoError(t, err)
	require.NotEmpty(t, docs)
	assert.Equal(t, []string{"recipe", "dessert", "chocolate"}, docs[0].Tags)

	docs, err = c.Find(ctx, helipad.ByTag, "dessert")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Cake", docs[0].TitleOr(""))
	assert.Equal(t, []string{"recipe", "dessert", "chocolate"}, docs[0].Tags)

	docs, err = c.Find(ctx, helipad.ByTag, "missing")
	require.NoError(t, err)
	assert.Nil(t, docs)
}

func TestFindByTagWithSlash(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()
	create(t, c, helipad.Fields{helipad.FieldTitle: "Paths", helipad.FieldTags: "a/b plain"})

	docs, err := c.Find(ctx, helipad.ByTag, "a/b")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Paths", docs[0].TitleOr(""))
	assert.Equal(t, []string{"a/b", "plain"}, docs[0].Tags)

	docs, err = c.FindByTag(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, docs)
}

func TestGetAllAndTitles(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()

	all, err := c.GetAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)

	create(t, c, helipad.Fields{helipad.FieldTitle: "One", helipad.FieldSource: "first"})
	create(t, c, helipad.Fields{helipad.FieldTitle: "Two", helipad.FieldSource: "second"})

	all, err = c.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "first", all[0].SourceOr(""))

	titles, err := c.GetTitles(ctx)
	require.NoError(t, err)
	require.Len(t, titles, 2)
	for _, d := range titles {
		assert.Nil(t, d.Source)
		assert.False(t, d.Has("source"))
		assert.NotNil(t, d.Title)
	}
}

func TestGetHTML(t *testing.T) {
	c := newClient(t)
	id := create(t, c, helipad.Fields{helipad.FieldTitle: "Notes", helipad.FieldSource: "# Heading\n\n*emphasis*"})

	html, err := c.GetHTML(context.Background(), id)
	require.NoError(t, err)
	assert.Contains(t, html, "<h1>Heading</h1>")
	assert.Contains(t, html, "<em>emphasis</em>")
}

func TestWrongPasswordIsTransportError(t *testing.T) {
	srv := padtest.NewServer(t)
	c, err := helipad.New(padtest.Email, "wrong", helipad.WithBaseURL(srv.URL))
	require.NoError(t, err)

	_, err = c.GetAll(context.Background())
	var te *helipad.TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, 401, te.StatusCode)
}
