package service

import (
	"context"
	"errors"
	"strings"

	"github.com/padkit/helipad/internal/document"
	"github.com/padkit/helipad/internal/document/repository"
	"github.com/russross/blackfriday/v2"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrTitleRequired = errors.New("document must have a title")
	ErrEmptyPatch    = errors.New("no fields to update")
)

// Service defines the document operations used by the handler layer. Every
// call is scoped to the authenticated owner.
type Service interface {
	Create(ctx context.Context, owner string, p document.Patch) (int, error)
	Get(ctx context.Context, owner string, id int) (*document.Document, error)
	List(ctx context.Context, owner string) ([]*document.Document, error)
	Update(ctx context.Context, owner string, id int, p document.Patch) error
	Delete(ctx context.Context, owner string, id int) error
	Search(ctx context.Context, owner, term string) ([]*document.Document, error)
	ByTag(ctx context.Context, owner, tag string) ([]*document.Document, error)
	HTML(ctx context.Context, owner string, id int) (string, error)
}

// NewMemoryService returns a Service backed by the in-memory repository.
func NewMemoryService() Service {
	return New(repository.NewMemoryRepo())
}

// NewMongoService returns a Service backed by MongoDB.
// Caller is responsible for creating the client and passing the database in.
func NewMongoService(db *mongo.Database) Service {
	return New(repository.NewMongoRepo(db))
}

// New wraps any repository.
func New(repo repository.Repository) Service {
	return &documentService{repo: repo}
}

type documentService struct {
	repo repository.Repository
}

func notFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *documentService) Create(ctx context.Context, owner string, p document.Patch) (int, error) {
	if p.Title == nil || strings.TrimSpace(*p.Title) == "" {
		return 0, ErrTitleRequired
	}
	d := &document.Document{Owner: owner, Title: *p.Title, Tags: []string{}}
	if p.Source != nil {
		d.Source = *p.Source
	}
	if p.Tags != nil {
		d.Tags = document.SplitTags(*p.Tags)
	}
	return s.repo.Create(ctx, d)
}

func (s *documentService) Get(ctx context.Context, owner string, id int) (*document.Document, error) {
	d, err := s.repo.Get(ctx, owner, id)
	if err != nil {
		return nil, notFound(err)
	}
	return d, nil
}

func (s *documentService) List(ctx context.Context, owner string) ([]*document.Document, error) {
	return s.repo.List(ctx, owner)
}

func (s *documentService) Update(ctx context.Context, owner string, id int, p document.Patch) error {
	if p.Empty() {
		return ErrEmptyPatch
	}
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return ErrTitleRequired
	}
	return notFound(s.repo.Update(ctx, owner, id, p))
}

func (s *documentService) Delete(ctx context.Context, owner string, id int) error {
	return notFound(s.repo.Delete(ctx, owner, id))
}

func (s *documentService) Search(ctx context.Context, owner, term string) ([]*document.Document, error) {
	return s.repo.Search(ctx, owner, term)
}

func (s *documentService) ByTag(ctx context.Context, owner, tag string) ([]*document.Document, error) {
	return s.repo.ByTag(ctx, owner, tag)
}

// HTML renders the document source as Markdown.
func (s *documentService) HTML(ctx context.Context, owner string, id int) (string, error) {
	d, err := s.Get(ctx, owner, id)
	if err != nil {
		return "", err
	}
	return string(blackfriday.Run([]byte(d.Source))), nil
}
