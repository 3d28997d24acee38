package repository

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/padkit/helipad/internal/document"
)

var (
	ErrNotFound = errors.New("document not found")
)

// Repository stores documents per owner. Ids are positive integers assigned
// on Create.
type Repository interface {
	Create(ctx context.Context, doc *document.Document) (int, error)
	Get(ctx context.Context, owner string, id int) (*document.Document, error)
	List(ctx context.Context, owner string) ([]*document.Document, error)
	Update(ctx context.Context, owner string, id int, p document.Patch) error
	Delete(ctx context.Context, owner string, id int) error
	Search(ctx context.Context, owner, term string) ([]*document.Document, error)
	ByTag(ctx context.Context, owner, tag string) ([]*document.Document, error)
}

// MemoryRepo is an in-memory repository used by tests and by padserver when
// no MongoDB is configured.
type MemoryRepo struct {
	mu     sync.RWMutex
	nextID int
	store  map[int]*document.Document
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[int]*document.Document)}
}

func (m *MemoryRepo) Create(_ context.Context, doc *document.Document) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	doc.ID = m.nextID
	doc.CreatedOn = time.Now().UTC()
	doc.UpdatedOn = doc.CreatedOn
	cp := *doc
	m.store[doc.ID] = &cp
	return doc.ID, nil
}

func (m *MemoryRepo) Get(_ context.Context, owner string, id int) (*document.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if d, ok := m.store[id]; ok && d.Owner == owner {
		cp := *d
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (m *MemoryRepo) List(_ context.Context, owner string) ([]*document.Document, error) {
	return m.filter(owner, func(*document.Document) bool { return true }), nil
}

func (m *MemoryRepo) Search(_ context.Context, owner, term string) ([]*document.Document, error) {
	return m.filter(owner, func(d *document.Document) bool { return d.Matches(term) }), nil
}

func (m *MemoryRepo) ByTag(_ context.Context, owner, tag string) ([]*document.Document, error) {
	return m.filter(owner, func(d *document.Document) bool { return d.HasTag(tag) }), nil
}

// filter returns copies of the owner's matching documents ordered by id.
func (m *MemoryRepo) filter(owner string, keep func(*document.Document) bool) []*document.Document {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*document.Document, 0, len(m.store))
	for _, d := range m.store {
		if d.Owner == owner && keep(d) {
			cp := *d
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *MemoryRepo) Update(_ context.Context, owner string, id int, p document.Patch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.store[id]
	if !ok || d.Owner != owner {
		return ErrNotFound
	}
	d.Apply(p, time.Now().UTC())
	return nil
}

func (m *MemoryRepo) Delete(_ context.Context, owner string, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.store[id]
	if !ok || d.Owner != owner {
		return ErrNotFound
	}
	delete(m.store, id)
	return nil
}
