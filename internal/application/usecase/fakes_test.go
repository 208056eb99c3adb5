package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
)

// memStore implementación en memoria de repository.ProductRepository con las mismas
// reglas que la tabla: title y slug únicos, imágenes en cascada.
type memStore struct {
	mu          sync.Mutex
	products    map[string]*entity.Product
	nextImageID int64
	err         error // si no es nil, todas las operaciones fallan con él
}

var _ repository.ProductRepository = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{products: map[string]*entity.Product{}}
}

func (s *memStore) Create(_ context.Context, p *entity.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if err := s.checkUnique(p); err != nil {
		return err
	}
	s.assignImageIDs(p)
	s.products[p.ID] = cloneProduct(p)
	return nil
}

func (s *memStore) GetByID(_ context.Context, id string) (*entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	p, ok := s.products[id]
	if !ok {
		return nil, nil
	}
	return cloneProduct(p), nil
}

func (s *memStore) GetByTitleOrSlug(_ context.Context, text string) (*entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	for _, p := range s.sorted() {
		if strings.ToLower(p.Title) == text || strings.ToLower(p.Slug) == text {
			return cloneProduct(p), nil
		}
	}
	return nil, nil
}

func (s *memStore) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	all := s.sorted()
	out := []*entity.Product{}
	for i := offset; i < len(all) && len(out) < limit; i++ {
		out = append(out, cloneProduct(all[i]))
	}
	return out, nil
}

func (s *memStore) Preload(ctx context.Context, id string, patch entity.ProductPatch) (*entity.Product, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil || p == nil {
		return nil, err
	}
	p.Apply(patch)
	return p, nil
}

func (s *memStore) DeleteImages(_ context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if p, ok := s.products[productID]; ok {
		p.Images = []entity.ProductImage{}
	}
	return nil
}

func (s *memStore) Save(_ context.Context, p *entity.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	stored, ok := s.products[p.ID]
	if !ok {
		return fmt.Errorf("update product %s: %w", p.ID, domain.ErrNotFound)
	}
	if err := s.checkUnique(p); err != nil {
		return err
	}
	s.assignImageIDs(p)

	updated := cloneProduct(p)
	// Como en la tabla: las filas existentes se conservan y solo se agregan las nuevas.
	images := append([]entity.ProductImage{}, stored.Images...)
	for _, img := range updated.Images {
		if !hasImage(stored.Images, img.ID) {
			images = append(images, img)
		}
	}
	sort.SliceStable(images, func(i, j int) bool { return images[i].Position < images[j].Position })
	updated.Images = images
	updated.CreatedAt = stored.CreatedAt
	s.products[p.ID] = updated
	return nil
}

func (s *memStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	delete(s.products, id)
	return nil
}

func (s *memStore) DeleteAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.products = map[string]*entity.Product{}
	return nil
}

func (s *memStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.products)
}

func (s *memStore) snapshot() map[string]*entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := make(map[string]*entity.Product, len(s.products))
	for id, p := range s.products {
		snap[id] = cloneProduct(p)
	}
	return snap
}

func (s *memStore) restore(snap map[string]*entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = snap
}

func (s *memStore) checkUnique(p *entity.Product) error {
	for _, other := range s.products {
		if other.ID == p.ID {
			continue
		}
		if other.Title == p.Title {
			return &domain.UniqueViolationError{
				Constraint: "products_title_key",
				Detail:     fmt.Sprintf("Key (title)=(%s) already exists.", p.Title),
			}
		}
		if other.Slug == p.Slug {
			return &domain.UniqueViolationError{
				Constraint: "products_slug_key",
				Detail:     fmt.Sprintf("Key (slug)=(%s) already exists.", p.Slug),
			}
		}
	}
	return nil
}

func (s *memStore) assignImageIDs(p *entity.Product) {
	for i := range p.Images {
		if p.Images[i].ID == 0 {
			s.nextImageID++
			p.Images[i].ID = s.nextImageID
			p.Images[i].ProductID = p.ID
		}
	}
}

func (s *memStore) sorted() []*entity.Product {
	all := make([]*entity.Product, 0, len(s.products))
	for _, p := range s.products {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.Before(all[j].CreatedAt)
		}
		return all[i].ID < all[j].ID
	})
	return all
}

func hasImage(images []entity.ProductImage, id int64) bool {
	for _, img := range images {
		if img.ID == id {
			return true
		}
	}
	return false
}

func cloneProduct(p *entity.Product) *entity.Product {
	c := *p
	c.Sizes = append([]string{}, p.Sizes...)
	c.Tags = append([]string{}, p.Tags...)
	c.Images = append([]entity.ProductImage{}, p.Images...)
	return &c
}

// memTx emula la transacción: snapshot antes de fn y restore si fn falla.
type memTx struct {
	store *memStore
	wrap  func(repository.ProductRepository) repository.ProductRepository
	runs  int
}

func (t *memTx) Run(_ context.Context, fn func(products repository.ProductRepository) error) error {
	t.runs++
	snap := t.store.snapshot()
	var repo repository.ProductRepository = t.store
	if t.wrap != nil {
		repo = t.wrap(repo)
	}
	if err := fn(repo); err != nil {
		t.store.restore(snap)
		return err
	}
	return nil
}

// failingSave falla en Save después de que DeleteImages ya se ejecutó.
type failingSave struct {
	repository.ProductRepository
	err error
}

func (f failingSave) Save(context.Context, *entity.Product) error { return f.err }
