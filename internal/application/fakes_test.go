package application

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/oksasatya/go-catalog-api/internal/domain/entity"
	repo "github.com/oksasatya/go-catalog-api/internal/domain/repository"
)

// memStore backs the fake repositories with the constraints the real schema enforces:
// unique user email and category name, product->category and image->product foreign keys.
type memStore struct {
	mu         sync.Mutex
	calls      int
	failWith   error
	nextID     int64
	clock      time.Time
	users      map[int64]entity.User
	categories map[int64]entity.Category
	products   map[int64]entity.Product
}

func newMemStore() *memStore {
	return &memStore{
		clock:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		users:      map[int64]entity.User{},
		categories: map[int64]entity.Category{},
		products:   map[int64]entity.Product{},
	}
}

func (m *memStore) enter() error {
	m.calls++
	return m.failWith
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

type fakeUsers struct{ *memStore }

func (f fakeUsers) Create(_ context.Context, u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter(); err != nil {
		return err
	}
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return repo.ErrConflict
		}
	}
	u.ID = f.id()
	u.Role = entity.RoleUser
	u.Enabled = true
	u.CreatedAt = f.tick()
	u.UpdatedAt = u.CreatedAt
	f.users[u.ID] = *u
	return nil
}

func (f fakeUsers) GetByID(_ context.Context, id int64) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter(); err != nil {
		return nil, err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &u, nil
}

func (f fakeUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter(); err != nil {
		return nil, err
	}
	for _, u := range f.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repo.ErrNotFound
}

type fakeCategories struct{ *memStore }

func (f fakeCategories) Create(_ context.Context, c *entity.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter(); err != nil {
		return err
	}
	for _, existing := range f.categories {
		if existing.Name == c.Name {
			return repo.ErrConflict
		}
	}
	c.ID = f.id()
	c.CreatedAt = f.tick()
	c.UpdatedAt = c.CreatedAt
	f.categories[c.ID] = *c
	return nil
}

func (f fakeCategories) GetByID(_ context.Context, id int64) (*entity.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter(); err != nil {
		return nil, err
	}
	c, ok := f.categories[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &c, nil
}

func (f fakeCategories) GetByName(_ context.Context, name string) (*entity.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter(); err != nil {
		return nil, err
	}
	for _, c := range f.categories {
		if c.Name == name {
			return &c, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f fakeCategories) List(_ context.Context) ([]entity.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter(); err != nil {
		return nil, err
	}
	out := make([]entity.Category, 0, len(f.categories))
	for _, c := range f.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f fakeCategories) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter(); err != nil {
		return err
	}
	if _, ok := f.categories[id]; !ok {
		return repo.ErrNotFound
	}
	for _, p := range f.products {
		if p.CategoryID == id {
			return repo.ErrForeignKey
		}
	}
	delete(f.categories, id)
	return nil
}

type fakeProducts struct{ *memStore }

func (f fakeProducts) Create(_ context.Context, p *entity.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter(); err != nil {
		return err
	}
	if _, ok := f.categories[p.CategoryID]; !ok {
		return repo.ErrForeignKey
	}
	p.ID = f.id()
	p.CreatedAt = f.tick()
	p.UpdatedAt = p.CreatedAt
	f.stampImages(p)
	f.products[p.ID] = cloneProduct(*p)
	return nil
}

func (f fakeProducts) Update(_ context.Context, p *entity.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter(); err != nil {
		return err
	}
	old, ok := f.products[p.ID]
	if !ok {
		return repo.ErrNotFound
	}
	if _, ok := f.categories[p.CategoryID]; !ok {
		return repo.ErrForeignKey
	}
	p.CreatedAt = old.CreatedAt
	p.UpdatedAt = f.tick()
	f.stampImages(p)
	f.products[p.ID] = cloneProduct(*p)
	return nil
}

func (f fakeProducts) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter(); err != nil {
		return err
	}
	if _, ok := f.products[id]; !ok {
		return repo.ErrNotFound
	}
	delete(f.products, id)
	return nil
}

func (f fakeProducts) Exists(_ context.Context, id int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter(); err != nil {
		return false, err
	}
	_, ok := f.products[id]
	return ok, nil
}

func (f fakeProducts) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter(); err != nil {
		return nil, err
	}
	p, ok := f.products[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	out := f.attach(p)
	return &out, nil
}

func (f fakeProducts) Find(_ context.Context, q repo.ProductQuery) ([]entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter(); err != nil {
		return nil, err
	}
	out := make([]entity.Product, 0, len(f.products))
	for _, p := range f.products {
		if q.Filter != nil && !matches(*q.Filter, p) {
			continue
		}
		out = append(out, f.attach(p))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if q.Sort != nil {
		sort.SliceStable(out, func(i, j int) bool {
			c := compare(q.Sort.Column, out[i], out[j])
			if q.Sort.Direction == repo.SortDesc {
				return c > 0
			}
			return c < 0
		})
	}
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (f fakeProducts) stampImages(p *entity.Product) {
	for i := range p.Images {
		p.Images[i].ID = f.id()
		p.Images[i].ProductID = p.ID
	}
}

func (f fakeProducts) attach(p entity.Product) entity.Product {
	p = cloneProduct(p)
	if c, ok := f.categories[p.CategoryID]; ok {
		p.Category = &c
	}
	return p
}

func cloneProduct(p entity.Product) entity.Product {
	p.Images = append([]entity.Image{}, p.Images...)
	return p
}

func matches(f repo.ProductFilter, p entity.Product) bool {
	switch f.Kind {
	case repo.FilterTitle:
		return strings.Contains(p.Title, f.Title)
	case repo.FilterCategory:
		for _, id := range f.CategoryIDs {
			if id == p.CategoryID {
				return true
			}
		}
		return false
	case repo.FilterPrice:
		return p.Price >= f.MinPrice && p.Price <= f.MaxPrice
	}
	return false
}

func compare(col repo.ProductColumn, a, b entity.Product) int {
	switch col {
	case repo.ColumnTitle:
		return strings.Compare(a.Title, b.Title)
	case repo.ColumnPrice:
		return cmpFloat(a.Price, b.Price)
	case repo.ColumnQuantity:
		return cmpFloat(float64(a.Quantity), float64(b.Quantity))
	case repo.ColumnCategoryID:
		return cmpFloat(float64(a.CategoryID), float64(b.CategoryID))
	case repo.ColumnCreatedAt:
		return a.CreatedAt.Compare(b.CreatedAt)
	case repo.ColumnUpdatedAt:
		return a.UpdatedAt.Compare(b.UpdatedAt)
	default:
		return cmpFloat(float64(a.ID), float64(b.ID))
	}
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// fakeCreds hashes by prefixing, which is enough to prove the plaintext is never stored.
type fakeCreds struct {
	verifyErr error
	lastTTL   time.Duration
	issued    []entity.AuthPayload
}

func (c *fakeCreds) Hash(plain string) (string, error) { return "hashed:" + plain, nil }

func (c *fakeCreds) Verify(plain, hash string) (bool, error) {
	if c.verifyErr != nil {
		return false, c.verifyErr
	}
	return hash == "hashed:"+plain, nil
}

func (c *fakeCreds) IssueToken(p entity.AuthPayload, ttl time.Duration) (string, time.Time, error) {
	c.lastTTL = ttl
	c.issued = append(c.issued, p)
	return "token-for-" + p.Email, time.Now().Add(ttl), nil
}

type fakeJobs struct {
	jobs []IndexJob
	err  error
}

func (f *fakeJobs) PublishJSON(_ context.Context, body any) error {
	if f.err != nil {
		return f.err
	}
	job, ok := body.(IndexJob)
	if !ok {
		return errors.New("unexpected job type")
	}
	f.jobs = append(f.jobs, job)
	return nil
}

func ptr[T any](v T) *T { return &v }
