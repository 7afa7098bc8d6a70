package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"app/internal/domain/model"
	domainrepo "app/internal/repository"
)

// メモリ上のカタログストア。
// 起動時にシードを投入し、投入順を保持する。
// 管理画面のCRUDはプロセス内のみ（再起動でシードに戻る）。
type productMemoryRepository struct {
	mu         sync.RWMutex
	products   []model.Product
	categories []model.Category
}

// DI
// main.goでこれをnewしてusecaseに注入します。
func NewProductMemoryRepository(products []model.Product, categories []model.Category) domainrepo.ProductRepository {
	r := &productMemoryRepository{
		products:   make([]model.Product, len(products)),
		categories: make([]model.Category, len(categories)),
	}
	copy(r.products, products)
	copy(r.categories, categories)
	return r
}

// 投入順で全件のコピーを返す
func (r *productMemoryRepository) All(ctx context.Context) ([]model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot(), nil
}

func (r *productMemoryRepository) FindByID(ctx context.Context, id string) (model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return model.Product{}, domainrepo.ErrNotFound
}

func (r *productMemoryRepository) ByCategory(ctx context.Context, slug string) ([]model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Product, 0)
	for _, p := range r.products {
		if p.Category == slug {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *productMemoryRepository) Featured(ctx context.Context) ([]model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Product, 0)
	for _, p := range r.products {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out, nil
}

// 作成日時の降順でn件。安定ソートなので同時刻は投入順のまま。
func (r *productMemoryRepository) Newest(ctx context.Context, n int) ([]model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := r.snapshot()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if n >= 0 && n < len(out) {
		out = out[:n]
	}
	return out, nil
}

func (r *productMemoryRepository) OnSale(ctx context.Context) ([]model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Product, 0)
	for _, p := range r.products {
		if p.OnSale() {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *productMemoryRepository) MaxPrice(ctx context.Context) (float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	max := 0.0
	for _, p := range r.products {
		if p.Price > max {
			max = p.Price
		}
	}
	return max, nil
}

func (r *productMemoryRepository) Categories(ctx context.Context) ([]model.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Category, len(r.categories))
	copy(out, r.categories)
	return out, nil
}

func (r *productMemoryRepository) FindCategoryBySlug(ctx context.Context, slug string) (model.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.categories {
		if strings.EqualFold(c.Slug, slug) {
			return c, nil
		}
	}
	return model.Category{}, domainrepo.ErrNotFound
}

// 末尾に追加（投入順を維持）
func (r *productMemoryRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.products = append(r.products, p)
	return p, nil
}

// IDが一致する1件を丸ごと置き換え
func (r *productMemoryRepository) Update(ctx context.Context, p model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.products {
		if r.products[i].ID == p.ID {
			r.products[i] = p
			return nil
		}
	}
	return domainrepo.ErrNotFound
}

func (r *productMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.products {
		if r.products[i].ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return domainrepo.ErrNotFound
}

func (r *productMemoryRepository) snapshot() []model.Product {
	out := make([]model.Product, len(r.products))
	copy(out, r.products)
	return out
}
