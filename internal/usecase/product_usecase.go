package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"app/internal/domain/catalog"
	"app/internal/domain/model"
	repo "app/internal/repository"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// UUID 等のIDを作る約束
type IDGenerator interface {
	NewID() string
}

type ProductUsecase struct {
	productRepo repo.ProductRepository
	idGen       IDGenerator
	clock       Clock
}

// DI
func NewProductUsecase(
	productRepo repo.ProductRepository,
	idGen IDGenerator,
	clock Clock,
) *ProductUsecase {
	return &ProductUsecase{
		productRepo: productRepo,
		idGen:       idGen,
		clock:       clock,
	}
}

// GET /productsの入力DTO
type ListProductsInput struct {
	Categories []string
	MinPrice   *float64
	MaxPrice   *float64
	Q          string
	Sort       string
}

type ProductListOutput struct {
	Items []model.Product `json:"items"`
	Total int             `json:"total"`
}

// 公開カタログをフィルタ・ソートして返す。
// 壊れた価格帯はカタログの [0, 最高価格] に丸める。
func (u *ProductUsecase) ListProducts(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	if len(in.Q) > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "q too long")
	}
	switch in.Sort {
	case "", string(catalog.SortRecommended), string(catalog.SortPriceAsc), string(catalog.SortPriceDesc), string(catalog.SortNewest):
	default:
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid sort")
	}

	products, err := u.productRepo.All(ctx)
	if err != nil {
		return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "catalog error")
	}
	maxPrice, err := u.productRepo.MaxPrice(ctx)
	if err != nil {
		return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "catalog error")
	}

	criteria := catalog.Criteria{
		Categories: in.Categories,
		PriceRange: catalog.PriceRange{Min: 0, Max: maxPrice},
		SearchTerm: strings.TrimSpace(in.Q),
		SortBy:     catalog.SortMode(in.Sort),
	}
	if in.MinPrice != nil {
		criteria.PriceRange.Min = *in.MinPrice
	}
	if in.MaxPrice != nil {
		criteria.PriceRange.Max = *in.MaxPrice
	}
	criteria = criteria.Normalize(maxPrice)

	items := catalog.Query(products, criteria)

	return ProductListOutput{
		Items: items,
		Total: len(items),
	}, nil
}

func (u *ProductUsecase) GetProductDetail(ctx context.Context, productID string) (model.Product, error) {
	if strings.TrimSpace(productID) == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "catalog error")
	}
	return p, nil
}

// トップページ用の派生クエリ
func (u *ProductUsecase) FeaturedProducts(ctx context.Context) ([]model.Product, error) {
	items, err := u.productRepo.Featured(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "catalog error")
	}
	return items, nil
}

func (u *ProductUsecase) NewArrivals(ctx context.Context, limit int) ([]model.Product, error) {
	if limit < 1 || limit > 100 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	items, err := u.productRepo.Newest(ctx, limit)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "catalog error")
	}
	return items, nil
}

func (u *ProductUsecase) SaleProducts(ctx context.Context) ([]model.Product, error) {
	items, err := u.productRepo.OnSale(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "catalog error")
	}
	return items, nil
}

func (u *ProductUsecase) ListCategories(ctx context.Context) ([]model.Category, error) {
	items, err := u.productRepo.Categories(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "catalog error")
	}
	return items, nil
}

// 管理画面の商品フォーム入力
type AdminProductInput struct {
	Name          string
	Price         float64
	OriginalPrice *float64
	Description   string
	Category      string
	Image         string
	Images        []string
	Sizes         []string
	Colors        []string
	Featured      bool
	InStock       bool
}

// フォーム入力の検証。管理CRUDで共通。
func (u *ProductUsecase) validateAdminInput(ctx context.Context, in AdminProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "name required")
	}
	if in.Price < 0 {
		return NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}
	if in.OriginalPrice != nil && *in.OriginalPrice < in.Price {
		return NewHTTPError(http.StatusBadRequest, "original_price must be >= price")
	}

	//カテゴリは既存slugのみ
	if _, err := u.productRepo.FindCategoryBySlug(ctx, in.Category); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusBadRequest, "unknown category")
		}
		return NewHTTPError(http.StatusInternalServerError, "catalog error")
	}

	return nil
}

// 商品作成（プロセス内のみ。再起動でシードに戻る）
func (u *ProductUsecase) AdminCreateProduct(ctx context.Context, in AdminProductInput) (model.Product, error) {
	if err := u.validateAdminInput(ctx, in); err != nil {
		return model.Product{}, err
	}

	p := model.Product{
		ID:            u.idGen.NewID(),
		Name:          strings.TrimSpace(in.Name),
		Price:         in.Price,
		OriginalPrice: in.OriginalPrice,
		Description:   in.Description,
		Category:      in.Category,
		Image:         in.Image,
		Images:        in.Images,
		Sizes:         in.Sizes,
		Colors:        in.Colors,
		Featured:      in.Featured,
		InStock:       in.InStock,
		CreatedAt:     u.clock.Now(),
	}

	created, err := u.productRepo.Create(ctx, p)
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "catalog error")
	}
	return created, nil
}

// 商品更新。CreatedAtは元の値を引き継ぐ。
func (u *ProductUsecase) AdminUpdateProduct(ctx context.Context, productID string, in AdminProductInput) (model.Product, error) {
	if strings.TrimSpace(productID) == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	if err := u.validateAdminInput(ctx, in); err != nil {
		return model.Product{}, err
	}

	existing, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "catalog error")
	}

	p := model.Product{
		ID:            existing.ID,
		Name:          strings.TrimSpace(in.Name),
		Price:         in.Price,
		OriginalPrice: in.OriginalPrice,
		Description:   in.Description,
		Category:      in.Category,
		Image:         in.Image,
		Images:        in.Images,
		Sizes:         in.Sizes,
		Colors:        in.Colors,
		Featured:      in.Featured,
		InStock:       in.InStock,
		CreatedAt:     existing.CreatedAt,
	}

	if err := u.productRepo.Update(ctx, p); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "catalog error")
	}
	return p, nil
}

func (u *ProductUsecase) AdminDeleteProduct(ctx context.Context, productID string) error {
	if strings.TrimSpace(productID) == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	err := u.productRepo.Delete(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "catalog error")
	}
	return nil
}
