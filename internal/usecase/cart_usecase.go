package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// カートスナップショットの固定キー
const cartStorageKey = "storefront:cart"

// CartUsecase は /cart の業務ロジックです。
// 明細は (商品ID, サイズ, カラー) の三つ組で同一視し、
// 変更のたびに全体スナップショットをKVへ書き込みます。
type CartUsecase struct {
	productRepo repo.ProductRepository
	store       repo.KVStore

	mu    sync.Mutex
	items []model.CartItem
}

// DI
func NewCartUsecase(productRepo repo.ProductRepository, store repo.KVStore) *CartUsecase {
	return &CartUsecase{
		productRepo: productRepo,
		store:       store,
		items:       make([]model.CartItem, 0),
	}
}

type CartResponse struct {
	Items      []model.CartItem `json:"items"`
	Subtotal   float64          `json:"subtotal"`
	TotalItems int              `json:"totalItems"`
}

type AddCartInput struct {
	ProductID string
	Quantity  int
	Size      string
	Color     string
}

type UpdateCartItemInput struct {
	ProductID string
	Size      string
	Color     string
	Quantity  int
}

type RemoveCartItemInput struct {
	ProductID string
	Size      string
	Color     string
}

// Restoreは起動時に1回だけ呼ぶ。
// スナップショットが無い・壊れている場合は空のカートで始める（エラーにしない）。
func (u *CartUsecase) Restore(ctx context.Context) {
	raw, ok, err := u.store.Get(ctx, cartStorageKey)
	if err != nil || !ok {
		return
	}

	var items []model.CartItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return
	}

	//数量0以下の明細は捨てる
	valid := make([]model.CartItem, 0, len(items))
	for _, it := range items {
		if it.Quantity >= 1 {
			valid = append(valid, it)
		}
	}

	u.mu.Lock()
	u.items = valid
	u.mu.Unlock()
}

// カート取得
func (u *CartUsecase) GetCart(ctx context.Context) (CartResponse, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.buildResponse(), nil
}

// カートに追加。同一三つ組は数量加算、それ以外は末尾に追加。
func (u *CartUsecase) AddToCart(ctx context.Context, in AddCartInput) (CartResponse, error) {
	if in.ProductID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if in.Quantity < 1 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	p, err := u.productRepo.FindByID(ctx, in.ProductID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "catalog error")
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	merged := false
	for i := range u.items {
		if u.items[i].SameSelection(in.ProductID, in.Size, in.Color) {
			u.items[i].Quantity += in.Quantity
			merged = true
			break
		}
	}

	if !merged {
		u.items = append(u.items, model.CartItem{
			Product:       p,
			Quantity:      in.Quantity,
			SelectedSize:  in.Size,
			SelectedColor: in.Color,
		})
	}

	if err := u.persist(ctx); err != nil {
		return CartResponse{}, err
	}
	return u.buildResponse(), nil
}

// 数量変更（絶対値で上書き）。0以下は削除。三つ組が無ければ何もしない。
func (u *CartUsecase) UpdateQuantity(ctx context.Context, in UpdateCartItemInput) (CartResponse, error) {
	if in.ProductID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	if in.Quantity <= 0 {
		u.removeLocked(in.ProductID, in.Size, in.Color)
	} else {
		for i := range u.items {
			if u.items[i].SameSelection(in.ProductID, in.Size, in.Color) {
				u.items[i].Quantity = in.Quantity
				break
			}
		}
	}

	if err := u.persist(ctx); err != nil {
		return CartResponse{}, err
	}
	return u.buildResponse(), nil
}

// 明細削除。無ければ何もしない。
func (u *CartUsecase) RemoveFromCart(ctx context.Context, in RemoveCartItemInput) (CartResponse, error) {
	if in.ProductID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	u.removeLocked(in.ProductID, in.Size, in.Color)

	if err := u.persist(ctx); err != nil {
		return CartResponse{}, err
	}
	return u.buildResponse(), nil
}

// 全明細を空にする
func (u *CartUsecase) ClearCart(ctx context.Context) (CartResponse, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.items = make([]model.CartItem, 0)

	if err := u.persist(ctx); err != nil {
		return CartResponse{}, err
	}
	return u.buildResponse(), nil
}

// 小計（追加時点の価格×数量の合計）
func (u *CartUsecase) Subtotal() float64 {
	u.mu.Lock()
	defer u.mu.Unlock()
	return subtotal(u.items)
}

// 明細数量の合計
func (u *CartUsecase) TotalItems() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return totalItems(u.items)
}

// mu保持中に呼ぶ
func (u *CartUsecase) removeLocked(productID, size, color string) {
	kept := make([]model.CartItem, 0, len(u.items))
	for _, it := range u.items {
		if it.SameSelection(productID, size, color) {
			continue
		}
		kept = append(kept, it)
	}
	u.items = kept
}

// mu保持中に呼ぶ。全体スナップショットをKVへ。
func (u *CartUsecase) persist(ctx context.Context) error {
	raw, err := json.Marshal(u.items)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "storage error")
	}
	if err := u.store.Set(ctx, cartStorageKey, string(raw)); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "storage error")
	}
	return nil
}

// mu保持中に呼ぶ
func (u *CartUsecase) buildResponse() CartResponse {
	items := make([]model.CartItem, len(u.items))
	copy(items, u.items)

	return CartResponse{
		Items:      items,
		Subtotal:   subtotal(items),
		TotalItems: totalItems(items),
	}
}

func subtotal(items []model.CartItem) float64 {
	total := 0.0
	for _, it := range items {
		total += it.Product.Price * float64(it.Quantity)
	}
	return total
}

func totalItems(items []model.CartItem) int {
	total := 0
	for _, it := range items {
		total += it.Quantity
	}
	return total
}
