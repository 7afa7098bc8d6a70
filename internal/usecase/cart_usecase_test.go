package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func tshirt() model.Product {
	return model.Product{
		ID:       "1",
		Name:     "Classic White T-Shirt",
		Price:    29.99,
		Category: "women",
		InStock:  true,
	}
}

func sneakers() model.Product {
	return model.Product{
		ID:       "4",
		Name:     "Running Sneakers",
		Price:    89.99,
		Category: "footwear",
		InStock:  true,
	}
}

func newCartUC(productRepo *MockProductRepository, kv *fakeKVStore) *usecase.CartUsecase {
	return usecase.NewCartUsecase(productRepo, kv)
}

// =====================
// AddToCart
// =====================

func TestCartUsecase_Add_NewLine(t *testing.T) {
	ctx := context.Background()

	productRepo := new(MockProductRepository)
	productRepo.On("FindByID", mock.Anything, "1").Return(tshirt(), nil)

	u := newCartUC(productRepo, newFakeKVStore())

	res, err := u.AddToCart(ctx, usecase.AddCartInput{ProductID: "1", Quantity: 2, Size: "M", Color: "White"})
	assert.NoError(t, err)
	assert.Len(t, res.Items, 1)
	assert.Equal(t, 2, res.Items[0].Quantity)
	assert.Equal(t, "M", res.Items[0].SelectedSize)
	assert.Equal(t, tshirt(), res.Items[0].Product)

	productRepo.AssertExpectations(t)
}

// 同一三つ組は明細を増やさず数量加算（2+3=5）
func TestCartUsecase_Add_MergesSameSelection(t *testing.T) {
	ctx := context.Background()

	productRepo := new(MockProductRepository)
	productRepo.On("FindByID", mock.Anything, "1").Return(tshirt(), nil)

	u := newCartUC(productRepo, newFakeKVStore())

	_, err := u.AddToCart(ctx, usecase.AddCartInput{ProductID: "1", Quantity: 2, Size: "M", Color: "White"})
	assert.NoError(t, err)

	res, err := u.AddToCart(ctx, usecase.AddCartInput{ProductID: "1", Quantity: 3, Size: "M", Color: "White"})
	assert.NoError(t, err)

	assert.Len(t, res.Items, 1)
	assert.Equal(t, 5, res.Items[0].Quantity)
	assert.Equal(t, 5, res.TotalItems)
}

// サイズ違いは別明細
func TestCartUsecase_Add_DifferentSizeIsSeparateLine(t *testing.T) {
	ctx := context.Background()

	productRepo := new(MockProductRepository)
	productRepo.On("FindByID", mock.Anything, "1").Return(tshirt(), nil)

	u := newCartUC(productRepo, newFakeKVStore())

	_, err := u.AddToCart(ctx, usecase.AddCartInput{ProductID: "1", Quantity: 1, Size: "M", Color: "White"})
	assert.NoError(t, err)

	res, err := u.AddToCart(ctx, usecase.AddCartInput{ProductID: "1", Quantity: 1, Size: "L", Color: "White"})
	assert.NoError(t, err)

	assert.Len(t, res.Items, 2)
	assert.Equal(t, 2, res.TotalItems)
}

func TestCartUsecase_Add_UnknownProduct(t *testing.T) {
	ctx := context.Background()

	productRepo := new(MockProductRepository)
	productRepo.On("FindByID", mock.Anything, "nope").Return(model.Product{}, repo.ErrNotFound)

	u := newCartUC(productRepo, newFakeKVStore())

	_, err := u.AddToCart(ctx, usecase.AddCartInput{ProductID: "nope", Quantity: 1})
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}

func TestCartUsecase_Add_InvalidQuantity(t *testing.T) {
	ctx := context.Background()

	productRepo := new(MockProductRepository)
	u := newCartUC(productRepo, newFakeKVStore())

	_, err := u.AddToCart(ctx, usecase.AddCartInput{ProductID: "1", Quantity: 0})
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)

	//手前で落ちるのでカタログは引かない
	productRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

// =====================
// UpdateQuantity / Remove
// =====================

func TestCartUsecase_UpdateQuantity_Overwrites(t *testing.T) {
	ctx := context.Background()

	productRepo := new(MockProductRepository)
	productRepo.On("FindByID", mock.Anything, "1").Return(tshirt(), nil)

	u := newCartUC(productRepo, newFakeKVStore())

	_, err := u.AddToCart(ctx, usecase.AddCartInput{ProductID: "1", Quantity: 2, Size: "M"})
	assert.NoError(t, err)

	//加算ではなく絶対値
	res, err := u.UpdateQuantity(ctx, usecase.UpdateCartItemInput{ProductID: "1", Size: "M", Quantity: 7})
	assert.NoError(t, err)
	assert.Equal(t, 7, res.Items[0].Quantity)
}

// 数量0は削除と同じ
func TestCartUsecase_UpdateQuantity_ZeroRemovesLine(t *testing.T) {
	ctx := context.Background()

	productRepo := new(MockProductRepository)
	productRepo.On("FindByID", mock.Anything, "1").Return(tshirt(), nil)

	u := newCartUC(productRepo, newFakeKVStore())

	_, err := u.AddToCart(ctx, usecase.AddCartInput{ProductID: "1", Quantity: 2, Size: "M"})
	assert.NoError(t, err)

	res, err := u.UpdateQuantity(ctx, usecase.UpdateCartItemInput{ProductID: "1", Size: "M", Quantity: 0})
	assert.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.Equal(t, 0, res.TotalItems)
}

// 無い三つ組の数量変更は静かに何もしない
func TestCartUsecase_UpdateQuantity_AbsentIsNoop(t *testing.T) {
	ctx := context.Background()

	productRepo := new(MockProductRepository)
	productRepo.On("FindByID", mock.Anything, "1").Return(tshirt(), nil)

	u := newCartUC(productRepo, newFakeKVStore())

	_, err := u.AddToCart(ctx, usecase.AddCartInput{ProductID: "1", Quantity: 2, Size: "M"})
	assert.NoError(t, err)

	res, err := u.UpdateQuantity(ctx, usecase.UpdateCartItemInput{ProductID: "1", Size: "XL", Quantity: 9})
	assert.NoError(t, err)
	assert.Len(t, res.Items, 1)
	assert.Equal(t, 2, res.Items[0].Quantity)
}

func TestCartUsecase_Remove_AbsentIsNoop(t *testing.T) {
	ctx := context.Background()

	productRepo := new(MockProductRepository)
	u := newCartUC(productRepo, newFakeKVStore())

	res, err := u.RemoveFromCart(ctx, usecase.RemoveCartItemInput{ProductID: "nope"})
	assert.NoError(t, err)
	assert.Empty(t, res.Items)
}

func TestCartUsecase_Clear(t *testing.T) {
	ctx := context.Background()

	productRepo := new(MockProductRepository)
	productRepo.On("FindByID", mock.Anything, "1").Return(tshirt(), nil)
	productRepo.On("FindByID", mock.Anything, "4").Return(sneakers(), nil)

	u := newCartUC(productRepo, newFakeKVStore())

	_, err := u.AddToCart(ctx, usecase.AddCartInput{ProductID: "1", Quantity: 1})
	assert.NoError(t, err)
	_, err = u.AddToCart(ctx, usecase.AddCartInput{ProductID: "4", Quantity: 2})
	assert.NoError(t, err)

	res, err := u.ClearCart(ctx)
	assert.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.Equal(t, 0.0, res.Subtotal)
}

// =====================
// Subtotal / TotalItems
// =====================

func TestCartUsecase_Subtotal_EmptyIsZero(t *testing.T) {
	u := newCartUC(new(MockProductRepository), newFakeKVStore())
	assert.Equal(t, 0.0, u.Subtotal())
	assert.Equal(t, 0, u.TotalItems())
}

// 追加時点の価格×数量。29.99×2 = 59.98
func TestCartUsecase_Subtotal_PriceTimesQuantity(t *testing.T) {
	ctx := context.Background()

	productRepo := new(MockProductRepository)
	productRepo.On("FindByID", mock.Anything, "1").Return(tshirt(), nil)

	u := newCartUC(productRepo, newFakeKVStore())

	res, err := u.AddToCart(ctx, usecase.AddCartInput{ProductID: "1", Quantity: 2})
	assert.NoError(t, err)
	assert.InDelta(t, 59.98, res.Subtotal, 1e-9)
	assert.InDelta(t, 59.98, u.Subtotal(), 1e-9)
}

func TestCartUsecase_Subtotal_MixedLines(t *testing.T) {
	ctx := context.Background()

	productRepo := new(MockProductRepository)
	productRepo.On("FindByID", mock.Anything, "1").Return(tshirt(), nil)
	productRepo.On("FindByID", mock.Anything, "4").Return(sneakers(), nil)

	u := newCartUC(productRepo, newFakeKVStore())

	_, err := u.AddToCart(ctx, usecase.AddCartInput{ProductID: "1", Quantity: 2})
	assert.NoError(t, err)
	res, err := u.AddToCart(ctx, usecase.AddCartInput{ProductID: "4", Quantity: 1})
	assert.NoError(t, err)

	assert.InDelta(t, 29.99*2+89.99, res.Subtotal, 1e-9)
	assert.Equal(t, 3, res.TotalItems)
}

// =====================
// 永続化とRestore
// =====================

// 変更のたびにスナップショットが書かれ、別インスタンスのRestoreで同じカートに戻る
func TestCartUsecase_RestoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := newFakeKVStore()

	productRepo := new(MockProductRepository)
	productRepo.On("FindByID", mock.Anything, "1").Return(tshirt(), nil)
	productRepo.On("FindByID", mock.Anything, "4").Return(sneakers(), nil)

	first := newCartUC(productRepo, kv)
	_, err := first.AddToCart(ctx, usecase.AddCartInput{ProductID: "1", Quantity: 2, Size: "M", Color: "White"})
	assert.NoError(t, err)
	_, err = first.AddToCart(ctx, usecase.AddCartInput{ProductID: "4", Quantity: 1, Size: "9"})
	assert.NoError(t, err)

	want, err := first.GetCart(ctx)
	assert.NoError(t, err)

	//プロセス再起動のつもりで別インスタンスへ
	second := newCartUC(productRepo, kv)
	second.Restore(ctx)

	got, err := second.GetCart(ctx)
	assert.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCartUsecase_Restore_MissingSnapshotStartsEmpty(t *testing.T) {
	ctx := context.Background()

	u := newCartUC(new(MockProductRepository), newFakeKVStore())
	u.Restore(ctx)

	res, err := u.GetCart(ctx)
	assert.NoError(t, err)
	assert.Empty(t, res.Items)
}

// 壊れたスナップショットは捨てて空で始める（エラーにしない）
func TestCartUsecase_Restore_MalformedSnapshotStartsEmpty(t *testing.T) {
	ctx := context.Background()

	kv := newFakeKVStore()
	assert.NoError(t, kv.Set(ctx, "storefront:cart", "{not json"))

	u := newCartUC(new(MockProductRepository), kv)
	u.Restore(ctx)

	res, err := u.GetCart(ctx)
	assert.NoError(t, err)
	assert.Empty(t, res.Items)
}

// 数量0以下の明細は復元時に捨てる
func TestCartUsecase_Restore_DropsNonPositiveQuantities(t *testing.T) {
	ctx := context.Background()

	kv := newFakeKVStore()
	raw := `[{"product":{"id":"1","price":29.99,"inStock":true},"quantity":0},` +
		`{"product":{"id":"4","price":89.99,"inStock":true},"quantity":2}]`
	assert.NoError(t, kv.Set(ctx, "storefront:cart", raw))

	u := newCartUC(new(MockProductRepository), kv)
	u.Restore(ctx)

	res, err := u.GetCart(ctx)
	assert.NoError(t, err)
	assert.Len(t, res.Items, 1)
	assert.Equal(t, "4", res.Items[0].Product.ID)
}

func TestCartUsecase_Add_StorageFailure(t *testing.T) {
	ctx := context.Background()

	productRepo := new(MockProductRepository)
	productRepo.On("FindByID", mock.Anything, "1").Return(tshirt(), nil)

	kv := newFakeKVStore()
	kv.failSet = true

	u := newCartUC(productRepo, kv)

	_, err := u.AddToCart(ctx, usecase.AddCartInput{ProductID: "1", Quantity: 1})
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, he.Status)
}
