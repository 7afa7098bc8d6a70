package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// カタログの保存・取得だけを約束。
// 公開側は読み取りのみ、Create/Update/Deleteは管理画面用。
type ProductRepository interface {
	//投入順で全件
	All(ctx context.Context) ([]model.Product, error)
	FindByID(ctx context.Context, id string) (model.Product, error)
	ByCategory(ctx context.Context, slug string) ([]model.Product, error)
	Featured(ctx context.Context) ([]model.Product, error)
	//作成日時の降順でn件。同時刻は投入順。
	Newest(ctx context.Context, n int) ([]model.Product, error)
	OnSale(ctx context.Context) ([]model.Product, error)
	//カタログ内の最高価格（空なら0）
	MaxPrice(ctx context.Context) (float64, error)

	Categories(ctx context.Context) ([]model.Category, error)
	FindCategoryBySlug(ctx context.Context, slug string) (model.Category, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	Delete(ctx context.Context, id string) error
}
