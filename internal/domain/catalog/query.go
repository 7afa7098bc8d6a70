package catalog

import (
	"sort"
	"strings"

	"app/internal/domain/model"
)

// Filterは条件のAND適用。入力は変更しない。
// 同じ条件を結果へ再適用しても同じ列を返す（冪等）。
func Filter(products []model.Product, c Criteria) []model.Product {
	out := make([]model.Product, 0, len(products))
	term := strings.ToLower(strings.TrimSpace(c.SearchTerm))

	for _, p := range products {
		//カテゴリ
		if len(c.Categories) > 0 && !containsSlug(c.Categories, p.Category) {
			continue
		}

		//価格帯
		if p.Price < c.PriceRange.Min || p.Price > c.PriceRange.Max {
			continue
		}

		//商品名の部分一致（大文字小文字を無視）
		if term != "" && !strings.Contains(strings.ToLower(p.Name), term) {
			continue
		}

		out = append(out, p)
	}

	return out
}

// Sortは安定ソートしたコピーを返す。同値は入力の相対順を保つ。
func Sort(products []model.Product, mode SortMode) []model.Product {
	out := make([]model.Product, len(products))
	copy(out, products)

	switch mode {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Price < out[j].Price
		})
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Price > out[j].Price
		})
	case SortNewest:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	default:
		//recommendedは入力順のまま
	}

	return out
}

// FilterとSortを一括適用
func Query(products []model.Product, c Criteria) []model.Product {
	return Sort(Filter(products, c), c.SortBy)
}

func containsSlug(slugs []string, slug string) bool {
	for _, s := range slugs {
		if s == slug {
			return true
		}
	}
	return false
}
