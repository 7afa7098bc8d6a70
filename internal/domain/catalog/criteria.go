package catalog

// 並び順
type SortMode string

const (
	//入力順のまま（デフォルト）
	SortRecommended SortMode = "recommended"
	SortPriceAsc    SortMode = "price-asc"
	SortPriceDesc   SortMode = "price-desc"
	SortNewest      SortMode = "newest"
)

// 有効な並び順か
func (m SortMode) Valid() bool {
	switch m {
	case SortRecommended, SortPriceAsc, SortPriceDesc, SortNewest:
		return true
	}
	return false
}

// 価格帯。Min <= Max を常に満たす。
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// 絞り込み条件。
// Categoriesが空なら全カテゴリ対象。
type Criteria struct {
	Categories []string   `json:"categories"`
	PriceRange PriceRange `json:"priceRange"`
	SearchTerm string     `json:"searchTerm"`
	SortBy     SortMode   `json:"sortBy"`
}

// Normalizeは不正な条件をカタログ基準の既定値へ丸める。
// 価格帯が壊れていれば [0, maxPrice]、並び順が不明ならrecommended。
func (c Criteria) Normalize(maxPrice float64) Criteria {
	if c.PriceRange.Min < 0 || c.PriceRange.Max < 0 || c.PriceRange.Min > c.PriceRange.Max {
		c.PriceRange = PriceRange{Min: 0, Max: maxPrice}
	}
	if !c.SortBy.Valid() {
		c.SortBy = SortRecommended
	}
	return c
}
