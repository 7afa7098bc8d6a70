package model

// カートの明細。
// 商品は追加時点のスナップショットを丸ごと保存する。
// 同一視のキーは (商品ID, サイズ, カラー) の三つ組。
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`

	//選択した商品バリエーション（未選択は空）
	SelectedSize  string `json:"selectedSize,omitempty"`
	SelectedColor string `json:"selectedColor,omitempty"`
}

// 三つ組が一致するか
func (i CartItem) SameSelection(productID, size, color string) bool {
	return i.Product.ID == productID &&
		i.SelectedSize == size &&
		i.SelectedColor == color
}
