package model

import "time"

// 商品。カタログ投入後、公開側からは読み取り専用。
// jsonタグはKVスナップショットの形式そのもの（変更は互換性破壊）。
type Product struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`

	//セール時のみ設定。設定時は Price 以上。
	OriginalPrice *float64 `json:"originalPrice,omitempty"`

	Description string `json:"description"`

	//Categoryのslugを参照
	Category string `json:"category"`

	//メイン画像
	Image string `json:"image"`

	//追加画像
	Images []string `json:"images,omitempty"`

	//サイズ・カラーの選択肢
	Sizes  []string `json:"size,omitempty"`
	Colors []string `json:"color,omitempty"`

	Featured bool `json:"featured,omitempty"`
	InStock  bool `json:"inStock"`

	CreatedAt time.Time `json:"createdAt"`
}

// セール対象か（OriginalPriceあり）
func (p Product) OnSale() bool {
	return p.OriginalPrice != nil
}
