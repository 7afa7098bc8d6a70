package model

// 商品カテゴリ。slugはフィルタとルーティングで使う一意キー。
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}
