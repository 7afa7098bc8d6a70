package repository

import "context"

// 文字列キーの永続ストア（localStorage相当）。
// カートとセッションのスナップショット保存に使う。
type KVStore interface {
	//見つからない場合は ok=false（エラーではない）
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key string, value string) error
	Remove(ctx context.Context, key string) error
}
