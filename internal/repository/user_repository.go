package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"
)

// ユーザーが見つかりませんを統一
var ErrUserNotFound = errors.New("user not found")

// emailが既に台帳にある
var ErrEmailTaken = errors.New("email already taken")

// 既知ユーザー台帳（モック認証のディレクトリ）を約束
type UserDirectory interface {
	//新規ユーザー追加。emailは小文字比較で一意。
	Create(ctx context.Context, user *model.User) error
	//メールからユーザーを一件取得する（大文字小文字を無視）。
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// IDからユーザーを1件取得する。
	FindByID(ctx context.Context, userID string) (*model.User, error)
}
