package repository

import (
	"context"
	"strings"
	"sync"

	"app/internal/domain/model"
	domainrepo "app/internal/repository"
)

// メモリ上のユーザーディレクトリ（モック認証用の台帳）。
// プロセスローカルで、サインアップ分は再起動で消える。
type userDirectoryMemory struct {
	mu    sync.RWMutex
	users []model.User
}

// DI
func NewUserDirectoryMemory(seed []model.User) domainrepo.UserDirectory {
	d := &userDirectoryMemory{users: make([]model.User, len(seed))}
	copy(d.users, seed)
	return d
}

// emailの重複は小文字比較で拒否
func (d *userDirectoryMemory) Create(ctx context.Context, user *model.User) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, u := range d.users {
		if strings.EqualFold(u.Email, user.Email) {
			return domainrepo.ErrEmailTaken
		}
	}

	d.users = append(d.users, *user)
	return nil
}

func (d *userDirectoryMemory) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, u := range d.users {
		if strings.EqualFold(u.Email, email) {
			found := u
			return &found, nil
		}
	}
	return nil, domainrepo.ErrUserNotFound
}

func (d *userDirectoryMemory) FindByID(ctx context.Context, userID string) (*model.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, u := range d.users {
		if u.ID == userID {
			found := u
			return &found, nil
		}
	}
	return nil, domainrepo.ErrUserNotFound
}
