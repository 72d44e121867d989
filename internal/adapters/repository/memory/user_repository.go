// Package memory はプロセス内メモリにユーザーを保持するリポジトリを提供します。
// ローカル実行やテスト用途で、再起動するとデータは失われます。
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/ogurasousui/codex-usuario-api/internal/core/user"
)

// UserRepository は map と RWMutex によるユーザーストアです。
type UserRepository struct {
	mu    sync.RWMutex
	seq   int64
	users map[int64]*user.User
}

var _ user.Repository = (*UserRepository)(nil)

// NewUserRepository は空の UserRepository を生成します。
func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[int64]*user.User)}
}

// Insert は ID を採番してユーザーを保存します。
func (r *UserRepository) Insert(ctx context.Context, u *user.User) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	stored := u.Clone()
	stored.ID = r.seq
	r.users[stored.ID] = stored
	return stored.ID, nil
}

// FindByID は ID でユーザーを取得します。
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*user.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	found, ok := r.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return found.Clone(), nil
}

// FindAll は全ユーザーを ID 昇順で返します。
func (r *UserRepository) FindAll(ctx context.Context) ([]*user.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*user.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u.Clone())
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// Save は既存ユーザーを上書きします。
func (r *UserRepository) Save(ctx context.Context, u *user.User) (*user.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[u.ID]; !ok {
		return nil, user.ErrUserNotFound
	}
	r.users[u.ID] = u.Clone()
	return u.Clone(), nil
}

// Delete はユーザーを削除します。
func (r *UserRepository) Delete(ctx context.Context, u *user.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[u.ID]; !ok {
		return user.ErrUserNotFound
	}
	delete(r.users, u.ID)
	return nil
}
