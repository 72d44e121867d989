package user

import "context"

// Repository はユーザーエンティティの永続化を行うインターフェースです。
// FindByID は該当がなければ ErrUserNotFound を返します。
// FindAll は登録順（ID 昇順）で返します。
type Repository interface {
	Insert(ctx context.Context, user *User) (int64, error)
	FindByID(ctx context.Context, id int64) (*User, error)
	FindAll(ctx context.Context) ([]*User, error)
	Save(ctx context.Context, user *User) (*User, error)
	Delete(ctx context.Context, user *User) error
}
