package user

import (
	"context"
	"fmt"
	"time"
)

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// UseCase はユーザーユースケースの公開インターフェースです。
type UseCase interface {
	CreateUser(ctx context.Context, cs ChangeSet) (View, error)
	ListUsers(ctx context.Context) ([]View, error)
	GetUser(ctx context.Context, id int64) (View, error)
	UpdateUser(ctx context.Context, id int64, cs ChangeSet) (View, error)
	DeleteUser(ctx context.Context, id int64) error
}

// Service はユーザーに関するユースケースをまとめます。
type Service struct {
	repo      Repository
	validator *Validator
	tx        TransactionManager
}

var _ UseCase = (*Service)(nil)

// NewService は Service を生成します。clock, tx が nil の場合は既定の実装を使用します。
func NewService(repo Repository, clock Clock, tx TransactionManager) *Service {
	if tx == nil {
		tx = noopTransactionManager{}
	}
	return &Service{repo: repo, validator: NewValidator(clock), tx: tx}
}

// CreateUser は新しいユーザーを作成します。
func (s *Service) CreateUser(ctx context.Context, cs ChangeSet) (View, error) {
	if err := s.validator.Validate(cs, ModeCreate); err != nil {
		return View{}, err
	}

	var saved *User
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		id, err := s.repo.Insert(txCtx, NewUser(cs))
		if err != nil {
			return fmt.Errorf("insert user: %w", err)
		}

		found, err := s.repo.FindByID(txCtx, id)
		if err != nil {
			return err
		}
		saved = found
		return nil
	}); err != nil {
		return View{}, err
	}

	return Assemble(saved), nil
}

// ListUsers は全ユーザーを登録順に返します。
func (s *Service) ListUsers(ctx context.Context) ([]View, error) {
	var users []*User
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.repo.FindAll(txCtx)
		if err != nil {
			return fmt.Errorf("find users: %w", err)
		}
		users = found
		return nil
	}); err != nil {
		return nil, err
	}

	views := make([]View, 0, len(users))
	for _, u := range users {
		views = append(views, Assemble(u))
	}
	return views, nil
}

// GetUser は ID でユーザーを取得します。
// 該当しない ID は 0 や負数も含めて ErrUserNotFound になります。
func (s *Service) GetUser(ctx context.Context, id int64) (View, error) {
	var found *User
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		u, err := s.repo.FindByID(txCtx, id)
		if err != nil {
			return err
		}
		found = u
		return nil
	}); err != nil {
		return View{}, err
	}

	return Assemble(found), nil
}

// UpdateUser は cs に含まれる項目のみを更新します。
func (s *Service) UpdateUser(ctx context.Context, id int64, cs ChangeSet) (View, error) {
	if err := s.validator.Validate(cs, ModeUpdate); err != nil {
		return View{}, err
	}
	var updated *User
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByID(txCtx, id)
		if err != nil {
			return err
		}

		saved, err := s.repo.Save(txCtx, Merge(existing, cs))
		if err != nil {
			return fmt.Errorf("save user %d: %w", id, err)
		}
		updated = saved
		return nil
	}); err != nil {
		return View{}, err
	}

	return Assemble(updated), nil
}

// DeleteUser はユーザーを削除します。
func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	return s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByID(txCtx, id)
		if err != nil {
			return err
		}
		return s.repo.Delete(txCtx, existing)
	})
}
