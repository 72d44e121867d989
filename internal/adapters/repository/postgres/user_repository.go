package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/ogurasousui/codex-usuario-api/internal/core/user"
	pgdb "github.com/ogurasousui/codex-usuario-api/internal/platform/db/postgres"
)

const (
	sqlInsertUser = `
        INSERT INTO usuarios (nombre, apellido, email, fecha_de_nacimiento, genero, estado_civil)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id
    `

	sqlSelectUserByID = `
        SELECT id, nombre, apellido, email, fecha_de_nacimiento, genero, estado_civil
          FROM usuarios
         WHERE id = $1
         LIMIT 1
    `

	sqlSelectUsers = `
        SELECT id, nombre, apellido, email, fecha_de_nacimiento, genero, estado_civil
          FROM usuarios
         ORDER BY id
    `

	sqlUpdateUser = `
        UPDATE usuarios
           SET nombre = $1,
               apellido = $2,
               email = $3,
               fecha_de_nacimiento = $4,
               genero = $5,
               estado_civil = $6,
               updated_at = now()
         WHERE id = $7
        RETURNING id, nombre, apellido, email, fecha_de_nacimiento, genero, estado_civil
    `

	sqlDeleteUser = `DELETE FROM usuarios WHERE id = $1`
)

// UserRepository は PostgreSQL を利用したユーザー永続化の実装です。
// コンテキストにトランザクションがあればそれを利用します。
type UserRepository struct {
	db pgdb.Queryer
}

var _ user.Repository = (*UserRepository)(nil)

// NewUserRepository は UserRepository を生成します。
func NewUserRepository(db pgdb.Queryer) *UserRepository {
	return &UserRepository{db: db}
}

// Insert はユーザーを新規作成し、採番された ID を返します。
func (r *UserRepository) Insert(ctx context.Context, u *user.User) (int64, error) {
	exec := pgdb.QueryerFromContext(ctx, r.db)

	var id int64
	err := exec.QueryRow(ctx, sqlInsertUser,
		u.FirstName,
		nullableString(u.LastName),
		u.Email,
		nullableTime(u.BirthDate),
		nullableString(u.Gender),
		nullableString(u.MaritalStatus),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("postgres: insert usuario: %w", err)
	}
	return id, nil
}

// FindByID は ID でユーザーを取得します。
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*user.User, error) {
	exec := pgdb.QueryerFromContext(ctx, r.db)

	found, err := scanUser(exec.QueryRow(ctx, sqlSelectUserByID, id))
	if err != nil {
		return nil, wrapQueryError("find usuario", err)
	}
	return found, nil
}

// FindAll は全ユーザーを ID 昇順で取得します。
func (r *UserRepository) FindAll(ctx context.Context) ([]*user.User, error) {
	exec := pgdb.QueryerFromContext(ctx, r.db)

	rows, err := exec.Query(ctx, sqlSelectUsers)
	if err != nil {
		return nil, fmt.Errorf("postgres: list usuarios: %w", err)
	}
	defer rows.Close()

	users := make([]*user.User, 0)
	for rows.Next() {
		found, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: scan usuario: %w", err)
		}
		users = append(users, found)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: list usuarios: %w", err)
	}

	return users, nil
}

// Save はユーザーの全項目を上書き保存します。
func (r *UserRepository) Save(ctx context.Context, u *user.User) (*user.User, error) {
	exec := pgdb.QueryerFromContext(ctx, r.db)

	row := exec.QueryRow(ctx, sqlUpdateUser,
		u.FirstName,
		nullableString(u.LastName),
		u.Email,
		nullableTime(u.BirthDate),
		nullableString(u.Gender),
		nullableString(u.MaritalStatus),
		u.ID,
	)

	saved, err := scanUser(row)
	if err != nil {
		return nil, wrapQueryError("save usuario", err)
	}
	return saved, nil
}

// Delete はユーザーを削除します。
func (r *UserRepository) Delete(ctx context.Context, u *user.User) error {
	exec := pgdb.QueryerFromContext(ctx, r.db)

	tag, err := exec.Exec(ctx, sqlDeleteUser, u.ID)
	if err != nil {
		return fmt.Errorf("postgres: delete usuario: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*user.User, error) {
	var (
		id            int64
		firstName     string
		lastName      sql.NullString
		email         string
		birthDate     sql.NullTime
		gender        sql.NullString
		maritalStatus sql.NullString
	)

	if err := row.Scan(&id, &firstName, &lastName, &email, &birthDate, &gender, &maritalStatus); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, err
	}

	return &user.User{
		ID:            id,
		FirstName:     firstName,
		LastName:      stringPtr(lastName),
		Email:         email,
		BirthDate:     timePtr(birthDate),
		Gender:        stringPtr(gender),
		MaritalStatus: stringPtr(maritalStatus),
	}, nil
}

func wrapQueryError(op string, err error) error {
	if errors.Is(err, user.ErrUserNotFound) {
		return err
	}
	return fmt.Errorf("postgres: %s: %w", op, err)
}

func nullableString(value *string) any {
	if value == nil {
		return nil
	}
	return *value
}

func nullableTime(value *time.Time) any {
	if value == nil {
		return nil
	}
	return *value
}

func stringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func timePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}
