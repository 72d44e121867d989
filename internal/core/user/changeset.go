package user

import "time"

// 入出力で使用する項目名です。FieldError.Field にも同じ名前が入ります。
const (
	FieldID            = "id"
	FieldFirstName     = "nombre"
	FieldLastName      = "apellido"
	FieldEmail         = "email"
	FieldBirthDate     = "fechaDeNacimiento"
	FieldGender        = "genero"
	FieldMaritalStatus = "estadoCivil"
)

// BirthDateLayout は生年月日の文字列表現です。
const BirthDateLayout = "2006-01-02"

type fieldState uint8

const (
	fieldAbsent fieldState = iota
	fieldNull
	fieldValue
)

// Field は ChangeSet の 1 項目を表します。
// 「指定なし」「null 指定」「値あり」の 3 状態を区別します。ゼロ値は「指定なし」です。
type Field[T any] struct {
	value T
	state fieldState
}

// Absent は指定なしの Field を返します。
func Absent[T any]() Field[T] {
	return Field[T]{}
}

// Null は明示的に null が指定された Field を返します。
func Null[T any]() Field[T] {
	return Field[T]{state: fieldNull}
}

// Value は値が指定された Field を返します。
func Value[T any](v T) Field[T] {
	return Field[T]{value: v, state: fieldValue}
}

// FromPtr は nil を null、それ以外を値ありとして Field を生成します。
func FromPtr[T any](v *T) Field[T] {
	if v == nil {
		return Null[T]()
	}
	return Value(*v)
}

// Present は項目が入力に含まれていたかを返します（null を含む）。
func (f Field[T]) Present() bool {
	return f.state != fieldAbsent
}

// IsNull は null が明示的に指定されたかを返します。
func (f Field[T]) IsNull() bool {
	return f.state == fieldNull
}

// Get は値と、値が存在するかを返します。
func (f Field[T]) Get() (T, bool) {
	return f.value, f.state == fieldValue
}

// Ptr は値へのポインタを返します。値がなければ nil です。
func (f Field[T]) Ptr() *T {
	if f.state != fieldValue {
		return nil
	}
	v := f.value
	return &v
}

// ChangeSet は作成・更新時に呼び出し側から渡される項目の集合です。
type ChangeSet struct {
	FirstName     Field[string]
	LastName      Field[string]
	Email         Field[string]
	BirthDate     Field[time.Time]
	Gender        Field[string]
	MaritalStatus Field[string]
}
