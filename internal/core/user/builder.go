package user

import "time"

// View はユーザーの読み取り専用表現です。Builder からのみ生成されます。
type View struct {
	id            int64
	firstName     string
	lastName      *string
	email         string
	birthDate     *time.Time
	gender        *string
	maritalStatus *string
}

// ID はストアが採番した識別子を返します。
func (v View) ID() int64 { return v.id }

// FirstName は名前を返します。
func (v View) FirstName() string { return v.firstName }

// Email はメールアドレスを返します。
func (v View) Email() string { return v.email }

// LastName は姓を返します。未設定なら nil です。
func (v View) LastName() *string { return cloneString(v.lastName) }

// BirthDate は生年月日を返します。未設定なら nil です。
func (v View) BirthDate() *time.Time { return cloneTime(v.birthDate) }

// Gender は性別を返します。未設定なら nil です。
func (v View) Gender() *string { return cloneString(v.gender) }

// MaritalStatus は婚姻状況を返します。未設定なら nil です。
func (v View) MaritalStatus() *string { return cloneString(v.maritalStatus) }

// Builder は View を項目名付きで組み立てます。
// 各セッターは同じ Builder を返すため、任意の順序・組み合わせで呼び出せます。
type Builder struct {
	view View
}

// NewBuilder は空の Builder を返します。
func NewBuilder() *Builder {
	return &Builder{}
}

// ID は ID を設定します。
func (b *Builder) ID(id int64) *Builder {
	b.view.id = id
	return b
}

// FirstName は名前を設定します。
func (b *Builder) FirstName(firstName string) *Builder {
	b.view.firstName = firstName
	return b
}

// LastName は姓を設定します。nil は未設定を表します。
func (b *Builder) LastName(lastName *string) *Builder {
	b.view.lastName = cloneString(lastName)
	return b
}

// Email はメールアドレスを設定します。
func (b *Builder) Email(email string) *Builder {
	b.view.email = email
	return b
}

// BirthDate は生年月日を設定します。nil は未設定を表します。
func (b *Builder) BirthDate(birthDate *time.Time) *Builder {
	b.view.birthDate = cloneTime(birthDate)
	return b
}

// Gender は性別を設定します。nil は未設定を表します。
func (b *Builder) Gender(gender *string) *Builder {
	b.view.gender = cloneString(gender)
	return b
}

// MaritalStatus は婚姻状況を設定します。nil は未設定を表します。
func (b *Builder) MaritalStatus(maritalStatus *string) *Builder {
	b.view.maritalStatus = cloneString(maritalStatus)
	return b
}

// Build は現在の内容で View を確定させます。
// 返却後に Builder を変更しても View には影響しません。
func (b *Builder) Build() View {
	v := b.view
	v.lastName = cloneString(v.lastName)
	v.birthDate = cloneTime(v.birthDate)
	v.gender = cloneString(v.gender)
	v.maritalStatus = cloneString(v.maritalStatus)
	return v
}

// Assemble は永続化済みの User から View を生成します。
func Assemble(u *User) View {
	return NewBuilder().
		ID(u.ID).
		FirstName(u.FirstName).
		LastName(u.LastName).
		Email(u.Email).
		BirthDate(u.BirthDate).
		Gender(u.Gender).
		MaritalStatus(u.MaritalStatus).
		Build()
}
