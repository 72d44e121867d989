package user

import "time"

// 性別として受け付ける値です。比較は大文字小文字を区別しません。
const (
	GenderMasculine = "masculino"
	GenderFeminine  = "femenino"
	GenderOther     = "otro"
)

// 婚姻状況として受け付ける値です。比較は大文字小文字を区別しません。
const (
	MaritalStatusSingle   = "soltero"
	MaritalStatusMarried  = "casado"
	MaritalStatusDivorced = "divorciado"
	MaritalStatusWidowed  = "viudo"
	MaritalStatusOther    = "otro"
)

// User は永続化されるユーザーエンティティです。
// ID はストアが採番し、以降は変更されません。
type User struct {
	ID            int64
	FirstName     string
	LastName      *string
	Email         string
	BirthDate     *time.Time
	Gender        *string
	MaritalStatus *string
}

// Clone は User のディープコピーを返します。
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.LastName = cloneString(u.LastName)
	c.BirthDate = cloneTime(u.BirthDate)
	c.Gender = cloneString(u.Gender)
	c.MaritalStatus = cloneString(u.MaritalStatus)
	return &c
}

func cloneString(v *string) *string {
	if v == nil {
		return nil
	}
	s := *v
	return &s
}

func cloneTime(v *time.Time) *time.Time {
	if v == nil {
		return nil
	}
	t := *v
	return &t
}
