package user

// Merge は existing に cs を適用した新しい User を返します。
// 指定された項目のみ置き換え（null は任意項目をクリア）、指定のない項目と ID はそのまま残します。
// 値の検証は行わないため、事前に Validator を通してください。
func Merge(existing *User, cs ChangeSet) *User {
	merged := existing.Clone()
	if merged == nil {
		merged = &User{}
	}

	if cs.FirstName.Present() {
		merged.FirstName, _ = cs.FirstName.Get()
	}
	if cs.LastName.Present() {
		merged.LastName = cs.LastName.Ptr()
	}
	if cs.Email.Present() {
		merged.Email, _ = cs.Email.Get()
	}
	if cs.BirthDate.Present() {
		merged.BirthDate = cs.BirthDate.Ptr()
	}
	if cs.Gender.Present() {
		merged.Gender = cs.Gender.Ptr()
	}
	if cs.MaritalStatus.Present() {
		merged.MaritalStatus = cs.MaritalStatus.Ptr()
	}

	return merged
}

// NewUser は作成用の ChangeSet から未採番の User を組み立てます。
func NewUser(cs ChangeSet) *User {
	return Merge(&User{}, cs)
}
