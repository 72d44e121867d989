package user

import "errors"

var (
	// ErrUserNotFound はユーザーが存在しない場合に返却されます。
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidID は ID が整数として解釈できない場合に返却されます。
	ErrInvalidID = errors.New("invalid id")

	// ErrMissingRequiredField は作成時に必須項目が未指定または空白の場合に返却されます。
	ErrMissingRequiredField = errors.New("missing required field")
	// ErrEmptyFieldOnUpdate は更新時に指定された必須項目が空白の場合に返却されます。
	ErrEmptyFieldOnUpdate = errors.New("empty field on update")
	// ErrInvalidNameFormat は名前・姓に英字と空白以外が含まれる場合に返却されます。
	ErrInvalidNameFormat = errors.New("invalid name format")
	// ErrInvalidEmailFormat はメールアドレスの形式が不正な場合に返却されます。
	ErrInvalidEmailFormat = errors.New("invalid email format")
	// ErrFutureBirthDate は生年月日が今日以降の場合に返却されます。
	ErrFutureBirthDate = errors.New("birth date is not in the past")
	// ErrUnderageUser は年齢が MinimumAge 未満の場合に返却されます。
	ErrUnderageUser = errors.New("underage user")
	// ErrInvalidGenderValue は性別が許可された値でない場合に返却されます。
	ErrInvalidGenderValue = errors.New("invalid gender value")
	// ErrInvalidMaritalStatusValue は婚姻状況が許可された値でない場合に返却されます。
	ErrInvalidMaritalStatusValue = errors.New("invalid marital status value")
)

// FieldError は入力検証の失敗を表します。
// Err には上記のいずれかのセンチネルエラーが入り、errors.Is で判定できます。
type FieldError struct {
	Field   string
	Message string
	Err     error
}

func (e *FieldError) Error() string {
	return e.Message
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func newFieldError(field string, kind error, message string) *FieldError {
	return &FieldError{Field: field, Message: message, Err: kind}
}

// IsValidationError は err が入力検証エラーかを返します。
func IsValidationError(err error) bool {
	var fe *FieldError
	return errors.As(err, &fe)
}

// エラーコードはトランスポートに依存しない機械可読な識別子です。
const (
	CodeMissingRequiredField      = "MISSING_REQUIRED_FIELD"
	CodeEmptyFieldOnUpdate        = "EMPTY_FIELD_ON_UPDATE"
	CodeInvalidNameFormat         = "INVALID_NAME_FORMAT"
	CodeInvalidEmailFormat        = "INVALID_EMAIL_FORMAT"
	CodeFutureBirthDate           = "FUTURE_BIRTH_DATE"
	CodeUnderageUser              = "UNDERAGE_USER"
	CodeInvalidGenderValue        = "INVALID_GENDER_VALUE"
	CodeInvalidMaritalStatusValue = "INVALID_MARITAL_STATUS_VALUE"
	CodeInvalidID                 = "INVALID_ID"
	CodeUserNotFound              = "USER_NOT_FOUND"
	CodeInternal                  = "INTERNAL_ERROR"
)

var errorCodes = []struct {
	err  error
	code string
}{
	{ErrMissingRequiredField, CodeMissingRequiredField},
	{ErrEmptyFieldOnUpdate, CodeEmptyFieldOnUpdate},
	{ErrInvalidNameFormat, CodeInvalidNameFormat},
	{ErrInvalidEmailFormat, CodeInvalidEmailFormat},
	{ErrFutureBirthDate, CodeFutureBirthDate},
	{ErrUnderageUser, CodeUnderageUser},
	{ErrInvalidGenderValue, CodeInvalidGenderValue},
	{ErrInvalidMaritalStatusValue, CodeInvalidMaritalStatusValue},
	{ErrInvalidID, CodeInvalidID},
	{ErrUserNotFound, CodeUserNotFound},
}

// ErrorCode は err に対応するエラーコードを返します。該当しなければ CodeInternal です。
func ErrorCode(err error) string {
	for _, c := range errorCodes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return CodeInternal
}
