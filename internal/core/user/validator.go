package user

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// MinimumAge は登録可能な最低年齢です。
const MinimumAge = 13

// Mode は検証モードです。
type Mode int

const (
	// ModeCreate は作成時の検証です。nombre と email が必須になります。
	ModeCreate Mode = iota + 1
	// ModeUpdate は更新時の検証です。指定された項目のみ検証します。
	ModeUpdate
)

func (m Mode) String() string {
	switch m {
	case ModeCreate:
		return "create"
	case ModeUpdate:
		return "update"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

const (
	tagPersonName    = "person_name"
	tagEmailAddress  = "email_address"
	tagGender        = "genero"
	tagMaritalStatus = "estado_civil"
)

var (
	personNamePattern   = regexp.MustCompile(`^[a-zA-ZÁÉÍÓÚÑáéíóúñ\s]+$`)
	emailAddressPattern = regexp.MustCompile(`^[\w\-.]+@[\w-]+\.[a-zA-Z]{2,}$`)

	genders         = []string{GenderMasculine, GenderFeminine, GenderOther}
	maritalStatuses = []string{
		MaritalStatusSingle,
		MaritalStatusMarried,
		MaritalStatusDivorced,
		MaritalStatusWidowed,
		MaritalStatusOther,
	}
)

// Validator は ChangeSet を項目ルールに照らして検証します。
// 最初に見つかった違反のみを返します。
type Validator struct {
	validate *validator.Validate
	clock    Clock
}

// NewValidator は Validator を生成します。clock が nil の場合は現在時刻を使用します。
func NewValidator(clock Clock) *Validator {
	if clock == nil {
		clock = realClock{}
	}

	v := validator.New(validator.WithRequiredStructEnabled())
	mustRegister(v, tagPersonName, matchPattern(personNamePattern))
	mustRegister(v, tagEmailAddress, matchPattern(emailAddressPattern))
	mustRegister(v, tagGender, oneOfFold(genders))
	mustRegister(v, tagMaritalStatus, oneOfFold(maritalStatuses))

	return &Validator{validate: v, clock: clock}
}

// Validate は mode に応じた必須チェックの後、共通ルールを
// nombre, email, apellido, fechaDeNacimiento, genero, estadoCivil の順に適用します。
func (v *Validator) Validate(cs ChangeSet, mode Mode) error {
	switch mode {
	case ModeCreate:
		if isBlank(cs.FirstName) {
			return newFieldError(FieldFirstName, ErrMissingRequiredField, "El nombre es obligatorio")
		}
		if isBlank(cs.Email) {
			return newFieldError(FieldEmail, ErrMissingRequiredField, "El email es obligatorio")
		}
	case ModeUpdate:
		if cs.FirstName.Present() && isBlank(cs.FirstName) {
			return newFieldError(FieldFirstName, ErrEmptyFieldOnUpdate, "El nombre no puede estar vacío si se proporciona")
		}
		if cs.Email.Present() && isBlank(cs.Email) {
			return newFieldError(FieldEmail, ErrEmptyFieldOnUpdate, "El email no puede estar vacío si se proporciona")
		}
	default:
		return fmt.Errorf("user: unsupported validation mode %s", mode)
	}

	return v.validateCommon(cs)
}

func (v *Validator) validateCommon(cs ChangeSet) error {
	if s, ok := cs.FirstName.Get(); ok && !v.satisfies(s, tagPersonName) {
		return newFieldError(FieldFirstName, ErrInvalidNameFormat, "El nombre solo debe contener letras y espacios")
	}

	if s, ok := cs.Email.Get(); ok && !v.satisfies(s, tagEmailAddress) {
		return newFieldError(FieldEmail, ErrInvalidEmailFormat, "El email no tiene un formato válido")
	}

	if s, ok := cs.LastName.Get(); ok && !v.satisfies(s, tagPersonName) {
		return newFieldError(FieldLastName, ErrInvalidNameFormat, "El apellido solo debe contener letras y espacios")
	}

	if d, ok := cs.BirthDate.Get(); ok {
		if err := v.validateBirthDate(d); err != nil {
			return err
		}
	}

	if s, ok := cs.Gender.Get(); ok && !v.satisfies(s, tagGender) {
		return newFieldError(FieldGender, ErrInvalidGenderValue, "El género debe ser 'masculino', 'femenino' u 'otro'")
	}

	if s, ok := cs.MaritalStatus.Get(); ok && !v.satisfies(s, tagMaritalStatus) {
		return newFieldError(FieldMaritalStatus, ErrInvalidMaritalStatusValue, "Estado civil no válido")
	}

	return nil
}

func (v *Validator) validateBirthDate(birth time.Time) error {
	today := dateOf(v.clock.Now())
	birth = dateOf(birth)

	if !birth.Before(today) {
		return newFieldError(FieldBirthDate, ErrFutureBirthDate, "La fecha de nacimiento debe estar en el pasado")
	}

	if Age(birth, today) < MinimumAge {
		return newFieldError(FieldBirthDate, ErrUnderageUser, fmt.Sprintf("El usuario debe tener al menos %d años", MinimumAge))
	}

	return nil
}

func (v *Validator) satisfies(value, tag string) bool {
	return v.validate.Var(value, tag) == nil
}

// Age は today 時点の満年齢を返します。
// 2 月 29 日生まれは平年では 2 月 28 日に年齢が加算されます。
func Age(birth, today time.Time) int {
	birth, today = dateOf(birth), dateOf(today)

	age := today.Year() - birth.Year()
	if addYears(birth, age).After(today) {
		age--
	}
	return age
}

func addYears(t time.Time, years int) time.Time {
	year := t.Year() + years
	month, day := t.Month(), t.Day()
	if last := daysIn(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// dateOf は t の暦日（t のロケーション基準）を UTC 0 時として返します。
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func isBlank(f Field[string]) bool {
	s, ok := f.Get()
	return !ok || strings.TrimSpace(s) == ""
}

func matchPattern(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

func oneOfFold(allowed []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		for _, candidate := range allowed {
			if strings.EqualFold(value, candidate) {
				return true
			}
		}
		return false
	}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("user: register validation %q: %v", tag, err))
	}
}
