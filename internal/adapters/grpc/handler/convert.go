package handler

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/ogurasousui/codex-usuario-api/internal/core/user"
	"google.golang.org/protobuf/types/known/structpb"
)

// conversionError は Struct からの変換失敗を表します。InvalidArgument として返されます。
type conversionError struct {
	field   string
	message string
}

func (e *conversionError) Error() string {
	return e.message
}

func stringField(fields map[string]*structpb.Value, key string) (user.Field[string], error) {
	v, ok := fields[key]
	if !ok {
		return user.Absent[string](), nil
	}
	switch kind := v.GetKind().(type) {
	case *structpb.Value_NullValue:
		return user.Null[string](), nil
	case *structpb.Value_StringValue:
		return user.Value(kind.StringValue), nil
	default:
		return user.Field[string]{}, &conversionError{field: key, message: fmt.Sprintf("El campo %s debe ser una cadena o null", key)}
	}
}

func dateField(fields map[string]*structpb.Value, key string) (user.Field[time.Time], error) {
	s, err := stringField(fields, key)
	if err != nil {
		return user.Field[time.Time]{}, err
	}
	raw, ok := s.Get()
	if !ok {
		if s.IsNull() {
			return user.Null[time.Time](), nil
		}
		return user.Absent[time.Time](), nil
	}

	d, err := time.Parse(user.BirthDateLayout, raw)
	if err != nil {
		return user.Field[time.Time]{}, &conversionError{field: key, message: "La fecha de nacimiento debe tener el formato AAAA-MM-DD"}
	}
	return user.Value(d), nil
}

// toChangeSet は Struct を ChangeSet に変換します。未知のキーと id は無視します。
func toChangeSet(s *structpb.Struct) (user.ChangeSet, error) {
	fields := s.GetFields()

	var (
		cs  user.ChangeSet
		err error
	)
	if cs.FirstName, err = stringField(fields, user.FieldFirstName); err != nil {
		return user.ChangeSet{}, err
	}
	if cs.LastName, err = stringField(fields, user.FieldLastName); err != nil {
		return user.ChangeSet{}, err
	}
	if cs.Email, err = stringField(fields, user.FieldEmail); err != nil {
		return user.ChangeSet{}, err
	}
	if cs.BirthDate, err = dateField(fields, user.FieldBirthDate); err != nil {
		return user.ChangeSet{}, err
	}
	if cs.Gender, err = stringField(fields, user.FieldGender); err != nil {
		return user.ChangeSet{}, err
	}
	if cs.MaritalStatus, err = stringField(fields, user.FieldMaritalStatus); err != nil {
		return user.ChangeSet{}, err
	}
	return cs, nil
}

// idValue は数値または 10 進文字列の id を int64 に変換します。
func idValue(v *structpb.Value, key string) (int64, error) {
	invalid := &conversionError{field: key, message: "El ID debe ser un número entero"}

	switch kind := v.GetKind().(type) {
	case *structpb.Value_NumberValue:
		n := kind.NumberValue
		if n != math.Trunc(n) || n < math.MinInt64 || n >= math.MaxInt64 {
			return 0, invalid
		}
		return int64(n), nil
	case *structpb.Value_StringValue:
		id, err := strconv.ParseInt(kind.StringValue, 10, 64)
		if err != nil {
			return 0, invalid
		}
		return id, nil
	default:
		return 0, invalid
	}
}

func optionalValue(v *string) *structpb.Value {
	if v == nil {
		return structpb.NewNullValue()
	}
	return structpb.NewStringValue(*v)
}

// toStruct は View を Struct に変換します。任意項目が未設定の場合は null になります。
func toStruct(v user.View) *structpb.Struct {
	birth := structpb.NewNullValue()
	if d := v.BirthDate(); d != nil {
		birth = structpb.NewStringValue(d.Format(user.BirthDateLayout))
	}

	return &structpb.Struct{Fields: map[string]*structpb.Value{
		user.FieldID:            structpb.NewNumberValue(float64(v.ID())),
		user.FieldFirstName:     structpb.NewStringValue(v.FirstName()),
		user.FieldLastName:      optionalValue(v.LastName()),
		user.FieldEmail:         structpb.NewStringValue(v.Email()),
		user.FieldBirthDate:     birth,
		user.FieldGender:        optionalValue(v.Gender()),
		user.FieldMaritalStatus: optionalValue(v.MaritalStatus()),
	}}
}
