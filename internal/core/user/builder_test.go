package user

import (
	"testing"
	"time"
)

func TestBuilder_AnyOrder(t *testing.T) {
	t.Parallel()

	a := NewBuilder().Email("ana@x.com").ID(1).FirstName("Ana").Build()
	b := NewBuilder().ID(1).FirstName("Ana").Email("ana@x.com").Build()

	if a != b {
		t.Fatalf("expected equal views, got %+v and %+v", a, b)
	}
	if a.LastName() != nil || a.BirthDate() != nil || a.Gender() != nil || a.MaritalStatus() != nil {
		t.Fatalf("unset fields must be nil")
	}
}

func TestBuilder_BuildIsIsolated(t *testing.T) {
	t.Parallel()

	lastName := "Lopez"
	b := NewBuilder().ID(1).FirstName("Ana").LastName(&lastName)
	v := b.Build()

	lastName = "Changed"
	b.FirstName("Other").LastName(nil)

	if v.FirstName() != "Ana" {
		t.Errorf("view changed after builder mutation: %s", v.FirstName())
	}
	if v.LastName() == nil || *v.LastName() != "Lopez" {
		t.Errorf("view changed after source mutation: %v", v.LastName())
	}
}

func TestView_GettersReturnCopies(t *testing.T) {
	t.Parallel()

	birth := date(1990, time.May, 4)
	v := NewBuilder().BirthDate(&birth).Gender(strPtr(GenderOther)).Build()

	*v.Gender() = "mutated"
	*v.BirthDate() = date(2000, time.January, 1)

	if *v.Gender() != GenderOther {
		t.Errorf("gender mutated through getter: %s", *v.Gender())
	}
	if !v.BirthDate().Equal(birth) {
		t.Errorf("birth date mutated through getter: %v", v.BirthDate())
	}
}

func TestAssemble(t *testing.T) {
	t.Parallel()

	u := sampleUser()
	v := Assemble(u)

	if v.ID() != u.ID || v.FirstName() != u.FirstName || v.Email() != u.Email {
		t.Fatalf("unexpected view %+v", v)
	}
	if *v.LastName() != *u.LastName || *v.Gender() != *u.Gender || *v.MaritalStatus() != *u.MaritalStatus {
		t.Fatalf("optional fields not copied: %+v", v)
	}
	if !v.BirthDate().Equal(*u.BirthDate) {
		t.Fatalf("birth date not copied: %v", v.BirthDate())
	}
}
