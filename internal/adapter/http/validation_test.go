package http

import (
	"testing"
)

type idProbe struct {
	ID string `validate:"required,hex32"`
}

type termProbe struct {
	Unit string `validate:"required,termunit"`
}

func TestValidator_Hex32(t *testing.T) {
	cv := NewValidator()

	ok := []string{
		"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		"0123456789abcdef0123456789abcdef",
	}
	for _, id := range ok {
		if err := cv.Validate(&idProbe{ID: id}); err != nil {
			t.Errorf("valid id %q rejected: %v", id, err)
		}
	}

	bad := []string{
		"",
		"short",
		"AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA",                  // uppercase
		"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",                 // 33 chars
		"gggggggggggggggggggggggggggggggg",                  // not hex
		"aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa",              // uuid shape
	}
	for _, id := range bad {
		if err := cv.Validate(&idProbe{ID: id}); err == nil {
			t.Errorf("invalid id %q accepted", id)
		}
	}
}

func TestValidator_TermUnit(t *testing.T) {
	cv := NewValidator()
	for _, unit := range []string{"week", "month"} {
		if err := cv.Validate(&termProbe{Unit: unit}); err != nil {
			t.Errorf("valid unit %q rejected: %v", unit, err)
		}
	}
	for _, unit := range []string{"day", "year", "Week", ""} {
		if err := cv.Validate(&termProbe{Unit: unit}); err == nil {
			t.Errorf("invalid unit %q accepted", unit)
		}
	}
}

func TestToFieldErrors(t *testing.T) {
	cv := NewValidator()
	err := cv.Validate(&struct {
		ID   string `validate:"required,hex32"`
		Qty  int    `validate:"gte=1,lte=24"`
		Unit string `validate:"required,termunit"`
	}{ID: "nope", Qty: 30, Unit: "day"})
	if err == nil {
		t.Fatal("expected validation failure")
	}
	fes := ToFieldErrors(err)
	if !containsFieldMsg(fes, "ID", "hex") {
		t.Errorf("no hex32 message: %+v", fes)
	}
	if !containsFieldMsg(fes, "Qty", "less than or equal to 24") {
		t.Errorf("no lte message: %+v", fes)
	}
	if !containsFieldMsg(fes, "Unit", "week or month") {
		t.Errorf("no termunit message: %+v", fes)
	}
}
