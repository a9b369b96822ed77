package validation

import (
	"errors"
	"testing"

	"github.com/gin-gonic/gin/binding"
)

type signup struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	Currency string `json:"currency" binding:"omitempty,currency"`
}

func TestToDetailsUsesJSONNames(t *testing.T) {
	Init()
	err := binding.Validator.ValidateStruct(signup{Email: "nope", Password: "short", Currency: "EURO"})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	got := ToDetails(err)
	want := map[string]string{
		"name":     "is required",
		"email":    "must be a valid email",
		"password": "must be between 8 and 72 characters long",
		"currency": "must be a 3-letter currency code",
	}
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("field %s: expected %q, got %q (all: %v)", k, v, got[k], got)
		}
	}
}

func TestToDetailsUnknownField(t *testing.T) {
	got := ToDetails(errors.New(`json: unknown field "admin"`))
	if got["admin"] != "is not allowed" {
		t.Fatalf("unexpected details: %v", got)
	}
	if got := ToDetails(nil); got != nil {
		t.Fatalf("expected nil for nil error, got %v", got)
	}
}
