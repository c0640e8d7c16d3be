package validate_test

import (
	"testing"

	"github.com/Duvhier/jylclean-back/pkg/validate"
)

type registerInput struct {
	Username string  `json:"username" validate:"required,min=2,max=100"`
	Email    string  `json:"email"    validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Role     string  `json:"role"     validate:"required,in=SuperUser,Admin,User"`
	Website  string  `json:"website"  validate:"nullable,url"`
	Price    float64 `json:"price"    validate:"required,between=0,10000"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(registerInput{
		Username: "jvaldez",
		Email:    "jvaldez@example.com",
		Password: "Secret123!",
		Role:     "User",
		Website:  "", // nullable — allowed to be empty
		Price:    85.5,
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(registerInput{})
	if !validate.HasErrors(errs) {
		t.Error("expected required errors")
	}
	if _, ok := errs["username"]; !ok {
		t.Error("expected username to be required")
	}
	if _, ok := errs["email"]; !ok {
		t.Error("expected email to be required")
	}
}

func TestEmailRule(t *testing.T) {
	type in struct {
		Email string `json:"email" validate:"required,email"`
	}
	errs := validate.Struct(in{Email: "not-an-email"})
	if _, ok := errs["email"]; !ok {
		t.Error("expected email validation error")
	}
	errs = validate.Struct(in{Email: "valid@example.com"})
	if validate.HasErrors(errs) {
		t.Errorf("expected valid email to pass, got: %v", errs)
	}
}

func TestNumericBounds(t *testing.T) {
	type in struct {
		Stock int `json:"stock" validate:"required,gte=1,lte=10000"`
	}
	if errs := validate.Struct(in{Stock: 0}); !validate.HasErrors(errs) {
		t.Error("expected stock 0 to fail")
	}
	if errs := validate.Struct(in{Stock: 25}); validate.HasErrors(errs) {
		t.Errorf("expected stock 25 to pass, got: %v", errs)
	}
}

func TestInRule(t *testing.T) {
	type in struct {
		Status string `json:"status" validate:"required,in=pending,completed,cancelled"`
	}
	if errs := validate.Struct(in{Status: "refunded"}); !validate.HasErrors(errs) {
		t.Error("expected invalid status to fail")
	}
	if errs := validate.Struct(in{Status: "pending"}); validate.HasErrors(errs) {
		t.Errorf("expected pending to pass: %v", errs)
	}
}

func TestNullableSkipsRules(t *testing.T) {
	type in struct {
		Website string `json:"website" validate:"nullable,url"`
	}
	// Empty string — nullable, should pass even though it's not a URL
	if errs := validate.Struct(in{Website: ""}); validate.HasErrors(errs) {
		t.Errorf("expected empty nullable to pass: %v", errs)
	}
	// Non-empty but invalid URL — should fail
	if errs := validate.Struct(in{Website: "not-a-url"}); !validate.HasErrors(errs) {
		t.Error("expected invalid URL to fail")
	}
}

func TestNullablePointerFields(t *testing.T) {
	type patch struct {
		Name  *string  `json:"name"  validate:"nullable,min=2,max=50"`
		Price *float64 `json:"price" validate:"nullable,gte=0"`
	}

	// Nil pointers skip all rules.
	if errs := validate.Struct(patch{}); validate.HasErrors(errs) {
		t.Errorf("expected nil pointers to pass: %v", errs)
	}

	short := "x"
	if errs := validate.Struct(patch{Name: &short}); !validate.HasErrors(errs) {
		t.Error("expected one-char name to fail min=2")
	}

	neg := -1.0
	if errs := validate.Struct(patch{Price: &neg}); !validate.HasErrors(errs) {
		t.Error("expected negative price to fail gte=0")
	}

	// A present zero value must be validated as a value, not treated as absent.
	zero := 0.0
	if errs := validate.Struct(patch{Price: &zero}); validate.HasErrors(errs) {
		t.Errorf("expected price 0 to pass gte=0: %v", errs)
	}
}

func TestBetweenRule(t *testing.T) {
	type in struct {
		Score float64 `json:"score" validate:"required,between=0,100"`
	}
	if errs := validate.Struct(in{Score: 150}); !validate.HasErrors(errs) {
		t.Error("expected score > 100 to fail")
	}
	if errs := validate.Struct(in{Score: 75}); validate.HasErrors(errs) {
		t.Errorf("expected score 75 to pass: %v", errs)
	}
}

func TestURLRule(t *testing.T) {
	type in struct {
		Site string `json:"site" validate:"required,url"`
	}
	if errs := validate.Struct(in{Site: "https://jylclean.example.com"}); validate.HasErrors(errs) {
		t.Errorf("expected valid URL to pass: %v", errs)
	}
	if errs := validate.Struct(in{Site: "not-a-url"}); !validate.HasErrors(errs) {
		t.Error("expected invalid URL to fail")
	}
}
