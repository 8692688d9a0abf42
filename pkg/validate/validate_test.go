package validate_test

import (
	"testing"

	"github.com/MohamedTawfiq30/dmorder/pkg/validate"
)

type productInput struct {
	ProductID string  `json:"productId" validate:"required,max=64"`
	Name      string  `json:"name"      validate:"required,max=200"`
	Price     float64 `json:"price"     validate:"required,numeric,gt=0"`
	Website   string  `json:"website"   validate:"nullable,url"`
	Status    string  `json:"status"    validate:"nullable,in=pending,completed"`
	Phone     string  `json:"phone"     validate:"nullable,digits=10"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(productInput{
		ProductID: "summer-kurti",
		Name:      "Summer Kurti",
		Price:     799,
		Website:   "", // nullable, allowed to be empty
		Status:    "pending",
		Phone:     "9999999999",
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(productInput{})
	if !validate.HasErrors(errs) {
		t.Error("expected required errors")
	}
	if _, ok := errs["productId"]; !ok {
		t.Error("expected productId to be required")
	}
	if _, ok := errs["price"]; !ok {
		t.Error("expected price to be required")
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
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestGtRule(t *testing.T) {
	errs := validate.Struct(productInput{ProductID: "x", Name: "y", Price: -1})
	if _, ok := errs["price"]; !ok {
		t.Error("expected price gt error")
	}
}

func TestInRuleMultiValue(t *testing.T) {
	errs := validate.Struct(productInput{
		ProductID: "x", Name: "y", Price: 10, Status: "shipped",
	})
	if _, ok := errs["status"]; !ok {
		t.Error("expected status in= error")
	}

	errs = validate.Struct(productInput{
		ProductID: "x", Name: "y", Price: 10, Status: "completed",
	})
	if _, ok := errs["status"]; ok {
		t.Errorf("completed should be allowed, got: %v", errs["status"])
	}
}

func TestDigitsRule(t *testing.T) {
	errs := validate.Struct(productInput{
		ProductID: "x", Name: "y", Price: 10, Phone: "12345",
	})
	if _, ok := errs["phone"]; !ok {
		t.Error("expected phone digits error")
	}
}

func TestNullableSkipsRemainingRules(t *testing.T) {
	errs := validate.Struct(productInput{
		ProductID: "x", Name: "y", Price: 10, Website: "",
	})
	if _, ok := errs["website"]; ok {
		t.Errorf("nullable empty field should pass, got: %v", errs["website"])
	}

	errs = validate.Struct(productInput{
		ProductID: "x", Name: "y", Price: 10, Website: "not a url",
	})
	if _, ok := errs["website"]; !ok {
		t.Error("non-empty nullable field must still satisfy url")
	}
}

func TestFirstFailingRuleWins(t *testing.T) {
	type in struct {
		Name string `json:"name" validate:"required,min=2,max=5"`
	}
	errs := validate.Struct(in{Name: "a"})
	if errs["name"] == "" {
		t.Fatal("expected min error")
	}
}
