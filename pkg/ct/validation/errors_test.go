package validation

import (
	"errors"
	"testing"
)

func TestLooksLikeEmail(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"jane@x.com", true},
		{" jane.doe@example.com ", true},
		{"jane", false},
		{"@x.com", false},
		{"jane@", false},
		{"ja ne@x.com", false},
		{"a@b@c", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := LooksLikeEmail(tt.in); got != tt.want {
				t.Errorf("LooksLikeEmail(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidationErrorsAccumulate(t *testing.T) {
	var errs ValidationErrors
	errs.Check(RequiredString("name", "  "))
	errs.Check(RequiredString("email", "jane@x.com"))
	errs.Check(Email("email", "nope"))
	errs.Check(StringMaxLength("message", "hello", 3))

	if len(errs) != 3 {
		t.Fatalf("expected 3 errors, got %d: %v", len(errs), errs)
	}
	if got := errs.ByField("name"); got != "is required" {
		t.Errorf("ByField(name) = %q", got)
	}
	if got := errs.ByField("message"); got != "must be at most 3 characters" {
		t.Errorf("ByField(message) = %q", got)
	}
	if got := errs.AsMap()["email"]; len(got) != 1 {
		t.Errorf("AsMap()[email] = %v", got)
	}

	err := errs.OrNil()
	var target ValidationErrors
	if !errors.As(err, &target) {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}
}

func TestOrNilEmpty(t *testing.T) {
	var errs ValidationErrors
	if err := errs.OrNil(); err != nil {
		t.Errorf("OrNil() = %v, want nil", err)
	}
}

func TestMaxLengthCountsRunes(t *testing.T) {
	if !MaxLength("héllo", 5) {
		t.Error("expected 5 runes to fit in 5")
	}
}
