package script

import "testing"

func TestValidateValidSource(t *testing.T) {
	res := Validate("goal: ok\nmodel: mistral")
	if !res.Valid {
		t.Fatalf("Validate() = invalid, errors: %v", res.Errors)
	}
	if res.Program == nil || len(res.Program.Statements) != 2 {
		t.Errorf("Program = %+v, want 2 statements", res.Program)
	}
	if res.Errors != nil {
		t.Errorf("Errors = %v, want nil", res.Errors)
	}
}

func TestValidateInvalidSource(t *testing.T) {
	res := Validate("this is not lumen")
	if res.Valid {
		t.Fatal("Validate() = valid, want invalid")
	}
	if res.Program != nil {
		t.Error("Program should be nil on invalid source")
	}
	if len(res.Errors) == 0 {
		t.Error("Errors should not be empty")
	}
}

func TestValidateDoesNotCheckModels(t *testing.T) {
	// Referencing a model no registry knows is still syntactically
	// valid; only execution reports it.
	res := Validate("model: does-not-exist")
	if !res.Valid {
		t.Errorf("Validate() = invalid, errors: %v", res.Errors)
	}
}
