package validator

import "testing"

func TestValidateAcceptsWellFormedConfig(t *testing.T) {
	v, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	data := map[string]interface{}{
		"output":     "emacs",
		"verbose":    1,
		"counting":   "total",
		"lineLength": 80,
		"extensions": []interface{}{"vhd", "vhdl"},
	}
	if err := v.Validate(data); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestValidateAllowsMissingFields(t *testing.T) {
	v, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := v.Validate(map[string]interface{}{"output": "vs7"}); err != nil {
		t.Fatalf("expected open struct to allow missing fields, got %v", err)
	}
}

func TestValidateRejectsUnknownOutputFormat(t *testing.T) {
	v, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	err = v.Validate(map[string]interface{}{"output": "xml2"})
	if err == nil {
		t.Fatal("expected validation error for unrecognized output format")
	}
}

func TestValidateRejectsNegativeLineLength(t *testing.T) {
	v, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	err = v.Validate(map[string]interface{}{"lineLength": -1})
	if err == nil {
		t.Fatal("expected validation error for negative lineLength")
	}
}

func TestValidateRejectsUnknownCountingMode(t *testing.T) {
	v, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	err = v.Validate(map[string]interface{}{"counting": "verbose"})
	if err == nil {
		t.Fatal("expected validation error for unrecognized counting mode")
	}
}

func TestValidationErrorsReportsEachFailure(t *testing.T) {
	v, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	errs := v.ValidationErrors(map[string]interface{}{
		"output":   "xml2",
		"counting": "verbose",
	})
	if len(errs) == 0 {
		t.Fatal("expected at least one reported error")
	}
}
