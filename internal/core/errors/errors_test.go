package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestDomainError(t *testing.T) {
	t.Run("New", func(t *testing.T) {
		err := New(CodeNotFound, "resource not found")
		if err.Error() != "[NOT_FOUND] resource not found" {
			t.Errorf("expected [NOT_FOUND] resource not found, got %s", err.Error())
		}
	})

	t.Run("Wrap", func(t *testing.T) {
		original := errors.New("permission denied")
		err := Wrap(original, CodeReadFailed, "read stylesheet")
		expected := "[READ_FAILED] read stylesheet: permission denied"
		if err.Error() != expected {
			t.Errorf("expected %s, got %s", expected, err.Error())
		}
		if !errors.Is(err, original) {
			t.Error("expected wrapped error to unwrap to the original")
		}
	})

	t.Run("IsCode", func(t *testing.T) {
		err := New(CodeValidationError, "invalid input")
		if !IsCode(err, CodeValidationError) {
			t.Error("expected IsCode to return true for CodeValidationError")
		}
		if IsCode(err, CodeNotFound) {
			t.Error("expected IsCode to return false for CodeNotFound")
		}
	})

	t.Run("IsCodeThroughFmtWrap", func(t *testing.T) {
		err := fmt.Errorf("lint a.css: %w", New(CodeParseFailed, "syntax error"))
		if !IsCode(err, CodeParseFailed) {
			t.Error("expected IsCode to see through fmt.Errorf wrapping")
		}
	})

	t.Run("AddContext", func(t *testing.T) {
		err := AddContext(New(CodeParseFailed, "syntax error"), CtxLine, 4)
		want := "[PARSE_FAILED] syntax error map[line:4]"
		if err.Error() != want {
			t.Errorf("expected %q, got %q", want, err.Error())
		}

		plain := AddContext(errors.New("boom"), CtxPath, "a.css")
		if !IsCode(plain, CodeInternal) {
			t.Error("expected plain errors to be wrapped as CodeInternal")
		}
	})
}

func TestIsAnalysisFailure(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{New(CodeNotFound, "x"), true},
		{New(CodeReadFailed, "x"), true},
		{New(CodeParseFailed, "x"), true},
		{New(CodeValidationError, "x"), false},
		{errors.New("plain"), false},
		{nil, false},
	}
	for _, tc := range cases {
		if got := IsAnalysisFailure(tc.err); got != tc.want {
			t.Errorf("IsAnalysisFailure(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}
