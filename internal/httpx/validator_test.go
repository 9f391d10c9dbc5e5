package httpx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateStruct_ISBN(t *testing.T) {
	type req struct {
		ISBN string `validate:"required,isbn"`
	}

	tests := []struct {
		name  string
		isbn  string
		valid bool
	}{
		{"valid isbn-13", "9780134190440", true},
		{"valid isbn-13 with hyphens", "978-0-13-419044-0", true},
		{"valid isbn-10", "0134190440", true},
		{"valid isbn-10 with X check digit", "080442957X", true},
		{"too short", "12345", false},
		{"letters", "abcdefghijklm", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			details := ValidateStruct(req{ISBN: tt.isbn})
			if tt.valid {
				assert.Empty(t, details)
			} else {
				assert.NotEmpty(t, details)
			}
		})
	}
}

func TestValidateStruct_PasswordStrength(t *testing.T) {
	type req struct {
		Password string `validate:"required,password_strength"`
	}

	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{"strong", "Secret123", true},
		{"too short", "Ab1", false},
		{"no uppercase", "secret123", false},
		{"no lowercase", "SECRET123", false},
		{"no number", "SecretPass", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			details := ValidateStruct(req{Password: tt.password})
			if tt.valid {
				assert.Empty(t, details)
			} else {
				assert.NotEmpty(t, details)
			}
		})
	}
}

func TestValidateStruct_Datetime(t *testing.T) {
	type req struct {
		LoanDt string `validate:"required,datetime=2006-01-02"`
	}

	assert.Empty(t, ValidateStruct(req{LoanDt: "2024-01-01"}))
	assert.NotEmpty(t, ValidateStruct(req{LoanDt: "01/01/2024"}))
	assert.NotEmpty(t, ValidateStruct(req{LoanDt: "2024-13-40"}))
}

func TestValidateStruct_FieldNamesAreLowerCamel(t *testing.T) {
	type req struct {
		Username string `validate:"required"`
	}

	details := ValidateStruct(req{})
	assert.Len(t, details, 1)
	assert.Equal(t, "username", details[0].Field)
}
