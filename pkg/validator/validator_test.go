package validator_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgvalidator "github.com/bookmountain/adelaide-uni-market-place/pkg/validator"
)

type registration struct {
	Email       string `json:"email"        validate:"required,email"`
	DisplayName string `json:"display_name" validate:"required,max=10"`
	CategoryID  string `json:"category_id"  validate:"omitempty,uuid"`
	Age         int    `json:"age"          validate:"omitempty,gte=16,lte=120"`
	Role        string `form:"role"         validate:"omitempty,oneof=student staff"`
	internal    string
}

func TestFormatValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		in    registration
		field string
		want  string
	}{
		{"required", registration{DisplayName: "sam"}, "email", "This field is required"},
		{"email", registration{Email: "nope", DisplayName: "sam"}, "email", "Must be a valid email address"},
		{"max", registration{Email: "a1234567@adelaide.edu.au", DisplayName: "a very long name"}, "display_name", "Maximum length is 10"},
		{"uuid", registration{Email: "a1234567@adelaide.edu.au", DisplayName: "sam", CategoryID: "x"}, "category_id", "Must be a valid UUID"},
		{"gte", registration{Email: "a1234567@adelaide.edu.au", DisplayName: "sam", Age: 12}, "age", "Must be greater than or equal to 16"},
		{"form tag", registration{Email: "a1234567@adelaide.edu.au", DisplayName: "sam", Role: "admin"}, "role", "Must be one of: student staff"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := pkgvalidator.Validate(&tt.in)
			require.Error(t, err)
			assert.Equal(t, tt.want, pkgvalidator.FormatValidationErrors(err)[tt.field])
		})
	}

	ok := registration{Email: "a1234567@adelaide.edu.au", DisplayName: "sam", internal: "x"}
	assert.NoError(t, pkgvalidator.Validate(&ok))
	assert.Empty(t, pkgvalidator.FormatValidationErrors(http.ErrNoCookie))
}

type priced struct {
	Price decimal.Decimal `json:"price" validate:"money"`
}

func TestValidate_Money(t *testing.T) {
	tests := map[string]bool{
		"45":     true,
		"620.00": true,
		"0.01":   true,
		"0":      false,
		"-5.00":  false,
		"1.005":  false,

		"9999999999999999.99":     true,
		"10000000000000000":       false,
		"1e20":                    false,
		"99999999999999999999.99": false,
	}
	for price, valid := range tests {
		t.Run(price, func(t *testing.T) {
			err := pkgvalidator.Validate(&priced{Price: decimal.RequireFromString(price)})
			if valid {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, pkgvalidator.FormatValidationErrors(err)["price"], "positive amount")
		})
	}
}

type listingReq struct {
	CategoryID string          `json:"category_id" validate:"required,uuid"`
	Title      string          `json:"title"       validate:"required,max=160"`
	Price      decimal.Decimal `json:"price"       validate:"money"`
}

func TestValidateRequest(t *testing.T) {
	const category = "550e8400-e29b-41d4-a716-446655440000"

	t.Run("valid", func(t *testing.T) {
		body := `{"category_id":"` + category + `","title":"Desk lamp","price":"12.50"}`
		w := httptest.NewRecorder()
		req, ok := pkgvalidator.ValidateRequest[listingReq](w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
		require.True(t, ok, w.Body.String())
		assert.Equal(t, "Desk lamp", req.Title)
		assert.True(t, req.Price.Equal(decimal.RequireFromString("12.5")))
	})

	tests := []struct {
		name   string
		body   string
		limit  int64
		status int
		errMsg string
		field  string
	}{
		{"malformed", "{bad json", 0, http.StatusBadRequest, "Invalid JSON", ""},
		{"empty", "", 0, http.StatusBadRequest, "Invalid JSON: empty body", ""},
		{"missing field", `{"title":"Desk lamp","price":"12.50"}`, 0, http.StatusUnprocessableEntity, "Validation failed", "category_id"},
		{"zero price", `{"category_id":"` + category + `","title":"Desk lamp","price":"0"}`, 0, http.StatusUnprocessableEntity, "Validation failed", "price"},
		{"too large", `{"category_id":"` + category + `","title":"` + strings.Repeat("x", 100) + `"}`, 32, http.StatusRequestEntityTooLarge, "Request body too large", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			if tt.limit > 0 {
				r.Body = http.MaxBytesReader(w, r.Body, tt.limit)
			}

			req, ok := pkgvalidator.ValidateRequest[listingReq](w, r)
			assert.False(t, ok)
			assert.Nil(t, req)
			assert.Equal(t, tt.status, w.Code)

			var body struct {
				Error  string            `json:"error"`
				Fields map[string]string `json:"fields"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.errMsg, body.Error)
			if tt.field != "" {
				assert.Contains(t, body.Fields, tt.field)
			}
		})
	}
}
