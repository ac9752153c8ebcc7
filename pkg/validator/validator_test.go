package validator

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/vinylvault/storefront/pkg/errors"
)

type navigateBody struct {
	Section string `json:"section" validate:"required,oneof=home catalog about shipping contacts"`
}

type addBody struct {
	RecordID int    `json:"record_id" validate:"required,gte=1,lte=100000"`
	Note     string `json:"note" validate:"max=8"`
}

type filterBody struct {
	Genre string `json:"genre" validate:"max=100,printable"`
	Year  int    `json:"year" validate:"min=1900"`
}

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	return valErr.Fields()
}

func TestValidate_Success(t *testing.T) {
	assert.NoError(t, Validate(navigateBody{Section: "about"}))
	assert.NoError(t, Validate(addBody{RecordID: 3}))
	assert.NoError(t, Validate(filterBody{Genre: "Progressive Rock", Year: 1973}))
}

func TestValidate_MissingRequired(t *testing.T) {
	assert.Equal(t, "is required", fieldErrors(t, Validate(addBody{}))["record_id"])
}

func TestValidate_OneOf(t *testing.T) {
	err := Validate(navigateBody{Section: "checkout"})

	assert.Equal(t, "must be one of: home catalog about shipping contacts", fieldErrors(t, err)["section"])
	assert.Contains(t, err.Error(), "field 'section'")
}

func TestValidate_RangeAndLength(t *testing.T) {
	fields := fieldErrors(t, Validate(addBody{RecordID: 100001, Note: "far too long"}))

	assert.Equal(t, "must be less than or equal to 100000", fields["record_id"])
	assert.Equal(t, "must be at most 8 characters", fields["note"])
}

func TestValidate_Printable(t *testing.T) {
	fields := fieldErrors(t, Validate(filterBody{Genre: "Rock\x00", Year: 1973}))
	assert.Equal(t, "must not contain control characters", fields["genre"])
}

func TestValidate_NumericMin(t *testing.T) {
	fields := fieldErrors(t, Validate(filterBody{Year: 1850}))
	assert.Equal(t, "must be at least 1900", fields["year"])
}

func TestDecodeAndValidate(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"record_id": 5}`))
	var body addBody
	require.NoError(t, DecodeAndValidate(req, &body))
	assert.Equal(t, 5, body.RecordID)
}

func TestDecodeAndValidate_TooLarge(t *testing.T) {
	body := `{"record_id":5,"note":"` + strings.Repeat("a", MaxBodyBytes) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))

	var dst addBody
	err := DecodeAndValidate(req, &dst)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodePayloadTooLarge, appErr.Code)
	assert.Equal(t, "request body exceeds 65536 bytes", appErr.Message)
}

func TestDecodeAndValidate_Rejects(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"bad json", `{"record_id":`, "decode request body"},
		{"empty", ``, "body is empty"},
		{"unknown field", `{"record_id":5,"qty":2}`, "unknown field"},
		{"trailing data", `{"record_id":5}{"record_id":6}`, "unexpected data"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var body addBody
			err := DecodeAndValidate(req, &body)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
