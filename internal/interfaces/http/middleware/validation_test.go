package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/smartbill/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type checkoutPayload struct {
	CustomerName   string `json:"customerName" binding:"required"`
	CustomerMobile string `json:"customerMobile" binding:"required,mobile"`
	PaymentMode    string `json:"paymentMode" binding:"required,oneof=CASH CARD UPI"`
}

func bindPayload(t *testing.T, body string) error {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var payload checkoutPayload
	return c.ShouldBindJSON(&payload)
}

func TestSetupValidatorReportsWireFieldNames(t *testing.T) {
	SetupValidator()

	err := bindPayload(t, `{"customerMobile":"9876543210","paymentMode":"CASH"}`)
	require.Error(t, err)

	resp := FormatValidationErrors(err, "req-1")
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, "req-1", resp.Error.RequestID)
	require.Len(t, resp.Error.Details, 1)
	assert.Equal(t, "customerName", resp.Error.Details[0].Field)
	assert.Equal(t, "This field is required", resp.Error.Details[0].Message)
}

func TestMobileTagRejectsShortNumbers(t *testing.T) {
	SetupValidator()

	err := bindPayload(t, `{"customerName":"Priya","customerMobile":"12345","paymentMode":"CASH"}`)
	require.Error(t, err)

	resp := FormatValidationErrors(err, "")
	require.NotNil(t, resp.Error)
	require.Len(t, resp.Error.Details, 1)
	assert.Equal(t, "customerMobile", resp.Error.Details[0].Field)
	assert.Equal(t, "Must be a 10-digit mobile number", resp.Error.Details[0].Message)
}

func TestOneofMessageListsChoices(t *testing.T) {
	SetupValidator()

	err := bindPayload(t, `{"customerName":"Priya","customerMobile":"9876543210","paymentMode":"CHEQUE"}`)
	require.Error(t, err)

	resp := FormatValidationErrors(err, "")
	require.NotNil(t, resp.Error)
	require.Len(t, resp.Error.Details, 1)
	assert.Equal(t, "Must be one of: CASH CARD UPI", resp.Error.Details[0].Message)
}

func TestFormatValidationErrorsPassesThroughPlainErrors(t *testing.T) {
	resp := FormatValidationErrors(errors.New("unexpected EOF"), "req-2")
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeBadRequest, resp.Error.Code)
	assert.Equal(t, "unexpected EOF", resp.Error.Message)
	assert.Empty(t, resp.Error.Details)
}
