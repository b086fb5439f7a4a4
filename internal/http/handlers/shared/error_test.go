package shared

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/land-deals/backend/internal/http/response"
	"github.com/land-deals/backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func respond(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/payments", nil)
	RespondError(c, err)
	return recorder
}

func TestRespondErrorSplitMismatchesAreBadRequests(t *testing.T) {
	cases := []error{
		&service.SplitPercentageError{Total: decimal.RequireFromString("90")},
		&service.SplitAmountError{
			PaymentAmount: decimal.RequireFromString("1000"),
			PartiesTotal:  decimal.RequireFromString("900"),
		},
	}
	for _, cause := range cases {
		recorder := respond(t, cause)
		if recorder.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %T, got %d", cause, recorder.Code)
		}
		var body response.Response
		if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
			t.Fatalf("parse body: %v", err)
		}
		if body.StatusCode != response.CodeUnprocessable {
			t.Fatalf("expected business code %d, got %d", response.CodeUnprocessable, body.StatusCode)
		}
	}
}

func TestRespondErrorNotFound(t *testing.T) {
	recorder := respond(t, service.ErrPaymentNotFound)
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", recorder.Code)
	}
}
