package services

import (
	"errors"
	"testing"

	"github.com/vantagecrm/crm-backend/internal/platform/apierr"
)

func assertAPIError(t *testing.T, err error, code string) *apierr.Error {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *apierr.Error, got %T: %v", err, err)
	}
	if apiErr.Code != code {
		t.Fatalf("expected code %s, got %s", code, apiErr.Code)
	}
	return apiErr
}
