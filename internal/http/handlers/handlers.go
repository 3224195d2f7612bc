package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vantagecrm/crm-backend/internal/http/response"
	"github.com/vantagecrm/crm-backend/internal/platform/apierr"
	"github.com/vantagecrm/crm-backend/internal/platform/logger"
)

const codeInvalidRequest = "invalid_request"

const (
	dateLayout          = "2006-01-02"
	dateTimeLocalLayout = "2006-01-02T15:04:05"
)

// respondServiceError maps taxonomy errors onto their envelope and treats
// everything else as a 500.
func respondServiceError(c *gin.Context, log *logger.Logger, op string, err error) {
	var apiErr *apierr.Error
	if errors.As(err, &apiErr) {
		response.RespondError(c, apiErr.Status, apiErr.Code, apiErr.Err)
		return
	}
	if log != nil {
		log.Error(op+" failed", "error", err)
	}
	response.RespondError(c, http.StatusInternalServerError, "internal_error", err)
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil || id == uuid.Nil {
		response.RespondError(c, http.StatusBadRequest, codeInvalidRequest, fmt.Errorf("invalid %s", name))
		return uuid.Nil, false
	}
	return id, true
}

func parseDateQuery(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, codeInvalidRequest, fmt.Errorf("invalid %s: %q", name, raw))
		return time.Time{}, false
	}
	return t, true
}

// parseDateTimeQuery accepts RFC3339 or a local date-time without zone.
func parseDateTimeQuery(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	t, err := time.Parse(dateTimeLocalLayout, raw)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, codeInvalidRequest, fmt.Errorf("invalid %s: %q", name, raw))
		return time.Time{}, false
	}
	return t, true
}

func parseDecimalQuery(c *gin.Context, name string) (decimal.Decimal, bool) {
	raw := c.Query(name)
	d, err := decimal.NewFromString(raw)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, codeInvalidRequest, fmt.Errorf("invalid %s: %q", name, raw))
		return decimal.Decimal{}, false
	}
	return d, true
}
