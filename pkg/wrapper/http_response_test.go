package wrapper

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meetnear/broadcast-service/pkg/helper"
	"github.com/meetnear/broadcast-service/pkg/shared"
)

func TestNewHTTPResponse(t *testing.T) {
	t.Run("Testcase #1: Response data list with meta", func(t *testing.T) {
		meta := shared.Meta{Page: 1, Limit: 10, TotalRecords: 12, TotalPages: 2}
		resp := NewHTTPResponse(http.StatusOK, "Success", []string{"a", "b"}, meta)

		assert.True(t, resp.Success)
		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Equal(t, meta, resp.Meta)
		assert.Equal(t, []string{"a", "b"}, resp.Data)
	})

	t.Run("Testcase #2: Response single error", func(t *testing.T) {
		resp := NewHTTPResponse(http.StatusInternalServerError, "Something went wrong", errors.New("db error"))

		assert.False(t, resp.Success)
		assert.Equal(t, map[string]string{"detail": "db error"}, resp.Errors)
	})

	t.Run("Testcase #3: Response multi error", func(t *testing.T) {
		mErr := helper.NewMultiError()
		mErr.Append("title", errors.New("required"))
		mErr.Append("endTime", errors.New("must be after startTime"))

		resp := NewHTTPResponse(http.StatusBadRequest, "Failed validate payload", mErr)

		assert.False(t, resp.Success)
		assert.Equal(t, map[string]string{"title": "required", "endTime": "must be after startTime"}, resp.Errors)
	})

	t.Run("Testcase #4: Write json to response writer", func(t *testing.T) {
		rec := httptest.NewRecorder()
		err := NewHTTPResponse(http.StatusCreated, "Broadcast created", map[string]string{"id": "abc"}).JSON(rec)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, helper.HeaderMIMEApplicationJSON, rec.Header().Get(helper.HeaderContentType))
		assert.Contains(t, rec.Body.String(), `"success":true`)
		assert.Contains(t, rec.Body.String(), `"id":"abc"`)
	})
}
