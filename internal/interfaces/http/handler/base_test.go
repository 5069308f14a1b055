package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vansales/backend/internal/domain/shared"
	"github.com/vansales/backend/internal/interfaces/http/dto"
	"github.com/vansales/backend/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)
	return c, w
}

func TestGetTenantID(t *testing.T) {
	t.Run("from jwt claims", func(t *testing.T) {
		c, _ := newTestContext()
		tenantID := uuid.New()
		c.Set(middleware.JWTTenantIDKey, tenantID.String())

		got, err := getTenantID(c)
		require.NoError(t, err)
		assert.Equal(t, tenantID, got)
	})

	t.Run("header fallback", func(t *testing.T) {
		c, _ := newTestContext()
		tenantID := uuid.New()
		c.Request.Header.Set("X-Tenant-ID", tenantID.String())

		got, err := getTenantID(c)
		require.NoError(t, err)
		assert.Equal(t, tenantID, got)
	})

	t.Run("jwt claims win over header", func(t *testing.T) {
		c, _ := newTestContext()
		fromClaims := uuid.New()
		c.Set(middleware.JWTTenantIDKey, fromClaims.String())
		c.Request.Header.Set("X-Tenant-ID", uuid.New().String())

		got, err := getTenantID(c)
		require.NoError(t, err)
		assert.Equal(t, fromClaims, got)
	})

	t.Run("error when absent", func(t *testing.T) {
		c, _ := newTestContext()

		_, err := getTenantID(c)
		assert.Error(t, err)
	})

	t.Run("error on malformed id", func(t *testing.T) {
		c, _ := newTestContext()
		c.Request.Header.Set("X-Tenant-ID", "not-a-uuid")

		_, err := getTenantID(c)
		assert.Error(t, err)
	})
}

func TestGetUserID(t *testing.T) {
	t.Run("from jwt claims", func(t *testing.T) {
		c, _ := newTestContext()
		userID := uuid.New()
		c.Set(middleware.JWTUserIDKey, userID.String())

		got := getUserID(c)
		require.NotNil(t, got)
		assert.Equal(t, userID, *got)
	})

	t.Run("nil when absent", func(t *testing.T) {
		c, _ := newTestContext()
		assert.Nil(t, getUserID(c))
	})

	t.Run("nil on malformed id", func(t *testing.T) {
		c, _ := newTestContext()
		c.Request.Header.Set("X-User-ID", "garbage")
		assert.Nil(t, getUserID(c))
	})
}

func TestBaseHandlerResponses(t *testing.T) {
	h := &BaseHandler{}

	t.Run("success", func(t *testing.T) {
		c, w := newTestContext()
		h.Success(c, map[string]string{"key": "value"})

		assert.Equal(t, http.StatusOK, w.Code)
		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
	})

	t.Run("success with meta", func(t *testing.T) {
		c, w := newTestContext()
		h.SuccessWithMeta(c, []string{"a", "b"}, 42, 2, 20)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Meta)
		assert.Equal(t, int64(42), resp.Meta.Total)
		assert.Equal(t, 2, resp.Meta.Page)
	})

	t.Run("created", func(t *testing.T) {
		c, w := newTestContext()
		h.Created(c, map[string]string{"id": "1"})
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("no content", func(t *testing.T) {
		c, w := newTestContext()
		h.NoContent(c)
		c.Writer.WriteHeaderNow()
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestHandleError(t *testing.T) {
	h := &BaseHandler{}

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "not found maps to 404",
			err:        shared.NewDomainError("ACCOUNT_NOT_FOUND", "Account not found"),
			wantStatus: http.StatusNotFound,
			wantCode:   "ACCOUNT_NOT_FOUND",
		},
		{
			name:       "duplicate maps to 409",
			err:        shared.NewDomainError("DUPLICATE_ACCOUNT_CODE", "Code already used"),
			wantStatus: http.StatusConflict,
			wantCode:   "DUPLICATE_ACCOUNT_CODE",
		},
		{
			name:       "already reversed maps to 409",
			err:        shared.NewDomainError("ALREADY_REVERSED", "Entry already reversed"),
			wantStatus: http.StatusConflict,
			wantCode:   "ALREADY_REVERSED",
		},
		{
			name:       "unbalanced entry maps to 422",
			err:        shared.NewDomainError("UNBALANCED_ENTRY", "Debits must equal credits"),
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "UNBALANCED_ENTRY",
		},
		{
			name:       "invalid input maps to 400",
			err:        shared.NewDomainError("INVALID_COST_METHOD", "Costing method is not valid"),
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_COST_METHOD",
		},
		{
			name:       "unknown error maps to 500",
			err:        errors.New("database exploded"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   dto.ErrCodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext()
			h.HandleError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			var resp dto.Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}

	t.Run("internal errors never leak details", func(t *testing.T) {
		c, w := newTestContext()
		h.HandleError(c, errors.New("pq: connection refused host=10.0.0.5"))

		assert.NotContains(t, w.Body.String(), "10.0.0.5")
	})
}
