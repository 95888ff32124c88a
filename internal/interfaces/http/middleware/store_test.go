package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shipflow/backend/internal/infrastructure/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// mockStoreValidator is a test implementation of StoreValidator
type mockStoreValidator struct {
	ValidStores map[string]*StoreInfo
	ShouldFail  bool
	FailError   error
}

func (m *mockStoreValidator) ValidateStore(storeID string) (*StoreInfo, error) {
	if m.ShouldFail {
		return nil, m.FailError
	}
	if info, exists := m.ValidStores[storeID]; exists {
		return info, nil
	}
	return nil, errors.New("store not found")
}

func TestStoreMiddleware_HeaderExtraction(t *testing.T) {
	tests := []struct {
		name           string
		storeID        string
		expectedStatus int
		expectedID     string
	}{
		{
			name:           "valid store ID in header",
			storeID:        uuid.New().String(),
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing store ID",
			storeID:        "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "invalid store ID format",
			storeID:        "invalid-uuid",
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(StoreMiddleware())

			var capturedStoreID string
			router.GET("/test", func(c *gin.Context) {
				capturedStoreID = GetStoreID(c)
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.storeID != "" {
				req.Header.Set(StoreHeaderKey, tt.storeID)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, tt.storeID, capturedStoreID)
			}
		})
	}
}

func TestStoreMiddleware_JWTExtraction(t *testing.T) {
	storeID := uuid.New().String()

	router := gin.New()

	// Simulate JWT middleware that sets store_id
	router.Use(func(c *gin.Context) {
		c.Set("jwt_store_id", storeID)
		c.Next()
	})
	router.Use(StoreMiddleware())

	var capturedStoreID string
	router.GET("/test", func(c *gin.Context) {
		capturedStoreID = GetStoreID(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, storeID, capturedStoreID)
}

func TestStoreMiddleware_JWTOverridesHeader(t *testing.T) {
	jwtStoreID := uuid.New().String()
	headerStoreID := uuid.New().String()

	router := gin.New()

	// JWT sets one store ID
	router.Use(func(c *gin.Context) {
		c.Set("jwt_store_id", jwtStoreID)
		c.Next()
	})
	router.Use(StoreMiddleware())

	var capturedStoreID string
	router.GET("/test", func(c *gin.Context) {
		capturedStoreID = GetStoreID(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	// Header sets a different store ID
	req.Header.Set(StoreHeaderKey, headerStoreID)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	// JWT should take priority over header
	assert.Equal(t, jwtStoreID, capturedStoreID)
}

func TestStoreMiddleware_SkipPaths(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		skipPaths      []string
		storeID        string
		expectedStatus int
	}{
		{
			name:           "health endpoint skipped",
			path:           "/health",
			skipPaths:      []string{"/health"},
			storeID:        "",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "api health endpoint skipped",
			path:           "/api/v1/health",
			skipPaths:      []string{"/api/v1/health"},
			storeID:        "",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "metrics endpoint skipped",
			path:           "/metrics",
			skipPaths:      []string{"/metrics"},
			storeID:        "",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "nested health path skipped",
			path:           "/health/ready",
			skipPaths:      []string{"/health"},
			storeID:        "",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "non-skipped path requires store",
			path:           "/api/test",
			skipPaths:      []string{"/health"},
			storeID:        "",
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			cfg := DefaultStoreConfig()
			cfg.SkipPaths = tt.skipPaths
			router.Use(StoreMiddlewareWithConfig(cfg))

			router.GET(tt.path, func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.storeID != "" {
				req.Header.Set(StoreHeaderKey, tt.storeID)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestStoreMiddleware_OptionalStore(t *testing.T) {
	router := gin.New()
	router.Use(OptionalStoreMiddleware())

	var capturedStoreID string
	router.GET("/test", func(c *gin.Context) {
		capturedStoreID = GetStoreID(c)
		c.Status(http.StatusOK)
	})

	// Request without store ID should succeed
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, capturedStoreID)
}

func TestStoreMiddleware_WithValidator(t *testing.T) {
	validStoreID := uuid.New().String()
	invalidStoreID := uuid.New().String()

	validator := &mockStoreValidator{
		ValidStores: map[string]*StoreInfo{
			validStoreID: {
				ID:   uuid.MustParse(validStoreID),
				Slug: "acme",
			},
		},
	}

	tests := []struct {
		name           string
		storeID        string
		expectedStatus int
		expectedSlug   string
	}{
		{
			name:           "valid store passes validation",
			storeID:        validStoreID,
			expectedStatus: http.StatusOK,
			expectedSlug:   "acme",
		},
		{
			name:           "invalid store fails validation",
			storeID:        invalidStoreID,
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			cfg := DefaultStoreConfig()
			cfg.Validator = validator
			router.Use(StoreMiddlewareWithConfig(cfg))

			var capturedSlug string
			router.GET("/test", func(c *gin.Context) {
				capturedSlug = GetStoreSlug(c)
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.Header.Set(StoreHeaderKey, tt.storeID)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, tt.expectedSlug, capturedSlug)
			}
		})
	}
}

func TestStoreMiddleware_SubdomainExtraction(t *testing.T) {
	// Note: The store ID for subdomain extraction returns the subdomain as the store slug,
	// which then needs to be resolved to a store ID by the validator
	// For this test, we test the extraction logic directly

	tests := []struct {
		name       string
		host       string
		baseDomain string
		expected   string
	}{
		{
			name:       "simple subdomain",
			host:       "acme.shipflow.io",
			baseDomain: "shipflow.io",
			expected:   "acme",
		},
		{
			name:       "subdomain with port",
			host:       "acme.shipflow.io:8080",
			baseDomain: "shipflow.io",
			expected:   "acme",
		},
		{
			name:       "no subdomain",
			host:       "shipflow.io",
			baseDomain: "shipflow.io",
			expected:   "",
		},
		{
			name:       "www subdomain ignored",
			host:       "www.shipflow.io",
			baseDomain: "shipflow.io",
			expected:   "",
		},
		{
			name:       "different base domain",
			host:       "acme.other.com",
			baseDomain: "shipflow.io",
			expected:   "",
		},
		{
			name:       "multi-level subdomain",
			host:       "app.acme.shipflow.io",
			baseDomain: "shipflow.io",
			expected:   "app",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := extractStoreFromSubdomain(tt.host, tt.baseDomain)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestValidateStoreIDFormat(t *testing.T) {
	tests := []struct {
		name      string
		storeID   string
		wantError bool
	}{
		{
			name:      "valid UUID",
			storeID:   uuid.New().String(),
			wantError: false,
		},
		{
			name:      "invalid UUID - too short",
			storeID:   "invalid",
			wantError: true,
		},
		{
			name:      "invalid UUID - wrong format",
			storeID:   "not-a-valid-uuid-format",
			wantError: true,
		},
		{
			name:      "empty string",
			storeID:   "",
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateStoreIDFormat(tt.storeID)
			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGetStoreID(t *testing.T) {
	storeID := uuid.New().String()

	router := gin.New()
	router.Use(StoreMiddleware())

	router.GET("/test", func(c *gin.Context) {
		// Test GetStoreID
		gotID := GetStoreID(c)
		assert.Equal(t, storeID, gotID)

		// Test GetStoreUUID
		gotUUID, err := GetStoreUUID(c)
		require.NoError(t, err)
		assert.Equal(t, uuid.MustParse(storeID), gotUUID)

		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(StoreHeaderKey, storeID)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMustGetStoreID_Panics(t *testing.T) {
	router := gin.New()
	// No store middleware, so no store_id in context

	router.GET("/test", func(c *gin.Context) {
		assert.Panics(t, func() {
			MustGetStoreID(c)
		})
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMustGetStoreUUID_Panics(t *testing.T) {
	router := gin.New()

	router.GET("/test", func(c *gin.Context) {
		assert.Panics(t, func() {
			MustGetStoreUUID(c)
		})
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDefaultStoreConfig(t *testing.T) {
	cfg := DefaultStoreConfig()

	assert.True(t, cfg.HeaderEnabled)
	assert.True(t, cfg.JWTEnabled)
	assert.False(t, cfg.SubdomainEnabled)
	assert.Empty(t, cfg.BaseDomain)
	assert.True(t, cfg.Required)
	assert.Nil(t, cfg.Validator)
	assert.Nil(t, cfg.Logger)
	assert.Contains(t, cfg.SkipPaths, "/health")
	assert.Contains(t, cfg.SkipPaths, "/metrics")
}

func TestStoreMiddleware_ContextPropagation(t *testing.T) {
	storeID := uuid.New().String()

	router := gin.New()
	router.Use(StoreMiddleware())

	router.GET("/test", func(c *gin.Context) {
		// Test that store ID is also available in the request context
		// via the logger package utility
		ctx := c.Request.Context()
		ctxStoreID := logger.GetStoreID(ctx)
		assert.Equal(t, storeID, ctxStoreID)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(StoreHeaderKey, storeID)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStoreMiddleware_DisabledMethods(t *testing.T) {
	storeID := uuid.New().String()

	t.Run("header disabled", func(t *testing.T) {
		router := gin.New()
		cfg := DefaultStoreConfig()
		cfg.HeaderEnabled = false
		cfg.Required = false
		router.Use(StoreMiddlewareWithConfig(cfg))

		var capturedStoreID string
		router.GET("/test", func(c *gin.Context) {
			capturedStoreID = GetStoreID(c)
			c.Status(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(StoreHeaderKey, storeID)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		// Header extraction disabled, so store ID should be empty
		assert.Empty(t, capturedStoreID)
	})

	t.Run("jwt disabled", func(t *testing.T) {
		router := gin.New()

		// Simulate JWT middleware
		router.Use(func(c *gin.Context) {
			c.Set("jwt_store_id", storeID)
			c.Next()
		})

		cfg := DefaultStoreConfig()
		cfg.JWTEnabled = false
		cfg.Required = false
		router.Use(StoreMiddlewareWithConfig(cfg))

		var capturedStoreID string
		router.GET("/test", func(c *gin.Context) {
			capturedStoreID = GetStoreID(c)
			c.Status(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		// JWT extraction disabled, so store ID should be empty
		assert.Empty(t, capturedStoreID)
	})
}

func TestStoreMiddleware_ValidatorError(t *testing.T) {
	storeID := uuid.New().String()
	validatorError := errors.New("database connection failed")

	validator := &mockStoreValidator{
		ShouldFail: true,
		FailError:  validatorError,
	}

	router := gin.New()
	cfg := DefaultStoreConfig()
	cfg.Validator = validator
	router.Use(StoreMiddlewareWithConfig(cfg))

	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(StoreHeaderKey, storeID)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
