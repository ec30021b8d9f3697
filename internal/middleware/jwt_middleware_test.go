package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(JWTAuthMiddleware())
	r.GET("/whoami", func(c *gin.Context) {
		c.MustGet("user_id")
		c.Status(http.StatusOK)
	})
	return r
}

func signTestToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestJWTAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r := newAuthRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthMiddlewareRejectsBadSignature(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r := newAuthRouter()

	signed := signTestToken(t, "wrong-secret", jwt.MapClaims{
		"user_id": uuid.New().String(),
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthMiddlewareAcceptsValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	gin.SetMode(gin.TestMode)
	var seen uuid.UUID
	r := gin.New()
	r.Use(JWTAuthMiddleware())
	r.GET("/whoami", func(c *gin.Context) {
		seen = c.MustGet("user_id").(uuid.UUID)
		c.Status(http.StatusOK)
	})

	userID := uuid.New()
	signed := signTestToken(t, "test-secret", jwt.MapClaims{
		"user_id": userID.String(),
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID, seen)
}

func TestActiveOrganizationHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)

	orgID := uuid.New()
	cases := []struct {
		name   string
		header string
		want   *uuid.UUID
	}{
		{"absent", "", nil},
		{"malformed", "not-a-uuid", nil},
		{"valid", orgID.String(), &orgID},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				c.Request.Header.Set("X-Active-Organization", tc.header)
			}

			got := ActiveOrganization(c)
			if tc.want == nil {
				assert.Nil(t, got)
			} else {
				require.NotNil(t, got)
				assert.Equal(t, *tc.want, *got)
			}
		})
	}
}
