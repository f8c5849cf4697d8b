package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"pinfood/internal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signTestToken(t *testing.T, secret string, userID uint, issuer, audience string, exp time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"iss": issuer,
		"aud": audience,
		"exp": time.Now().Add(exp).Unix(),
		"jti": "test-jti-valid-length",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	str, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return str
}

func TestServer_AuthRequired(t *testing.T) {
	secret := testJWTSecret
	s := &Server{
		config: &config.Config{JWTSecret: secret},
	}
	app := fiber.New()

	app.Get("/protected", s.AuthRequired(audienceUser), func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"userID": c.Locals("userID")})
	})
	app.Get("/either", s.AuthRequired(audienceUser, audienceRestaurant), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	tests := []struct {
		name           string
		target         string
		authHeader     string
		tokenParam     string
		expectedStatus int
	}{
		{
			name:           "Valid Token",
			target:         "/protected",
			authHeader:     "Bearer " + signTestToken(t, secret, 123, tokenIssuer, audienceUser, time.Hour),
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Valid Token via Query Param",
			target:         "/protected",
			tokenParam:     signTestToken(t, secret, 123, tokenIssuer, audienceUser, time.Hour),
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Expired Token",
			target:         "/protected",
			authHeader:     "Bearer " + signTestToken(t, secret, 123, tokenIssuer, audienceUser, -time.Hour),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Invalid Issuer",
			target:         "/protected",
			authHeader:     "Bearer " + signTestToken(t, secret, 123, "wrong-issuer", audienceUser, time.Hour),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Restaurant Token On User Route",
			target:         "/protected",
			authHeader:     "Bearer " + signTestToken(t, secret, 123, tokenIssuer, audienceRestaurant, time.Hour),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Restaurant Token On Shared Route",
			target:         "/either",
			authHeader:     "Bearer " + signTestToken(t, secret, 123, tokenIssuer, audienceRestaurant, time.Hour),
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Unknown Audience",
			target:         "/protected",
			authHeader:     "Bearer " + signTestToken(t, secret, 123, tokenIssuer, "other-client", time.Hour),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Missing Header and Param",
			target:         "/protected",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Malformed Bearer Format",
			target:         "/protected",
			authHeader:     "NotBearer xyz",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Wrong Secret",
			target:         "/protected",
			authHeader:     "Bearer " + signTestToken(t, "another-secret-key-9876543210987654321098765432", 123, tokenIssuer, audienceUser, time.Hour),
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := tt.target
			if tt.tokenParam != "" {
				target += "?token=" + tt.tokenParam
			}
			req := httptest.NewRequest(http.MethodGet, target, nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			_ = resp.Body.Close()
		})
	}
}

func TestServer_AuthRequired_RevokedToken(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	s := &Server{
		config: &config.Config{JWTSecret: testJWTSecret},
		redis:  rdb,
	}
	app := fiber.New()
	app.Get("/protected", s.AuthRequired(audienceUser), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	token := signTestToken(t, testJWTSecret, 42, tokenIssuer, audienceUser, time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	// Blacklist the jti and the same token stops working.
	require.NoError(t, rdb.Set(context.Background(), "blacklist:test-jti-valid-length", "1", time.Hour).Err())

	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()
}
