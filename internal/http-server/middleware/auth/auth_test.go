package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stagepass/internal/http-server/middleware/auth"
	"stagepass/internal/lib/logger/handlers/slogdiscard"
	"stagepass/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	raw, err := token.SignedString([]byte(secret))
	require.NoError(t, err)

	return raw
}

func TestAuthMiddleware(t *testing.T) {
	cases := []struct {
		name       string
		header     string
		wantStatus int
		wantUser   models.User
	}{
		{
			name: "Valid token",
			header: "Bearer " + signToken(t, jwt.MapClaims{
				"sub":   "u1",
				"email": "me@example.com",
				"role":  models.RoleUser,
				"exp":   time.Now().Add(time.Hour).Unix(),
			}),
			wantStatus: http.StatusOK,
			wantUser:   models.User{ID: "u1", Email: "me@example.com", Role: models.RoleUser},
		},
		{
			name:       "Missing header",
			header:     "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "Not bearer",
			header:     "Basic dXNlcjpwYXNz",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "Garbage token",
			header:     "Bearer not.a.token",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "Expired token",
			header: "Bearer " + signToken(t, jwt.MapClaims{
				"sub": "u1",
				"exp": time.Now().Add(-time.Hour).Unix(),
			}),
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var gotUser models.User
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUser, _ = auth.UserFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			mw := auth.New(slogdiscard.NewDiscardLogger(), secret)

			req := httptest.NewRequest(http.MethodGet, "/payments/my-bookings", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}

			rr := httptest.NewRecorder()
			mw(next).ServeHTTP(rr, req)

			require.Equal(t, tc.wantStatus, rr.Code)
			if tc.wantStatus == http.StatusOK {
				assert.Equal(t, tc.wantUser, gotUser)
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("Admin passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/bookings", nil)
		req = req.WithContext(auth.WithUser(req.Context(), models.User{ID: "a1", Role: models.RoleAdmin}))

		rr := httptest.NewRecorder()
		auth.RequireAdmin(next).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("User rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/bookings", nil)
		req = req.WithContext(auth.WithUser(req.Context(), models.User{ID: "u1", Role: models.RoleUser}))

		rr := httptest.NewRecorder()
		auth.RequireAdmin(next).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("No user rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/bookings", nil)

		rr := httptest.NewRecorder()
		auth.RequireAdmin(next).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})
}
