package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/segyhp/kos-management/internal/domain"
)

func TestTokenManager_IssueAndVerify(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	token, expiresAt, err := tm.Issue(&domain.User{ID: 42, Name: "Siti", Role: domain.RoleAdmin})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "Siti", claims.Name)
	assert.True(t, claims.IsAdmin())
}

func TestTokenManager_Rejects(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	token, _, err := tm.Issue(&domain.User{ID: 1, Role: domain.RoleAdmin})
	require.NoError(t, err)

	other := NewTokenManager("another-secret", time.Hour)
	_, err = other.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := NewTokenManager("test-secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, _, err := expired.Issue(&domain.User{ID: 1, Role: domain.RoleAdmin})
	require.NoError(t, err)
	_, err = tm.Verify(old)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = tm.Verify("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRequireAdmin(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	adminToken, _, _ := tm.Issue(&domain.User{ID: 7, Name: "Ani", Role: domain.RoleAdmin})
	staffToken, _, _ := tm.Issue(&domain.User{ID: 8, Name: "Dewi", Role: domain.RoleStaff})

	var seen *Claims
	handler := RequireAdmin(tm)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = FromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer garbage", http.StatusUnauthorized},
		{"staff token", "Bearer " + staffToken, http.StatusForbidden},
		{"admin token", "Bearer " + adminToken, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/admin/notifications", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}

	require.NotNil(t, seen)
	assert.Equal(t, int64(7), seen.UserID)
}
