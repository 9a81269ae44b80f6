package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doRequest(t *testing.T, handler http.HandlerFunc, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	if token != "" {
		req.Header.Set("token", token)
	}
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRequireUserSetsContext(t *testing.T) {
	m := NewTokenManager("test-secret")
	token, err := m.IssueUser("user-42")
	require.NoError(t, err)

	var gotID string
	handler := m.RequireUser(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = UserIDFromContext(r.Context())
		w.Write([]byte(`{"success":true}`))
	})

	rec := doRequest(t, handler, token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-42", gotID)
}

func TestRequireUserRejectsMissingToken(t *testing.T) {
	m := NewTokenManager("test-secret")
	called := false
	handler := m.RequireUser(func(w http.ResponseWriter, r *http.Request) { called = true })

	rec := doRequest(t, handler, "")
	assert.False(t, called)
	assert.Equal(t, http.StatusOK, rec.Code, "auth failures still respond 200")

	body := decodeEnvelope(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "AUTH", body["code"])
}

func TestRequireUserRejectsAdminToken(t *testing.T) {
	m := NewTokenManager("test-secret")
	token, err := m.IssueAdmin("admin@example.com")
	require.NoError(t, err)

	called := false
	handler := m.RequireUser(func(w http.ResponseWriter, r *http.Request) { called = true })

	rec := doRequest(t, handler, token)
	assert.False(t, called)
	assert.Equal(t, false, decodeEnvelope(t, rec)["success"])
}

func TestRequireAdminRejectsUserToken(t *testing.T) {
	m := NewTokenManager("test-secret")
	userToken, err := m.IssueUser("user-42")
	require.NoError(t, err)
	adminToken, err := m.IssueAdmin("admin@example.com")
	require.NoError(t, err)

	called := false
	handler := m.RequireAdmin(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.Write([]byte(`{"success":true}`))
	})

	rec := doRequest(t, handler, userToken)
	assert.False(t, called)
	assert.Equal(t, false, decodeEnvelope(t, rec)["success"])

	doRequest(t, handler, adminToken)
	assert.True(t, called)
}
