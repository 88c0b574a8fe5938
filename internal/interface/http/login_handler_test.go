package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func doJSON(t *testing.T, env *testEnv, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	w := httptest.NewRecorder()
	env.Engine.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) (int, string) {
	t.Helper()
	var body struct {
		StatusCode int    `json:"statusCode"`
		Message    string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return body.StatusCode, body.Message
}

func TestLoginUnknownUser(t *testing.T) {
	env := newTestEnv(t.TempDir())

	w := doJSON(t, env, http.MethodPost, "/login", `{"email":"nobody@example.com","password":"password123"}`, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if code, msg := decodeEnvelope(t, w); code != 404 || msg != "User not found" {
		t.Errorf("body = %d %q", code, msg)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t.TempDir())
	env.seedUser("Ada", "Lovelace", "ada@example.com", "rightpassword")

	w := doJSON(t, env, http.MethodPost, "/login", `{"email":"ada@example.com","password":"wrongpassword"}`, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if code, msg := decodeEnvelope(t, w); code != 401 || msg != "Unauthorized" {
		t.Errorf("body = %d %q", code, msg)
	}
}

func TestLoginSuccess(t *testing.T) {
	env := newTestEnv(t.TempDir())
	env.seedUser("Ada", "Lovelace", "ada@example.com", "rightpassword")

	w := doJSON(t, env, http.MethodPost, "/login", `{"email":"ada@example.com","password":"rightpassword"}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var body struct {
		StatusCode int    `json:"statusCode"`
		Message    string `json:"message"`
		Token      string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Message != "Login successful" || body.Token == "" {
		t.Errorf("body = %+v", body)
	}
	if got := w.Header().Get("Authorization"); got != body.Token {
		t.Errorf("Authorization header = %q, want token", got)
	}

	claims, err := env.JWT.Parse(body.Token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.Email != "ada@example.com" || claims.FirstName != "Ada" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestLoginValidation(t *testing.T) {
	env := newTestEnv(t.TempDir())

	w := doJSON(t, env, http.MethodPost, "/login", `{"email":"not-an-email"}`, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	var body struct {
		StatusCode int               `json:"statusCode"`
		Errors     map[string]string `json:"errors"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := body.Errors["email"]; !ok {
		t.Errorf("missing email error: %+v", body.Errors)
	}
	if _, ok := body.Errors["password"]; !ok {
		t.Errorf("missing password error: %+v", body.Errors)
	}
}
