package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/odic/internal/directory"
	"github.com/dropDatabas3/odic/internal/http/controllers"
	"github.com/dropDatabas3/odic/internal/rate"
	"github.com/dropDatabas3/odic/internal/security/password"
	"github.com/dropDatabas3/odic/internal/store/memory"
)

func newTestServer(t *testing.T, limiter rate.Limiter) *httptest.Server {
	t.Helper()

	repos := memory.New()
	dir := directory.New(repos, password.Hasher{Cost: 4})

	handler := New(Deps{
		Realms:          controllers.NewRealmsController(dir),
		Users:           controllers.NewUsersController(dir),
		Clients:         controllers.NewClientsController(dir),
		Health:          controllers.NewHealthController(repos),
		RegisterLimiter: limiter,
	})

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestRealmLifecycleOverHTTP(t *testing.T) {
	srv := newTestServer(t, nil)

	// create
	resp := doJSON(t, http.MethodPost, srv.URL+"/v1/realms", map[string]string{
		"realm_id":     "acme",
		"display_name": "Acme Corp",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created map[string]any
	decode(t, resp, &created)
	assert.Equal(t, "acme", created["realm_id"])

	// duplicate -> 409
	resp = doJSON(t, http.MethodPost, srv.URL+"/v1/realms", map[string]string{"realm_id": "acme"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// malformed id -> 400
	resp = doJSON(t, http.MethodPost, srv.URL+"/v1/realms", map[string]string{"realm_id": "Not Valid!"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// get
	resp, err := http.Get(srv.URL + "/v1/realms/acme")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// patch display name
	newName := "Acme Incorporated"
	resp = doJSON(t, http.MethodPatch, srv.URL+"/v1/realms/acme", map[string]any{"display_name": newName})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var patched map[string]any
	decode(t, resp, &patched)
	assert.Equal(t, newName, patched["display_name"])

	// delete
	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/v1/realms/acme", nil)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	// second delete -> 404
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestRegisterLoginAndMembership(t *testing.T) {
	srv := newTestServer(t, nil)

	resp := doJSON(t, http.MethodPost, srv.URL+"/v1/realms", map[string]string{"realm_id": "acme"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// register
	resp = doJSON(t, http.MethodPost, srv.URL+"/v1/users", map[string]string{
		"name":     "Ada",
		"email":    "ada@example.com",
		"password": "s3cret-pass",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var user map[string]any
	decode(t, resp, &user)
	userID, _ := user["id"].(string)
	require.NotEmpty(t, userID)
	// el response nunca trae el digest
	_, hasDigest := user["password_hash"]
	assert.False(t, hasDigest)

	// duplicate email -> 409
	resp = doJSON(t, http.MethodPost, srv.URL+"/v1/users", map[string]string{
		"name":     "Ada Again",
		"email":    "ada@example.com",
		"password": "otra-cosa",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// login ok
	resp = doJSON(t, http.MethodPost, srv.URL+"/v1/users/login", map[string]string{
		"email":    "ada@example.com",
		"password": "s3cret-pass",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// password incorrecto y email desconocido dan el mismo 401
	resp = doJSON(t, http.MethodPost, srv.URL+"/v1/users/login", map[string]string{
		"email":    "ada@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodPost, srv.URL+"/v1/users/login", map[string]string{
		"email":    "nadie@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// add member: primera vez 201 changed=true, segunda 200 changed=false
	resp = doJSON(t, http.MethodPost, srv.URL+"/v1/realms/acme/users", map[string]string{"user_id": userID})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var membership map[string]any
	decode(t, resp, &membership)
	assert.Equal(t, true, membership["changed"])

	resp = doJSON(t, http.MethodPost, srv.URL+"/v1/realms/acme/users", map[string]string{"user_id": userID})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &membership)
	assert.Equal(t, false, membership["changed"])

	// members listing hidrata el usuario
	resp, err := http.Get(srv.URL + "/v1/realms/acme/users")
	require.NoError(t, err)
	var members []map[string]any
	decode(t, resp, &members)
	require.Len(t, members, 1)
	assert.Equal(t, "ada@example.com", members[0]["email"])

	// remove member
	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/v1/realms/acme/users/"+userID, nil)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &membership)
	assert.Equal(t, true, membership["changed"])
}

func TestClientsScopedByRealm(t *testing.T) {
	srv := newTestServer(t, nil)

	for _, realm := range []string{"acme", "globex"} {
		resp := doJSON(t, http.MethodPost, srv.URL+"/v1/realms", map[string]string{"realm_id": realm})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	resp := doJSON(t, http.MethodPost, srv.URL+"/v1/realms/acme/clients", map[string]string{
		"name":        "portal",
		"description": "Customer portal",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var client map[string]any
	decode(t, resp, &client)
	clientID, _ := client["id"].(string)
	require.NotEmpty(t, clientID)

	// visible en su realm
	resp, err := http.Get(srv.URL + "/v1/realms/acme/clients/" + clientID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// invisible desde otro realm
	resp, err = http.Get(srv.URL + "/v1/realms/globex/clients/" + clientID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// realm inexistente al crear -> 404
	resp = doJSON(t, http.MethodPost, srv.URL+"/v1/realms/nope/clients", map[string]string{"name": "x"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestInvalidJSONAndContentType(t *testing.T) {
	srv := newTestServer(t, nil)

	// sin Content-Type
	resp, err := http.Post(srv.URL+"/v1/realms", "text/plain", bytes.NewBufferString("{}"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// JSON roto
	resp, err = http.Post(srv.URL+"/v1/realms", "application/json", bytes.NewBufferString("{nope"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestRegisterRateLimited(t *testing.T) {
	limiter := rate.NewMemoryLimiter(2, time.Hour)
	srv := newTestServer(t, limiter)

	codes := make([]int, 0, 3)
	for i, email := range []string{"a@x.test", "b@x.test", "c@x.test"} {
		resp := doJSON(t, http.MethodPost, srv.URL+"/v1/users", map[string]string{
			"name":     "u",
			"email":    email,
			"password": "password123",
		})
		codes = append(codes, resp.StatusCode)
		if resp.StatusCode == http.StatusTooManyRequests && i == 2 {
			assert.NotEmpty(t, resp.Header.Get("Retry-After"))
		}
		resp.Body.Close()
	}

	assert.Equal(t, []int{http.StatusCreated, http.StatusCreated, http.StatusTooManyRequests}, codes)

	// login no comparte el límite del registro
	resp := doJSON(t, http.MethodPost, srv.URL+"/v1/users/login", map[string]string{
		"email":    "a@x.test",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestRolesNotImplemented(t *testing.T) {
	srv := newTestServer(t, nil)

	resp := doJSON(t, http.MethodPost, srv.URL+"/v1/realms", map[string]string{"realm_id": "acme"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// ruta inexistente -> 404 con shape de error estándar
	resp, err := http.Get(srv.URL + "/v1/realms/acme/roles")
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	var body map[string]any
	decode(t, resp, &body)
	assert.Equal(t, "NOT_FOUND", body["code"])
}
