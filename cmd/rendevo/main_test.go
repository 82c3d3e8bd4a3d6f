package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	rendevo "github.com/rendevo/client-go"
)

const userJSON = `{"id":"u1","email":"ada@example.com","firstName":"Ada","lastName":"Lovelace","isActive":true,"emailVerifiedAt":null,"role":"ADMIN","createdAt":"2024-01-01T00:00:00.000Z","updatedAt":"2024-01-01T00:00:00.000Z"}`

// fakeAPI records requests and answers from a fixed route table.
type fakeAPI struct {
	mu       sync.Mutex
	routes   map[string]string
	lastAuth string
	lastBody map[string]any
}

func newFakeAPI(t *testing.T, routes map[string]string) (*fakeAPI, string) {
	t.Helper()
	f := &fakeAPI{routes: routes}
	server := httptest.NewServer(f)
	t.Cleanup(server.Close)
	return f, server.URL
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	var body map[string]any
	if len(raw) > 0 {
		json.Unmarshal(raw, &body)
	}

	f.mu.Lock()
	f.lastAuth = r.Header.Get("Authorization")
	f.lastBody = body
	data, ok := f.routes[r.Method+" "+r.URL.Path]
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"success":false,"statusCode":404,"message":"User not found"}`)
		return
	}
	io.WriteString(w, data)
}

func (f *fakeAPI) auth() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastAuth
}

func (f *fakeAPI) body() map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastBody
}

// unsetEnv removes RENDEVO_* variables for the duration of the test.
func unsetEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"RENDEVO_URL", "RENDEVO_TOKEN", "RENDEVO_REFRESH_TOKEN", "RENDEVO_OUTPUT", "RENDEVO_CONFIG"} {
		if old, ok := os.LookupEnv(key); ok {
			os.Unsetenv(key)
			t.Cleanup(func() { os.Setenv(key, old) })
		}
	}
}

func testConfig(t *testing.T) (*Config, *bytes.Buffer) {
	t.Helper()
	unsetEnv(t)
	var stdout bytes.Buffer
	return &Config{
		Stdin:  strings.NewReader(""),
		Stdout: &stdout,
		Stderr: io.Discard,
	}, &stdout
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Stdin != os.Stdin {
		t.Error("DefaultConfig().Stdin should be os.Stdin")
	}
	if cfg.Stdout != os.Stdout {
		t.Error("DefaultConfig().Stdout should be os.Stdout")
	}
	if cfg.Stderr != os.Stderr {
		t.Error("DefaultConfig().Stderr should be os.Stderr")
	}
	if cfg.EnvFile != ".env" {
		t.Errorf("DefaultConfig().EnvFile = %q, want .env", cfg.EnvFile)
	}
}

func TestRun_MissingURL(t *testing.T) {
	cfg, _ := testConfig(t)

	err := run(context.Background(), []string{"users", "me"}, cfg)
	if err == nil {
		t.Fatal("run should fail without a base URL")
	}
	if !strings.Contains(err.Error(), "no API URL") {
		t.Errorf("error should mention the missing URL, got %v", err)
	}
}

func TestRun_Login(t *testing.T) {
	api, url := newFakeAPI(t, map[string]string{
		"POST /auth/login": `{"access_token":"T1","refresh_token":"R1","user":` + userJSON + `}`,
	})
	cfg, stdout := testConfig(t)

	err := run(context.Background(), []string{"--url", url, "login", "--email", "ada@example.com", "--password", "pw"}, cfg)
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}

	if api.body()["email"] != "ada@example.com" || api.body()["password"] != "pw" {
		t.Errorf("login body = %v", api.body())
	}
	out := stdout.String()
	for _, want := range []string{"access_token:", "T1", "R1", "ada@example.com"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRun_UsersListJSON(t *testing.T) {
	_, url := newFakeAPI(t, map[string]string{
		"GET /users": `{"success":true,"data":[` + userJSON + `],"timestamp":"2024-01-01T00:00:00.000Z"}`,
	})
	cfg, stdout := testConfig(t)

	err := run(context.Background(), []string{"--url", url, "--token", "T1", "-o", "json", "users", "list"}, cfg)
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}

	var users []rendevo.User
	if err := json.Unmarshal(stdout.Bytes(), &users); err != nil {
		t.Fatalf("output is not a JSON user list: %v\n%s", err, stdout.String())
	}
	if len(users) != 1 || users[0].ID != "u1" {
		t.Errorf("users = %+v", users)
	}
}

func TestRun_UsersListTable(t *testing.T) {
	_, url := newFakeAPI(t, map[string]string{"GET /users": `[` + userJSON + `]`})
	cfg, stdout := testConfig(t)

	if err := run(context.Background(), []string{"--url", url, "users", "list"}, cfg); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	out := stdout.String()
	if !strings.Contains(out, "EMAIL") || !strings.Contains(out, "ada@example.com") {
		t.Errorf("unexpected table output:\n%s", out)
	}
}

func TestRun_UsersMeSendsToken(t *testing.T) {
	api, url := newFakeAPI(t, map[string]string{"GET /users/me": userJSON})
	cfg, _ := testConfig(t)

	if err := run(context.Background(), []string{"--url", url, "--token", "T1", "users", "me"}, cfg); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if api.auth() != "Bearer T1" {
		t.Errorf("Authorization = %q, want Bearer T1", api.auth())
	}
}

func TestRun_UsersUpdateSendsChangedFields(t *testing.T) {
	api, url := newFakeAPI(t, map[string]string{"PATCH /users/u1": userJSON})
	cfg, _ := testConfig(t)

	err := run(context.Background(), []string{"--url", url, "users", "update", "u1", "--role", "ADMIN", "--active=false"}, cfg)
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}

	want := map[string]any{"role": "ADMIN", "isActive": false}
	if len(api.body()) != len(want) || api.body()["role"] != "ADMIN" || api.body()["isActive"] != false {
		t.Errorf("update body = %v, want %v", api.body(), want)
	}
}

func TestRun_UsersUpdateInvalidRole(t *testing.T) {
	_, url := newFakeAPI(t, nil)
	cfg, _ := testConfig(t)

	err := run(context.Background(), []string{"--url", url, "users", "update", "u1", "--role", "ROOT"}, cfg)
	if err == nil || !strings.Contains(err.Error(), "invalid role") {
		t.Errorf("expected invalid role error, got %v", err)
	}
}

func TestRun_UserNotFound(t *testing.T) {
	_, url := newFakeAPI(t, nil)
	cfg, _ := testConfig(t)

	err := run(context.Background(), []string{"--url", url, "--no-retry", "users", "get", "missing"}, cfg)

	var apiErr *rendevo.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != 404 {
		t.Errorf("StatusCode = %d, want 404", apiErr.StatusCode)
	}
	if !strings.Contains(err.Error(), "get user: User not found") {
		t.Errorf("error = %q", err.Error())
	}
}

func TestRun_LogoutWithoutRefreshToken(t *testing.T) {
	_, url := newFakeAPI(t, nil)
	cfg, _ := testConfig(t)

	err := run(context.Background(), []string{"--url", url, "logout"}, cfg)
	if !errors.Is(err, rendevo.ErrNoToken) {
		t.Errorf("expected ErrNoToken, got %v", err)
	}
}

func TestRun_ForgotPasswordPrintsToken(t *testing.T) {
	api, url := newFakeAPI(t, map[string]string{
		"POST /auth/forgot-password": `{"message":"Reset email sent","token":"reset-1"}`,
	})
	cfg, stdout := testConfig(t)

	if err := run(context.Background(), []string{"--url", url, "forgot-password", "ada@example.com"}, cfg); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if api.body()["email"] != "ada@example.com" {
		t.Errorf("body = %v", api.body())
	}
	if !strings.Contains(stdout.String(), "reset-1") {
		t.Errorf("output missing reset token:\n%s", stdout.String())
	}
}

func TestRun_ConfigFileFromHome(t *testing.T) {
	api, url := newFakeAPI(t, map[string]string{"GET /users/me": userJSON})
	cfg, _ := testConfig(t)

	home := t.TempDir()
	yaml := "url: " + url + "\ntoken: FROM-FILE\n"
	if err := os.WriteFile(filepath.Join(home, ".rendevo.yaml"), []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg.Home = home

	if err := run(context.Background(), []string{"users", "me"}, cfg); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if api.auth() != "Bearer FROM-FILE" {
		t.Errorf("Authorization = %q, want Bearer FROM-FILE", api.auth())
	}
}

func TestRun_ExplicitConfigMissing(t *testing.T) {
	cfg, _ := testConfig(t)

	err := run(context.Background(), []string{"--config", filepath.Join(t.TempDir(), "nope.yaml"), "users", "me"}, cfg)
	if err == nil || !strings.Contains(err.Error(), "read config") {
		t.Errorf("expected config read error, got %v", err)
	}
}

func TestRun_EnvFile(t *testing.T) {
	api, url := newFakeAPI(t, map[string]string{"GET /users/me": userJSON})
	cfg, _ := testConfig(t)

	envFile := filepath.Join(t.TempDir(), ".env")
	content := "RENDEVO_URL=" + url + "\nRENDEVO_TOKEN=FROM-ENV\n"
	if err := os.WriteFile(envFile, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg.EnvFile = envFile
	t.Cleanup(func() {
		os.Unsetenv("RENDEVO_URL")
		os.Unsetenv("RENDEVO_TOKEN")
	})

	if err := run(context.Background(), []string{"users", "me"}, cfg); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if api.auth() != "Bearer FROM-ENV" {
		t.Errorf("Authorization = %q, want Bearer FROM-ENV", api.auth())
	}
}

func TestRun_MissingEnvFileIgnored(t *testing.T) {
	_, url := newFakeAPI(t, map[string]string{"GET /users/me": userJSON})
	cfg, _ := testConfig(t)
	cfg.EnvFile = filepath.Join(t.TempDir(), "absent.env")

	if err := run(context.Background(), []string{"--url", url, "users", "me"}, cfg); err != nil {
		t.Errorf("run() error = %v", err)
	}
}

func TestRun_UsersWaitVerified(t *testing.T) {
	api, url := newFakeAPI(t, map[string]string{
		"GET /users/me": strings.Replace(userJSON, `"emailVerifiedAt":null`, `"emailVerifiedAt":"2024-01-02T00:00:00.000Z"`, 1),
	})
	cfg, stdout := testConfig(t)

	err := run(context.Background(), []string{"--url", url, "--token", "T1", "-o", "json", "users", "wait-verified", "--interval", "1ms"}, cfg)
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if api.auth() != "Bearer T1" {
		t.Errorf("Authorization = %q, want Bearer T1", api.auth())
	}

	var user rendevo.User
	if err := json.Unmarshal(stdout.Bytes(), &user); err != nil {
		t.Fatalf("output is not a JSON user: %v", err)
	}
	if user.EmailVerifiedAt == nil {
		t.Error("EmailVerifiedAt should be set")
	}
}
