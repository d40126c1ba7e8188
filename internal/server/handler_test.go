package server_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/userauth/internal/auth/password"
	"github.com/skillsenselab/userauth/internal/auth/token"
	"github.com/skillsenselab/userauth/internal/logger"
	"github.com/skillsenselab/userauth/internal/server"
	"github.com/skillsenselab/userauth/internal/user"
)

// memStore is an in-memory user.Store for handler tests.
type memStore struct {
	mu      sync.Mutex
	users   map[string]*user.User
	byEmail map[string]string
	nextID  int
}

func newMemStore() *memStore {
	return &memStore{users: map[string]*user.User{}, byEmail: map[string]string{}}
}

func (s *memStore) FindByEmail(_ context.Context, email string) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.byEmail[email]
	if !ok {
		return nil, user.ErrNoUser
	}
	cp := *s.users[id]
	return &cp, nil
}

func (s *memStore) FindByID(_ context.Context, id string) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, user.ErrNoUser
	}
	cp := *u
	cp.PasswordHash = ""
	return &cp, nil
}

func (s *memStore) Create(_ context.Context, u *user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byEmail[u.Email]; exists {
		return user.ErrDuplicateEmail
	}
	s.nextID++
	u.ID = fmt.Sprintf("user-%d", s.nextID)
	cp := *u
	s.users[u.ID] = &cp
	s.byEmail[u.Email] = u.ID
	return nil
}

func (s *memStore) UpdateLastLogin(_ context.Context, id string, when time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return user.ErrNoUser
	}
	u.LastLogin = &when
	return nil
}

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	codec, err := token.NewCodec(token.Config{Secret: "handler-secret"})
	if err != nil {
		t.Fatalf("NewCodec failed: %v", err)
	}

	svc := user.NewService(
		newMemStore(),
		password.NewBcryptHasher(password.WithCost(4)),
		codec,
		logger.NewDefault("test"),
	)

	r := gin.New()
	server.NewHandler(svc, codec, time.Hour, false).RegisterRoutes(r)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string, mod func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if mod != nil {
		mod(req)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func parseBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v (%s)", err, rr.Body.String())
	}
	return body
}

func sessionCookie(rr *httptest.ResponseRecorder) *http.Cookie {
	for _, ck := range rr.Result().Cookies() {
		if ck.Name == "token" {
			return ck
		}
	}
	return nil
}

func TestRegister_Created(t *testing.T) {
	r := newTestEngine(t)

	rr := doJSON(t, r, "POST", "/api/v1/user/register",
		`{"fullName":"Ann","email":"a@x.com","password":"secret1"}`, nil)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", rr.Code, rr.Body.String())
	}
	body := parseBody(t, rr)
	if body["success"] != true {
		t.Error("expected success=true")
	}
	if body["message"] != "Account created successfully." {
		t.Errorf("unexpected message: %v", body["message"])
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	r := newTestEngine(t)
	payload := `{"fullName":"Ann","email":"a@x.com","password":"secret1"}`

	if rr := doJSON(t, r, "POST", "/api/v1/user/register", payload, nil); rr.Code != http.StatusCreated {
		t.Fatalf("first register failed: %d", rr.Code)
	}

	rr := doJSON(t, r, "POST", "/api/v1/user/register", payload, nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if body := parseBody(t, rr); body["message"] != "User already exists with this email." {
		t.Errorf("unexpected message: %v", body["message"])
	}
}

func TestRegister_InvalidBody(t *testing.T) {
	r := newTestEngine(t)

	rr := doJSON(t, r, "POST", "/api/v1/user/register", `{"fullName":`, nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed JSON, got %d", rr.Code)
	}

	rr = doJSON(t, r, "POST", "/api/v1/user/register",
		`{"fullName":"Ann","email":"a@x.com","password":"short"}`, nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for short password, got %d", rr.Code)
	}
}

func TestLogin_SetsCookieAndToken(t *testing.T) {
	r := newTestEngine(t)
	doJSON(t, r, "POST", "/api/v1/user/register",
		`{"fullName":"Ann","email":"a@x.com","password":"secret1"}`, nil)

	rr := doJSON(t, r, "POST", "/api/v1/user/login",
		`{"email":"a@x.com","password":"secret1"}`, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rr.Code, rr.Body.String())
	}

	body := parseBody(t, rr)
	tok, _ := body["token"].(string)
	if tok == "" {
		t.Fatal("expected token in response body")
	}
	if body["message"] != "Welcome back Ann" {
		t.Errorf("unexpected greeting: %v", body["message"])
	}

	ck := sessionCookie(rr)
	if ck == nil {
		t.Fatal("expected session cookie to be set")
	}
	if ck.Value != tok {
		t.Error("cookie token must match body token")
	}
	if !ck.HttpOnly {
		t.Error("session cookie must be HttpOnly")
	}
	if ck.MaxAge != int(time.Hour.Seconds()) {
		t.Errorf("unexpected cookie max-age: %d", ck.MaxAge)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	r := newTestEngine(t)
	doJSON(t, r, "POST", "/api/v1/user/register",
		`{"fullName":"Ann","email":"a@x.com","password":"secret1"}`, nil)

	wrongPass := doJSON(t, r, "POST", "/api/v1/user/login",
		`{"email":"a@x.com","password":"nope123"}`, nil)
	unknown := doJSON(t, r, "POST", "/api/v1/user/login",
		`{"email":"b@x.com","password":"secret1"}`, nil)

	for _, rr := range []*httptest.ResponseRecorder{wrongPass, unknown} {
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rr.Code)
		}
		if body := parseBody(t, rr); body["message"] != "Incorrect email or password." {
			t.Errorf("unexpected message: %v", body["message"])
		}
	}
}

func TestLogout_ClearsCookie(t *testing.T) {
	r := newTestEngine(t)

	rr := doJSON(t, r, "POST", "/api/v1/user/logout", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if body := parseBody(t, rr); body["message"] != "Logged out successfully." {
		t.Errorf("unexpected message: %v", body["message"])
	}

	ck := sessionCookie(rr)
	if ck == nil {
		t.Fatal("expected an expiring cookie")
	}
	if ck.Value != "" || ck.MaxAge >= 0 {
		t.Errorf("expected cleared cookie, got value=%q max-age=%d", ck.Value, ck.MaxAge)
	}
}

func TestProfile_RequiresAuth(t *testing.T) {
	r := newTestEngine(t)

	rr := doJSON(t, r, "GET", "/api/v1/user/profile", "", nil)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
	if body := parseBody(t, rr); body["message"] != "Authentication token is missing." {
		t.Errorf("unexpected message: %v", body["message"])
	}
}

// TestSessionLifecycle walks the full register, login, profile, logout flow.
func TestSessionLifecycle(t *testing.T) {
	r := newTestEngine(t)

	rr := doJSON(t, r, "POST", "/api/v1/user/register",
		`{"fullName":"Ann","email":"a@x.com","password":"secret1"}`, nil)
	if rr.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d", rr.Code)
	}

	rr = doJSON(t, r, "POST", "/api/v1/user/login",
		`{"email":"a@x.com","password":"secret1"}`, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", rr.Code)
	}
	tok, _ := parseBody(t, rr)["token"].(string)
	if tok == "" {
		t.Fatal("login: expected a token")
	}
	if sessionCookie(rr) == nil {
		t.Fatal("login: expected a session cookie")
	}

	rr = doJSON(t, r, "GET", "/api/v1/user/profile", "", func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+tok)
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("profile: expected 200, got %d (%s)", rr.Code, rr.Body.String())
	}
	body := parseBody(t, rr)
	if body["message"] != "Profile fetched successfully." {
		t.Errorf("profile: unexpected message: %v", body["message"])
	}
	data, _ := body["data"].(map[string]any)
	if data == nil {
		t.Fatal("profile: expected user data")
	}
	if data["email"] != "a@x.com" {
		t.Errorf("profile: unexpected email: %v", data["email"])
	}
	if _, leaked := data["password"]; leaked {
		t.Error("profile: password hash must never be serialized")
	}

	rr = doJSON(t, r, "POST", "/api/v1/user/logout", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d", rr.Code)
	}
	if ck := sessionCookie(rr); ck == nil || ck.MaxAge >= 0 {
		t.Error("logout: expected the cookie to be cleared")
	}

	rr = doJSON(t, r, "GET", "/api/v1/user/profile", "", nil)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("profile without credentials: expected 401, got %d", rr.Code)
	}
}

func TestProfile_ViaCookie(t *testing.T) {
	r := newTestEngine(t)
	doJSON(t, r, "POST", "/api/v1/user/register",
		`{"fullName":"Ann","email":"a@x.com","password":"secret1"}`, nil)
	login := doJSON(t, r, "POST", "/api/v1/user/login",
		`{"email":"a@x.com","password":"secret1"}`, nil)
	ck := sessionCookie(login)
	if ck == nil {
		t.Fatal("expected a session cookie")
	}

	rr := doJSON(t, r, "GET", "/api/v1/user/profile", "", func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: ck.Name, Value: ck.Value})
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 via cookie, got %d", rr.Code)
	}
}
