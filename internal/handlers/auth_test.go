package handlers

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/JackSmar98/jsonplaceholder/internal/models"
	"github.com/JackSmar98/jsonplaceholder/internal/session"
	"gorm.io/gorm"
)

// mockUserRepo keeps accounts in memory, indexed every way the handler
// looks them up.
type mockUserRepo struct {
	users map[string]*models.AuthUser // by id
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*models.AuthUser)}
}

func (m *mockUserRepo) CreateUser(user *models.AuthUser) error {
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *mockUserRepo) GetUserByID(id string) (*models.AuthUser, error) {
	if u, ok := m.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetUserByEmail(email string) (*models.AuthUser, error) {
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetUserByFirebaseUID(firebaseUID string) (*models.AuthUser, error) {
	for _, u := range m.users {
		if u.FirebaseUID == firebaseUID && firebaseUID != "" {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetUserByConfirmationToken(token string) (*models.AuthUser, error) {
	for _, u := range m.users {
		if u.ConfirmationToken == token && token != "" {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) UpdateUser(user *models.AuthUser) error {
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func lazyProfileRepo(created **models.Profile, createErr error) *mockProfileRepo {
	return &mockProfileRepo{
		GetProfileFunc: func(string) (*models.Profile, error) {
			if created != nil && *created != nil {
				return *created, nil
			}
			return nil, models.ErrProfileNotFound
		},
		CreateProfileFunc: func(p *models.Profile) error {
			if createErr != nil {
				return createErr
			}
			if created != nil {
				*created = p
			}
			return nil
		},
	}
}

func TestSignupConfirmSigninFlow(t *testing.T) {
	users := newMockUserRepo()
	var profile *models.Profile
	sessions := session.NewStore()
	h := NewAuthHandler(users, lazyProfileRepo(&profile, nil), nil, sessions, "test-secret")

	// signup ends in a pending state, no token issued
	c, rec := newTestContext(t, "POST", "/api/v1/auth/signup",
		`{"nombre":"Ana","email":"ana@example.com","password":"secret123"}`)
	if err := h.Signup(c); err != nil {
		t.Fatalf("Signup failed: %v", err)
	}
	if rec.Code != 201 {
		t.Fatalf("signup status = %d, want 201", rec.Code)
	}
	var signupResp map[string]interface{}
	json.Unmarshal(rec.Body.Bytes(), &signupResp)
	if signupResp["confirmation_pending"] != true {
		t.Fatalf("expected confirmation_pending, got %v", signupResp)
	}
	if _, hasToken := signupResp["token"]; hasToken {
		t.Fatal("signup must not issue a session token")
	}

	// signing in before confirmation is rejected
	c, _ = newTestContext(t, "POST", "/api/v1/auth/signin",
		`{"email":"ana@example.com","password":"secret123"}`)
	if got := httpStatus(t, h.SignIn(c)); got != 401 {
		t.Fatalf("unconfirmed signin status = %d, want 401", got)
	}

	// confirm via the stored token
	stored, err := users.GetUserByEmail("ana@example.com")
	if err != nil {
		t.Fatalf("account missing after signup: %v", err)
	}
	if stored.EmailConfirmed {
		t.Fatal("account should start unconfirmed")
	}
	c, rec = newTestContext(t, "GET", "/api/v1/auth/confirm?token="+stored.ConfirmationToken, "")
	if err := h.Confirm(c); err != nil {
		t.Fatalf("Confirm failed: %v", err)
	}
	if rec.Code != 200 {
		t.Fatalf("confirm status = %d, want 200", rec.Code)
	}

	// a session event goes out on successful signin
	events, cancel := sessions.Subscribe()
	defer cancel()

	c, rec = newTestContext(t, "POST", "/api/v1/auth/signin",
		`{"email":"ana@example.com","password":"secret123"}`)
	if err := h.SignIn(c); err != nil {
		t.Fatalf("confirmed signin failed: %v", err)
	}
	if rec.Code != 200 {
		t.Fatalf("signin status = %d, want 200", rec.Code)
	}
	var signinResp map[string]interface{}
	json.Unmarshal(rec.Body.Bytes(), &signinResp)
	if signinResp["token"] == "" || signinResp["token"] == nil {
		t.Fatal("expected a session token")
	}
	if _, hasWarning := signinResp["warning"]; hasWarning {
		t.Fatalf("no warning expected: %v", signinResp["warning"])
	}

	// first login lazily created the minimal profile row
	if profile == nil {
		t.Fatal("expected a profile row to be created on first login")
	}
	if profile.ID != stored.ID || profile.Email != "ana@example.com" {
		t.Fatalf("unexpected lazy profile: %+v", profile)
	}

	ev := <-events
	if ev.Type != session.SignedIn || ev.Email != "ana@example.com" {
		t.Fatalf("unexpected session event: %+v", ev)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	users := newMockUserRepo()
	users.CreateUser(&models.AuthUser{ID: "u1", Email: "ana@example.com"})
	h := NewAuthHandler(users, lazyProfileRepo(nil, nil), nil, session.NewStore(), "test-secret")

	c, _ := newTestContext(t, "POST", "/api/v1/auth/signup",
		`{"nombre":"Ana","email":"ana@example.com","password":"secret123"}`)
	if got := httpStatus(t, h.Signup(c)); got != 409 {
		t.Fatalf("status = %d, want 409", got)
	}
}

func TestSignupWeakPassword(t *testing.T) {
	h := NewAuthHandler(newMockUserRepo(), lazyProfileRepo(nil, nil), nil, session.NewStore(), "test-secret")

	c, _ := newTestContext(t, "POST", "/api/v1/auth/signup",
		`{"nombre":"Ana","email":"ana@example.com","password":"abc"}`)
	if got := httpStatus(t, h.Signup(c)); got != 400 {
		t.Fatalf("status = %d, want 400", got)
	}
}

func TestSigninWrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	users := newMockUserRepo()
	h := NewAuthHandler(users, lazyProfileRepo(nil, nil), nil, session.NewStore(), "test-secret")

	// register and confirm an account
	c, _ := newTestContext(t, "POST", "/api/v1/auth/signup",
		`{"nombre":"Ana","email":"ana@example.com","password":"secret123"}`)
	if err := h.Signup(c); err != nil {
		t.Fatalf("Signup failed: %v", err)
	}

	c, _ = newTestContext(t, "POST", "/api/v1/auth/signin",
		`{"email":"ana@example.com","password":"wrong-password"}`)
	wrongPass := h.SignIn(c)

	c, _ = newTestContext(t, "POST", "/api/v1/auth/signin",
		`{"email":"nobody@example.com","password":"secret123"}`)
	unknown := h.SignIn(c)

	if httpStatus(t, wrongPass) != 401 || httpStatus(t, unknown) != 401 {
		t.Fatal("both failures must be 401")
	}
	// identical message, no account-existence oracle
	if wrongPass.Error() != unknown.Error() {
		t.Fatalf("messages differ: %q vs %q", wrongPass.Error(), unknown.Error())
	}
}

func TestConfirmUnknownToken(t *testing.T) {
	h := NewAuthHandler(newMockUserRepo(), lazyProfileRepo(nil, nil), nil, session.NewStore(), "test-secret")

	c, _ := newTestContext(t, "GET", "/api/v1/auth/confirm?token=bogus", "")
	if got := httpStatus(t, h.Confirm(c)); got != 404 {
		t.Fatalf("status = %d, want 404", got)
	}
}

func TestSigninProfileCreationFailureWarnsButSucceeds(t *testing.T) {
	users := newMockUserRepo()
	h := NewAuthHandler(users, lazyProfileRepo(nil, errors.New("db down")), nil, session.NewStore(), "test-secret")

	c, _ := newTestContext(t, "POST", "/api/v1/auth/signup",
		`{"nombre":"Ana","email":"ana@example.com","password":"secret123"}`)
	if err := h.Signup(c); err != nil {
		t.Fatalf("Signup failed: %v", err)
	}
	stored, _ := users.GetUserByEmail("ana@example.com")
	c, _ = newTestContext(t, "GET", "/api/v1/auth/confirm?token="+stored.ConfirmationToken, "")
	if err := h.Confirm(c); err != nil {
		t.Fatalf("Confirm failed: %v", err)
	}

	c, rec := newTestContext(t, "POST", "/api/v1/auth/signin",
		`{"email":"ana@example.com","password":"secret123"}`)
	if err := h.SignIn(c); err != nil {
		t.Fatalf("signin should succeed despite profile failure: %v", err)
	}
	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp map[string]interface{}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["token"] == nil {
		t.Fatal("expected a session token")
	}
	if resp["warning"] == nil {
		t.Fatal("expected a warning about the failed profile creation")
	}
}

func TestFirebaseLoginUnconfigured(t *testing.T) {
	h := NewAuthHandler(newMockUserRepo(), lazyProfileRepo(nil, nil), nil, session.NewStore(), "test-secret")

	c, _ := newTestContext(t, "POST", "/api/v1/auth/firebase-login", `{"idToken":"whatever"}`)
	if got := httpStatus(t, h.FirebaseLogin(c)); got != 503 {
		t.Fatalf("status = %d, want 503", got)
	}
}

func TestSignOutPublishesEvent(t *testing.T) {
	sessions := session.NewStore()
	h := NewAuthHandler(newMockUserRepo(), lazyProfileRepo(nil, nil), nil, sessions, "test-secret")

	events, cancel := sessions.Subscribe()
	defer cancel()

	c, rec := newTestContext(t, "POST", "/api/v1/auth/signout", "")
	authenticate(c, "u1", "u1@example.com")
	if err := h.SignOut(c); err != nil {
		t.Fatalf("SignOut failed: %v", err)
	}
	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	ev := <-events
	if ev.Type != session.SignedOut || ev.UserID != "u1" {
		t.Fatalf("unexpected event: %+v", ev)
	}
}
