package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/pars-health/triage-api/api/handlers"
	"github.com/pars-health/triage-api/databases/mocks"
	"github.com/pars-health/triage-api/models"
)

func adminUser(t *testing.T, password string) *models.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	return &models.User{
		ID: "admin-1",
		Details: models.UserDetails{
			Email:    "admin@hospital.test",
			Name:     "Admin",
			Password: string(hash),
			Role:     "admin",
		},
	}
}

func loginBody(t *testing.T, email, password string) *bytes.Reader {
	b, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		t.Fatal(err)
	}
	return bytes.NewReader(b)
}

func TestAdmin_LoginHandler(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	userDB := &mocks.UserDatabase{}
	userDB.On("FindOne", mock.Anything, mock.Anything).Return(adminUser(t, "hunter2"), nil)

	a := handlers.Admin{UDB: userDB}

	req, err := http.NewRequest("POST", "/api/v1/admin/login", loginBody(t, "admin@hospital.test", "hunter2"))
	if err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()
	http.HandlerFunc(a.LoginHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Token string `json:"token"`
		Admin struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"admin"`
	}
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "admin-1", resp.Admin.ID)

	// The issued token carries the admin scope.
	token, err := jwt.Parse(resp.Token, func(tk *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	assert.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "admin", claims["scope"])
}

func TestAdmin_LoginHandlerWrongPassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	userDB := &mocks.UserDatabase{}
	userDB.On("FindOne", mock.Anything, mock.Anything).Return(adminUser(t, "hunter2"), nil)

	a := handlers.Admin{UDB: userDB}

	req, err := http.NewRequest("POST", "/api/v1/admin/login", loginBody(t, "admin@hospital.test", "wrong"))
	if err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()
	http.HandlerFunc(a.LoginHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "invalid credentials")
}

func TestAdmin_LoginHandlerUnknownUser(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	userDB := &mocks.UserDatabase{}
	userDB.On("FindOne", mock.Anything, mock.Anything).Return(nil, errors.New("mocked-error"))

	a := handlers.Admin{UDB: userDB}

	req, err := http.NewRequest("POST", "/api/v1/admin/login", loginBody(t, "nobody@hospital.test", "whatever"))
	if err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()
	http.HandlerFunc(a.LoginHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAdmin_LoginHandlerMissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	userDB := &mocks.UserDatabase{}
	userDB.On("FindOne", mock.Anything, mock.Anything).Return(adminUser(t, "hunter2"), nil)

	a := handlers.Admin{UDB: userDB}

	req, err := http.NewRequest("POST", "/api/v1/admin/login", loginBody(t, "admin@hospital.test", "hunter2"))
	if err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()
	http.HandlerFunc(a.LoginHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func signedTestToken(t *testing.T, secret, scope string) string {
	claims := jwt.MapClaims{
		"sub":   "admin-1",
		"scope": scope,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatal(err)
	}
	return signed
}

func TestAdmin_RequireToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	a := handlers.Admin{}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		authHeader string
		expStatus  int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"malformed header", "Token abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not.a.jwt", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + signedTestToken(t, "other-secret", "admin"), http.StatusUnauthorized},
		{"wrong scope", "Bearer " + signedTestToken(t, "test-secret", "viewer"), http.StatusForbidden},
		{"valid", "Bearer " + signedTestToken(t, "test-secret", "admin"), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest("GET", "/api/v1/stats", nil)
			if err != nil {
				t.Fatal(err)
			}
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			rr := httptest.NewRecorder()
			a.RequireToken(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.expStatus, rr.Code)
		})
	}
}
