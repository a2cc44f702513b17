package config

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	os.Setenv("DB_URI", "mongodb://127.0.0.1:27017")
	os.Setenv("DB_NAME", "test")
	conf := New()

	assert.NotEmpty(t, conf)
	assert.Equal(t, 30*time.Second, conf.ActiveWindow)
	assert.Equal(t, 10*time.Second, conf.ScoringTimeout)
}

func TestNewReadsActiveWindowFromEnv(t *testing.T) {
	os.Setenv("ACTIVE_WINDOW", "45")
	defer os.Unsetenv("ACTIVE_WINDOW")
	conf := New()

	assert.Equal(t, 45*time.Second, conf.ActiveWindow)
}

func TestNewIgnoresBadActiveWindow(t *testing.T) {
	os.Setenv("ACTIVE_WINDOW", "not-a-number")
	defer os.Unsetenv("ACTIVE_WINDOW")
	conf := New()

	assert.Equal(t, 30*time.Second, conf.ActiveWindow)
}

func TestErrorStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	ErrorStatus("error it borked", http.StatusBadRequest, rr, errors.New("bad request"))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "error it borked")
}

func TestSetLoggerSetsDevelopmentLogger(t *testing.T) {
	l, err := setLogger("development")
	assert.NoError(t, err)
	assert.True(t, l.Core().Enabled(1))
}

func TestSetLoggerSetsProductionLogger(t *testing.T) {
	l, err := setLogger("production")
	assert.NoError(t, err)
	assert.True(t, l.Core().Enabled(2))
}

func TestSetLoggerSetsLocalLogger(t *testing.T) {
	l, err := setLogger("local")
	assert.NoError(t, err)
	assert.True(t, l.Core().Enabled(0))
}
