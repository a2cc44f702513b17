package triage_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pars-health/triage-api/models"
	"github.com/pars-health/triage-api/triage"
)

func TestClientAssessRemoteSuccess(t *testing.T) {
	var gotBody models.TriageInput
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/predict", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(models.TriageResult{
			RiskScore: 0.72,
			RiskLabel: models.RiskLabelHigh,
			Details:   "Model flagged elevated risk.",
		})
	}))
	defer srv.Close()

	client := triage.NewClient(srv.URL, time.Second)
	in := nominalInput()
	in.HeartRate = 130

	result, err := client.Assess(context.Background(), in)

	assert.NoError(t, err)
	assert.Equal(t, 0.72, result.RiskScore)
	assert.Equal(t, models.RiskLabelHigh, result.RiskLabel)
	assert.Equal(t, 130, gotBody.HeartRate)
	assert.Nil(t, client.LastError())
	assert.False(t, client.Loading())
}

func TestClientAssessServerErrorFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := triage.NewClient(srv.URL, time.Second)

	result, err := client.Assess(context.Background(), nominalInput())

	assert.Error(t, err)
	assert.Equal(t, triage.Score(nominalInput()), result)
	assert.Equal(t, err, client.LastError())
}

func TestClientAssessConnectionRefusedFallsBack(t *testing.T) {
	// Endpoint nobody is listening on.
	client := triage.NewClient("http://127.0.0.1:1", time.Second)
	in := nominalInput()
	in.HeartRate = 190

	result, err := client.Assess(context.Background(), in)

	assert.Error(t, err)
	assert.Equal(t, 0.99, result.RiskScore)
	assert.Equal(t, models.RiskLabelHigh, result.RiskLabel)
}

func TestClientAssessMalformedBodyFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	client := triage.NewClient(srv.URL, time.Second)

	result, err := client.Assess(context.Background(), nominalInput())

	assert.Error(t, err)
	assert.Equal(t, models.RiskLabelLow, result.RiskLabel)
}

func TestClientAssessRejectsUnknownLabel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.TriageResult{RiskScore: 0.4, RiskLabel: "SEVERE"})
	}))
	defer srv.Close()

	client := triage.NewClient(srv.URL, time.Second)

	_, err := client.Assess(context.Background(), nominalInput())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown risk label")
}

func TestClientAssessRejectsOutOfRangeScore(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.TriageResult{RiskScore: 1.7, RiskLabel: models.RiskLabelHigh})
	}))
	defer srv.Close()

	client := triage.NewClient(srv.URL, time.Second)

	_, err := client.Assess(context.Background(), nominalInput())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestClientAssessTimeoutFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client := triage.NewClient(srv.URL, 20*time.Millisecond)

	result, err := client.Assess(context.Background(), nominalInput())

	assert.Error(t, err)
	assert.Equal(t, models.RiskLabelLow, result.RiskLabel)
}

func TestClientLastResultTracksNewestAssessment(t *testing.T) {
	client := triage.NewClient("http://127.0.0.1:1", time.Second)

	first := nominalInput()
	second := nominalInput()
	second.HeartRate = 190

	client.Assess(context.Background(), first)
	client.Assess(context.Background(), second)

	last := client.LastResult()
	if assert.NotNil(t, last) {
		assert.Equal(t, 0.99, last.RiskScore)
	}
}
