package lms_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"AwarenessSimulator_SecurityProject/internal/lms"
	"AwarenessSimulator_SecurityProject/internal/scenario"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const emailStep = `{
	"id": 7,
	"title": "Parcel notice",
	"step_type": "simulation_email",
	"scenario_data": {
		"subject": "Your parcel is on hold",
		"sender_name": "Delivery Service",
		"sender_email": "notify@delivery-check.example",
		"body_html": "<p>Pay the customs fee</p>",
		"is_phishing": true,
		"explanation": "Spoofed sender domain."
	}
}`

func TestFetchScript(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		switch r.URL.Path {
		case "/api/courses/steps/7/":
			w.Write([]byte(emailStep))
		case "/api/courses/steps/8/":
			w.Write([]byte(`{"id": 8, "step_type": "video", "scenario_data": null}`))
		case "/api/courses/steps/9/":
			w.Write([]byte(`{"id": 9, "step_type": "simulation_chat", "scenario_data": null}`))
		case "/api/courses/steps/10/":
			w.Write([]byte(`{"id": 10, "step_type": "simulation_chat", "scenario_data": {"steps": []}}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := lms.NewClient(srv.URL + "/api/")
	ctx := context.Background()

	script, err := c.FetchScript(ctx, "tok", 7)
	require.NoError(t, err)
	assert.Equal(t, scenario.KindEmail, script.Kind)
	assert.Equal(t, "step-7", script.Key)
	assert.Equal(t, "Parcel notice", script.Title)
	assert.True(t, script.Email.Phishing())

	_, err = c.FetchScript(ctx, "tok", 8)
	assert.ErrorIs(t, err, lms.ErrNotSimulation)

	_, err = c.FetchScript(ctx, "tok", 9)
	assert.ErrorIs(t, err, scenario.ErrInvalidScenario)

	_, err = c.FetchScript(ctx, "tok", 10)
	assert.ErrorIs(t, err, scenario.ErrInvalidScenario)

	_, err = c.FetchScript(ctx, "tok", 404)
	assert.ErrorIs(t, err, lms.ErrStepNotFound)
}

func TestReportCompletion(t *testing.T) {
	var got lms.CompletionRequest
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		if got.Score < 0 {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := lms.NewClient(srv.URL)
	require.NoError(t, c.ReportCompletion(context.Background(), "tok", 3, 100))
	assert.Equal(t, "/courses/steps/3/complete/", path)
	assert.Equal(t, 100, got.Score)

	assert.Error(t, c.ReportCompletion(context.Background(), "tok", 3, -1))
}
