package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"agrivision/pkg/advisory"
)

func sample() (advisory.SoilSample, advisory.AdvisoryResult) {
	s := advisory.SoilSample{Nitrogen: 50, Phosphorus: 50, Potassium: 50, PH: 6.5, TemperatureC: 25, HumidityPct: 70, RainfallMM: 100}
	return s, advisory.RunAdvisory(s)
}

func TestOpenAI_Summarize(t *testing.T) {
	var got chatReq
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"  - Soil is good.\n"}}]}`))
	}))
	defer srv.Close()

	s, res := sample()
	out := NewOpenAI(srv.URL+"/", "sk-test", "gpt-4o-mini", zap.NewNop()).SummarizeAdvisory(context.Background(), s, res)
	assert.Equal(t, "- Soil is good.", out)
	assert.Equal(t, "gpt-4o-mini", got.Model)
	require.Len(t, got.Messages, 2)
	assert.Contains(t, got.Messages[1]["content"], "RECOMMENDED CROPS: Maize, Cotton")
}

func TestOpenAI_FallsBack(t *testing.T) {
	replies := map[string]func(w http.ResponseWriter){
		"status":  func(w http.ResponseWriter) { w.WriteHeader(http.StatusBadGateway) },
		"garbage": func(w http.ResponseWriter) { _, _ = w.Write([]byte(`<html>`)) },
		"empty":   func(w http.ResponseWriter) { _, _ = w.Write([]byte(`{"choices":[]}`)) },
		"blank":   func(w http.ResponseWriter) { _, _ = w.Write([]byte(`{"choices":[{"message":{"content":"  "}}]}`)) },
	}
	s, res := sample()
	for name, reply := range replies {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { reply(w) }))
			defer srv.Close()
			out := NewOpenAI(srv.URL, "k", "m", zap.NewNop()).SummarizeAdvisory(context.Background(), s, res)
			assert.Equal(t, fallbackSummary(s, res), out)
		})
	}
}

func TestMock_IsDeterministic(t *testing.T) {
	s, res := sample()
	a := NewMock().SummarizeAdvisory(context.Background(), s, res)
	assert.Equal(t, a, NewMock().SummarizeAdvisory(context.Background(), s, res))
	assert.Contains(t, a, "Overall fertility: Good")
	assert.Contains(t, a, "Irrigation: 3/5")
	assert.Contains(t, a, advisory.SoilInGoodCondition)
}
