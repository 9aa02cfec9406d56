package analyzer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xailabs/insightflow/internal/utils"
)

// completionFixture mimics Groq's OpenAI-compatible chat completion reply.
func completionFixture(model, content string, totalTokens int) map[string]interface{} {
	return map[string]interface{}{
		"id":     "chatcmpl-test",
		"object": "chat.completion",
		"model":  model,
		"choices": []map[string]interface{}{
			{
				"index":         0,
				"finish_reason": "stop",
				"message": map[string]interface{}{
					"role":    "assistant",
					"content": content,
				},
			},
		},
		"usage": map[string]interface{}{
			"prompt_tokens":     100,
			"completion_tokens": 37,
			"total_tokens":      totalTokens,
		},
	}
}

func TestAnalyzeReturnsGroundTruthStats(t *testing.T) {
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(completionFixture("llama-3.3-70b-versatile", `{"summary":"ok"}`, 137))
	}))
	defer srv.Close()

	a := NewGroqAnalyzer("gsk_test", "llama-3.3-70b-versatile", srv.URL, 10*time.Second, utils.NewLogger("error"))

	completion, err := a.Analyze(context.Background(), "col1,col2\n1,2", "data.csv", "text/csv")
	require.NoError(t, err)

	assert.Equal(t, `{"summary":"ok"}`, completion.Content)
	assert.Equal(t, "llama-3.3-70b-versatile", completion.Model)
	assert.Equal(t, 137, completion.TotalTokens)
	assert.GreaterOrEqual(t, completion.LatencyMs, int64(0))

	// Fixed request contract: one system + one user message, low
	// temperature, bounded output, JSON-object mode.
	assert.EqualValues(t, "llama-3.3-70b-versatile", gotBody["model"])
	assert.InDelta(t, 0.3, gotBody["temperature"].(float64), 1e-6)
	assert.EqualValues(t, 2000, gotBody["max_tokens"].(float64))

	format := gotBody["response_format"].(map[string]interface{})
	assert.Equal(t, "json_object", format["type"])

	messages := gotBody["messages"].([]interface{})
	require.Len(t, messages, 2)
	user := messages[1].(map[string]interface{})
	assert.Contains(t, user["content"], `"data.csv"`)
	assert.Contains(t, user["content"], "col1,col2")
}

func TestAnalyzeTimeoutIsRetryableClass(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		json.NewEncoder(w).Encode(completionFixture("m", "{}", 1))
	}))
	defer srv.Close()

	a := NewGroqAnalyzer("gsk_test", "m", srv.URL, 20*time.Millisecond, utils.NewLogger("error"))

	_, err := a.Analyze(context.Background(), "data", "f.txt", "text/plain")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestAnalyzeNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fixture := completionFixture("m", "", 0)
		fixture["choices"] = []interface{}{}
		json.NewEncoder(w).Encode(fixture)
	}))
	defer srv.Close()

	a := NewGroqAnalyzer("gsk_test", "m", srv.URL, 10*time.Second, utils.NewLogger("error"))

	_, err := a.Analyze(context.Background(), "data", "f.txt", "text/plain")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}
