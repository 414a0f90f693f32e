package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fernhq/fern/api/internal/config"
	"github.com/fernhq/fern/api/internal/service"
)

func chatServer(t *testing.T, reply string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing bearer token, got %q", r.Header.Get("Authorization"))
		}

		w.WriteHeader(status)
		if status < 200 || status >= 300 {
			w.Write([]byte(`{"error":"nope"}`))
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": reply}},
			},
		})
	}))
}

func testClient(baseURL string) *OpenRouterClient {
	return NewOpenRouterClient(config.SuggestionConfig{
		APIKey:  "test-key",
		Model:   "test-model",
		BaseURL: baseURL,
		Timeout: 5 * time.Second,
	})
}

func tasksJSON(n int) string {
	tasks := make([]map[string]interface{}, 0, n)
	for i := 0; i < n; i++ {
		tasks = append(tasks, map[string]interface{}{
			"title":          "Take the stairs",
			"carbonOffsetKg": 0.5,
			"difficulty":     "easy",
			"reason":         "Elevators draw power.",
		})
	}
	b, _ := json.Marshal(tasks)
	return string(b)
}

// ============================================================================
// GenerateDailyTasks Tests
// ============================================================================

func TestGenerateDailyTasks_ParsesReply(t *testing.T) {
	srv := chatServer(t, tasksJSON(10), http.StatusOK)
	defer srv.Close()

	tasks, err := testClient(srv.URL).GenerateDailyTasks(context.Background(), &service.DailyTaskContext{
		CompactSummary: "fp=3738|top=home",
	})

	if err != nil {
		t.Fatalf("GenerateDailyTasks: %v", err)
	}
	if len(tasks) != 10 {
		t.Fatalf("expected 10 tasks, got %d", len(tasks))
	}
	if tasks[0].Title != "Take the stairs" {
		t.Errorf("title = %q", tasks[0].Title)
	}
}

func TestGenerateDailyTasks_UnwrapsFencedReply(t *testing.T) {
	srv := chatServer(t, "```json\n"+tasksJSON(10)+"\n```", http.StatusOK)
	defer srv.Close()

	tasks, err := testClient(srv.URL).GenerateDailyTasks(context.Background(), &service.DailyTaskContext{})

	if err != nil {
		t.Fatalf("GenerateDailyTasks: %v", err)
	}
	if len(tasks) != 10 {
		t.Fatalf("expected 10 tasks, got %d", len(tasks))
	}
}

func TestGenerateDailyTasks_RejectsUntitledProposal(t *testing.T) {
	srv := chatServer(t, `[{"title":"","carbonOffsetKg":1}]`, http.StatusOK)
	defer srv.Close()

	_, err := testClient(srv.URL).GenerateDailyTasks(context.Background(), &service.DailyTaskContext{})

	if err == nil {
		t.Fatal("expected error for untitled proposal")
	}
}

func TestGenerateDailyTasks_ProseReplyFails(t *testing.T) {
	srv := chatServer(t, "Sure! Here are ten great ideas:", http.StatusOK)
	defer srv.Close()

	_, err := testClient(srv.URL).GenerateDailyTasks(context.Background(), &service.DailyTaskContext{})

	if err == nil {
		t.Fatal("expected error for non-JSON reply")
	}
}

func TestGenerateDailyTasks_UpstreamErrorStatus(t *testing.T) {
	srv := chatServer(t, "", http.StatusTooManyRequests)
	defer srv.Close()

	_, err := testClient(srv.URL).GenerateDailyTasks(context.Background(), &service.DailyTaskContext{})

	if err == nil {
		t.Fatal("expected error for 429 reply")
	}
}

func TestGenerateDailyTasks_NoAPIKey(t *testing.T) {
	client := NewOpenRouterClient(config.SuggestionConfig{
		Model:   "test-model",
		BaseURL: "http://127.0.0.1:1",
		Timeout: time.Second,
	})

	_, err := client.GenerateDailyTasks(context.Background(), &service.DailyTaskContext{})

	if err != ErrNoAPIKey {
		t.Fatalf("err = %v, want ErrNoAPIKey", err)
	}
}

// ============================================================================
// GenerateSuggestions Tests
// ============================================================================

func TestGenerateSuggestions_ParsesReply(t *testing.T) {
	reply := `{"summary":"Focus on home energy.","top_actions":[{"title":"Switch to LED","estimated_reduction_kg_per_year":120,"difficulty":"easy","reason":"Lighting is a steady draw."}]}`
	srv := chatServer(t, reply, http.StatusOK)
	defer srv.Close()

	suggestion, err := testClient(srv.URL).GenerateSuggestions(context.Background(), &service.SuggestionContext{
		CompactSummary:     "fp=3738|top=home",
		FootprintKgPerYear: 3738.4,
		TopEmissionArea:    "home",
	})

	if err != nil {
		t.Fatalf("GenerateSuggestions: %v", err)
	}
	if suggestion.Summary != "Focus on home energy." {
		t.Errorf("summary = %q", suggestion.Summary)
	}
	if len(suggestion.TopActions) != 1 {
		t.Fatalf("expected 1 action, got %d", len(suggestion.TopActions))
	}
}

func TestGenerateSuggestions_IncompleteReplyFails(t *testing.T) {
	srv := chatServer(t, `{"summary":"","top_actions":[]}`, http.StatusOK)
	defer srv.Close()

	_, err := testClient(srv.URL).GenerateSuggestions(context.Background(), &service.SuggestionContext{})

	if err == nil {
		t.Fatal("expected error for incomplete reply")
	}
}

// ============================================================================
// stripCodeFences Tests
// ============================================================================

func TestStripCodeFences(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare_json", `{"a":1}`, `{"a":1}`},
		{"json_fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"plain_fence", "```\n[1,2]\n```", `[1,2]`},
		{"surrounding_whitespace", "  \n```json\n{}\n```  ", `{}`},
		{"no_fence_with_backticks_inside", "{\"a\":\"``\"}", "{\"a\":\"``\"}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := stripCodeFences(tt.in); got != tt.want {
				t.Errorf("stripCodeFences(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
