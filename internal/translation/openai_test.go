package translation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"strings"
	"testing"

	"codeberg.org/snonux/lenslate/internal/failure"
)

// fakeOpenAI serves chat completions whose content is produced by reply
func fakeOpenAI(t *testing.T, reply func(system, user string) string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("Unexpected path %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}

		var req struct {
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Invalid request body: %v", err)
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		if len(req.Messages) != 2 {
			t.Errorf("Expected system and user messages, got %d", len(req.Messages))
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		content := reply(req.Messages[0].Content, req.Messages[1].Content)
		encoded, _ := json.Marshal(content)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"id":"chatcmpl-1","object":"chat.completion","model":"gpt-4o-mini",
"choices":[{"index":0,"message":{"role":"assistant","content":%s},"finish_reason":"stop"}]}`, encoded)
	}))
}

func newTestTranslator(server *httptest.Server) *OpenAITranslator {
	return NewOpenAITranslator(&OpenAIConfig{APIKey: "test-key", BaseURL: server.URL + "/v1"})
}

func TestNewOpenAITranslator(t *testing.T) {
	translator := NewOpenAITranslator(&OpenAIConfig{APIKey: "test-api-key"})

	if translator == nil {
		t.Fatal("NewOpenAITranslator returned nil")
	}
	if translator.apiKey != "test-api-key" {
		t.Errorf("Expected API key 'test-api-key', got '%s'", translator.apiKey)
	}
	if translator.model != "gpt-4o-mini" {
		t.Errorf("Expected default model gpt-4o-mini, got %s", translator.model)
	}
	if translator.client == nil {
		t.Error("OpenAI client not initialized")
	}
}

func TestTranslate_NoAPIKey(t *testing.T) {
	translator := NewOpenAITranslator(&OpenAIConfig{})

	_, err := translator.TranslateText(context.Background(), "en", "fr", "Hello")
	if err == nil || err.Error() != "OpenAI API key not found" {
		t.Errorf("Expected 'OpenAI API key not found' error, got: %v", err)
	}

	_, err = translator.TranslateLines(context.Background(), "en", "fr", []string{"Hello"})
	if err == nil {
		t.Error("Expected error for missing API key")
	}
}

func TestTranslateLines_PreservesOrder(t *testing.T) {
	server := fakeOpenAI(t, func(system, user string) string {
		if !strings.Contains(system, "English") || !strings.Contains(system, "French") {
			t.Errorf("System prompt lacks language names: %s", system)
		}
		var in linesPayload
		if err := json.Unmarshal([]byte(user), &in); err != nil {
			t.Errorf("User message is not a lines payload: %v", err)
		}
		if !reflect.DeepEqual(in.Lines, []string{" Hello", " Good morning"}) {
			t.Errorf("Unexpected lines sent: %q", in.Lines)
		}
		return `{"lines": ["Bonjour", " Bon matin "]}`
	})
	defer server.Close()

	got, err := newTestTranslator(server).TranslateLines(context.Background(), "en", "fr", []string{" Hello", " Good morning"})
	if err != nil {
		t.Fatalf("TranslateLines failed: %v", err)
	}

	if !reflect.DeepEqual(got.OutputArr, []string{"Bonjour", "Bon matin"}) {
		t.Errorf("OutputArr = %q", got.OutputArr)
	}
	if got.OutputText != "Bonjour\nBon matin" {
		t.Errorf("OutputText = %q", got.OutputText)
	}
}

func TestTranslateLines_LengthMismatch(t *testing.T) {
	server := fakeOpenAI(t, func(system, user string) string {
		return `{"lines": []}`
	})
	defer server.Close()

	_, err := newTestTranslator(server).TranslateLines(context.Background(), "en", "fr", []string{" Hello"})
	if kind, _ := failure.KindOf(err); kind != failure.LengthMismatch {
		t.Errorf("Expected LengthMismatch, got %v", err)
	}
}

func TestTranslateLines_MalformedReply(t *testing.T) {
	server := fakeOpenAI(t, func(system, user string) string {
		return "Bonjour"
	})
	defer server.Close()

	_, err := newTestTranslator(server).TranslateLines(context.Background(), "en", "fr", []string{" Hello"})
	if kind, _ := failure.KindOf(err); kind != failure.ServiceUnreachable {
		t.Errorf("Expected ServiceUnreachable, got %v", err)
	}
}

func TestTranslateLines_Fenced(t *testing.T) {
	server := fakeOpenAI(t, func(system, user string) string {
		return "```json\n{\"lines\": [\"Hallo\"]}\n```"
	})
	defer server.Close()

	got, err := newTestTranslator(server).TranslateLines(context.Background(), "en", "de", []string{"Hello"})
	if err != nil {
		t.Fatalf("TranslateLines failed: %v", err)
	}
	if got.OutputArr[0] != "Hallo" {
		t.Errorf("Unexpected translation %q", got.OutputArr[0])
	}
}

func TestTranslateLines_Empty(t *testing.T) {
	server := fakeOpenAI(t, func(system, user string) string {
		t.Error("Expected no remote call for empty input")
		return ""
	})
	defer server.Close()

	got, err := newTestTranslator(server).TranslateLines(context.Background(), "en", "fr", nil)
	if err != nil {
		t.Fatalf("TranslateLines failed: %v", err)
	}
	if len(got.OutputArr) != 0 || got.OutputText != "" {
		t.Errorf("Expected empty result, got %+v", got)
	}
}

func TestTranslate_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error":{"message":"boom","type":"server_error"}}`)
	}))
	defer server.Close()

	translator := newTestTranslator(server)
	_, err := translator.TranslateText(context.Background(), "en", "fr", "Hello")
	if kind, _ := failure.KindOf(err); kind != failure.ServiceUnreachable {
		t.Errorf("Expected ServiceUnreachable, got %v", err)
	}
}

func TestTranslateText(t *testing.T) {
	server := fakeOpenAI(t, func(system, user string) string {
		if user != "Good morning" {
			t.Errorf("Unexpected user message %q", user)
		}
		return "  Guten Morgen\n"
	})
	defer server.Close()

	got, err := newTestTranslator(server).TranslateText(context.Background(), "en", "de", "Good morning")
	if err != nil {
		t.Fatalf("TranslateText failed: %v", err)
	}
	if got != "Guten Morgen" {
		t.Errorf("Expected 'Guten Morgen', got %q", got)
	}
}

func TestTranslateText_Integration(t *testing.T) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		t.Skip("Skipping integration test: OPENAI_API_KEY not set")
	}

	translator := NewOpenAITranslator(&OpenAIConfig{APIKey: apiKey})
	got, err := translator.TranslateLines(context.Background(), "en", "fr", []string{" Hello", " Thank you"})
	if err != nil {
		t.Fatalf("TranslateLines failed: %v", err)
	}
	if len(got.OutputArr) != 2 {
		t.Errorf("Expected 2 lines, got %d", len(got.OutputArr))
	}
	t.Logf("Translation: %q", got.OutputArr)
}
