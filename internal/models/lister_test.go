package models

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"strings"
	"testing"
)

func TestNewLister(t *testing.T) {
	lister := NewLister("test-api-key", "")

	if lister == nil {
		t.Fatal("NewLister returned nil")
	}
	if lister.apiKey != "test-api-key" {
		t.Errorf("Expected API key 'test-api-key', got '%s'", lister.apiKey)
	}
	if lister.client == nil {
		t.Error("OpenAI client not initialized")
	}
}

func TestCategorize(t *testing.T) {
	got := Categorize([]string{
		"tts-1", "gpt-4o-mini", "dall-e-3", "gpt-4o", "gpt-4o-audio-preview",
		"o3-mini", "text-embedding-3-small", "gpt-3.5-turbo-instruct",
	})

	wantTranslation := []string{"gpt-4o", "gpt-4o-mini", "o3-mini"}
	if !reflect.DeepEqual(got.Translation, wantTranslation) {
		t.Errorf("Translation = %v, want %v", got.Translation, wantTranslation)
	}
	if len(got.Other) != 5 {
		t.Errorf("Expected 5 other models, got %v", got.Other)
	}
}

func TestListAvailableModels_NoAPIKey(t *testing.T) {
	lister := NewLister("", "")

	err := lister.ListAvailableModels(context.Background(), &bytes.Buffer{})
	if err == nil {
		t.Fatal("Expected error for missing API key")
	}

	expectedError := "OpenAI API key not found. Set OPENAI_API_KEY environment variable or configure in .lenslate.yaml"
	if err.Error() != expectedError {
		t.Errorf("Expected error '%s', got: %v", expectedError, err)
	}
}

func TestListAvailableModels(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/models" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"object":"list","data":[
{"id":"gpt-4o-mini","object":"model","created":1,"owned_by":"openai"},
{"id":"tts-1","object":"model","created":1,"owned_by":"openai"}]}`)
	}))
	defer server.Close()

	var out bytes.Buffer
	lister := NewLister("test-key", server.URL+"/v1")
	if err := lister.ListAvailableModels(context.Background(), &out); err != nil {
		t.Fatalf("ListAvailableModels failed: %v", err)
	}

	if !strings.Contains(out.String(), "  gpt-4o-mini\n") {
		t.Errorf("Expected gpt-4o-mini in output:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Other Models: 1") {
		t.Errorf("Expected one other model:\n%s", out.String())
	}
}

func TestListAvailableModels_Integration(t *testing.T) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		t.Skip("Skipping integration test: OPENAI_API_KEY not set")
	}

	lister := NewLister(apiKey, "")
	if err := lister.ListAvailableModels(context.Background(), os.Stdout); err != nil {
		t.Errorf("ListAvailableModels failed: %v", err)
	}
}
