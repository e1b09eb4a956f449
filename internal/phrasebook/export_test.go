package phrasebook

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func exportDocs() []*Document {
	return []*Document{
		{
			ID:                "2024-03-01T09:30:00.000Z",
			Data:              []byte(`{"status":"done","inputLang":"en","outputLang":"fr","inputText":"Hello\nWorld","outputText":"Bonjour\nMonde"}`),
			PhrasebookVersion: CurrentVersion,
		},
	}
}

func TestExport_Markdown(t *testing.T) {
	var buf bytes.Buffer
	if err := Export(&buf, exportDocs(), FormatMarkdown); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"# Phrasebook", "## 2024-03-01T09:30:00.000Z", "*en → fr*", "> Hello\n> World", "Bonjour\nMonde"} {
		if !strings.Contains(out, want) {
			t.Errorf("Markdown export missing %q:\n%s", want, out)
		}
	}
}

func TestExport_HTML(t *testing.T) {
	var buf bytes.Buffer
	if err := Export(&buf, exportDocs(), FormatHTML); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"<h1>Phrasebook</h1>", "<blockquote>", "<em>en → fr</em>"} {
		if !strings.Contains(out, want) {
			t.Errorf("HTML export missing %q:\n%s", want, out)
		}
	}
}

func TestExport_Errors(t *testing.T) {
	var buf bytes.Buffer
	if err := Export(&buf, exportDocs(), "pdf"); err == nil {
		t.Error("Expected error for unknown format")
	}

	bad := []*Document{{ID: "x", Data: []byte("not json")}}
	if err := Export(&buf, bad, FormatMarkdown); err == nil {
		t.Error("Expected error for undecodable entry")
	}
}

func TestArchive(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "phrasebook.db")
	if err := os.WriteFile(dbPath, []byte("sqlite"), 0644); err != nil {
		t.Fatalf("Failed to create database file: %v", err)
	}

	archived, err := Archive(dbPath)
	if err != nil {
		t.Fatalf("Archive failed: %v", err)
	}

	if _, err := os.Stat(dbPath); !os.IsNotExist(err) {
		t.Error("Database still exists after archiving")
	}
	if filepath.Dir(archived) != filepath.Join(tmpDir, "archive") {
		t.Errorf("Archived to unexpected directory: %s", archived)
	}

	name := filepath.Base(archived)
	if !strings.HasPrefix(name, "phrasebook-") || !strings.HasSuffix(name, ".db") {
		t.Errorf("Unexpected archive name: %s", name)
	}

	content, err := os.ReadFile(archived)
	if err != nil || string(content) != "sqlite" {
		t.Errorf("Archived content mismatch: %q, %v", content, err)
	}
}

func TestArchive_Missing(t *testing.T) {
	if _, err := Archive(filepath.Join(t.TempDir(), "none.db")); err == nil {
		t.Error("Expected error archiving a missing database")
	}
}
