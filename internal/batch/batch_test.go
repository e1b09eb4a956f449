package batch

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestReadBatchFile(t *testing.T) {
	tests := []struct {
		name        string
		fileContent string
		want        []ImageEntry
	}{
		{
			name:        "empty file",
			fileContent: "",
			want:        nil,
		},
		{
			name:        "only whitespace",
			fileContent: "   \n\t\r\n   ",
			want:        nil,
		},
		{
			name: "paths with languages",
			fileContent: `/scans/menu.jpg = de
/scans/sign.png = fr`,
			want: []ImageEntry{
				{ImagePath: "/scans/menu.jpg", TargetLang: "de"},
				{ImagePath: "/scans/sign.png", TargetLang: "fr"},
			},
		},
		{
			name: "mixed format with comments",
			fileContent: `# holiday
/scans/menu.jpg

/scans/sign.png = ja  
   /scans/ticket.webp   
= es
/scans/receipt.jpg =`,
			want: []ImageEntry{
				{ImagePath: "/scans/menu.jpg"},
				{ImagePath: "/scans/sign.png", TargetLang: "ja"},
				{ImagePath: "/scans/ticket.webp"},
				{ImagePath: "/scans/receipt.jpg"},
			},
		},
		{
			name:        "windows line endings",
			fileContent: "/a.png = de\r\n/b.png\r\n",
			want: []ImageEntry{
				{ImagePath: "/a.png", TargetLang: "de"},
				{ImagePath: "/b.png"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := filepath.Join(t.TempDir(), "batch.txt")
			if err := os.WriteFile(file, []byte(tt.fileContent), 0644); err != nil {
				t.Fatalf("Failed to write batch file: %v", err)
			}

			got, err := ReadBatchFile(file)
			if err != nil {
				t.Fatalf("ReadBatchFile() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ReadBatchFile() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestReadBatchFile_RelativePaths(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "batch.txt")
	if err := os.WriteFile(file, []byte("scans/menu.jpg = it\n"), 0644); err != nil {
		t.Fatalf("Failed to write batch file: %v", err)
	}

	got, err := ReadBatchFile(file)
	if err != nil {
		t.Fatalf("ReadBatchFile() error = %v", err)
	}
	want := filepath.Join(dir, "scans", "menu.jpg")
	if len(got) != 1 || got[0].ImagePath != want {
		t.Errorf("Expected %s, got %+v", want, got)
	}
}

func TestReadBatchFile_Missing(t *testing.T) {
	if _, err := ReadBatchFile(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestTrimSpace(t *testing.T) {
	tests := map[string]string{
		"  a  ":   "a",
		"\ta b\r": "a b",
		"":        "",
		"   ":     "",
	}
	for input, want := range tests {
		if got := trimSpace(input); got != want {
			t.Errorf("trimSpace(%q) = %q, want %q", input, got, want)
		}
	}
}
