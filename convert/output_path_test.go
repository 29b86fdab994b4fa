package convert

import (
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"epubgen/book"
	"epubgen/config"
	"epubgen/state"
)

func setupTestEnvForOutputPath(t *testing.T, transliterate bool, template string) *state.LocalEnv {
	t.Helper()
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	cfg.Document.FileNameTransliterate = transliterate
	cfg.Document.OutputNameTemplate = template

	return &state.LocalEnv{
		Log: logger,
		Cfg: cfg,
	}
}

func setupTestMetadataForPath(t *testing.T) *book.Metadata {
	t.Helper()
	return book.NewMetadata(
		book.WithTitle("Test Book"),
		book.WithAuthor("John Doe"),
		book.WithLanguage("en"),
		book.WithIdentifier("test-book-id"),
	)
}

func TestBuildOutputPath(t *testing.T) {
	tests := []struct {
		name          string
		src, dst      string
		transliterate bool
		template      string
		want          string
	}{
		{
			name: "default name",
			src:  "/projects/book.yaml", dst: "/output",
			want: filepath.Join("/output", "book.epub"),
		},
		{
			name: "default name transliterated",
			src:  "/projects/Él Cañón.yaml", dst: "/output", transliterate: true,
			want: filepath.Join("/output", "el-canon.epub"),
		},
		{
			name: "file destination",
			src:  "/projects/book.yaml", dst: "/output/Result.EPUB", template: "{{ .Title }}",
			want: "/output/Result.EPUB",
		},
		{
			name: "template",
			src:  "/projects/book.yaml", dst: "/output", template: "{{ .Author }} - {{ .Title }}",
			want: filepath.Join("/output", "John Doe - Test Book.epub"),
		},
		{
			name: "template with subdirectories",
			src:  "/projects/book.yaml", dst: "/output", template: "{{ .Language }}/{{ .Author }}/{{ .SourceFile }}",
			want: filepath.Join("/output", "en", "John Doe", "book.epub"),
		},
		{
			name: "template with subdirectories transliterated",
			src:  "/projects/book.yaml", dst: "/output", template: "{{ .Author }}/{{ .Title }}", transliterate: true,
			want: filepath.Join("/output", "john-doe", "test-book.epub"),
		},
		{
			name: "template cannot escape destination",
			src:  "/projects/book.yaml", dst: "/output", template: "../../{{ .Title }}",
			want: filepath.Join("/output", "Test Book.epub"),
		},
		{
			name: "bad template falls back",
			src:  "/projects/book.yaml", dst: "/output", template: "{{ .Title",
			want: filepath.Join("/output", "book.epub"),
		},
		{
			name: "unknown field falls back",
			src:  "/projects/book.yaml", dst: "/output", template: "{{ .Series }}",
			want: filepath.Join("/output", "book.epub"),
		},
		{
			name: "empty expansion",
			src:  "/projects/book.yaml", dst: "/output", template: "{{ .ISBN }}",
			want: filepath.Join("/output", "book.epub"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestEnvForOutputPath(t, tt.transliterate, tt.template)
			got := buildOutputPath(setupTestMetadataForPath(t), tt.src, tt.dst, env)
			if got != tt.want {
				t.Errorf("buildOutputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSplitAndCleanPath(t *testing.T) {
	tests := []struct {
		path string
		want []string
	}{
		{"file", []string{"file"}},
		{filepath.Join("a", "b", "c"), []string{"a", "b", "c"}},
		{filepath.Join("a", "b") + string(filepath.Separator), []string{"a", "b"}},
		{filepath.Join("..", "a"), []string{"a"}},
		{"", nil},
	}
	for _, tt := range tests {
		got := splitAndCleanPath(tt.path)
		if len(got) != len(tt.want) {
			t.Errorf("splitAndCleanPath(%q) = %v, want %v", tt.path, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("splitAndCleanPath(%q) = %v, want %v", tt.path, got, tt.want)
				break
			}
		}
	}
}
