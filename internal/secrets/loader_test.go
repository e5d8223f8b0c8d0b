package secrets

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	keyFile := filepath.Join(dir, "key")
	if err := os.WriteFile(keyFile, []byte("  file-secret \n"), 0o600); err != nil {
		t.Fatal(err)
	}
	emptyFile := filepath.Join(dir, "empty")
	if err := os.WriteFile(emptyFile, []byte("   \n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name    string
		src     Source
		want    string
		wantErr bool
	}{
		{name: "inline value", src: Source{Name: "api key", Value: " inline "}, want: "inline"},
		{name: "file wins over value", src: Source{Name: "api key", Value: "inline", File: keyFile}, want: "file-secret"},
		{name: "empty file", src: Source{Name: "api key", File: emptyFile}, wantErr: true},
		{name: "missing file", src: Source{Name: "api key", File: filepath.Join(dir, "absent")}, wantErr: true},
		{name: "nothing configured", src: Source{Name: "api key"}, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := Load(tc.src)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestLoadOptional(t *testing.T) {
	t.Parallel()

	got, err := LoadOptional(Source{Name: "api key"})
	if err != nil {
		t.Fatalf("absent secret must not error: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty value, got %q", got)
	}

	if _, err := LoadOptional(Source{Name: "api key", File: "/nonexistent/key"}); err == nil {
		t.Fatal("a set but unreadable file must still error")
	}
}
