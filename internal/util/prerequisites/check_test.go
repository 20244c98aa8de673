package prerequisites

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCheck_FindsExistingTool(t *testing.T) {
	// "go" is guaranteed to be present when running go test.
	results := Check([]Tool{{Name: "go", Required: true}})

	if len(results.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results.Results))
	}
	if !results.Results[0].Found {
		t.Error("expected go binary to be found")
	}
	if results.HasErrors() {
		t.Error("expected no errors")
	}
	if err := results.Error(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCheck_MissingRequiredTool(t *testing.T) {
	results := Check([]Tool{{
		Name:       "definitely-not-a-real-binary-xyz",
		Required:   true,
		InstallURL: "https://example.com",
	}})

	if !results.HasErrors() {
		t.Error("expected errors for missing required tool")
	}
	if err := results.Error(); err == nil {
		t.Error("expected error, got nil")
	}
}

func TestCheck_MissingOptionalTool(t *testing.T) {
	results := Check([]Tool{{
		Name:     "definitely-not-a-real-binary-xyz",
		Required: false,
	}})

	if results.HasErrors() {
		t.Error("optional tools must not cause errors")
	}
	if err := results.Error(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCredentialsPath_EnvVar(t *testing.T) {
	dir := t.TempDir()
	credsFile := filepath.Join(dir, "creds.json")
	if err := os.WriteFile(credsFile, []byte("{}"), 0600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", credsFile)
	if got := CredentialsPath(); got != credsFile {
		t.Errorf("expected %q, got %q", credsFile, got)
	}
}

func TestCredentialsPath_EnvVarMissingFile(t *testing.T) {
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "/nonexistent/creds.json")
	if got := CredentialsPath(); got != "" {
		t.Errorf("expected empty path for missing file, got %q", got)
	}
}

func TestCheckCredentials_Missing(t *testing.T) {
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "/nonexistent/creds.json")
	t.Setenv("HOME", t.TempDir())
	if err := CheckCredentials(); err == nil {
		t.Error("expected error when no credentials are available")
	}
}
