package script

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "format.lua")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_AndFormat(t *testing.T) {
	path := writeScript(t, `
function format(text)
  return "[" .. text .. "]"
end
`)
	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer f.Close()

	got, err := f.Format("⇪ ⇭")
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if got != "[⇪ ⇭]" {
		t.Errorf("Format() = %q, want [⇪ ⇭]", got)
	}
}

func TestLoad_MissingFunction(t *testing.T) {
	path := writeScript(t, `x = 1`)
	if _, err := Load(path); !errors.Is(err, ErrNoFormatter) {
		t.Errorf("Load returned %v, want ErrNoFormatter", err)
	}
}

func TestLoad_SyntaxError(t *testing.T) {
	path := writeScript(t, `function format(`)
	if _, err := Load(path); err == nil {
		t.Error("Load accepted a broken script")
	}
}

func TestFormat_RuntimeErrorContained(t *testing.T) {
	path := writeScript(t, `
function format(text)
  error("boom")
end
`)
	f, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if _, err := f.Format("x"); err == nil {
		t.Error("runtime error not surfaced")
	}
	// The state survives a failed call.
	if _, err := f.Format("y"); err == nil {
		t.Error("expected the same runtime error on retry")
	}
}

func TestFormat_BadResult(t *testing.T) {
	path := writeScript(t, `
function format(text)
  return 42
end
`)
	f, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if _, err := f.Format("x"); !errors.Is(err, ErrBadResult) {
		t.Errorf("Format returned %v, want ErrBadResult", err)
	}
}

func TestFormat_SandboxExcludesOS(t *testing.T) {
	path := writeScript(t, `
function format(text)
  if os == nil then
    return "sandboxed"
  end
  return "open"
end
`)
	f, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	got, err := f.Format("x")
	if err != nil {
		t.Fatal(err)
	}
	if got != "sandboxed" {
		t.Errorf("os library reachable from script")
	}
}

func TestClose_Idempotent(t *testing.T) {
	path := writeScript(t, `function format(t) return t end`)
	f, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	f.Close()

	if _, err := f.Format("x"); !errors.Is(err, ErrClosed) {
		t.Errorf("Format on closed formatter returned %v", err)
	}
}
