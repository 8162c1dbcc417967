// ABOUTME: Integration tests for todo CLI commands.
// ABOUTME: Builds the binary and drives it through add, edit, done, and rm.

package test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

var todoBin string

func TestMain(m *testing.M) {
	cmd := exec.Command("go", "build", "-o", "bin/todo", "./cmd/todo")
	cmd.Dir = ".."
	if err := cmd.Run(); err != nil {
		panic(err)
	}

	wd, _ := os.Getwd()
	todoBin = filepath.Join(wd, "..", "bin", "todo")

	os.Exit(m.Run())
}

func TestAddListShowDelete(t *testing.T) {
	dir := t.TempDir()

	out, err := runTodo(dir, "add", "Buy", "milk")
	if err != nil {
		t.Fatalf("add failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Added todo 1") {
		t.Errorf("expected 'Added todo 1' in output: %s", out)
	}

	out, err = runTodo(dir, "list")
	if err != nil {
		t.Fatalf("list failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Buy milk") {
		t.Errorf("expected 'Buy milk' in list: %s", out)
	}

	var id string
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "Buy milk") {
			if fields := strings.Fields(line); len(fields) > 0 {
				id = fields[0]
				break
			}
		}
	}
	if id != "1" {
		t.Fatalf("expected id 1 in list row, got %q", id)
	}

	out, err = runTodo(dir, "show", id)
	if err != nil {
		t.Fatalf("show failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Buy milk") {
		t.Errorf("expected title in show: %s", out)
	}

	out, err = runTodo(dir, "rm", id, "--force")
	if err != nil {
		t.Fatalf("rm failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Deleted") {
		t.Errorf("expected 'Deleted' in output: %s", out)
	}

	out, _ = runTodo(dir, "list")
	if !strings.Contains(out, "No todos") {
		t.Errorf("expected empty list after rm: %s", out)
	}
}

func TestAddRejectsInvalidTitle(t *testing.T) {
	dir := t.TempDir()

	out, err := runTodo(dir, "add", strings.Repeat("a", 101))
	if err == nil {
		t.Fatalf("expected add to fail: %s", out)
	}
	if !strings.Contains(out, "Title must be 100 characters or fewer.") {
		t.Errorf("expected length message: %s", out)
	}
}

func TestEditAndDone(t *testing.T) {
	dir := t.TempDir()

	_, _ = runTodo(dir, "add", "Draft")
	out, err := runTodo(dir, "edit", "1", "--title", "Final")
	if err != nil {
		t.Fatalf("edit failed: %v\n%s", err, out)
	}

	out, err = runTodo(dir, "done", "1")
	if err != nil {
		t.Fatalf("done failed: %v\n%s", err, out)
	}

	out, _ = runTodo(dir, "list")
	if !strings.Contains(out, "[x]") || !strings.Contains(out, "Final") {
		t.Errorf("expected completed 'Final' in list: %s", out)
	}

	out, _ = runTodo(dir, "list", "--open")
	if strings.Contains(out, "Final") {
		t.Errorf("did not expect completed todo with --open: %s", out)
	}

	if out, err := runTodo(dir, "done", "99"); err == nil {
		t.Errorf("expected done on missing id to fail: %s", out)
	}
}

func TestExportImport(t *testing.T) {
	src := t.TempDir()
	_, _ = runTodo(src, "add", "first")
	_, _ = runTodo(src, "add", "second")
	_, _ = runTodo(src, "done", "1")

	exportPath := filepath.Join(src, "backup.yaml")
	if out, err := runTodo(src, "export", "--format", "yaml", "--output", exportPath); err != nil {
		t.Fatalf("export failed: %v\n%s", err, out)
	}

	dst := t.TempDir()
	out, err := runTodo(dst, "import", exportPath)
	if err != nil {
		t.Fatalf("import failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Imported 2 todos") {
		t.Errorf("expected import count: %s", out)
	}

	out, _ = runTodo(dst, "list", "--open")
	if !strings.Contains(out, "second") || strings.Contains(out, "first") {
		t.Errorf("expected only 'second' open after import: %s", out)
	}
}

// runTodo runs the binary against a database and config isolated in dir.
func runTodo(dir string, args ...string) (string, error) {
	allArgs := append([]string{"--db", filepath.Join(dir, "test.db")}, args...)
	cmd := exec.Command(todoBin, allArgs...) //nolint:gosec // Running our own test binary is expected in integration tests
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"XDG_CONFIG_HOME="+filepath.Join(dir, "config"),
		"TODO_BACKEND=sqlite",
		"NO_COLOR=1",
	)
	out, err := cmd.CombinedOutput()
	return string(out), err
}
