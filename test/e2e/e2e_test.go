package e2e

import (
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestHappyPath(t *testing.T) {
	// Setup
	distDir, _ := filepath.Abs("../../dist")
	bin := filepath.Join(distDir, "repocat")
	if _, err := os.Stat(bin); err != nil {
		t.Skipf("repocat binary not built in %s", distDir)
	}

	tempDir := t.TempDir()
	outDir := filepath.Join(tempDir, "out")
	if err := os.Mkdir(outDir, 0700); err != nil {
		t.Fatal(err)
	}

	snapshot := filepath.Join(tempDir, "repos.json")
	if err := os.WriteFile(snapshot, []byte(`[
  {"name": "vpc", "topics": ["terraform", "completed"], "custom_properties": {"ProjectCategory": "network"}},
  {"name": "alb", "topics": ["terraform", "cloudformation"], "custom_properties": {"ProjectCategory": "network"}},
  {"name": "prototype", "topics": ["in-progress"]}
]`), 0600); err != nil {
		t.Fatal(err)
	}

	run := func(args ...string) (string, int) {
		cmd := exec.Command(bin, args...)
		cmd.Dir = tempDir
		output, err := cmd.CombinedOutput()
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return string(output), exitErr.ExitCode()
		}
		if err != nil {
			t.Fatalf("repocat %v failed: %v", args, err)
		}
		return string(output), 0
	}

	// 1. Classify the snapshot
	out, code := run("--input", snapshot, "--output-dir", outDir)
	if code != 0 {
		t.Fatalf("unexpected exit code %d: %s", code, out)
	}
	if !strings.Contains(out, "Repositories in snapshot: 3") {
		t.Errorf("unexpected output: %s", out)
	}

	// 2. Verify the report files
	var tf map[string][]struct {
		Name string `json:"name"`
	}
	data, err := os.ReadFile(filepath.Join(outDir, "terraform_repos.json"))
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(data, &tf); err != nil {
		t.Fatal(err)
	}
	if len(tf["network"]) != 2 || tf["network"][0].Name != "alb" || tf["network"][1].Name != "vpc" {
		t.Errorf("unexpected terraform report: %s", data)
	}

	for _, name := range []string{"cloudformation_repos.json", "currently_working_repos.json"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("%s missing: %v", name, err)
		}
	}

	// 3. A missing output directory exits 1
	out, code = run("--org", "acme", "--output-dir", filepath.Join(tempDir, "missing"))
	if code != 1 {
		t.Errorf("expected exit code 1, got %d: %s", code, out)
	}
}
