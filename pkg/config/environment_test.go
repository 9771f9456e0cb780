package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEnvironmentsFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "environments.yaml")

	content := `environments:
  - name: Workstation
    command: abaqus
  - name: Cluster
    command: /opt/simulia/abaqus
    extra_args: ["-license", "flexnet@lic01"]
    job_root: /scratch/jobs
selected: Cluster
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	cfg, err := LoadEnvironmentsFromFile(path)
	if err != nil {
		t.Fatalf("LoadEnvironmentsFromFile failed: %v", err)
	}

	if len(cfg.Environments) != 2 {
		t.Fatalf("Expected 2 environments, got %d", len(cfg.Environments))
	}
	if cfg.Environments[1].JobRoot != "/scratch/jobs" {
		t.Errorf("Expected job root '/scratch/jobs', got '%s'", cfg.Environments[1].JobRoot)
	}
	if len(cfg.Environments[1].ExtraArgs) != 2 {
		t.Errorf("Expected 2 extra args, got %v", cfg.Environments[1].ExtraArgs)
	}
}

func TestLoadEnvironmentsMissingFile(t *testing.T) {
	cfg, err := LoadEnvironmentsFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Expected default config for missing file, got error: %v", err)
	}
	if len(cfg.Environments) == 0 {
		t.Fatal("Expected a default environment")
	}
	if cfg.Environments[0].Command != "abaqus" {
		t.Errorf("Expected default command 'abaqus', got '%s'", cfg.Environments[0].Command)
	}
}

func TestResolve(t *testing.T) {
	cfg := &Config{
		Environments: []Environment{
			{Name: "Workstation", Command: "abaqus"},
			{Name: "Cluster", Command: "/opt/simulia/abaqus"},
		},
		Selected: "Cluster",
	}

	env, err := cfg.Resolve("")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if env.Name != "Cluster" {
		t.Errorf("Expected selected environment 'Cluster', got '%s'", env.Name)
	}

	env, err = cfg.Resolve("Workstation")
	if err != nil {
		t.Fatalf("Resolve by name failed: %v", err)
	}
	if env.Name != "Workstation" {
		t.Errorf("Expected 'Workstation', got '%s'", env.Name)
	}

	if _, err := cfg.Resolve("Cloud"); err == nil {
		t.Error("Expected error for unknown environment")
	}
}
