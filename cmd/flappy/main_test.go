package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

func newEnvCommand(db, variant, level *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "x",
		PersistentPreRunE: applyEnv,
		Run:               func(*cobra.Command, []string) {},
	}
	cmd.Flags().StringVar(db, "db", "default.db", "")
	cmd.Flags().StringVar(variant, "variant", "", "")
	cmd.Flags().StringVar(level, "log-level", "info", "")
	return cmd
}

func TestApplyEnvFlagsWin(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("FLAPPY_DB", "env.db")
	t.Setenv("FLAPPY_VARIANT", "modern")
	t.Setenv("FLAPPY_LOG_LEVEL", "")

	var db, variant, level string
	cmd := newEnvCommand(&db, &variant, &level)
	cmd.SetArgs([]string{"--db", "flag.db"})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}

	if db != "flag.db" {
		t.Errorf("db = %q, want flag.db", db)
	}
	if variant != "modern" {
		t.Errorf("variant = %q, want modern", variant)
	}
	if level != "info" {
		t.Errorf("log-level = %q, want default info", level)
	}
}

func TestApplyEnvReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("FLAPPY_LOG_LEVEL=debug\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FLAPPY_LOG_LEVEL", "")
	os.Unsetenv("FLAPPY_LOG_LEVEL")
	t.Setenv("FLAPPY_DB", "")
	t.Setenv("FLAPPY_VARIANT", "")

	var db, variant, level string
	cmd := newEnvCommand(&db, &variant, &level)
	cmd.SetArgs(nil)
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}

	if level != "debug" {
		t.Errorf("log-level = %q, want debug from .env", level)
	}
	if db != "default.db" {
		t.Errorf("db = %q, want default", db)
	}
}

func TestLoadConfigAppliesVariantAndPreset(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flappy.toml")
	if err := os.WriteFile(path, []byte("[obstacles]\ngap = 180.0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	oldConfig, oldVariant, oldDifficulty := flagConfig, flagVariant, flagDifficulty
	t.Cleanup(func() {
		flagConfig, flagVariant, flagDifficulty = oldConfig, oldVariant, oldDifficulty
	})

	flagConfig = path
	flagVariant = "classic"
	flagDifficulty = "hard"

	cfg, err := loadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Obstacles.Gap != 180 {
		t.Errorf("gap = %v, want 180 from file", cfg.Obstacles.Gap)
	}
	if cfg.Obstacles.Speed != 2 || cfg.Coins.Policy != config.CoinPolicyFixed {
		t.Errorf("classic variant not applied: speed %v policy %q", cfg.Obstacles.Speed, cfg.Coins.Policy)
	}
	if !cfg.Difficulty.Enabled || cfg.Difficulty.InitialLevel != 0.7 {
		t.Errorf("hard preset not applied: %+v", cfg.Difficulty)
	}

	flagVariant = "arcade"
	if _, err := loadConfig(); err == nil {
		t.Error("unknown variant accepted")
	}
}
