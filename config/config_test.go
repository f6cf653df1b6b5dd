package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	if err := Load(""); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if got := viper.GetString(WebHost); got != "localhost" {
		t.Errorf("%s = %q, want localhost", WebHost, got)
	}
	if got := viper.GetInt(WebPort); got != 8193 {
		t.Errorf("%s = %d, want 8193", WebPort, got)
	}
	if got := viper.GetString(LogLevel); got != "info" {
		t.Errorf("%s = %q, want info", LogLevel, got)
	}
	if got := viper.GetInt(GameDefaultSeats); got != 2 {
		t.Errorf("%s = %d, want 2", GameDefaultSeats, got)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("PARLOR_WEB_PORT", "9000")
	t.Setenv("PARLOR_LOG_LEVEL", "debug")

	if err := Load(""); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if got := viper.GetInt(WebPort); got != 9000 {
		t.Errorf("%s = %d, want 9000", WebPort, got)
	}
	if got := viper.GetString(LogLevel); got != "debug" {
		t.Errorf("%s = %q, want debug", LogLevel, got)
	}
	// Untouched keys keep their defaults.
	if got := viper.GetString(WebHost); got != "localhost" {
		t.Errorf("%s = %q, want localhost", WebHost, got)
	}
}

func TestLoadConfigFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "parlor.yaml")
	content := []byte("web:\n  port: 7777\ngame:\n  default_seats: 6\n")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	if err := Load(path); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if got := viper.GetInt(WebPort); got != 7777 {
		t.Errorf("%s = %d, want 7777", WebPort, got)
	}
	if got := viper.GetInt(GameDefaultSeats); got != 6 {
		t.Errorf("%s = %d, want 6", GameDefaultSeats, got)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	if err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("an explicitly named missing file should be an error")
	}
}
