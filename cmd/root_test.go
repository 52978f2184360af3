package cmd

import (
	"testing"

	"github.com/hyuniciel/inkwell/internal/config"
)

func TestConfigFlagDefault(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("config")
	if flag == nil {
		t.Fatal("expected a --config flag")
	}
	if flag.DefValue != config.DefaultPath {
		t.Errorf("--config default: got %q, want %q", flag.DefValue, config.DefaultPath)
	}
}

func TestCommandsRegistered(t *testing.T) {
	for _, name := range []string{"serve", "check", "mcp", "init", "version"} {
		if cmd, _, err := rootCmd.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("command %q not registered", name)
		}
	}
}
