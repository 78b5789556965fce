package flags

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ResolvePath returns the flag file path in priority order:
// 1. COACH_FLAGS environment variable
// 2. $XDG_CONFIG_HOME/coach/flags.yaml
// 3. ~/.config/coach/flags.yaml
func ResolvePath() (string, error) {
	if p := os.Getenv("COACH_FLAGS"); p != "" {
		return p, nil
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "coach", "flags.yaml"), nil
}

// Load reads flags from a YAML file. A missing file yields Default();
// keys absent from the file keep their default value.
func Load(path string) (Flags, error) {
	f := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return f, nil
		}
		return Flags{}, fmt.Errorf("read flags: %w", err)
	}

	if err := yaml.Unmarshal(data, &f); err != nil {
		return Flags{}, fmt.Errorf("parse flags %s: %w", path, err)
	}
	if err := f.Validate(); err != nil {
		return Flags{}, fmt.Errorf("invalid flags %s: %w", path, err)
	}
	return f, nil
}

// Save writes flags as YAML, creating the parent directory if needed.
func Save(path string, f Flags) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create flags dir: %w", err)
	}
	raw, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshal flags: %w", err)
	}
	return os.WriteFile(path, raw, 0o644)
}
