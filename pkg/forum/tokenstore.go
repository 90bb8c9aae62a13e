package forum

import (
	"os"
	"path/filepath"
	"strings"
)

// The SPA kept the credential in localStorage; the console keeps it in a
// file under the user's config directory instead.

func LoadToken(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func SaveToken(path, token string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(token+"\n"), 0o600)
}

func ClearToken(path string) {
	_ = os.Remove(path)
}
