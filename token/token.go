// Package token extracts the OAuth token from the Yandex Music desktop
// app's LevelDB local storage, sparing the user a browser devtools dig.
package token

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/goccy/go-json"
	"github.com/syndtr/goleveldb/leveldb"
)

// Local storage key the desktop app stores its OAuth state under:
// "_music-application://desktop" + \x00\x01 + "oauth".
const storageKey = "_music-application://desktop\x00\x01oauth"

var ErrNotFound = errors.New("token not found in desktop app local storage")

// DefaultDBPath returns the platform location of the desktop app's
// LevelDB local storage directory.
func DefaultDBPath() (string, error) {
	switch runtime.GOOS {
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			return "", errors.New("APPDATA environment variable is not set")
		}

		return filepath.Join(appData, "YandexMusic", "Local Storage", "leveldb"), nil
	case "darwin":
		home, err := os.UserHomeDir()
		if nil != err {
			return "", fmt.Errorf("failed to get home directory: %v", err)
		}

		return filepath.Join(home, "Library", "Application Support", "YandexMusic", "Local Storage", "leveldb"), nil
	default:
		home, err := os.UserHomeDir()
		if nil != err {
			return "", fmt.Errorf("failed to get home directory: %v", err)
		}

		return filepath.Join(home, ".config", "yandex-music", "Local Storage", "leveldb"), nil
	}
}

// Extract reads the token from the LevelDB directory at dbPath. The
// directory is copied to a temp location first so the database is never
// opened in place while the app may hold it.
func Extract(dbPath string) (t string, err error) {
	tmpDir, err := os.MkdirTemp("", "yamusic-leveldb-")
	if nil != err {
		return "", fmt.Errorf("failed to create temp directory: %v", err)
	}
	defer func() {
		if removeErr := os.RemoveAll(tmpDir); nil != removeErr {
			err = errors.Join(err, fmt.Errorf("failed to remove temp directory: %v", removeErr))
		}
	}()

	if err := copyFiles(dbPath, tmpDir); nil != err {
		return "", err
	}

	return readToken(tmpDir)
}

func copyFiles(src, dst string) error {
	entries, err := os.ReadDir(src)
	if nil != err {
		return fmt.Errorf("failed to read local storage directory: %v", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		b, err := os.ReadFile(filepath.Join(src, entry.Name()))
		if nil != err {
			return fmt.Errorf("failed to read local storage file %s: %v", entry.Name(), err)
		}
		if err := os.WriteFile(filepath.Join(dst, entry.Name()), b, 0o600); nil != err {
			return fmt.Errorf("failed to copy local storage file %s: %v", entry.Name(), err)
		}
	}

	return nil
}

func readToken(dbPath string) (t string, err error) {
	db, err := leveldb.OpenFile(dbPath, nil)
	if nil != err {
		return "", fmt.Errorf("failed to open local storage database: %v", err)
	}
	defer func() {
		if closeErr := db.Close(); nil != closeErr {
			err = errors.Join(err, fmt.Errorf("failed to close local storage database: %v", closeErr))
		}
	}()

	value, err := db.Get([]byte(storageKey), nil)
	if nil != err {
		if errors.Is(err, leveldb.ErrNotFound) {
			return "", ErrNotFound
		}

		return "", fmt.Errorf("failed to read token key: %v", err)
	}
	if len(value) < 2 {
		return "", errors.New("token value is too short")
	}

	// First byte is the Chromium local storage serialization tag.
	var stored struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(value[1:], &stored); nil != err {
		return "", fmt.Errorf("failed to decode token value: %v", err)
	}
	if stored.Value == "" {
		return "", errors.New("token value is empty")
	}

	return stored.Value, nil
}
