// ABOUTME: Tests for the sync configure command
// ABOUTME: Covers credential collection and config persistence
package cli

import (
	"bufio"
	"os"
	"strings"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizdesk/bizdesk/config"
)

func redirectConfigDir(t *testing.T) {
	t.Helper()
	t.Cleanup(func() { xdg.Reload() })
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	xdg.Reload()
}

func TestConfigureCollectsAllCredentials(t *testing.T) {
	redirectConfigDir(t)

	cfg := &config.Config{DeviceID: "device"}

	input := strings.Join([]string{
		"https://remote.example.co", // remote store URL
		"https://ads.example.co",    // ad network URL
	}, "\n") + "\n"

	secrets := []string{"remote-key", "gemini-key", "ads-token"}
	secret := func(string) (string, error) {
		next := secrets[0]
		secrets = secrets[1:]
		return next, nil
	}

	err := configure(cfg, bufio.NewReader(strings.NewReader(input)), secret)
	require.NoError(t, err)

	assert.Equal(t, "https://remote.example.co", cfg.Remote.URL)
	assert.Equal(t, "remote-key", cfg.Remote.APIKey)
	assert.Equal(t, "gemini-key", cfg.GeminiAPIKey)
	assert.Equal(t, "https://ads.example.co", cfg.AdsURL)
	assert.Equal(t, "ads-token", cfg.AdsToken)

	info, err := os.Stat(config.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigureBlankInputKeepsSavedValues(t *testing.T) {
	redirectConfigDir(t)

	cfg := &config.Config{
		Remote:       config.RemoteConfig{URL: "https://saved.example.co", APIKey: "saved-key"},
		GeminiAPIKey: "saved-gemini",
		AdsURL:       "https://saved-ads.example.co",
		AdsToken:     "saved-token",
		DeviceID:     "device",
	}

	// Blank lines keep the current URLs; blank secrets keep the saved keys.
	input := "\n\n"
	secret := func(string) (string, error) { return "", nil }

	err := configure(cfg, bufio.NewReader(strings.NewReader(input)), secret)
	require.NoError(t, err)

	assert.Equal(t, "https://saved.example.co", cfg.Remote.URL)
	assert.Equal(t, "saved-key", cfg.Remote.APIKey)
	assert.Equal(t, "saved-gemini", cfg.GeminiAPIKey)
	assert.Equal(t, "https://saved-ads.example.co", cfg.AdsURL)
	assert.Equal(t, "saved-token", cfg.AdsToken)
}
