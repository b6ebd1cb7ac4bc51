// ABOUTME: Tests for configuration resolution
// ABOUTME: Covers remote endpoint validation, env overrides, and device ID generation
package config

import (
	"os"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoteConfigIsConfigured(t *testing.T) {
	tests := []struct {
		name string
		cfg  RemoteConfig
		want bool
	}{
		{"valid https", RemoteConfig{URL: "https://abc.example.co", APIKey: "key"}, true},
		{"valid http", RemoteConfig{URL: "http://localhost:54321", APIKey: "key"}, true},
		{"missing key", RemoteConfig{URL: "https://abc.example.co"}, false},
		{"missing url", RemoteConfig{APIKey: "key"}, false},
		{"non-http scheme", RemoteConfig{URL: "postgres://db.example.co:5432", APIKey: "key"}, false},
		{"garbage url", RemoteConfig{URL: "://not a url", APIKey: "key"}, false},
		{"scheme only", RemoteConfig{URL: "https://", APIKey: "key"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.IsConfigured())
		})
	}
}

func TestEnvOverridesShadowSavedValues(t *testing.T) {
	cfg := &Config{
		Remote:   RemoteConfig{URL: "https://saved.example.co", APIKey: "saved-key"},
		AutoSync: true,
	}

	t.Setenv("BIZDESK_REMOTE_URL", "https://override.example.co")
	t.Setenv("BIZDESK_REMOTE_KEY", "")
	t.Setenv("BIZDESK_AUTO_SYNC", "false")

	applyEnv(cfg, recognizedEnv())

	assert.Equal(t, "https://override.example.co", cfg.Remote.URL)
	assert.Equal(t, "saved-key", cfg.Remote.APIKey, "empty env var must not clear saved value")
	assert.False(t, cfg.AutoSync)
}

// unsetForTest removes an environment variable for the duration of the test,
// including any value a .env load injects along the way.
func unsetForTest(t *testing.T, key string) {
	t.Helper()
	old, ok := os.LookupEnv(key)
	os.Unsetenv(key)
	t.Cleanup(func() {
		if ok {
			os.Setenv(key, old)
		} else {
			os.Unsetenv(key)
		}
	})
}

// isolateLoad points the config path at a temp dir, moves the working
// directory to its own temp dir for .env loading, and clears all recognized
// environment variables.
func isolateLoad(t *testing.T) {
	t.Helper()
	for _, key := range envVars {
		unsetForTest(t, key)
	}
	t.Cleanup(func() { xdg.Reload() })
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	xdg.Reload()
	t.Chdir(t.TempDir())
}

func TestSavedConfigShadowsDotenvDefaults(t *testing.T) {
	isolateLoad(t)

	dotenv := "BIZDESK_REMOTE_URL=https://build-default.example.co\n" +
		"BIZDESK_ADS_URL=https://ads-default.example.co\n"
	require.NoError(t, os.WriteFile(".env", []byte(dotenv), 0600))

	saved := &Config{
		Remote:   RemoteConfig{URL: "https://user-entered.example.co", APIKey: "saved-key"},
		DeviceID: "saved-device",
		AutoSync: true,
	}
	require.NoError(t, saved.Save())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://user-entered.example.co", cfg.Remote.URL,
		"a .env build default must not shadow the saved config")
	assert.Equal(t, "saved-key", cfg.Remote.APIKey)
	assert.Equal(t, "https://ads-default.example.co", cfg.AdsURL,
		".env still supplies defaults the saved config leaves unset")
}

func TestPresetEnvShadowsSavedConfig(t *testing.T) {
	isolateLoad(t)

	require.NoError(t, os.WriteFile(".env",
		[]byte("BIZDESK_REMOTE_URL=https://build-default.example.co\n"), 0600))

	saved := &Config{
		Remote:   RemoteConfig{URL: "https://user-entered.example.co", APIKey: "saved-key"},
		DeviceID: "saved-device",
		AutoSync: true,
	}
	require.NoError(t, saved.Save())

	t.Setenv("BIZDESK_REMOTE_URL", "https://env.example.co")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://env.example.co", cfg.Remote.URL,
		"an environment variable set before launch shadows the saved config")
}

func TestGenerateDeviceID(t *testing.T) {
	id1 := GenerateDeviceID()
	id2 := GenerateDeviceID()

	require.Len(t, id1, 26, "ULID should be 26 characters")
	assert.NotEqual(t, id1, id2)
}
