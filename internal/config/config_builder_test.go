package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

func validServerConfig() *StructuredConfig {
	cfg := defaults()
	cfg.App.JarPath = "/srv/game.jar"
	return cfg
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

// TestNewConfigBuilder_InitialState verifies that a freshly created builder
// has no error and an empty configs slice.
func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── merge / build ─────────────────────────────────────────────────────────────

// TestMerge_EmptyBuilder verifies that merging no configs returns a
// zero-value StructuredConfig.
func TestMerge_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().merge()
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

// TestBuild_EmptyBuilderFailsValidation verifies that a server config with
// nothing set is refused.
func TestBuild_EmptyBuilderFailsValidation(t *testing.T) {
	_, err := newConfigBuilder().build()
	assert.ErrorIs(t, err, ErrInvalidServerConfigs)
}

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_FirstSourceWins verifies that a field set by an earlier source
// is not overwritten by a later one, and that later sources fill the gaps.
func TestBuild_FirstSourceWins(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{App: App{Version: "1.0.0"}},
		&StructuredConfig{App: App{Version: "2.0.0", TokenIssuer: "issuer"}},
	)
	b.withDefaults()
	b.configs[0].App.JarPath = "/srv/game.jar"

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", cfg.App.Version)
	assert.Equal(t, "issuer", cfg.App.TokenIssuer)
	assert.Equal(t, DefaultAddress, cfg.Server.Address)
	assert.Equal(t, DefaultAutosaveInterval, cfg.Workers.AutosaveInterval)
}

// ── withEnv ───────────────────────────────────────────────────────────────────

// TestWithEnv_ReturnsBuilder verifies the fluent interface.
func TestWithEnv_ReturnsBuilder(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withEnv())
}

// TestWithEnv_ReadsEnvVars verifies that environment variables are picked up.
func TestWithEnv_ReadsEnvVars(t *testing.T) {
	setEnvVars(t, map[string]string{
		"APP_VERSION":      "env-version",
		"APP_TOKEN_ISSUER": "env-issuer",
	})

	b := newConfigBuilder()
	b.withEnv()

	require.Len(t, b.configs, 1)
	assert.Equal(t, "env-version", b.configs[0].App.Version)
	assert.Equal(t, "env-issuer", b.configs[0].App.TokenIssuer)
}

// TestWithEnv_SetsErrorOnBadValue verifies that a malformed variable is
// collected instead of appended.
func TestWithEnv_SetsErrorOnBadValue(t *testing.T) {
	setEnvVars(t, map[string]string{"SERVER_OUTBOUND_QUEUE_SIZE": "lots"})

	b := newConfigBuilder()
	b.withEnv()

	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

// ── withFlags ─────────────────────────────────────────────────────────────────

// TestWithFlags_ReturnsBuilder verifies the fluent interface.
func TestWithFlags_ReturnsBuilder(t *testing.T) {
	resetCommandLine(t)

	b := newConfigBuilder()
	assert.Same(t, b, b.withFlags())
	assert.NoError(t, b.err)
	assert.Len(t, b.configs, 1)
}

// TestWithFlags_SetsErrorOnBadFlag verifies that a flag parse error is
// collected by the builder.
func TestWithFlags_SetsErrorOnBadFlag(t *testing.T) {
	resetCommandLine(t, "-a", "nowhere")

	b := newConfigBuilder()
	b.withFlags()
	assert.Error(t, b.err)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

// TestWithJSON_NoOp_WhenNoPathSet verifies that withJSON does nothing when
// no config has a JSONFilePath.
func TestWithJSON_NoOp_WhenNoPathSet(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})
	assert.Same(t, b, b.withJSON())

	assert.Len(t, b.configs, 1)
	assert.NoError(t, b.err)
}

// TestWithJSON_AppendsConfig_WhenValidFile verifies that a valid JSON file is
// parsed and appended.
func TestWithJSON_AppendsConfig_WhenValidFile(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.App.Version = "json-version"
	payload.Workers.AutosaveInterval = Duration(30 * time.Second)
	path := writeTempJSONConfig(t, payload)

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	assert.Equal(t, "json-version", b.configs[1].App.Version)
	assert.Equal(t, 30*time.Second, b.configs[1].Workers.AutosaveInterval)
}

// TestWithJSON_SetsError_WhenFileNotFound verifies that a missing file path
// sets b.err.
func TestWithJSON_SetsError_WhenFileNotFound(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		JSONFilePath: "/nonexistent/config.json",
	})
	b.withJSON()

	assert.Error(t, b.err)
}

// TestWithJSON_UsesLastPath verifies that when multiple configs have a
// JSONFilePath, the last non-empty one is read.
func TestWithJSON_UsesLastPath(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.App.Version = "last-wins"
	path := writeTempJSONConfig(t, payload)

	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{JSONFilePath: "/nonexistent/first.json"},
		&StructuredConfig{JSONFilePath: path},
	)
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 3)
	assert.Equal(t, "last-wins", b.configs[2].App.Version)
}

// ── GetStructuredConfig / GetClientConfig ─────────────────────────────────────

// TestGetStructuredConfig_AllSources verifies the full chain with env, flags,
// a JSON file and defaults.
func TestGetStructuredConfig_AllSources(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.App.JarPath = "/json/game.jar"
	payload.Server.MaxRejectedEdits = 2
	path := writeTempJSONConfig(t, payload)

	setEnvVars(t, map[string]string{
		"CONFIG":       path,
		"APP_PASSWORD": "env-secret",
	})
	resetCommandLine(t, "-p", "flag-secret", "-queue-size", "8")

	cfg, err := GetStructuredConfig()
	require.NoError(t, err)

	assert.Equal(t, "env-secret", cfg.App.Password)
	assert.Equal(t, 8, cfg.Server.OutboundQueueSize)
	assert.Equal(t, "/json/game.jar", cfg.App.JarPath)
	assert.Equal(t, 2, cfg.Server.MaxRejectedEdits)
	assert.Equal(t, DefaultDSN, cfg.Storage.DB.DSN)
	assert.Equal(t, DefaultAddress, cfg.Server.Address)
}

// TestGetClientConfig_MapsFields verifies the client view of the merged
// config.
func TestGetClientConfig_MapsFields(t *testing.T) {
	clearEnvVars(t)
	resetCommandLine(t,
		"-u", "alice",
		"-j", "/home/alice/game.jar",
		"-a", "127.0.0.1:4000",
		"-status-url", "http://127.0.0.1:8080",
	)

	cfg, err := GetClientConfig()
	require.NoError(t, err)

	assert.Equal(t, "alice", cfg.App.Username)
	assert.Equal(t, "/home/alice/game.jar", cfg.App.JarPath)
	assert.Equal(t, "127.0.0.1:4000", cfg.Adapter.ServerAddress)
	assert.Equal(t, "http://127.0.0.1:8080", cfg.Adapter.StatusURL)
	assert.Equal(t, DefaultAdapterTimeout, cfg.Adapter.RequestTimeout)
	assert.Equal(t, DefaultLogLevel, cfg.App.LogLevel)
}

// TestGetClientConfig_RequiresUsername verifies client validation runs.
func TestGetClientConfig_RequiresUsername(t *testing.T) {
	clearEnvVars(t)
	resetCommandLine(t, "-j", "/home/alice/game.jar")

	_, err := GetClientConfig()
	assert.ErrorIs(t, err, ErrInvalidAppConfigs)
}
