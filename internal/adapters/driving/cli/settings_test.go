package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ration/internal/core/domain"
	"github.com/custodia-labs/ration/internal/core/services"
)

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "Short key", input: "abc123", expected: "****"},
		{name: "Exactly 8 chars", input: "12345678", expected: "****"},
		{name: "Long key", input: "AIza1234567890abcdef", expected: "AIza...cdef"},
		{name: "Empty key", input: "", expected: "****"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, maskAPIKey(tt.input))
		})
	}
}

func TestParseSettingValue(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		raw      string
		expected any
		wantErr  bool
	}{
		{name: "int", key: services.KeyServerPort, raw: "9090", expected: 9090},
		{name: "bad int", key: services.KeyDatasetMaxMatches, raw: "many", wantErr: true},
		{name: "float", key: services.KeyLLMRequestsPerSec, raw: "0.5", expected: 0.5},
		{name: "bad float", key: services.KeyLLMRequestsPerSec, raw: "fast", wantErr: true},
		{name: "list", key: services.KeyAllowedOrigins, raw: "https://a.example, https://b.example,", expected: []string{"https://a.example", "https://b.example"}},
		{name: "string", key: services.KeyLLMProvider, raw: " ollama ", expected: "ollama"},
		{name: "unknown key", key: "llm.temperature", raw: "1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSettingValue(tt.key, tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSettingKeys_AllHaveKinds(t *testing.T) {
	keys := settingKeys()
	assert.Len(t, keys, len(settingKinds))
	for _, k := range keys {
		_, ok := settingKinds[k]
		assert.True(t, ok, k)
	}
}

func TestSettingsShow(t *testing.T) {
	svc, store := setupTestServices(t)
	require.NoError(t, store.Set(services.KeyLLMAPIKey, "AIza1234567890abcdef"))

	out, err := runCommand(t, svc, "settings")

	require.NoError(t, err)
	assert.Contains(t, out, "Port: 8080")
	assert.Contains(t, out, "Max matches: 1000")
	assert.Contains(t, out, "AIza...cdef")
	assert.NotContains(t, out, "AIza1234567890abcdef")
}

func TestSettingsShow_JSON(t *testing.T) {
	svc, store := setupTestServices(t)
	require.NoError(t, store.Set(services.KeyLLMAPIKey, "AIza1234567890abcdef"))

	out, err := runCommand(t, svc, "settings", "show", "--json")

	require.NoError(t, err)
	var got domain.Settings
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, domain.DefaultPort, got.Server.Port)
	assert.Equal(t, "AIza...cdef", got.LLM.APIKey)
}

func TestSettingsSet(t *testing.T) {
	svc, store := setupTestServices(t)

	out, err := runCommand(t, svc, "settings", "set", services.KeyServerPort, "9090")

	require.NoError(t, err)
	assert.Contains(t, out, "server.port = 9090")
	assert.Equal(t, 9090, store.GetInt(services.KeyServerPort))
}

func TestSettingsSet_HidesAPIKey(t *testing.T) {
	svc, store := setupTestServices(t)

	out, err := runCommand(t, svc, "settings", "set", services.KeyLLMAPIKey, "secret-value-123")

	require.NoError(t, err)
	assert.NotContains(t, out, "secret-value-123")
	assert.Equal(t, "secret-value-123", store.GetString(services.KeyLLMAPIKey))
}

func TestSettingsSet_RequiresValue(t *testing.T) {
	svc, _ := setupTestServices(t)

	_, err := runCommand(t, svc, "settings", "set", services.KeyServerPort)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "value is required")
}

func TestSettingsCheck_NotConfigured(t *testing.T) {
	svc, _ := setupTestServices(t)

	_, err := runCommand(t, svc, "settings", "check")

	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
}
