package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mapLookup(env map[string]string) Lookup {
	return func(key string) (string, bool) {
		value, ok := env[key]
		return value, ok
	}
}

func validEnv() map[string]string {
	return map[string]string{
		"COMGATE_MERCHANT":  "merchant123",
		"COMGATE_SECRET":    "s3cret",
		"COMGATE_HASH_SALT": "xyz",
		"COMGATE_TEST_MODE": "true",
	}
}

func TestComgateFromEnvValid(t *testing.T) {
	cfg, err := ComgateFromEnv(mapLookup(validEnv()))
	require.NoError(t, err)
	require.Equal(t, "merchant123", cfg.Merchant)
	require.Equal(t, "s3cret", cfg.Secret)
	require.Equal(t, "xyz", cfg.HashSalt)
	require.True(t, cfg.TestMode)
}

func TestComgateFromEnvTrimsWhitespace(t *testing.T) {
	env := validEnv()
	env["COMGATE_MERCHANT"] = "  merchant123 \n"
	env["COMGATE_TEST_MODE"] = " false "

	cfg, err := ComgateFromEnv(mapLookup(env))
	require.NoError(t, err)
	require.Equal(t, "merchant123", cfg.Merchant)
	require.False(t, cfg.TestMode)
}

func TestComgateFromEnvMissingKeys(t *testing.T) {
	for _, missing := range []string{
		"COMGATE_MERCHANT",
		"COMGATE_SECRET",
		"COMGATE_HASH_SALT",
		"COMGATE_TEST_MODE",
	} {
		env := validEnv()
		delete(env, missing)

		_, err := ComgateFromEnv(mapLookup(env))
		require.Error(t, err)

		var cfgErr *ConfigError
		require.ErrorAs(t, err, &cfgErr)
		require.Equal(t, missing, cfgErr.Key)
	}
}

func TestComgateFromEnvTestModeStrict(t *testing.T) {
	for _, bad := range []string{"TRUE", "1", "yes", "False", ""} {
		env := validEnv()
		env["COMGATE_TEST_MODE"] = bad

		_, err := ComgateFromEnv(mapLookup(env))
		require.Error(t, err, "value %q", bad)

		var cfgErr *ConfigError
		require.ErrorAs(t, err, &cfgErr)
		require.Equal(t, "COMGATE_TEST_MODE", cfgErr.Key)
	}
}
