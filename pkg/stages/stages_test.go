package stages

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	for _, name := range []string{"prod", "int", "v2-prod", "v2-test"} {
		stage, found := config.Stages[name]
		require.True(t, found, "missing built-in stage %q", name)
		assert.NotEmpty(t, stage.URL)
		assert.NotEmpty(t, stage.RequestorRef)
	}

	assert.Equal(t, "1.0", config.Stages["prod"].Version)
	assert.Equal(t, "2.0", config.Stages["v2-prod"].Version)
	assert.Equal(t, "prod", config.DefaultStage)
	assert.Equal(t, "en", config.Language)
}

func TestStage(t *testing.T) {
	config := DefaultConfig()

	stage, err := config.Stage("int")
	require.NoError(t, err)
	assert.Equal(t, "int", stage.Name)

	// Empty name resolves the default stage.
	stage, err = config.Stage("")
	require.NoError(t, err)
	assert.Equal(t, "prod", stage.Name)

	_, err = config.Stage("staging")
	require.ErrorIs(t, err, ErrUnknownStage)
}

func TestLoad_WithoutFileUsesDefaults(t *testing.T) {
	config, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig().DefaultStage, config.DefaultStage)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/stages.yaml")
	require.Error(t, err)
}

func TestLoad_FileOverridesAndAddsStages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stages.yaml")
	contents := `
defaultStage: local
stages:
  local:
    url: http://localhost:8080/ojp
    requestorRef: local-test
    version: "2.0"
redisAddress: localhost:6379
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	config, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "local", config.DefaultStage)
	assert.Equal(t, "localhost:6379", config.RedisAddress)

	stage, err := config.Stage("")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/ojp", stage.URL)
	assert.Equal(t, "2.0", stage.Version)

	// Stage names default to their map key when the file omits them.
	assert.Equal(t, "local", stage.Name)

	// Built-in stages survive a partial file.
	_, err = config.Stage("prod")
	require.NoError(t, err)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("OJP_DEFAULT_STAGE", "v2-test")
	t.Setenv("OJP_AUTHORIZATION", "env-token")
	t.Setenv("OJP_LANGUAGE", "de")
	t.Setenv("OJP_SHAPES_URL", "http://localhost:9000/shapes")

	config, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "v2-test", config.DefaultStage)
	assert.Equal(t, "de", config.Language)
	assert.Equal(t, "http://localhost:9000/shapes", config.Shapes.URL)

	// The bearer token override targets the selected default stage only.
	stage, err := config.Stage("")
	require.NoError(t, err)
	assert.Equal(t, "env-token", stage.Authorization)

	prod, err := config.Stage("prod")
	require.NoError(t, err)
	assert.Empty(t, prod.Authorization)
}
