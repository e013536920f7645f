package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"model-config-service/internal/core/domain"
	"model-config-service/internal/testutil"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "models.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func run(args ...string) (string, error) {
	cmd := NewConfigctlCmd()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestValidateCmd(t *testing.T) {
	out, err := run("validate", writeConfig(t, testutil.SampleConfig))
	require.NoError(t, err)
	assert.Contains(t, out, "ok (0 warnings)")

	out, err = run("validate", writeConfig(t, testutil.DuplicateConfig))
	require.NoError(t, err)
	assert.Contains(t, out, "diffusion[1].name")
	assert.Contains(t, out, "ok (1 warnings)")

	out, err = run("validate", writeConfig(t, testutil.InvalidConfig))
	assert.Error(t, err)
	assert.Contains(t, out, "$.foo")
	assert.Contains(t, out, "upscaling[0].scale")
}

func TestValidateCmd_MissingFile(t *testing.T) {
	_, err := run("validate", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
}

func TestModelsCmd(t *testing.T) {
	path := writeConfig(t, testutil.SampleConfig)

	out, err := run("models", path)
	require.NoError(t, err)
	assert.Contains(t, out, "diffusion")
	assert.Contains(t, out, "CATEGORY")

	out, err = run("models", path, "upscaling")
	require.NoError(t, err)
	assert.Contains(t, out, "upscaling-real-esrgan-x4-plus")
	assert.Contains(t, out, "x4")

	_, err = run("models", path, "vae")
	assert.ErrorIs(t, err, domain.ErrUnknownCategory)
}

func TestModelsCmd_Rejected(t *testing.T) {
	path := writeConfig(t, testutil.InvalidConfig)

	_, err := run("models", path)
	assert.ErrorIs(t, err, domain.ErrDocumentRejected)

	out, err := run("models", "--allow-partial", path, "upscaling")
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
}

func TestStringsCmd(t *testing.T) {
	path := writeConfig(t, testutil.SampleConfig)

	out, err := run("strings", path, "en", "errors", "server", "unreachable")
	require.NoError(t, err)
	assert.Equal(t, "Server Error: could not reach the API\n", out)

	out, err = run("strings", path, "de,en", "model/stable-diffusion-onnx-v1-5")
	require.NoError(t, err)
	assert.Equal(t, "Stable Diffusion v1.5 (de)\n", out)

	_, err = run("strings", path, "de", "errors/server/unreachable")
	assert.ErrorIs(t, err, domain.ErrTranslationNotFound)
}
