package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport_BundledSample(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "..", "data", "effects.json"))
	require.NoError(t, err)

	var out bytes.Buffer
	at := time.Date(2025, 12, 31, 21, 0, 0, 0, time.Local)
	require.NoError(t, report(&out, data, at))
	assert.Contains(t, out.String(), "生效特效 firework")

	out.Reset()
	at = time.Date(2025, 12, 24, 12, 0, 0, 0, time.Local)
	require.NoError(t, report(&out, data, at))
	assert.Contains(t, out.String(), "生效特效 snow")
}

func TestReport_Invalid(t *testing.T) {
	var out bytes.Buffer
	err := report(&out, []byte(`{"enabled":true,"effects":[{"effectType":"snow","params":{"count":9999}}]}`), time.Now())
	require.Error(t, err)
	assert.Contains(t, out.String(), "配置非法")
}

func TestReport_Disabled(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, report(&out, []byte(`{"enabled":false}`), time.Now()))
	assert.Contains(t, out.String(), "全局关闭")
}

func TestLoad_LocalPathAndFileURL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "effects.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"enabled":false}`), 0o644))

	data, err := load(path, time.Second)
	require.NoError(t, err)
	assert.Equal(t, `{"enabled":false}`, string(data))

	data, err = load("file://"+path, time.Second)
	require.NoError(t, err)
	assert.Equal(t, `{"enabled":false}`, string(data))
}
