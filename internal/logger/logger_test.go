package logger

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_LevelFallback(t *testing.T) {
	log, err := New("not-a-level", "")
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())

	log, err = New("debug", "")
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
}

func TestNew_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "server.log")

	log, err := New("info", path)
	require.NoError(t, err)
	log.WithField("request_id", "abc").Info("hello")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
	assert.Contains(t, string(data), "request_id=abc")
}

func TestFromContext(t *testing.T) {
	base := Discard()
	assert.Equal(t, logrus.FieldLogger(base), FromContext(context.Background(), base))

	entry := base.WithField("request_id", "r-1")
	ctx := WithContext(context.Background(), entry)
	got := FromContext(ctx, base)
	require.IsType(t, &logrus.Entry{}, got)
	assert.Equal(t, "r-1", got.(*logrus.Entry).Data["request_id"])
}
