package logging

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogFormat(t *testing.T) {
	f, e := ParseLogFormat("JsOn")
	require.NoError(t, e)
	assert.Equal(t, LogFormatJSON, f)

	f, e = ParseLogFormat("xml")
	assert.Error(t, e)
	assert.Equal(t, DefaultLogFormat, f)
}

func TestSetupLogging(t *testing.T) {
	oldLevel := DefaultLogger.GetLevel()
	oldFormatter := DefaultLogger.Formatter
	oldOut := DefaultLogger.Out
	defer func() {
		DefaultLogger.SetLevel(oldLevel)
		DefaultLogger.SetFormatter(oldFormatter)
		DefaultLogger.SetOutput(oldOut)
	}()

	buf := &bytes.Buffer{}
	require.NoError(t, SetupLogging(buf, "debug", "json"))
	assert.Equal(t, logrus.DebugLevel, DefaultLogger.GetLevel())
	assert.Equal(t, "*logrus.JSONFormatter", reflect.TypeOf(DefaultLogger.Formatter).String())

	DefaultLogger.WithField("subsys", "test").Debug("hello")
	assert.Contains(t, buf.String(), `"msg":"hello"`)
	assert.Contains(t, buf.String(), `"subsys":"test"`)

	assert.Error(t, SetupLogging(nil, "loud", ""))
	assert.Error(t, SetupLogging(nil, "", "yaml"))
	require.NoError(t, SetupLogging(nil, "", ""))
	assert.Equal(t, logrus.DebugLevel, DefaultLogger.GetLevel())
}
