package logger

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zapcore"
)

type LoggerTestSuite struct {
	suite.Suite
}

func TestLoggerSuite(t *testing.T) {
	suite.Run(t, new(LoggerTestSuite))
}

func (suite *LoggerTestSuite) TestNewLoggerDefaultsToInfo() {
	log, err := NewLogger()
	suite.Require().NoError(err)
	suite.Require().NotNil(log.Logger)

	suite.True(log.Core().Enabled(zapcore.InfoLevel))
	suite.False(log.Core().Enabled(zapcore.DebugLevel))
}

func (suite *LoggerTestSuite) TestNewVerboseLoggerEnablesDebug() {
	log, err := NewVerboseLogger()
	suite.Require().NoError(err)
	suite.True(log.Core().Enabled(zapcore.DebugLevel))
}

func (suite *LoggerTestSuite) TestSyncOnZeroValue() {
	var log Logger
	suite.NoError(log.Sync())
}
