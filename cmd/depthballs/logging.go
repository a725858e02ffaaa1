package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/lixenwraith/depthballs/parameter"
)

const (
	logDir      = parameter.LogDir
	logFileName = parameter.LogFileName
	logBackups  = 3
)

// maxLogSizeMB is the size at which the debug log rolls over
var maxLogSizeMB = 10

// setupLogging returns a no-op logger unless debug is set; the terminal owns stdout and stderr
// With debug it writes JSON lines to logs/depthballs.log, rotated by size while the run writes
func setupLogging(debug bool) (*zap.Logger, io.Closer, error) {
	if !debug {
		return zap.NewNop(), nil, nil
	}

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, nil, errors.Wrap(err, "create log dir")
	}
	sink := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, logFileName),
		MaxSize:    maxLogSizeMB,
		MaxBackups: logBackups,
	}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(sink),
		zap.DebugLevel,
	)
	return zap.New(core, zap.AddCaller()), sink, nil
}
