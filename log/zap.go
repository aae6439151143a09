// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package log

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// DebugLogger is a global logger configured to output messages at DebugLevel
	// and above to os.Stdout. It is typically used for detailed development and
	// debugging output.
	DebugLogger = NewZap(DebugLevel, os.Stdout)

	// DiscardLogger is a no-op logger that discards all log messages.
	DiscardLogger Logger = discardLogger{}

	// DefaultLogger is a global logger configured to output messages at InfoLevel
	// and above to os.Stdout. It serves as the standard logger for general
	// informational messages in the application.
	DefaultLogger = NewZap(InfoLevel, os.Stdout)
)

// Zap implements Logger interface with zap as the underlying logging library.
type Zap struct {
	logger  *zap.Logger
	sugar   *zap.SugaredLogger
	outputs []io.Writer
}

// enforce compilation and linter error
var _ Logger = (*Zap)(nil)

// NewZap creates an instance of Zap that writes messages at the given
// level and above to the given writers.
func NewZap(level Level, writers ...io.Writer) *Zap {
	syncers := make([]zapcore.WriteSyncer, 0, len(writers))
	for _, writer := range writers {
		syncers = append(syncers, zapcore.AddSync(writer))
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(newEncoderConfig()),
		zapcore.NewMultiWriteSyncer(syncers...),
		toZapLevel(level),
	)

	zapLogger := zap.New(core,
		zap.AddCaller(),
		zap.AddCallerSkip(1),
		zap.AddStacktrace(zapcore.ErrorLevel))

	return &Zap{
		logger:  zapLogger,
		sugar:   zapLogger.Sugar(),
		outputs: writers,
	}
}

// Debug starts a message with debug level
func (x *Zap) Debug(v ...any) {
	x.sugar.Debug(v...)
}

// Debugf starts a message with debug level
func (x *Zap) Debugf(format string, v ...any) {
	x.sugar.Debugf(format, v...)
}

// Info starts a message with info level
func (x *Zap) Info(v ...any) {
	x.sugar.Info(v...)
}

// Infof starts a message with info level
func (x *Zap) Infof(format string, v ...any) {
	x.sugar.Infof(format, v...)
}

// Warn starts a message with warn level
func (x *Zap) Warn(v ...any) {
	x.sugar.Warn(v...)
}

// Warnf starts a message with warn level
func (x *Zap) Warnf(format string, v ...any) {
	x.sugar.Warnf(format, v...)
}

// Error starts a message with error level
func (x *Zap) Error(v ...any) {
	x.sugar.Error(v...)
}

// Errorf starts a message with error level
func (x *Zap) Errorf(format string, v ...any) {
	x.sugar.Errorf(format, v...)
}

// Fatal starts a new message with fatal level. The os.Exit(1) function
// is called which terminates the program immediately.
func (x *Zap) Fatal(v ...any) {
	x.sugar.Fatal(v...)
}

// Fatalf starts a new message with fatal level. The os.Exit(1) function
// is called which terminates the program immediately.
func (x *Zap) Fatalf(format string, v ...any) {
	x.sugar.Fatalf(format, v...)
}

// Panic starts a new message with panic level. The panic() function
// is called which stops the ordinary flow of a goroutine.
func (x *Zap) Panic(v ...any) {
	x.sugar.Panic(v...)
}

// Panicf starts a new message with panic level. The panic() function
// is called which stops the ordinary flow of a goroutine.
func (x *Zap) Panicf(format string, v ...any) {
	x.sugar.Panicf(format, v...)
}

// LogLevel returns the log level that is set
func (x *Zap) LogLevel() Level {
	switch x.logger.Level() {
	case zapcore.DebugLevel:
		return DebugLevel
	case zapcore.InfoLevel:
		return InfoLevel
	case zapcore.WarnLevel:
		return WarningLevel
	case zapcore.ErrorLevel:
		return ErrorLevel
	case zapcore.PanicLevel, zapcore.DPanicLevel:
		return PanicLevel
	case zapcore.FatalLevel:
		return FatalLevel
	default:
		return InvalidLevel
	}
}

// LogOutput returns the log output that is set
func (x *Zap) LogOutput() []io.Writer {
	return x.outputs
}

// toZapLevel maps the logger level to the corresponding zap level
func toZapLevel(level Level) zapcore.Level {
	switch level {
	case InfoLevel:
		return zapcore.InfoLevel
	case DebugLevel:
		return zapcore.DebugLevel
	case WarningLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	case PanicLevel:
		return zapcore.PanicLevel
	case FatalLevel:
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// newEncoderConfig returns the zap encoder config in use
func newEncoderConfig() zapcore.EncoderConfig {
	config := zap.NewProductionEncoderConfig()
	config.EncodeTime = zapcore.ISO8601TimeEncoder
	config.TimeKey = "timestamp"
	config.MessageKey = "msg"
	return config
}
