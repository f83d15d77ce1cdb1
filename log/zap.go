/*
 * MIT License
 *
 * Copyright (c) 2022-2024  Arsene Tochemey Gandote
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package log

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultLogger is a package-level zap-backed logger writing to stdout at
// InfoLevel. Constructors given no logger use DiscardLogger, not this.
var DefaultLogger Logger = NewZap(InfoLevel)

// Zap implements Logger on top of go.uber.org/zap's SugaredLogger.
type Zap struct {
	sugar *zap.SugaredLogger
	level Level
	args  []any
}

var _ Logger = (*Zap)(nil)

func toZapLevel(l Level) zapcore.Level {
	switch l {
	case DebugLevel:
		return zapcore.DebugLevel
	case InfoLevel:
		return zapcore.InfoLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	case FatalLevel:
		return zapcore.FatalLevel
	case PanicLevel:
		return zapcore.PanicLevel
	default:
		return zapcore.InfoLevel
	}
}

// NewZap builds a Zap logger writing to stdout at the given level,
// mirroring the teacher's log.NewZap(level, writers...) signature.
func NewZap(level Level) *Zap {
	return newZapCore(level, nil)
}

func newZapCore(level Level, syncers []zapcore.WriteSyncer) *Zap {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewConsoleEncoder(cfg)

	if len(syncers) == 0 {
		syncers = []zapcore.WriteSyncer{zapcore.AddSync(os.Stdout)}
	}
	core := zapcore.NewCore(encoder, zapcore.NewMultiWriteSyncer(syncers...), toZapLevel(level))
	logger := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	return &Zap{sugar: logger.Sugar(), level: level}
}

// NewZapWriter builds a Zap logger from arbitrary zapcore.WriteSyncers, used when the
// caller wants a sink other than os.Stdout (e.g. a test buffer).
func NewZapWriter(level Level, writers ...zapcore.WriteSyncer) *Zap {
	return newZapCore(level, writers)
}

func (z *Zap) Debug(v ...any)                  { z.sugar.Debug(v...) }
func (z *Zap) Debugf(format string, v ...any)  { z.sugar.Debugf(format, v...) }
func (z *Zap) Info(v ...any)                   { z.sugar.Info(v...) }
func (z *Zap) Infof(format string, v ...any)   { z.sugar.Infof(format, v...) }
func (z *Zap) Warn(v ...any)                   { z.sugar.Warn(v...) }
func (z *Zap) Warnf(format string, v ...any)   { z.sugar.Warnf(format, v...) }
func (z *Zap) Error(v ...any)                  { z.sugar.Error(v...) }
func (z *Zap) Errorf(format string, v ...any)  { z.sugar.Errorf(format, v...) }
func (z *Zap) Fatal(v ...any)                  { z.sugar.Fatal(v...) }
func (z *Zap) Fatalf(format string, v ...any)  { z.sugar.Fatalf(format, v...) }
func (z *Zap) Panic(v ...any)                  { z.sugar.Panic(v...) }
func (z *Zap) Panicf(format string, v ...any)  { z.sugar.Panicf(format, v...) }
func (z *Zap) LogLevel() Level                 { return z.level }

func (z *Zap) With(args ...any) Logger {
	return &Zap{sugar: z.sugar.With(args...), level: z.level, args: append(append([]any{}, z.args...), args...)}
}
