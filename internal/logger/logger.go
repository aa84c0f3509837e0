package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/MrSnakeDoc/instr/internal/printer"
	"github.com/olekukonko/tablewriter"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Options struct {
	Level string    // "debug","info","warn","error"
	JSON  bool      // JSON output (CI)
	Color bool      // colorize (console)
	Out   io.Writer // default os.Stderr
	File  string    // optional rotating log file, in addition to Out
}

var (
	mu       sync.RWMutex
	zlog     *zap.SugaredLogger
	flog     *zap.SugaredLogger
	out      io.Writer = os.Stderr
	file     *lumberjack.Logger
	p        *printer.ColorPrinter
	curLevel = zapcore.InfoLevel
	ready    atomic.Bool
)

// Configure sets up the global logger.
func Configure(opts Options) {
	mu.Lock()
	defer mu.Unlock()
	configure(opts)
}

func configure(opts Options) {
	if opts.Out != nil {
		out = opts.Out
	}

	var enc zapcore.Encoder
	if opts.JSON {
		encCfg := zap.NewProductionEncoderConfig()
		encCfg.TimeKey = ""
		encCfg.LevelKey = "level"
		encCfg.CallerKey = ""
		encCfg.MessageKey = "msg"
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		enc = zapcore.NewConsoleEncoder(zapcore.EncoderConfig{MessageKey: "msg"})
	}

	level := parseLevel(opts.Level)
	zlog = zap.New(zapcore.NewCore(enc, zapcore.AddSync(writerAdapter{out}), level)).Sugar()

	if file != nil {
		_ = file.Close()
		file = nil
	}
	flog = nil
	if opts.File != "" {
		file = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10, // MB
			MaxBackups: 3,
			Compress:   true,
			LocalTime:  true,
		}
		fileCfg := zap.NewProductionEncoderConfig()
		fileCfg.TimeKey = "ts"
		fileCfg.EncodeTime = zapcore.RFC3339TimeEncoder
		flog = zap.New(zapcore.NewCore(zapcore.NewJSONEncoder(fileCfg), zapcore.AddSync(file), level)).Sugar()
	}

	p = printer.NewColorPrinter(opts.Color)

	ready.Store(true)
}

// UseTestMode silences logs during tests.
func UseTestMode() {
	Configure(Options{
		Level: "error",
		Out:   io.Discard,
	})
}

// Sync flushes buffered entries and closes the rotating file, if any.
func Sync() {
	mu.Lock()
	defer mu.Unlock()
	if zlog != nil {
		_ = zlog.Sync()
	}
	if flog != nil {
		_ = flog.Sync()
		flog = nil
	}
	if file != nil {
		_ = file.Close()
		file = nil
	}
}

// Out returns the current output writer (for tables).
func Out() io.Writer {
	mu.RLock()
	defer mu.RUnlock()
	return out
}

// ---- Public logging API ----

func Info(msg string, args ...interface{}) {
	emit(zapcore.InfoLevel, "✨ ", func(c *printer.ColorPrinter) paint { return c.Info }, msg, args...)
}

func Success(msg string, args ...interface{}) {
	emit(zapcore.InfoLevel, "✅ ", func(c *printer.ColorPrinter) paint { return c.Success }, msg, args...)
}

func LogError(msg string, args ...interface{}) {
	emit(zapcore.ErrorLevel, "❌ ", func(c *printer.ColorPrinter) paint { return c.Error }, msg, args...)
}

func Warn(msg string, args ...interface{}) {
	emit(zapcore.WarnLevel, "⚠️ ", func(c *printer.ColorPrinter) paint { return c.Warning }, msg, args...)
}

func Debug(msg string, args ...interface{}) {
	emit(zapcore.DebugLevel, "🛠️ ", func(c *printer.ColorPrinter) paint { return c.Debug }, msg, args...)
}

// ---- Tables ----

func CreateTable(w io.Writer, headers []string) *tablewriter.Table {
	if w == nil {
		w = Out()
	}
	t := tablewriter.NewTable(w)
	t.Header(headers)
	return t
}

// ---- internals ----

type writerAdapter struct{ w io.Writer }

func (wa writerAdapter) Write(p []byte) (int, error) { return wa.w.Write(p) }

func parseLevel(s string) zapcore.Level {
	switch s {
	case "debug":
		curLevel = zapcore.DebugLevel
	case "info", "":
		curLevel = zapcore.InfoLevel
	case "warn":
		curLevel = zapcore.WarnLevel
	case "error":
		curLevel = zapcore.ErrorLevel
	default:
		curLevel = zapcore.InfoLevel
	}
	return curLevel
}

type paint func(format string, a ...interface{}) string

// emit sends the decorated message to the console and the plain one to the
// log file.
func emit(lvl zapcore.Level, prefix string, pick func(*printer.ColorPrinter) paint, msg string, args ...interface{}) {
	if !ready.Load() {
		return
	}
	mu.RLock()
	defer mu.RUnlock()
	if zlog == nil || p == nil {
		return
	}
	write(zlog, lvl, pick(p)(prefix+msg, args...))
	if flog != nil {
		write(flog, lvl, fmt.Sprintf(msg, args...))
	}
}

func write(z *zap.SugaredLogger, lvl zapcore.Level, msg string) {
	switch lvl {
	case zapcore.DebugLevel:
		z.Debug(msg)
	case zapcore.WarnLevel:
		z.Warn(msg)
	case zapcore.ErrorLevel:
		z.Error(msg)
	default:
		z.Info(msg)
	}
}
