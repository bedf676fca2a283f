package logger

import (
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/genspectrum/sourcewatch/internal/printer"
	"github.com/olekukonko/tablewriter"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Options struct {
	Level string    // "debug","info","warn","error"
	JSON  bool      // JSON output (CI, cron mail)
	Color bool      // colorize (console)
	Out   io.Writer // default os.Stdout

	// File adds a rotating JSON sink next to the console one.
	File           string
	FileMaxSizeMB  int
	FileMaxBackups int
}

var (
	mu       sync.RWMutex
	zlog     *zap.SugaredLogger
	out      io.Writer = os.Stdout
	p        *printer.ColorPrinter
	cur      Options
	curLevel = zapcore.InfoLevel
	fields   []zap.Field
	fileSink *lumberjack.Logger
	ready    atomic.Bool
)

// Configure sets up the global logger.
func Configure(opts Options) {
	mu.Lock()
	defer mu.Unlock()
	configureLocked(opts)
}

func configureLocked(opts Options) {
	if opts.Out != nil {
		out = opts.Out
	}
	opts.Out = out
	cur = opts

	level := parseLevel(opts.Level)

	var console zapcore.Core
	if opts.JSON {
		console = zapcore.NewCore(zapcore.NewJSONEncoder(jsonEncoderConfig()), zapcore.AddSync(writerAdapter{out}), level)
		console = console.With(fields)
	} else {
		console = zapcore.NewCore(zapcore.NewConsoleEncoder(zapcore.EncoderConfig{MessageKey: "msg"}), zapcore.AddSync(writerAdapter{out}), level)
	}

	cores := []zapcore.Core{console}

	if fileSink != nil {
		_ = fileSink.Close()
		fileSink = nil
	}
	if opts.File != "" {
		fileSink = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.FileMaxSizeMB,
			MaxBackups: opts.FileMaxBackups,
			LocalTime:  true,
		}
		fileEnc := jsonEncoderConfig()
		fileEnc.TimeKey = "ts"
		fileEnc.EncodeTime = zapcore.ISO8601TimeEncoder
		fc := zapcore.NewCore(zapcore.NewJSONEncoder(fileEnc), zapcore.AddSync(fileSink), level)
		cores = append(cores, plainCore{fc.With(fields)})
	}

	zlog = zap.New(zapcore.NewTee(cores...)).Sugar()

	if opts.Color && !opts.JSON {
		p = printer.NewColorPrinter()
	} else {
		p = printer.NewPlainPrinter()
	}

	ready.Store(true)
}

func jsonEncoderConfig() zapcore.EncoderConfig {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = ""
	encCfg.CallerKey = ""
	encCfg.StacktraceKey = ""
	encCfg.MessageKey = "msg"
	return encCfg
}

// SetLevel adjusts current level at runtime ("debug","info","warn","error").
func SetLevel(level string) {
	mu.Lock()
	defer mu.Unlock()
	opts := cur
	opts.Level = level
	configureLocked(opts)
}

// AttachFile enables (or, with an empty path, disables) the rotating file sink.
func AttachFile(path string, maxSizeMB, maxBackups int) {
	mu.Lock()
	defer mu.Unlock()
	opts := cur
	opts.File = path
	opts.FileMaxSizeMB = maxSizeMB
	opts.FileMaxBackups = maxBackups
	configureLocked(opts)
}

// With adds a structured field to every following JSON/file log line.
// The returned func removes it again.
func With(key, value string) (restore func()) {
	mu.Lock()
	defer mu.Unlock()
	prev := fields
	fields = append(append([]zap.Field(nil), fields...), zap.String(key, value))
	configureLocked(cur)
	return func() {
		mu.Lock()
		defer mu.Unlock()
		fields = prev
		configureLocked(cur)
	}
}

// UseTestMode silences logs during tests.
func UseTestMode() {
	Configure(Options{
		Level: "error", // only errors
		Color: false,
		JSON:  false,
		Out:   io.Discard,
	})
}

// Sync flushes buffered entries and closes the file sink.
func Sync() {
	mu.Lock()
	defer mu.Unlock()
	if zlog != nil {
		_ = zlog.Sync()
	}
	if fileSink != nil {
		_ = fileSink.Close()
	}
}

// ---- Public logging API ----

func Info(msg string, args ...interface{}) {
	if !ensureReady() {
		return
	}
	mu.RLock()
	zlog.Info(p.Info(decorate("✨ ", msg), args...))
	mu.RUnlock()
}

func Success(msg string, args ...interface{}) {
	if !ensureReady() {
		return
	}
	mu.RLock()
	zlog.Info(p.Success(decorate("✅ ", msg), args...))
	mu.RUnlock()
}

func LogError(msg string, args ...interface{}) {
	if !ensureReady() {
		return
	}
	mu.RLock()
	zlog.Error(p.Error(decorate("❌ ", msg), args...))
	mu.RUnlock()
}

func Warn(msg string, args ...interface{}) {
	if !ensureReady() {
		return
	}
	mu.RLock()
	zlog.Warn(p.Warning(decorate("⚠️ ", msg), args...))
	mu.RUnlock()
}

func Debug(msg string, args ...interface{}) {
	if !ensureReady() {
		return
	}
	mu.RLock()
	zlog.Debug(p.Debug(decorate("🛠️ ", msg), args...))
	mu.RUnlock()
}

// ---- Tables ----

func CreateTable(headers []string) *tablewriter.Table {
	mu.RLock()
	defer mu.RUnlock()
	t := tablewriter.NewTable(out)
	t.Header(headers)
	return t
}

// ---- internals ----

type writerAdapter struct{ w io.Writer }

func (wa writerAdapter) Write(p []byte) (int, error) { return wa.w.Write(p) }

// plainCore strips color codes from messages before they reach the file.
type plainCore struct{ zapcore.Core }

func (c plainCore) With(f []zapcore.Field) zapcore.Core { return plainCore{c.Core.With(f)} }

func (c plainCore) Check(e zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(e.Level) {
		return ce.AddCore(e, c)
	}
	return ce
}

func (c plainCore) Write(e zapcore.Entry, f []zapcore.Field) error {
	e.Message = printer.StripANSI(e.Message)
	return c.Core.Write(e, f)
}

func decorate(prefix, msg string) string {
	if cur.JSON {
		return msg
	}
	return prefix + msg
}

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

// ---- helpers ----

func ensureReady() bool {
	if !ready.Load() {
		return false
	}
	if p == nil || zlog == nil {
		return false
	}
	return true
}
