package xlog

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// =============================================================================
// 轮转配置
// =============================================================================

// 轮转默认值
const (
	defaultRotateMaxSizeMB = 100
	defaultRotateBackups   = 10
	defaultRotateMaxAge    = 30
)

// RotationOption 日志轮转配置选项
type RotationOption func(*lumberjack.Logger)

// RotateMaxSize 设置单个日志文件的最大体积（MB），默认 100
func RotateMaxSize(mb int) RotationOption {
	return func(l *lumberjack.Logger) {
		if mb > 0 {
			l.MaxSize = mb
		}
	}
}

// RotateMaxBackups 设置保留的历史文件数量，默认 10
func RotateMaxBackups(n int) RotationOption {
	return func(l *lumberjack.Logger) {
		if n > 0 {
			l.MaxBackups = n
		}
	}
}

// RotateMaxAge 设置历史文件的最长保留天数，默认 30
func RotateMaxAge(days int) RotationOption {
	return func(l *lumberjack.Logger) {
		if days > 0 {
			l.MaxAge = days
		}
	}
}

// RotateCompress 启用历史文件 gzip 压缩
func RotateCompress() RotationOption {
	return func(l *lumberjack.Logger) {
		l.Compress = true
	}
}

// =============================================================================
// Builder
// =============================================================================

// Builder 日志配置构建器
type Builder struct {
	output    io.Writer
	levelVar  *slog.LevelVar
	format    string
	addSource bool
	rotator   *lumberjack.Logger
	err       error
}

// New 创建配置构建器
func New() *Builder {
	levelVar := new(slog.LevelVar)
	levelVar.Set(slog.LevelInfo)

	return &Builder{
		output:   os.Stderr,
		levelVar: levelVar,
		format:   "text",
	}
}

// SetOutput 设置日志输出目标
func (b *Builder) SetOutput(w io.Writer) *Builder {
	b.output = w
	return b
}

// SetLevel 设置日志级别
func (b *Builder) SetLevel(level slog.Level) *Builder {
	b.levelVar.Set(level)
	return b
}

// SetLevelString 通过字符串设置日志级别
//
// 解析委托给 slog.Level 自身：大小写不敏感，支持 "debug"/"info"/"warn"/
// "error" 以及带偏移的形式（如 "INFO+2"）。
func (b *Builder) SetLevelString(s string) *Builder {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		b.err = fmt.Errorf("xlog: unknown level %q: %w", s, err)
		return b
	}
	return b.SetLevel(level)
}

// SetFormat 设置输出格式：text 或 json
func (b *Builder) SetFormat(format string) *Builder {
	normalized := strings.ToLower(strings.TrimSpace(format))
	if normalized == "" {
		// 空值视为使用默认格式，避免误把“没填”变成配置错误。
		b.format = "text"
		return b
	}
	if normalized != "text" && normalized != "json" {
		b.err = fmt.Errorf("xlog: unknown format %q", format)
		return b
	}
	b.format = normalized
	return b
}

// SetAddSource 是否在日志中添加源码位置
func (b *Builder) SetAddSource(enable bool) *Builder {
	b.addSource = enable
	return b
}

// SetRotation 设置日志轮转
//
// 输出切换到基于 lumberjack 的轮转文件。filename 不得为空。
func (b *Builder) SetRotation(filename string, opts ...RotationOption) *Builder {
	if filename == "" {
		b.err = fmt.Errorf("xlog: rotation filename is empty")
		return b
	}
	rotator := &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    defaultRotateMaxSizeMB,
		MaxBackups: defaultRotateBackups,
		MaxAge:     defaultRotateMaxAge,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(rotator)
		}
	}
	b.rotator = rotator
	b.output = rotator
	return b
}

// Build 构建 Logger
//
// 返回值：
//   - LoggerWithLevel: 日志实例（含动态级别控制）
//   - func(): cleanup 函数，负责关闭轮转文件句柄；未启用轮转时为 no-op
//   - error: 构建过程中累积的首个配置错误
func (b *Builder) Build() (LoggerWithLevel, func(), error) {
	if b.err != nil {
		return nil, nil, b.err
	}

	handlerOpts := &slog.HandlerOptions{
		Level:     b.levelVar,
		AddSource: b.addSource,
	}

	var handler slog.Handler
	if b.format == "json" {
		handler = slog.NewJSONHandler(b.output, handlerOpts)
	} else {
		handler = slog.NewTextHandler(b.output, handlerOpts)
	}

	logger := &xlogger{
		handler:   handler,
		levelVar:  b.levelVar,
		addSource: b.addSource,
	}

	cleanup := func() {}
	if b.rotator != nil {
		rotator := b.rotator
		cleanup = func() {
			// 设计决策: cleanup 不返回错误。关闭失败多为句柄已失效，
			// 进程退出路径上无可行的补救措施。
			_ = rotator.Close()
		}
	}

	return logger, cleanup, nil
}
