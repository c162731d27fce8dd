package xguardreg

import "errors"

var (
	// ErrClosed 表示 Registry 已关闭。
	// Close 后调用 Get 返回此错误；已取得的 Guard 指针不受影响。
	ErrClosed = errors.New("xguardreg: closed")

	// ErrInvalidOwner 表示 owner 键无效（空字符串）。
	ErrInvalidOwner = errors.New("xguardreg: invalid owner key")

	// ErrNilFactory 表示 New 收到 nil 的 Guard 工厂函数。
	ErrNilFactory = errors.New("xguardreg: nil factory")

	// ErrNilGuard 表示工厂函数返回了 nil Guard。
	ErrNilGuard = errors.New("xguardreg: factory returned nil guard")

	// ErrMaxOwnersExceeded 表示已达到最大 owner 数量限制。
	ErrMaxOwnersExceeded = errors.New("xguardreg: max owners exceeded")

	// ErrInvalidShardCount 表示分片数配置无效。
	ErrInvalidShardCount = errors.New("xguardreg: invalid shard count")

	// ErrInvalidConfig 表示外部配置解析失败。
	ErrInvalidConfig = errors.New("xguardreg: invalid config")
)
