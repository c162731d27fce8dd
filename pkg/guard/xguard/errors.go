package xguard

import "errors"

var (
	// ErrOccupied 表示 Guard 已被占用。
	// Acquire 在已有存活 Access 时返回此错误，Guard 状态与受护值均不变。
	// 不会在内部重试或排队：调用方可先用 IsAvailable 探测，或向上传播失败。
	ErrOccupied = errors.New("xguard: guard already held")

	// ErrAccessRevoked 表示 Access 已失效（已释放或被取代）。
	// 在已失效的 Access 上调用 Get/Set/Release 时返回此错误。
	// Release 的重复调用恒定返回此错误，释放副作用不会二次执行。
	ErrAccessRevoked = errors.New("xguard: access revoked")

	// ErrNilProducer 表示 NewLazy 收到 nil 的取值函数。
	ErrNilProducer = errors.New("xguard: nil producer")

	// ErrNilContext context 参数为 nil。
	// 调用方应传入有效的 context（至少 context.Background()）。
	ErrNilContext = errors.New("xguard: nil context")
)

// IsOccupied 判断错误是否为 Guard 占用错误。
func IsOccupied(err error) bool {
	return errors.Is(err, ErrOccupied)
}

// IsAccessRevoked 判断错误是否为 Access 失效错误。
func IsAccessRevoked(err error) bool {
	return errors.Is(err, ErrAccessRevoked)
}
