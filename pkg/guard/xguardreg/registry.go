package xguardreg

import (
	"github.com/omeyang/xguard/pkg/guard/xguard"
)

// Factory 按 owner 键构建 Guard 的工厂函数。
// 同一 owner 至多被调用一次；返回的 Guard 与该 owner 同生命周期。
type Factory[T any] func(owner string) (*xguard.Guard[T], error)

// Registry 提供按 owner 键的 Guard 存储。
//
// 核心保证：同一 owner 的 Guard 恰好创建一次，之后每次 Get 都返回同一个
// 实例（指针稳定），与宿主的重入调用次数无关。所有方法都是并发安全的。
type Registry[T any] interface {
	// Get 返回 owner 对应的 Guard，不存在时通过工厂创建。
	// 同一 owner 的工厂调用恰好一次；后续 Get 返回同一实例。
	// owner 不得为空字符串，否则返回 [ErrInvalidOwner]。
	// Registry 已关闭时返回 [ErrClosed]。
	// 达到 WithMaxOwners 上限时返回 [ErrMaxOwnersExceeded]。
	Get(owner string) (*xguard.Guard[T], error)

	// Len 返回当前注册的 owner 数量（单次原子读取，瞬时快照）。
	Len() int

	// Owners 返回当前注册的 owner 键列表，仅用于调试。
	// 返回值是快照，不保证跨分片原子性。
	Owners() []string

	// Close 关闭 Registry：拒绝后续 Get，已取得的 Guard 不受影响。
	// Close 返回时保证不再有新条目产生；与 Close 并发竞争的 Get
	// 要么在返回前完成，要么收到 [ErrClosed]。
	// 幂等失败：第二次及后续调用返回 [ErrClosed]。
	Close() error
}

// New 创建一个新的 Registry 实例。
// factory 不得为 nil。配置无效时返回错误（如分片数不是 2 的幂）。
func New[T any](factory Factory[T], opts ...Option) (Registry[T], error) {
	if factory == nil {
		return nil, ErrNilFactory
	}
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	return newRegistryImpl(factory, o), nil
}
