package xguardreg

import "fmt"

const (
	defaultShardCount = 32
	maxShardCount     = 1 << 16 // 65536
)

// Option 定义 Registry 可选配置。
type Option func(*options)

type options struct {
	maxOwners  int
	shardCount int
	shardMask  uint64 // validate() 计算，供 getShard 使用
}

func defaultOptions() options {
	return options{
		shardCount: defaultShardCount,
	}
}

// WithMaxOwners 设置最大 owner 数量。
// 达到上限时，新 owner 的 Get 返回 [ErrMaxOwnersExceeded]。
// n <= 0 表示不限制（默认）。
func WithMaxOwners(n int) Option {
	// 在闭包外归一化，避免闭包写捕获变量导致并发复用时的数据竞争。
	if n < 0 {
		n = 0
	}
	return func(o *options) {
		o.maxOwners = n
	}
}

// WithShardCount 设置分片数量。
// 更多分片减少争用，但增加内存占用。
// n 必须为正整数且为 2 的幂，上限 65536，否则 New 返回错误。默认 32。
func WithShardCount(n int) Option {
	return func(o *options) {
		o.shardCount = n
	}
}

func (o *options) validate() error {
	sc := o.shardCount
	if sc <= 0 || sc > maxShardCount || sc&(sc-1) != 0 {
		return fmt.Errorf("%w: must be a positive power of 2 (max %d), got %d",
			ErrInvalidShardCount, maxShardCount, sc)
	}
	// sc ∈ [1, maxShardCount] 且为 2 的幂，int→uint64 转换安全。
	o.shardMask = uint64(sc - 1)
	return nil
}
