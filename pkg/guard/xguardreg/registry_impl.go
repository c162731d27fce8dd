package xguardreg

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"

	"github.com/omeyang/xguard/pkg/guard/xguard"
)

// registryImpl 是 Registry 的分片实现。
type registryImpl[T any] struct {
	shards     []shard[T]
	mask       uint64
	factory    Factory[T]
	opts       options
	closed     atomic.Bool
	ownerCount atomic.Int64
}

type shard[T any] struct {
	mu      sync.Mutex
	entries map[string]*xguard.Guard[T]
}

func newRegistryImpl[T any](factory Factory[T], opts options) *registryImpl[T] {
	shards := make([]shard[T], opts.shardCount)
	for i := range shards {
		shards[i].entries = make(map[string]*xguard.Guard[T])
	}
	return &registryImpl[T]{
		shards:  shards,
		mask:    opts.shardMask,
		factory: factory,
		opts:    opts,
	}
}

func (r *registryImpl[T]) getShard(owner string) *shard[T] {
	h := xxhash.Sum64String(owner)
	return &r.shards[h&r.mask]
}

func (r *registryImpl[T]) Get(owner string) (*xguard.Guard[T], error) {
	if owner == "" {
		return nil, ErrInvalidOwner
	}
	if r.closed.Load() {
		return nil, ErrClosed
	}

	s := r.getShard(owner)
	s.mu.Lock()
	defer s.mu.Unlock()

	// 分片锁内复查关闭状态。Close 置位后会逐个排空分片锁，
	// 因此 Close 返回之后不可能再有新条目插入。
	if r.closed.Load() {
		return nil, ErrClosed
	}

	if g, ok := s.entries[owner]; ok {
		return g, nil
	}

	if r.opts.maxOwners > 0 {
		// 使用 CAS 严格限制 owner 数量，避免跨分片并发突破上限。
		for {
			cur := r.ownerCount.Load()
			if cur >= int64(r.opts.maxOwners) {
				return nil, ErrMaxOwnersExceeded
			}
			if r.ownerCount.CompareAndSwap(cur, cur+1) {
				break
			}
		}
	} else {
		r.ownerCount.Add(1)
	}

	// 设计决策: 工厂在分片锁内调用，以保证同一 owner 恰好一次的语义。
	// 代价是工厂执行期间阻塞该分片的其他 Get，因此工厂应保持轻量
	// （Guard 构造本身是纯内存操作）。
	g, err := r.factory(owner)
	if err != nil {
		r.ownerCount.Add(-1)
		return nil, fmt.Errorf("xguardreg: factory for owner %q: %w", owner, err)
	}
	if g == nil {
		r.ownerCount.Add(-1)
		return nil, ErrNilGuard
	}

	s.entries[owner] = g
	return g, nil
}

func (r *registryImpl[T]) Len() int {
	return int(max(r.ownerCount.Load(), 0))
}

func (r *registryImpl[T]) Owners() []string {
	owners := make([]string, 0, max(r.ownerCount.Load(), 0))
	for i := range r.shards {
		s := &r.shards[i]
		s.mu.Lock()
		for k := range s.entries {
			owners = append(owners, k)
		}
		s.mu.Unlock()
	}
	return owners
}

func (r *registryImpl[T]) Close() error {
	if !r.closed.CompareAndSwap(false, true) {
		return ErrClosed
	}
	// 逐个排空分片锁：与 Close 竞争且已通过锁内复查的 Get 会先完成插入，
	// 其余 Get 在锁内看到关闭标记而失败。由此保证 Close 返回后
	// 不再有新条目产生。
	for i := range r.shards {
		r.shards[i].mu.Lock()
		//nolint:staticcheck // SA2001: 空临界区即排空语义本身
		r.shards[i].mu.Unlock()
	}
	return nil
}

// 编译期接口检查。
var _ Registry[int] = (*registryImpl[int])(nil)
