package xguard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Guard 独占访问护卫，保护一个可变值。
//
// 同一时刻最多存在一个存活的 [Access]：Acquire 在 Guard 空闲时立即成功，
// 被占用时立即返回 [ErrOccupied]——不阻塞、不排队、不重试。
// 受护值只能通过存活 Access 的 Get/Set 读写，Guard 自身不暴露取值入口。
//
// 持有者通过单调递增、永不复用的内部标识判定：Access 存活当且仅当
// 其标识等于 Guard 当前的 holder。一旦 Release，该 Access 永久失效，
// 即使 Guard 之后被再次获取（新 Access 拿到的是新标识）。
//
// 设计决策: holder 使用标识比对而非布尔占用位。布尔位无法区分"哪一次
// 获取"有权释放或读写——失效 Access 的误用会静默落在错误的持有周期上。
// 标识比对让陈旧 Access 的使用成为可检测、可上报的错误，判定仍是 O(1)。
//
// Guard 的所有方法都是并发安全的：holder 的检查与更新在同一临界区内完成，
// 但临界区内不含任何等待，立即成败的语义不受并发影响。
type Guard[T any] struct {
	opts    *options
	metrics *Metrics
	tracer  trace.Tracer

	mu    sync.Mutex
	value T
	// produce 惰性取值函数。首次成功 Acquire 时调用恰好一次，之后置 nil。
	// 直接取值模式下始终为 nil。
	produce func() T
	// holder 当前存活 Access 的标识，0 表示空闲。
	holder uint64
	// lastIdent 已铸造的最大标识。单调递增，Guard 生命周期内永不复用。
	lastIdent uint64
}

// New 创建 Guard，受护值为给定的初始值。
func New[T any](value T, opts ...Option) (*Guard[T], error) {
	g, err := newGuard[T](opts)
	if err != nil {
		return nil, err
	}
	g.value = value
	return g, nil
}

// NewLazy 创建 Guard，受护值由 produce 惰性计算。
//
// produce 在首次成功 Acquire 时调用恰好一次；IsAvailable 等探测操作
// 不会触发计算。produce 为 nil 时返回 [ErrNilProducer]。
func NewLazy[T any](produce func() T, opts ...Option) (*Guard[T], error) {
	if produce == nil {
		return nil, ErrNilProducer
	}
	g, err := newGuard[T](opts)
	if err != nil {
		return nil, err
	}
	g.produce = produce
	return g, nil
}

// newGuard 构建 Guard 骨架：应用选项、初始化指标与 tracer。
func newGuard[T any](opts []Option) (*Guard[T], error) {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	metrics, err := NewMetrics(o.meterProvider)
	if err != nil {
		return nil, fmt.Errorf("xguard: init metrics: %w", err)
	}

	return &Guard[T]{
		opts:    o,
		metrics: metrics,
		tracer:  getTracer(o.tracerProvider),
	}, nil
}

// Name 返回 Guard 名称（WithName 设置），未设置时为空字符串。
func (g *Guard[T]) Name() string {
	return g.opts.name
}

// IsAvailable 探测 Guard 是否空闲。
// 纯探测：无副作用、不返回错误、不触发惰性取值。
func (g *Guard[T]) IsAvailable() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.holder == 0
}

// Acquire 尝试获取独占访问。
//
// 立即成败：Guard 空闲时铸造新标识并返回绑定的 [Access]；
// 被占用时返回 [ErrOccupied]，Guard 状态与受护值均不变。
// 成功返回后 IsAvailable 立即变为 false。
//
// ctx 不得为 nil，否则返回 [ErrNilContext]；ctx 已取消时返回 ctx.Err()。
// ctx 仅用于取消检查与追踪/日志传播，Acquire 自身从不等待。
//
// 并发约定：先到者得，其余调用方收到 [ErrOccupied]。没有公平性可言，
// 因为没有等待队列。
func (g *Guard[T]) Acquire(ctx context.Context) (*Access[T], error) {
	if ctx == nil {
		return nil, ErrNilContext
	}

	ctx, span := startSpan(ctx, g.tracer, spanNameAcquire)
	defer span.End()
	span.SetAttributes(guardSpanAttributes(g.opts.name)...)

	// 本地操作是同步的，需要提前检查 ctx 状态。
	if err := ctx.Err(); err != nil {
		g.metrics.RecordAcquire(ctx, g.opts.name, false, reasonContext)
		setSpanError(span, err)
		return nil, err
	}

	// 占用态快路径：直接失败，不产生铸 ID 的副作用。
	g.mu.Lock()
	held := g.holder != 0
	g.mu.Unlock()
	if held {
		return nil, g.rejectOccupied(ctx, span)
	}

	// 铸 ID 在临界区外进行，失败时不触碰 Guard 状态。
	accessID, err := g.opts.idGenerator(ctx)
	if err != nil {
		err = fmt.Errorf("xguard: mint access id: %w", err)
		g.metrics.RecordAcquire(ctx, g.opts.name, false, reasonMintID)
		setSpanError(span, err)
		return nil, err
	}

	g.mu.Lock()
	if g.holder != 0 {
		// 铸 ID 期间被并发抢占。
		g.mu.Unlock()
		return nil, g.rejectOccupied(ctx, span)
	}

	g.lastIdent++
	ident := g.lastIdent
	g.holder = ident
	if g.produce != nil {
		g.value = g.produce()
		g.produce = nil
	}
	g.mu.Unlock()

	span.SetAttributes(attribute.String(attrAccessID, accessID))
	setSpanOK(span)
	g.metrics.RecordAcquire(ctx, g.opts.name, true, "")
	if g.opts.logger != nil {
		g.opts.logger.Debug(ctx, "guard acquired",
			AttrGuardName(g.opts.name), AttrAccessID(accessID))
	}

	return &Access[T]{guard: g, ident: ident, id: accessID}, nil
}

// rejectOccupied 记录占用态拒绝的指标、span 与日志，返回 [ErrOccupied]。
func (g *Guard[T]) rejectOccupied(ctx context.Context, span trace.Span) error {
	g.metrics.RecordAcquire(ctx, g.opts.name, false, reasonOccupied)
	setSpanError(span, ErrOccupied)
	if g.opts.logger != nil {
		g.opts.logger.Debug(ctx, "guard acquire rejected: already held",
			AttrGuardName(g.opts.name))
	}
	return ErrOccupied
}

// With 以作用域方式使用 Guard：获取访问，执行 fn，并保证在所有退出路径
// （包括 fn 返回错误）上释放。
//
// Acquire 失败时原样返回其错误（如 [ErrOccupied]），fn 不会被调用。
// fn 的错误与释放失败的错误通过 errors.Join 合并返回。
//
// 设计决策: fn 内部已手动 Release 的情况被容忍——延迟释放此时收到
// [ErrAccessRevoked]，按"已释放"处理而非当作错误上抛，保持
// "恰好一次释放"对调用方的净效果。
func With[T any](ctx context.Context, g *Guard[T], fn func(*Access[T]) error) (err error) {
	access, err := g.Acquire(ctx)
	if err != nil {
		return err
	}
	defer func() {
		// WithoutCancel：fn 执行期间 ctx 被取消也必须完成释放，
		// 否则 Guard 永久滞留在占用态。
		rerr := access.Release(context.WithoutCancel(ctx))
		if rerr != nil && !errors.Is(rerr, ErrAccessRevoked) {
			err = errors.Join(err, rerr)
		}
	}()
	return fn(access)
}
