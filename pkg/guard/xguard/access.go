package xguard

import (
	"context"
)

// Access 一次成功 Acquire 返回的独占访问凭证。
//
// Access 永久绑定创建它的 (Guard, 标识) 对。存活期间可任意次 Get/Set，
// Release 之后永久失效：所有读写与再次 Release 均返回 [ErrAccessRevoked]。
//
// 所有字段均不可导出，调用方无法篡改绑定关系或伪造存活状态；
// 标识类型也不对外暴露，外部代码无法构造出能通过比对的值。
//
// Access 的方法并发安全，但 Access 本身是单持有者凭证，
// 跨 goroutine 共享一个 Access 通常意味着设计错误。
type Access[T any] struct {
	guard *Guard[T]
	ident uint64
	id    string
}

// ID 返回访问 ID（用于日志与追踪）。
// Release 之后仍可调用，返回原始 ID。
func (a *Access[T]) ID() string {
	return a.id
}

// IsReleased 探测 Access 是否已失效。
// 纯探测：无副作用、不返回错误。失效不可逆——一旦返回 true 则永远为 true
// （标识永不复用，holder 不可能再次等于本 Access 的标识）。
func (a *Access[T]) IsReleased() bool {
	g := a.guard
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.holder != a.ident
}

// Get 读取受护值。
// Access 已失效时返回零值和 [ErrAccessRevoked]。
func (a *Access[T]) Get() (T, error) {
	g := a.guard
	g.mu.Lock()
	if g.holder != a.ident {
		g.mu.Unlock()
		g.metrics.RecordRevokedUse(context.Background(), g.opts.name, opGet)
		var zero T
		return zero, ErrAccessRevoked
	}
	v := g.value
	g.mu.Unlock()
	return v, nil
}

// Set 覆写受护值。
// Access 已失效时返回 [ErrAccessRevoked]，受护值不变。
// 写入对本 Access 后续的 Get 立即可见；不存在其他并发存活的 Access，
// 因此无需定义跨凭证可见性。
func (a *Access[T]) Set(v T) error {
	g := a.guard
	g.mu.Lock()
	if g.holder != a.ident {
		g.mu.Unlock()
		g.metrics.RecordRevokedUse(context.Background(), g.opts.name, opSet)
		return ErrAccessRevoked
	}
	g.value = v
	g.mu.Unlock()
	return nil
}

// Release 释放独占访问，使 Guard 重新空闲。
//
// 首次调用成功后本 Access 永久失效；重复调用恒定返回 [ErrAccessRevoked]，
// 释放副作用不会二次执行。ctx 不得为 nil，否则返回 [ErrNilContext]。
//
// 设计决策: 存活判定是 holder 比对而非 Access 内部的布尔标记。
// 当前设计下 Acquire 在占用态必然失败，"被取代"不可能发生，
// 但比对式判定让这一防御检查零成本地保留下来。
func (a *Access[T]) Release(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}

	g := a.guard
	ctx, span := startSpan(ctx, g.tracer, spanNameRelease)
	defer span.End()
	span.SetAttributes(guardSpanAttributes(g.opts.name)...)

	g.mu.Lock()
	if g.holder != a.ident {
		g.mu.Unlock()
		g.metrics.RecordRevokedUse(ctx, g.opts.name, opRelease)
		setSpanError(span, ErrAccessRevoked)
		if g.opts.logger != nil {
			g.opts.logger.Warn(ctx, "release on revoked access",
				AttrGuardName(g.opts.name), AttrAccessID(a.id))
		}
		return ErrAccessRevoked
	}
	g.holder = 0
	g.mu.Unlock()

	setSpanOK(span)
	g.metrics.RecordRelease(ctx, g.opts.name)
	if g.opts.logger != nil {
		g.opts.logger.Debug(ctx, "guard released",
			AttrGuardName(g.opts.name), AttrAccessID(a.id))
	}
	return nil
}
