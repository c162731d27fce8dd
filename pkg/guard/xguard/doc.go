// Package xguard 提供保护单个可变值的独占访问护卫。
//
// Guard 同一时刻最多发放一个存活的 Access 凭证：Acquire 立即成败
// （被占用时返回 ErrOccupied，不阻塞、不排队），Release 后凭证永久失效，
// 失效凭证上的任何读写都是可检测的错误（ErrAccessRevoked）。
//
// # 与 sync.Mutex / xkeylock 风格锁的区别
//
//	特性          xguard                sync.Mutex
//	──────────────────────────────────────────────
//	占用时行为    立即返回 ErrOccupied   阻塞等待
//	保护对象      值本身（Get/Set）      代码临界区
//	误用检测      失效凭证 → 错误        重复 Unlock → panic
//	持有者识别    标识比对（不可伪造）   无
//
// xguard 不是并发原语的替代品：它把"逻辑上的独占使用权"显式化，
// 让"谁在用、用没用对"成为可观察、可报告的状态。未配对的 Release
// 导致的是泄漏（Guard 永久占用），不是死锁——没有任何调用方在等待。
//
// # 快速开始
//
//	g, err := xguard.New(0, xguard.WithName("counter"))
//	if err != nil {
//	    return err
//	}
//
//	access, err := g.Acquire(ctx)
//	if err != nil {
//	    return err // ErrOccupied: 已有存活凭证
//	}
//	defer access.Release(ctx)
//
//	v, _ := access.Get()
//	_ = access.Set(v + 1)
//
// # 作用域用法（推荐）
//
// With 保证所有退出路径上恰好一次释放，避免泄漏占用态：
//
//	err := xguard.With(ctx, g, func(a *xguard.Access[int]) error {
//	    v, err := a.Get()
//	    if err != nil {
//	        return err
//	    }
//	    return a.Set(v + 1)
//	})
//
// # 惰性初始化
//
// NewLazy 接受零参取值函数，在首次成功 Acquire 时调用恰好一次：
//
//	g, err := xguard.NewLazy(func() []byte {
//	    return loadExpensiveDefault()
//	})
//
// # 探测
//
// IsAvailable（Guard 侧）与 IsReleased（Access 侧）是互补的纯探测：
// 任意时刻 g.IsAvailable() == !存在存活凭证。两者都不产生错误，
// 调用方可以先探测后操作，完全避开错误路径。
//
// # 可观测性
//
// 通过 Option 注入 xlog.Logger、OTel TracerProvider / MeterProvider，
// 不注入时相应能力为 no-op。指标：xguard.acquire.total、
// xguard.release.total、xguard.revoked_use.total。
//
// # 宿主生命周期
//
// Guard 每个逻辑持有者创建一次、与持有者同生命周期。需要"按 owner
// 恰好创建一次并保持稳定"的宿主语义时，使用 xguardreg.Registry。
package xguard
