// Package xguardreg 提供按 owner 键的 Guard 注册表。
//
// 宿主框架（组件树、会话管理器、请求生命周期容器）常见的约束是：
// 每个逻辑持有者的 Guard 必须恰好创建一次，并在持有者的整个生命周期内
// 保持同一实例——即使宿主对持有者的调用是重入的、重复的。
// Registry 把这条约束固化为接口保证。
//
// # 特性
//
//   - 恰好一次创建：同一 owner 的工厂调用至多一次，之后 Get 返回同一指针
//   - 分片 map：默认 32 分片（xxhash 定位），减少管理锁争用
//   - 内存安全：WithMaxOwners(n) 可限制最大 owner 数
//   - 关闭语义：Close() 拒绝新请求，已取得的 Guard 不受影响
//
// # 快速开始
//
//	reg, err := xguardreg.New(func(owner string) (*xguard.Guard[int], error) {
//	    return xguard.New(0, xguard.WithName(owner))
//	})
//	if err != nil {
//	    return err
//	}
//	defer reg.Close()
//
//	g, err := reg.Get("session:42")  // 首次：创建
//	g2, err := reg.Get("session:42") // 之后：同一实例（g == g2）
//
// # 外部配置
//
// OptionsFromConfig 支持从 JSON/YAML 配置数据构建选项：
//
//	opts, err := xguardreg.OptionsFromConfig([]byte(`{"shard_count": 64}`), xguardreg.FormatJSON)
//
// # 生命周期
//
// Registry 不负责销毁 Guard：Guard 与其 owner 同生命周期，随持有方
// 一起被垃圾回收。Close 只停止接受新的 Get。
package xguardreg
