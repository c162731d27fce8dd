package xident

// options 内部配置结构
type options struct {
	machineID      func() (uint16, error)
	checkMachineID func(uint16) bool
}

// Option 配置选项函数
type Option func(*options)

// WithMachineID 设置自定义机器 ID 生成函数。
//
// 默认使用 [DefaultMachineID] 的多层回退策略（环境变量 → 节点名哈希 →
// 私有 IP 低 16 位）。在以下场景可能需要自定义：
//   - 需要与外部服务协调机器 ID 分配（如 etcd/ZooKeeper 注册）
//   - 需要基于自定义信息确定机器 ID
//
// 函数返回的 ID 必须在 0-65535 范围内。
func WithMachineID(fn func() (uint16, error)) Option {
	return func(c *options) {
		c.machineID = fn
	}
}

// WithCheckMachineID 设置机器 ID 验证函数。
//
// 在创建生成器时会调用此函数验证机器 ID 的有效性。
// 如果返回 false，NewGenerator 会失败。
func WithCheckMachineID(fn func(uint16) bool) Option {
	return func(c *options) {
		c.checkMachineID = fn
	}
}
