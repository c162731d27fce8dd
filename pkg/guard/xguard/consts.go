package xguard

// =============================================================================
// 仪表化版本（Metrics + Trace 共享）
// =============================================================================

const (
	// instrumentationVersion 仪表化版本号
	instrumentationVersion = "1.0.0"
)

// =============================================================================
// 失败原因标识（用于指标与日志）
// =============================================================================

const (
	// reasonOccupied Guard 已被占用
	reasonOccupied = "occupied"

	// reasonMintID 访问 ID 生成失败
	reasonMintID = "mint_id"

	// reasonContext context 已取消或超时
	reasonContext = "context"
)

// =============================================================================
// 操作标识（用于失效访问指标的 op 标签）
// =============================================================================

const (
	opGet     = "get"
	opSet     = "set"
	opRelease = "release"
)
