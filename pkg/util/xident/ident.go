package xident

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/sony/sonyflake/v2"
)

// =============================================================================
// 错误定义
// =============================================================================

var (
	// ErrNotInitialized 生成器未初始化。
	// 当用户显式调用 Init 但失败后，后续包级函数（New/NewString）返回此错误。
	// 此时自动初始化被禁用以尊重用户意图，请修复 Init 失败原因后重新调用 Init。
	ErrNotInitialized = errors.New("xident: generator not initialized (Init was called but failed; call Init again to retry)")

	// ErrAlreadyInitialized 生成器已初始化。
	// 第二次调用 Init 时返回此错误。如需多个生成器，请使用 NewGenerator。
	ErrAlreadyInitialized = errors.New("xident: generator already initialized")

	// ErrInvalidID ID 值无效（零或负数）。
	// Parse 解析出非正值时返回此错误。
	ErrInvalidID = errors.New("xident: invalid id")

	// ErrInvalidConfig 配置参数无效。
	// sonyflake.New 初始化失败（如 CheckMachineID 验证不通过）时包裹为此错误。
	ErrInvalidConfig = errors.New("xident: invalid config")

	// ErrNoPrivateAddress 无法找到私有 IP 地址。
	// 当机器 ID 的前序策略（环境变量、节点名）均未命中，
	// 且系统没有私有 IPv4 地址时，DefaultMachineID 返回此错误。
	ErrNoPrivateAddress = errors.New("xident: no private IP address found")

	// ErrNilGenerator 生成器实例为 nil 或未通过 NewGenerator 创建。
	// 当直接使用零值 Generator 或 nil *Generator 调用方法时返回此错误。
	ErrNilGenerator = errors.New("xident: nil generator (use NewGenerator to create)")
)

// =============================================================================
// Generator - 实例化的 ID 生成器
// =============================================================================

// Generator 唯一 ID 生成器。
//
// 支持两种使用方式：
//   - 实例化：通过 NewGenerator 创建独立实例，适用于依赖注入和测试隔离
//   - 全局函数：通过包级别函数（New/NewString）使用默认全局实例
//
// Generator 的所有方法都是并发安全的。
type Generator struct {
	// 设计决策: sf 字段运行时通过 generateID 间接使用。保留此引用
	// 明确 Generator 对 sonyflake 实例的所有权，便于调试和未来扩展。
	sf *sonyflake.Sonyflake
	// generateID 生成下一个 ID。默认为 sf.NextID，测试中可替换。
	generateID func() (int64, error)
}

// NewGenerator 创建新的 ID 生成器实例。
//
// 与包级别函数（Init/New 等）不同，每次调用 NewGenerator 都会创建独立的生成器，
// 便于测试隔离和依赖注入。
//
// 如果不传入 WithMachineID 选项，默认使用 DefaultMachineID 获取机器 ID。
//
// 设计决策: 返回 *Generator 而非接口。xident 是底层工具包，需要依赖注入的
// 场景（如 xguard 的访问 ID 生成）已通过函数类型解耦，无需额外接口。
// 返回具体类型避免过度抽象，符合 "accept interfaces, return structs" 惯例。
func NewGenerator(opts ...Option) (*Generator, error) {
	cfg := &options{}
	// nil Option 静默跳过，便于条件式构建 Option 列表。
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	settings := sonyflake.Settings{}

	machineIDFn := cfg.machineID
	if machineIDFn == nil {
		machineIDFn = DefaultMachineID
	}
	settings.MachineID = func() (int, error) {
		id, err := machineIDFn()
		return int(id), err
	}

	if cfg.checkMachineID != nil {
		settings.CheckMachineID = func(id int) bool {
			return cfg.checkMachineID(uint16(id))
		}
	}

	sf, err := sonyflake.New(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	g := &Generator{sf: sf}
	g.generateID = sf.NextID
	return g, nil
}

// validate 校验生成器实例是否可用。
// 防止零值 Generator 或 nil *Generator 导致 nil pointer panic。
func (g *Generator) validate() error {
	if g == nil || g.generateID == nil {
		return ErrNilGenerator
	}
	return nil
}

// New 生成新的唯一 ID（int64 格式）。
func (g *Generator) New() (int64, error) {
	if err := g.validate(); err != nil {
		return 0, err
	}
	return g.generateID()
}

// NewString 生成新的唯一 ID（字符串格式）。
//
// 使用 base36 编码，结果为 12-13 个字符。
func (g *Generator) NewString() (string, error) {
	id, err := g.New()
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(id, 36), nil
}

// =============================================================================
// 全局单例
// =============================================================================

var (
	defaultGen atomic.Pointer[Generator]
	initMu     sync.Mutex
	// initCalled 标记用户是否显式调用过 Init。一旦为 true，
	// ensureInitialized 不再自动初始化，避免覆盖用户意图。受 initMu 保护。
	initCalled bool
)

// Init 初始化全局 ID 生成器。
//
// 如果不调用 Init，首次生成 ID 时会使用默认配置自动初始化。
// Init 只能成功一次，成功后重复调用返回 [ErrAlreadyInitialized]。
//
// 与 sync.Once 不同，如果 Init 因瞬态错误失败（如机器 ID 获取失败），
// 可以再次调用 Init 重试。
func Init(opts ...Option) error {
	initMu.Lock()
	defer initMu.Unlock()
	if defaultGen.Load() != nil {
		return ErrAlreadyInitialized
	}
	initCalled = true
	gen, err := NewGenerator(opts...)
	if err != nil {
		return err
	}
	defaultGen.Store(gen)
	return nil
}

// ensureInitialized 确保生成器已初始化，返回可用的生成器。
//
// 使用 double-checked locking：快速路径仅需一次原子 Load。
// 如果用户显式调用过 Init 但失败了，不会自动用默认配置覆盖用户意图，
// 而是返回 ErrNotInitialized，提示用户重新 Init。
func ensureInitialized() (*Generator, error) {
	if gen := defaultGen.Load(); gen != nil {
		return gen, nil
	}
	initMu.Lock()
	defer initMu.Unlock()
	if gen := defaultGen.Load(); gen != nil {
		return gen, nil
	}
	if initCalled {
		return nil, ErrNotInitialized
	}
	gen, err := NewGenerator()
	if err != nil {
		return nil, err
	}
	defaultGen.Store(gen)
	return gen, nil
}

// =============================================================================
// 全局便捷函数
// =============================================================================

// New 生成新的唯一 ID（int64 格式）。
//
// 如果生成器未初始化，会使用默认配置自动初始化。
func New() (int64, error) {
	gen, err := ensureInitialized()
	if err != nil {
		return 0, err
	}
	return gen.New()
}

// NewString 生成新的唯一 ID（字符串格式）。
//
// 使用 base36 编码，结果为 12-13 个字符。
func NewString() (string, error) {
	gen, err := ensureInitialized()
	if err != nil {
		return "", err
	}
	return gen.NewString()
}

// Parse 从字符串解析 ID。
//
// 字符串必须是 base36 编码的格式（由 NewString 生成）。
// 所有无效输入（语法错误、溢出、非正值）均返回 [ErrInvalidID]。
//
// 设计决策: Parse 采用宽松解析（大小写不敏感，允许前导 "+"），
// 与 strconv.ParseInt 行为一致。NewString 的输出（小写、无前缀）是规范形式，
// 但 Parse 不强制规范性校验，以便兼容外部系统可能引入的大小写变换。
func Parse(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 36, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidID, err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("%w: value must be positive, got %d", ErrInvalidID, id)
	}
	return id, nil
}
