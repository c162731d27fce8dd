package xguard

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/omeyang/xguard/pkg/observability/xlog"
	"github.com/omeyang/xguard/pkg/util/xident"
)

// =============================================================================
// ID 生成器
// =============================================================================

// IDGeneratorFunc 访问 ID 生成函数。
// 返回唯一字符串 ID 和可能的错误。
//
// 注意：访问 ID 仅用于日志、追踪等可观测性场景。
// Guard 的存活判定使用内部单调递增的不可伪造标识，与访问 ID 无关。
type IDGeneratorFunc func(ctx context.Context) (string, error)

// defaultIDGenerator 默认访问 ID 生成：优先 xident（短、可排序），
// 失败时降级到 UUID。
//
// 设计决策: 默认生成器永不失败。xident 依赖机器 ID 获取策略，在极端环境
// （无主机名、无私有 IP）下可能出错；访问 ID 只服务于可观测性，不值得让
// Acquire 因此失败，降级到无环境依赖的 UUID 即可。
func defaultIDGenerator(_ context.Context) (string, error) {
	if id, err := xident.NewString(); err == nil {
		return id, nil
	}
	return uuid.NewString(), nil
}

// =============================================================================
// 配置选项
// =============================================================================

// options Guard 内部配置
type options struct {
	name           string
	logger         xlog.Logger
	meterProvider  metric.MeterProvider
	tracerProvider trace.TracerProvider
	idGenerator    IDGeneratorFunc // 访问 ID 生成函数，nil 时使用 defaultIDGenerator
}

// Option Guard 配置选项函数
type Option func(*options)

// defaultOptions 返回默认配置
func defaultOptions() *options {
	return &options{
		idGenerator: defaultIDGenerator,
	}
}

// WithName 设置 Guard 名称。
// 名称会作为日志属性与 trace/metrics 标签输出，便于区分多个 Guard 实例。
// 空值表示匿名 Guard（不输出名称标签）。
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithLogger 设置日志记录器
// 使用 xlog 进行结构化日志记录。不设置时不输出日志。
func WithLogger(logger xlog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMeterProvider 设置 OpenTelemetry MeterProvider
// 用于收集 Counter 类型的指标
// 如果不设置，不会收集指标
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) {
		o.meterProvider = mp
	}
}

// WithTracerProvider 设置 OpenTelemetry TracerProvider
// 用于创建追踪 span
// 如果不设置，会使用全局 TracerProvider（otel.GetTracerProvider()）
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) {
		o.tracerProvider = tp
	}
}

// WithIDGenerator 设置访问 ID 生成函数。
// nil 值被忽略，继续使用默认生成器。
func WithIDGenerator(fn IDGeneratorFunc) Option {
	return func(o *options) {
		if fn != nil {
			o.idGenerator = fn
		}
	}
}
