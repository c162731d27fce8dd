package xguard

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// 设计决策: 指标前缀使用 "xguard.*"，与 OTel Meter scope name 保持一致
// （Meter("xguard")），避免与 scope 名称产生冗余嵌套。
// 如需统一命名空间，应在采集端（Prometheus relabel）处理。
const (
	// metricNameAcquireTotal 获取访问次数计数器
	metricNameAcquireTotal = "xguard.acquire.total"
	// metricNameReleaseTotal 释放访问次数计数器
	metricNameReleaseTotal = "xguard.release.total"
	// metricNameRevokedUseTotal 失效访问误用次数计数器
	metricNameRevokedUseTotal = "xguard.revoked_use.total"
)

// Metrics Guard 指标收集器
type Metrics struct {
	meter            metric.Meter
	acquireTotal     metric.Int64Counter
	releaseTotal     metric.Int64Counter
	revokedUseTotal  metric.Int64Counter
	disableNameLabel bool // 是否禁用 guard 名称标签
}

// NewMetrics 创建指标收集器
// 如果 meterProvider 为 nil，返回 nil（不收集指标）
func NewMetrics(meterProvider metric.MeterProvider, opts ...MetricsOption) (*Metrics, error) {
	if meterProvider == nil {
		return nil, nil
	}

	m := &Metrics{}
	for _, opt := range opts {
		opt(m)
	}

	m.meter = meterProvider.Meter("xguard",
		metric.WithInstrumentationVersion(instrumentationVersion),
	)

	var err error
	if m.acquireTotal, err = m.meter.Int64Counter(metricNameAcquireTotal,
		metric.WithDescription("Guard 获取访问次数"), metric.WithUnit("{acquire}")); err != nil {
		return nil, err
	}
	if m.releaseTotal, err = m.meter.Int64Counter(metricNameReleaseTotal,
		metric.WithDescription("Guard 释放访问次数"), metric.WithUnit("{release}")); err != nil {
		return nil, err
	}
	if m.revokedUseTotal, err = m.meter.Int64Counter(metricNameRevokedUseTotal,
		metric.WithDescription("失效 Access 误用次数"), metric.WithUnit("{use}")); err != nil {
		return nil, err
	}

	return m, nil
}

// MetricsOption 指标收集器配置选项
type MetricsOption func(*Metrics)

// MetricsWithDisableNameLabel 禁用 guard 名称标签
// 当 Guard 名称为动态生成时（如包含用户 ID），建议启用此选项以避免高基数问题
func MetricsWithDisableNameLabel() MetricsOption {
	return func(m *Metrics) {
		m.disableNameLabel = true
	}
}

// baseAttrs 构建包含（可选）名称标签的基础属性
func (m *Metrics) baseAttrs(name string) []attribute.KeyValue {
	if m.disableNameLabel || name == "" {
		return nil
	}
	return []attribute.KeyValue{attribute.String(attrGuardName, name)}
}

// RecordAcquire 记录获取访问结果
// ctx: 上下文，用于传播追踪信息
// name: Guard 名称
// acquired: 是否成功获取
// reason: 失败原因（成功时为空）
func (m *Metrics) RecordAcquire(ctx context.Context, name string, acquired bool, reason string) {
	if m == nil {
		return
	}

	// 使用 context.WithoutCancel 确保即使 ctx 被取消，指标仍能记录
	metricsCtx := context.WithoutCancel(ctx)

	attrs := append(m.baseAttrs(name), attribute.Bool(attrAcquired, acquired))
	if !acquired {
		attrs = append(attrs, attribute.String(attrFailReason, reason))
	}

	m.acquireTotal.Add(metricsCtx, 1, metric.WithAttributes(attrs...))
}

// RecordRelease 记录释放访问
func (m *Metrics) RecordRelease(ctx context.Context, name string) {
	if m == nil {
		return
	}

	metricsCtx := context.WithoutCancel(ctx)
	m.releaseTotal.Add(metricsCtx, 1, metric.WithAttributes(m.baseAttrs(name)...))
}

// RecordRevokedUse 记录失效 Access 的误用
// op: 误用的操作（"get"/"set"/"release"）
func (m *Metrics) RecordRevokedUse(ctx context.Context, name, op string) {
	if m == nil {
		return
	}

	metricsCtx := context.WithoutCancel(ctx)
	attrs := append(m.baseAttrs(name), attribute.String(attrOp, op))
	m.revokedUseTotal.Add(metricsCtx, 1, metric.WithAttributes(attrs...))
}
