package xguard

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// =============================================================================
// Tracer 相关常量
// =============================================================================

const (
	// tracerName 追踪器名称
	tracerName = "xguard"
)

// Span 操作名称
const (
	spanNameAcquire = "xguard.Acquire"
	spanNameRelease = "xguard.Release"
)

// Span 属性名称（Metrics 也复用这些常量，确保 trace 与 metrics 键名一致）
const (
	attrGuardName  = "xguard.name"
	attrAccessID   = "xguard.access_id"
	attrAcquired   = "xguard.acquired"
	attrFailReason = "xguard.fail_reason"
	attrOp         = "xguard.op"
)

// =============================================================================
// Tracer 管理
// =============================================================================

// getTracer 获取 tracer 实例
// 如果配置了 TracerProvider 则使用它，否则使用全局默认
func getTracer(tp trace.TracerProvider) trace.Tracer {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return tp.Tracer(tracerName, trace.WithInstrumentationVersion(instrumentationVersion))
}

// =============================================================================
// Span 创建辅助函数
// =============================================================================

// startSpan 创建新的 span
// 如果 tracer 为 nil，使用全局 tracer（可能是 noop tracer）
func startSpan(ctx context.Context, tracer trace.Tracer, name string) (context.Context, trace.Span) {
	if tracer == nil {
		tracer = otel.GetTracerProvider().Tracer(tracerName)
	}
	return tracer.Start(ctx, name)
}

// setSpanError 设置 span 错误状态
func setSpanError(span trace.Span, err error) {
	if err != nil && span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// setSpanOK 设置 span 成功状态
func setSpanOK(span trace.Span) {
	if span != nil {
		span.SetStatus(codes.Ok, "")
	}
}

// =============================================================================
// 通用属性构建
// =============================================================================

// guardSpanAttributes 构建操作的基础 span 属性
func guardSpanAttributes(name string) []attribute.KeyValue {
	if name == "" {
		return nil
	}
	return []attribute.KeyValue{attribute.String(attrGuardName, name)}
}
