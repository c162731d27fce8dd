package xguard

import "log/slog"

// =============================================================================
// 日志属性键常量
// =============================================================================

const (
	attrKeyGuardName = "guard"
	attrKeyAccessID  = "access_id"
	attrKeyError     = "error"
	attrKeyOp        = "op"
)

// =============================================================================
// 日志属性构造函数
// =============================================================================

// AttrGuardName 返回 Guard 名称属性
func AttrGuardName(name string) slog.Attr {
	return slog.String(attrKeyGuardName, name)
}

// AttrAccessID 返回访问 ID 属性
func AttrAccessID(id string) slog.Attr {
	return slog.String(attrKeyAccessID, id)
}

// AttrError 返回错误属性
func AttrError(err error) slog.Attr {
	if err == nil {
		return slog.String(attrKeyError, "")
	}
	return slog.String(attrKeyError, err.Error())
}

// AttrOp 返回操作属性
func AttrOp(op string) slog.Attr {
	return slog.String(attrKeyOp, op)
}
