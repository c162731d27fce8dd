// Package xlog 提供基于 slog 的结构化日志门面。
//
// # 设计理念
//
// xlog 是对标准库 log/slog 的薄封装，提供项目内统一的日志入口：
//   - 所有日志方法强制携带 context.Context，保证追踪信息传播
//   - 方法签名只接受 slog.Attr，避免隐式 key-value 转换
//   - slog.LevelVar 驱动的动态级别，运行时可调
//   - 可选的 lumberjack 文件轮转
//
// # 快速开始
//
//	logger, cleanup, err := xlog.New().
//		SetLevelString("debug").
//		SetFormat("json").
//		Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer cleanup()
//
//	logger.Info(ctx, "guard acquired", slog.String("access_id", id))
//
// # 文件轮转
//
//	logger, cleanup, err := xlog.New().
//		SetRotation("/var/log/app/app.log",
//			xlog.RotateMaxSize(200),
//			xlog.RotateCompress(),
//		).
//		Build()
//
// # 动态级别
//
// Build 返回的 LoggerWithLevel 支持运行时调整级别：
//
//	logger.SetLevel(slog.LevelWarn)
//
// 通过 With 派生的 logger 共享同一个 LevelVar，级别变更对所有派生实例生效。
//
// # 线程安全
//
// Logger 的所有方法都是并发安全的。Builder 不是并发安全的，
// 应在单个 goroutine 中完成配置并 Build。
package xlog
