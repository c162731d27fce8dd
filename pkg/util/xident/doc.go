// Package xident 提供唯一 ID 生成能力，基于 Sonyflake 算法实现。
//
// # 设计理念
//
// xident 是对 sony/sonyflake 的薄封装，提供项目内统一的 ID 生成入口。
// 主要特点：
//   - 单例模式，全局共享一个生成器实例；也支持 NewGenerator 独立实例
//   - 智能机器 ID 获取策略，支持离线 K8s 等多种环境
//   - 生成的 ID 具有时序性，便于调试和排查
//   - 比 UUID 更短（12-13 字符 vs 36 字符）且可排序
//
// # 快速开始
//
//	id, err := xident.NewString() // 例如: "1a2b3c4d5e6f7"
//	if err != nil {
//	    return err
//	}
//
// 如果需要自定义机器 ID，可以在应用启动时调用 Init：
//
//	if err := xident.Init(
//	    xident.WithMachineID(func() (uint16, error) {
//	        return getMyMachineID()
//	    }),
//	); err != nil {
//	    log.Fatal(err)
//	}
//
// # 机器 ID 获取策略
//
// xident 使用多层回退策略获取机器 ID，确保在各种环境下都能正常工作：
//
//  1. XIDENT_MACHINE_ID 环境变量（直接指定数字 0-65535）
//  2. 节点名哈希（POD_NAME、HOSTNAME、os.Hostname() 中第一个非空值）
//  3. 私有 IPv4 地址的低 16 位
//
// 节点名哈希是 best-effort，仅提供工程上可接受的概率唯一。
// 需要严格全局唯一时，请显式配置 XIDENT_MACHINE_ID。
//
// # 线程安全
//
// xident 包的所有公开函数都是线程安全的，可以被多个 goroutine 并发调用。
package xident
