// Package guard 提供独占访问守卫相关的子包。
//
// 子包列表：
//   - xguard: 单持有者独占访问守卫，非阻塞获取、句柄吊销、惰性初始化
//   - xguardreg: 按宿主键管理守卫的注册表，恰好一次创建、分片并发
//
// 设计原则：
//   - 获取永不等待，立即返回成功或失败
//   - 句柄身份唯一且永不复用
//   - 进程内语义，不涉及分布式协调
package guard
