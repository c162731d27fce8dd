// Package util 提供通用工具相关的子包。
//
// 子包列表：
//   - xident: 标识符生成，基于 Sonyflake 的全局唯一、趋势递增 ID
//
// 设计原则：
//   - 无外部服务依赖，进程内即可生成
//   - 机器号自动探测，支持容器与裸机环境
//   - 跨平台兼容
package util
