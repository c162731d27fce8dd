package xident

import (
	"fmt"
	"net"
	"net/netip"
	"os"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// 测试注入点：允许测试替换系统调用以覆盖所有错误分支。
var (
	osHostname        = os.Hostname
	netInterfaceAddrs = net.InterfaceAddrs
)

const (
	// EnvMachineID 直接指定机器 ID 的环境变量（0-65535）
	EnvMachineID = "XIDENT_MACHINE_ID"

	// EnvPodName K8s Pod 名称环境变量（通过 Downward API 注入）
	EnvPodName = "POD_NAME"

	// EnvHostname 主机名环境变量（某些环境会设置）
	EnvHostname = "HOSTNAME"
)

// DefaultMachineID 获取机器 ID，按以下优先级：
//
//  1. XIDENT_MACHINE_ID 环境变量（直接指定数字 0-65535）
//  2. 节点名哈希：POD_NAME、HOSTNAME、os.Hostname() 中第一个非空值
//  3. 私有 IPv4 地址的低 16 位
//
// 仅显式指定（策略 1）能提供可控唯一性；节点名哈希存在碰撞概率，
// 大规模部署（>50 节点）应通过 XIDENT_MACHINE_ID 显式分配。
func DefaultMachineID() (uint16, error) {
	if s := os.Getenv(EnvMachineID); s != "" {
		id, err := strconv.ParseUint(s, 10, 16)
		if err != nil {
			return 0, fmt.Errorf("xident: invalid %s value %q: %w", EnvMachineID, s, err)
		}
		return uint16(id), nil
	}

	if name := nodeName(); name != "" {
		return hashMachineID(name), nil
	}

	return machineIDFromPrivateIP()
}

// nodeName 返回当前节点的逻辑名称，所有来源均为空时返回 ""。
// 查找顺序与 DefaultMachineID 文档一致；os.Hostname 的错误不单独上报，
// 由后续的私有 IP 策略接手。
func nodeName() string {
	for _, env := range [...]string{EnvPodName, EnvHostname} {
		if v := os.Getenv(env); v != "" {
			return v
		}
	}
	name, err := osHostname()
	if err != nil {
		return ""
	}
	return name
}

// hashMachineID 将节点名折叠为 16 位机器 ID。
// xxhash 的 64 位输出按 16 位分段异或，避免只取低位造成的分布劣化。
func hashMachineID(s string) uint16 {
	h := xxhash.Sum64String(s)
	return uint16(h ^ h>>16 ^ h>>32 ^ h>>48)
}

// machineIDFromPrivateIP 取第一个私有 IPv4 地址（含链路本地）的低 16 位。
//
// 注意：net.InterfaceAddrs 的枚举顺序依赖操作系统，多网卡环境下重启后
// 可能选到不同地址。需要稳定 ID 时请使用 XIDENT_MACHINE_ID。
func machineIDFromPrivateIP() (uint16, error) {
	addrs, err := netInterfaceAddrs()
	if err != nil {
		return 0, fmt.Errorf("xident: list interface addrs: %w", err)
	}

	for _, addr := range addrs {
		ipnet, ok := addr.(*net.IPNet)
		if !ok {
			continue
		}
		ip, ok := netip.AddrFromSlice(ipnet.IP)
		if !ok {
			continue
		}
		ip = ip.Unmap()
		if !ip.Is4() || ip.IsLoopback() {
			continue
		}
		if ip.IsPrivate() || ip.IsLinkLocalUnicast() {
			b := ip.As4()
			return uint16(b[2])<<8 | uint16(b[3]), nil
		}
	}

	return 0, ErrNoPrivateAddress
}
