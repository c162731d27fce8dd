package xguardreg

import (
	"fmt"
	"strings"

	kjson "github.com/knadh/koanf/parsers/json"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// 支持的配置格式
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// 配置键
const (
	configKeyShardCount = "shard_count"
	configKeyMaxOwners  = "max_owners"
)

// OptionsFromConfig 从外部配置数据解析 Registry 选项。
//
// 支持的键：
//   - shard_count: 分片数量（2 的幂）
//   - max_owners:  最大 owner 数量（<= 0 表示不限制）
//
// format 支持 "json" 与 "yaml"（"yml" 同义）。未出现的键保持默认值。
// 解析结果仍会经过 New 的 validate 校验，非法值在 New 时报错。
//
// 示例：
//
//	opts, err := xguardreg.OptionsFromConfig(data, xguardreg.FormatYAML)
//	if err != nil {
//	    return err
//	}
//	reg, err := xguardreg.New(factory, opts...)
func OptionsFromConfig(data []byte, format string) ([]Option, error) {
	var parser koanf.Parser
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatJSON:
		parser = kjson.Parser()
	case FormatYAML, "yml":
		parser = kyaml.Parser()
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", ErrInvalidConfig, format)
	}

	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(data), parser); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	var opts []Option
	if k.Exists(configKeyShardCount) {
		opts = append(opts, WithShardCount(k.Int(configKeyShardCount)))
	}
	if k.Exists(configKeyMaxOwners) {
		opts = append(opts, WithMaxOwners(k.Int(configKeyMaxOwners)))
	}
	return opts, nil
}
