package xguardreg_test

import (
	"context"
	"fmt"

	"github.com/omeyang/xguard/pkg/guard/xguard"
	"github.com/omeyang/xguard/pkg/guard/xguardreg"
)

// ExampleNew 演示按宿主键惰性创建并复用守卫。
func ExampleNew() {
	reg, err := xguardreg.New(func(owner string) (*xguard.Guard[int], error) {
		return xguard.New(0, xguard.WithName(owner))
	})
	if err != nil {
		panic(err)
	}
	defer reg.Close()

	// 同一宿主键总是拿到同一个守卫实例。
	g1, _ := reg.Get("session-42")
	g2, _ := reg.Get("session-42")
	fmt.Println("same guard:", g1 == g2)

	ctx := context.Background()
	acc, _ := g1.Acquire(ctx)
	_ = acc.Set(7)

	// 另一条路径拿到同一个守卫, 此时获取会失败。
	_, err = g2.Acquire(ctx)
	fmt.Println("occupied:", xguard.IsOccupied(err))

	_ = acc.Release(ctx)
	fmt.Println("owners:", reg.Len())

	// Output:
	// same guard: true
	// occupied: true
	// owners: 1
}

// ExampleOptionsFromConfig 演示从配置字节加载注册表选项。
func ExampleOptionsFromConfig() {
	data := []byte(`{"shard_count": 64, "max_owners": 1000}`)
	opts, err := xguardreg.OptionsFromConfig(data, xguardreg.FormatJSON)
	if err != nil {
		panic(err)
	}

	reg, err := xguardreg.New(func(owner string) (*xguard.Guard[string], error) {
		return xguard.New("", xguard.WithName(owner))
	}, opts...)
	if err != nil {
		panic(err)
	}
	defer reg.Close()

	_, _ = reg.Get("tenant-a")
	fmt.Println("owners:", reg.Len())

	// Output:
	// owners: 1
}
