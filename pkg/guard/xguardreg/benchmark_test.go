package xguardreg

import (
	"strconv"
	"testing"
)

func BenchmarkGetExisting(b *testing.B) {
	reg, err := New(intFactory)
	if err != nil {
		b.Fatal(err)
	}
	defer reg.Close()

	if _, err := reg.Get("owner"); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := reg.Get("owner"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkGetDistinctOwners(b *testing.B) {
	reg, err := New(intFactory)
	if err != nil {
		b.Fatal(err)
	}
	defer reg.Close()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := reg.Get("owner-" + strconv.Itoa(i)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkGetParallel(b *testing.B) {
	reg, err := New(intFactory)
	if err != nil {
		b.Fatal(err)
	}
	defer reg.Close()

	// 预热一批宿主键, 让并行读命中不同分片。
	for i := 0; i < 128; i++ {
		if _, err := reg.Get("owner-" + strconv.Itoa(i)); err != nil {
			b.Fatal(err)
		}
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			if _, err := reg.Get("owner-" + strconv.Itoa(i%128)); err != nil {
				b.Fatal(err)
			}
			i++
		}
	})
}
