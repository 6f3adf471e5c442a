package cache

import (
	"context"
	"fmt"
	"testing"
	"time"
)

// BenchmarkMemoryStore_Get_Hit measures cache hit performance.
func BenchmarkMemoryStore_Get_Hit(b *testing.B) {
	s := NewMemoryStore(DefaultPolicy())
	ctx := context.Background()

	_ = s.Set(ctx, "key", []byte("value"), time.Hour)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = s.Get(ctx, "key")
	}
}

// BenchmarkMemoryStore_Get_Miss measures cache miss performance.
func BenchmarkMemoryStore_Get_Miss(b *testing.B) {
	s := NewMemoryStore(DefaultPolicy())
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = s.Get(ctx, "missing")
	}
}

// BenchmarkMemoryStore_Set measures write performance.
func BenchmarkMemoryStore_Set(b *testing.B) {
	s := NewMemoryStore(DefaultPolicy())
	ctx := context.Background()
	value := []byte("test value")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.Set(ctx, fmt.Sprintf("key-%d", i), value, time.Hour)
	}
}

// BenchmarkMemoryStore_ClearPattern measures pattern invalidation over 1000 keys.
func BenchmarkMemoryStore_ClearPattern(b *testing.B) {
	s := NewMemoryStore(DefaultPolicy())
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		for j := 0; j < 1000; j++ {
			_ = s.Set(ctx, fmt.Sprintf("entity%d:%d", j%10, j), []byte("v"), time.Hour)
		}
		b.StartTimer()
		_, _ = s.ClearPattern(ctx, "entity3:*")
	}
}

// BenchmarkMemoryStore_Concurrent_ReadWrite measures mixed concurrent operations.
func BenchmarkMemoryStore_Concurrent_ReadWrite(b *testing.B) {
	s := NewMemoryStore(DefaultPolicy())
	ctx := context.Background()

	for i := 0; i < 100; i++ {
		_ = s.Set(ctx, fmt.Sprintf("key-%d", i), []byte("value"), time.Hour)
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			key := fmt.Sprintf("key-%d", i%100)
			if i%4 == 0 {
				// 25% writes
				_ = s.Set(ctx, key, []byte("new-value"), time.Hour)
			} else {
				// 75% reads
				_, _ = s.Get(ctx, key)
			}
			i++
		}
	})
}

// BenchmarkCompilePattern measures glob compilation.
func BenchmarkCompilePattern(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = CompilePattern("instructors:*")
	}
}
