// Package core implements the PCG random number generator.
//
// The PCG algorithm is designed by Melissa O'Neill.
// The bounded generation in uint64n follows Lemire's multiply-shift
// rejection method as used by the Go standard library (math/rand/v2),
// which is licensed under the BSD 3-Clause License.

package core

import (
	"math/bits"
	r2 "math/rand/v2"
)

// PCG 以 math/rand/v2 的 PCG 為底，補上 RAND 合約需要的邊界行為。
type PCG struct {
	rng *r2.PCG
}

// NewPCG 以指定 seed 建立 PCG；seed 先經 splitmix64 展開成兩個 64-bit 狀態。
func NewPCG(seed int64) *PCG {
	x := uint64(seed) ^ 0x9e3779b97f4a7c15
	hi := splitmix64(x)
	lo := splitmix64(x ^ 0xDA942042E4DD58B5)
	return &PCG{rng: r2.NewPCG(hi, lo)}
}

func (r *PCG) Uint64() uint64 {
	return r.rng.Uint64()
}

// UintN 產出 [0,max) 的 uint，max == 0 回傳 0
func (r *PCG) UintN(max uint) uint {
	if max == 0 {
		return 0
	}
	return uint(r.uint64n(uint64(max)))
}

// IntN 產出 [0,max) 的 int，max <= 0 回傳 -1
func (r *PCG) IntN(max int) int {
	if max <= 0 {
		return -1
	}
	return int(r.uint64n(uint64(max)))
}

// Float64 產出 53-bit 精度的 [0,1)
func (r *PCG) Float64() float64 {
	return float64(r.Uint64()<<11>>11) / (1 << 53)
}

func (r *PCG) Snapshot() ([]byte, error) {
	return r.rng.MarshalBinary()
}

func (r *PCG) Restore(data []byte) error {
	return r.rng.UnmarshalBinary(data)
}

func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

// uint64n 回傳 [0,n) 的無偏亂數（乘法取高位，低位落在偏差區才重抽）。
func (r *PCG) uint64n(n uint64) uint64 {
	if n&(n-1) == 0 {
		return r.Uint64() & (n - 1)
	}
	hi, lo := bits.Mul64(r.Uint64(), n)
	if lo < n {
		thresh := -n % n
		for lo < thresh {
			hi, lo = bits.Mul64(r.Uint64(), n)
		}
	}
	return hi
}
