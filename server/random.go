package server

import (
	"crypto/rand"
	"math/big"
)

// Random 可注入的均匀随机源：猎人抽取与连接标识生成都走这里，
// 测试可替换为确定性序列
type Random interface {
	// Intn 返回 [0, n) 内的随机整数
	Intn(n int) int
	// Token 从 alphabet 中取样生成定长随机串
	Token(length int, alphabet string) string
}

// defaultRandom 进程级默认随机源（连接标识与猎人抽取）
var defaultRandom Random = NewRandom()

// CryptoRandom 基于 crypto/rand 的默认实现
type CryptoRandom struct{}

// NewRandom 创建默认随机源
func NewRandom() *CryptoRandom {
	return &CryptoRandom{}
}

// Intn 返回 [0, n) 内的随机整数；n <= 0 时返回 0
func (r *CryptoRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand 理论上不会失败，兜底返回 0
		return 0
	}
	return int(v.Int64())
}

// Token 生成定长随机串
func (r *CryptoRandom) Token(length int, alphabet string) string {
	if length <= 0 || len(alphabet) == 0 {
		return ""
	}
	out := make([]byte, length)
	for i := range out {
		out[i] = alphabet[r.Intn(len(alphabet))]
	}
	return string(out)
}
