package project

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest - фиксированный 256 битный хеш (совместим с source.File.Hash)
type Digest [32]byte

// Sum хеширует содержимое файла.
func Sum(content []byte) Digest {
	return sha256.Sum256(content)
}

// Combine строит хеш результата: H( content || dep1 || dep2 ... ).
// Порядок deps должен быть детерминированным.
func Combine(content Digest, deps ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, d := range deps {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// Short возвращает первые 12 hex-символов для логов и трейсов.
func (d Digest) Short() string {
	return hex.EncodeToString(d[:6])
}
