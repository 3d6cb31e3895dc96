package hashing

import (
	"encoding/binary"
	"hash"

	"github.com/cespare/xxhash"
)

// ContentHash - хеш содержимого сида, по нему ищем одинаковые сиды
func ContentHash(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Key - хеш в виде ключа для bloom фильтра
func Key(hash uint64, buf []byte) []byte {
	if cap(buf) < 8 {
		buf = make([]byte, 8)
	}
	buf = buf[:8]
	binary.BigEndian.PutUint64(buf, hash)
	return buf
}

// New - потоковый хеш для сидов, которые пишутся на диск по частям
func New() hash.Hash64 {
	return xxhash.New()
}
