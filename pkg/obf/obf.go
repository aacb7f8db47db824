package obf

import (
	"log"
	"strings"
	"sync"
	"time"
	"unsafe"
)

var (
	hashSeed     uint32
	hashInitOnce sync.Once
)

func generateHashSeed() {
	now := time.Now()
	seed := uint64(now.UnixNano())
	seed ^= uint64(now.Unix()) << 32
	seed ^= uint64(now.Nanosecond()) << 16
	seed ^= uint64(uintptr(unsafe.Pointer(&seed)))
	seed ^= uint64(uintptr(unsafe.Pointer(&now)))
	hashSeed = uint32(seed)
}

func initHashSeed() {
	hashInitOnce.Do(generateHashSeed)
}

// CustomHash folds ASCII case, so any spelling of the same module name
// produces the same value. Export symbol names go through SymbolHash instead.
func CustomHash(buffer []byte) uint32 {
	initHashSeed()
	var h uint32 = hashSeed
	for _, b := range buffer {
		if b == 0 {
			continue
		}
		if b >= 'a' && b <= 'z' {
			b -= 0x20
		}
		h = (h ^ uint32(b)) * 16777619
	}
	return h
}

// SymbolHash is the case-exact variant for export names.
func SymbolHash(buffer []byte) uint32 {
	initHashSeed()
	var h uint32 = hashSeed
	for _, b := range buffer {
		if b == 0 {
			continue
		}
		h = (h ^ uint32(b)) * 16777619
	}
	return h
}

// HashUTF16 hashes a loader-provided wide string the same way CustomHash
// hashes its ASCII spelling, so GetHash("kernel32.dll") matches a
// BaseDllName buffer without converting it to a Go string first.
func HashUTF16(buffer []uint16) uint32 {
	initHashSeed()
	var h uint32 = hashSeed
	for _, c := range buffer {
		if c == 0 {
			continue
		}
		if c >= 'a' && c <= 'z' {
			c -= 0x20
		}
		if c > 0xFF {
			h = (h ^ uint32(byte(c))) * 16777619
			h = (h ^ uint32(byte(c>>8))) * 16777619
			continue
		}
		h = (h ^ uint32(c)) * 16777619
	}
	return h
}

var HashCache = make(map[string]uint32)
var hashCacheMutex sync.RWMutex
var collisionDetector = make(map[uint32]string)
var collisionMutex sync.RWMutex

func GetHash(s string) uint32 {
	hashCacheMutex.RLock()
	if hash, ok := HashCache[s]; ok {
		hashCacheMutex.RUnlock()
		return hash
	}
	hashCacheMutex.RUnlock()

	hash := CustomHash([]byte(s))

	hashCacheMutex.Lock()
	HashCache[s] = hash
	hashCacheMutex.Unlock()

	detectHashCollision(hash, s)

	return hash
}

// GetSymbolHash is uncached; a symbol lookup hashes every candidate name in
// the export table anyway, so a per-query cache buys nothing.
func GetSymbolHash(s string) uint32 {
	return SymbolHash([]byte(s))
}

func detectHashCollision(hash uint32, newString string) {
	collisionMutex.Lock()
	defer collisionMutex.Unlock()
	normalizedNew := strings.ToUpper(newString)

	if existingString, exists := collisionDetector[hash]; exists {
		normalizedExisting := strings.ToUpper(existingString)
		if normalizedExisting != normalizedNew {
			log.Printf("Warning: Hash collision detected!")
			log.Printf("  Hash: %d", hash)
			log.Printf("  Existing string: %s", existingString)
			log.Printf("  New string: %s", newString)
		}
	} else {
		collisionDetector[hash] = newString
	}
}

func ClearHashCache() {
	hashCacheMutex.Lock()
	defer hashCacheMutex.Unlock()

	collisionMutex.Lock()
	defer collisionMutex.Unlock()

	HashCache = make(map[string]uint32)
	collisionDetector = make(map[uint32]string)
}

func GetHashCacheStats() map[string]interface{} {
	hashCacheMutex.RLock()
	defer hashCacheMutex.RUnlock()

	collisionMutex.RLock()
	defer collisionMutex.RUnlock()

	collisions := 0
	uniqueHashes := len(collisionDetector)
	totalEntries := len(HashCache)

	if totalEntries > uniqueHashes {
		collisions = totalEntries - uniqueHashes
	}

	return map[string]interface{}{
		"total_entries": totalEntries,
		"unique_hashes": uniqueHashes,
		"collisions":    collisions,
	}
}
