package grid

import (
	"encoding/binary"
	"hash/fnv"
	"math"
)

// tileRecordSize is the encoded width of one tile in HashWorld.
const tileRecordSize = 1 + 1 + 4 + 1 + 1 + 2 + 1

// HashWorld returns a stable, endianness-independent FNV-1a 64 digest of the
// grid: dimensions, seed and every tile field in row-major order, all
// little-endian. Any change to a road level, road mask, overlay or occupancy
// changes the hash.
// Complexity: O(W×H).
func HashWorld(w *World) uint64 {
	h := fnv.New64a()
	var hdr [16]byte
	binary.LittleEndian.PutUint32(hdr[0:], uint32(int32(w.width)))
	binary.LittleEndian.PutUint32(hdr[4:], uint32(int32(w.height)))
	binary.LittleEndian.PutUint64(hdr[8:], w.seed)
	h.Write(hdr[:])

	var rec [tileRecordSize]byte
	for _, t := range w.tiles {
		rec[0] = uint8(t.Terrain)
		rec[1] = uint8(t.Overlay)
		binary.LittleEndian.PutUint32(rec[2:], math.Float32bits(t.Height))
		rec[6] = t.Variation
		rec[7] = t.Level
		binary.LittleEndian.PutUint16(rec[8:], t.Occupants)
		rec[10] = t.District
		h.Write(rec[:])
	}

	return h.Sum64()
}

// SplitMix64 advances state and returns the next mixed value.
func SplitMix64(state *uint64) uint64 {
	*state += 0x9E3779B97F4A7C15
	z := *state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB

	return z ^ (z >> 31)
}

// HashCoords32 hashes a coordinate pair with a seed into 32 bits.
func HashCoords32(x, y int, seed uint32) uint32 {
	v := uint64(uint32(int32(x))) | uint64(uint32(int32(y)))<<32
	v ^= uint64(seed) * 0xD6E8FEB86659FD93
	v ^= v >> 30
	v *= 0xBF58476D1CE4E5B9
	v ^= v >> 27
	v *= 0x94D049BB133111EB
	v ^= v >> 31

	return uint32(v)
}

// Hash32 is a small integer mixer used for deterministic dithering.
func Hash32(x uint32) uint32 {
	x ^= x >> 16
	x *= 0x7feb352d
	x ^= x >> 15
	x *= 0x846ca68b
	x ^= x >> 16

	return x
}

// SeedMix32 folds a 64-bit world seed into 32 bits.
func SeedMix32(seed uint64) uint32 {
	return uint32(seed ^ (seed >> 32))
}
