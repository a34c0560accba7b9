package primitive

// spread mixes the raw key bits (murmur3 fmix64) so that sequential keys do
// not cluster in neighbouring slots.
func spread(h uint64) uint64 {
	h ^= h >> 33
	h *= 0xff51afd7ed558ccd
	h ^= h >> 33
	h *= 0xc4ceb9fe1a85ec53
	h ^= h >> 33
	return h
}

// fold is the 32-bit hash code of a raw bit pattern, folded high into low.
func fold(bits uint64) uint32 {
	return uint32(bits ^ bits>>32)
}
