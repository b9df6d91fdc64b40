package neon

// Tile atlas resolution. Every solid or hazard cell gets a visual
// variant derived from its full 8-cell neighborhood plus a per-cell
// sub-variant hashed from the run seed and the cell's world position.
// Resolution is pure: the same inputs always yield the same variant,
// for any coordinate magnitude.

// NeighborMask encodes the 8-cell neighborhood occupancy of a tile.
// Bit layout, clockwise from north:
//
//	bit 0: N   bit 1: NE  bit 2: E   bit 3: SE
//	bit 4: S   bit 5: SW  bit 6: W   bit 7: NW
type NeighborMask uint8

const (
	MaskN NeighborMask = 1 << iota
	MaskNE
	MaskE
	MaskSE
	MaskS
	MaskSW
	MaskW
	MaskNW
)

// SubVariants is the number of cosmetic sub-variants per neighborhood
// pattern, giving 256*SubVariants distinct variants in total.
const SubVariants = 4

// Variant is a resolved tile appearance: the low byte is the neighbor
// mask, the bits above select the cosmetic sub-variant.
type Variant uint16

// Mask returns the neighborhood pattern the variant was resolved from.
func (v Variant) Mask() NeighborMask {
	return NeighborMask(v & 0xff)
}

// Sub returns the cosmetic sub-variant index in [0, SubVariants).
func (v Variant) Sub() int {
	return int(v >> 8)
}

// Surface reports whether the cell has no solid neighbor above it.
func (v Variant) Surface() bool {
	return v.Mask()&MaskN == 0
}

// ResolveVariant maps a neighborhood mask, the level seed and a cell's
// world position to its visual variant. Pure function of its inputs;
// negative coordinates are valid.
func ResolveVariant(mask NeighborMask, seed int64, x, y int) Variant {
	h := uint64(seed)
	h ^= uint64(uint32(x)) << 20
	h ^= uint64(uint32(y))
	h = mix64(h)
	return Variant(uint16(mask) | uint16(h%SubVariants)<<8)
}

// mix64 is the splitmix64 finalizer, enough avalanche to decorrelate
// adjacent cells.
func mix64(h uint64) uint64 {
	h ^= h >> 33
	h *= 0xff51afd7ed558ccd
	h ^= h >> 33
	h *= 0xc4ceb9fe1a85ec53
	h ^= h >> 33
	return h
}

// neighborMaskAt builds the mask for a cell from an occupancy probe.
func neighborMaskAt(occupied func(x, y int) bool, x, y int) NeighborMask {
	var mask NeighborMask
	if occupied(x, y-1) {
		mask |= MaskN
	}
	if occupied(x+1, y-1) {
		mask |= MaskNE
	}
	if occupied(x+1, y) {
		mask |= MaskE
	}
	if occupied(x+1, y+1) {
		mask |= MaskSE
	}
	if occupied(x, y+1) {
		mask |= MaskS
	}
	if occupied(x-1, y+1) {
		mask |= MaskSW
	}
	if occupied(x-1, y) {
		mask |= MaskW
	}
	if occupied(x-1, y-1) {
		mask |= MaskNW
	}
	return mask
}
