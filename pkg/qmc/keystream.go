package qmc

const (
	// KeySize is the length of the mask table, and the period of the keystream.
	KeySize = 128

	positionWrap       = 0x8000
	legacyPositionWrap = 0x7FFF
)

var keyTable = [KeySize]byte{
	0xc3, 0x4a, 0xd6, 0xca, 0x90, 0x67, 0xf7, 0x52, 0xd8, 0xa1, 0x66, 0x62, 0x9f, 0x5b, 0x09, 0x00,
	0xc3, 0x5e, 0x95, 0x23, 0x9f, 0x13, 0x11, 0x7e, 0xd8, 0x92, 0x3f, 0xbc, 0x90, 0xbb, 0x74, 0x0e,
	0xc3, 0x47, 0x74, 0x3d, 0x90, 0xaa, 0x3f, 0x51, 0xd8, 0xf4, 0x11, 0x84, 0x9f, 0xde, 0x95, 0x1d,
	0xc3, 0xc6, 0x09, 0xd5, 0x9f, 0xfa, 0x66, 0xf9, 0xd8, 0xf0, 0xf7, 0xa0, 0x90, 0xa1, 0xd6, 0xf3,
	0xc3, 0xf3, 0xd6, 0xa1, 0x90, 0xa0, 0xf7, 0xf0, 0xd8, 0xf9, 0x66, 0xfa, 0x9f, 0xd5, 0x09, 0xc6,
	0xc3, 0x1d, 0x95, 0xde, 0x9f, 0x84, 0x11, 0xf4, 0xd8, 0x51, 0x3f, 0xaa, 0x90, 0x3d, 0x74, 0x47,
	0xc3, 0x0e, 0x74, 0xbb, 0x90, 0xbc, 0x3f, 0x92, 0xd8, 0x7e, 0x11, 0x13, 0x9f, 0x23, 0x95, 0x5e,
	0xc3, 0x00, 0x09, 0x5b, 0x9f, 0x62, 0x66, 0xa1, 0xd8, 0x52, 0xf7, 0x67, 0x90, 0xca, 0xd6, 0x4a,
}

// Masker maps an absolute stream position to the mask byte for that position.
type Masker = func(pos uint64) byte

// Mask returns the mask byte for the given absolute position.
// The keystream repeats every KeySize bytes.
func Mask(pos uint64) byte {
	return keyTable[(pos%positionWrap)%KeySize]
}

// LegacyMask returns the mask byte the way the original qmc-decode tool computes it.
// It matches Mask for every position below 0x7FFF, and drifts after that since the wrap isn't a multiple of KeySize.
func LegacyMask(pos uint64) byte {
	return keyTable[(pos%legacyPositionWrap)&(KeySize-1)]
}

// Apply will XOR every byte in buf with the keystream produced by mask, starting at offset.
// buf is modified in place.
func Apply(buf []byte, offset uint64, mask Masker) {
	if mask == nil {
		mask = Mask
	}
	for i := range buf {
		buf[i] ^= mask(offset + uint64(i))
	}
}
