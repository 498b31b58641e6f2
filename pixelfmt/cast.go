package pixelfmt

// IntScalarCast converts a raw channel value from one integer scalar width
// to another by the exact rule: widening multiplies by the
// (exact) ratio of the two maxima, narrowing divides by it with truncation.
// Because every supported integer width is double the previous one, the
// ratio dstMax/srcMax (or srcMax/dstMax) is always an exact integer, which
// is what makes a widen-then-narrow round trip lossless.
func IntScalarCast(v uint64, srcBits, dstBits int) uint64 {
	srcMax := scalarMaxForBits(srcBits)
	dstMax := scalarMaxForBits(dstBits)
	if srcMax == dstMax {
		return v
	}
	if dstMax > srcMax {
		return v * (dstMax / srcMax)
	}
	return v / (srcMax / dstMax)
}

func scalarMaxForBits(bits int) uint64 {
	switch bits {
	case 8:
		return kindU8.intMax()
	case 16:
		return kindU16.intMax()
	case 32:
		return kindU32.intMax()
	case 64:
		return kindU64.intMax()
	}
	return 0
}
