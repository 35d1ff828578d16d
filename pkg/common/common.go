package common

// Constraints
type Integers interface {
	int | int8 | int16 | int32 | int64
}

type UnsignedIntegers interface {
	uint | uint8 | uint16 | uint32 | uint64
}

type Floats interface {
	float32 | float64
}

type Numbers interface {
	Integers | UnsignedIntegers | Floats
}

func Min[T Numbers](v1, v2 T) T {
	if v1 < v2 {
		return v1
	}
	return v2
}

func Max[T Numbers](v1, v2 T) T {
	if v1 > v2 {
		return v1
	}
	return v2
}

func Clamp[T Numbers](v, minv, maxv T) T {
	return Min(maxv, Max(minv, v))
}

func Abs[T Numbers](v T) T {
	if v < 0 {
		return -v
	}
	return v
}

// Returns true if v is a power of two. Zero and negative numbers are not.
func IsPowerOfTwo[T Integers](v T) bool {
	return v > 0 && v&(v-1) == 0
}

// Returns the smallest power of two bigger than or equal to v.
// Values smaller than one rounds up to one.
func NextPowerOfTwo[T Integers](v T) T {
	p := T(1)
	for p < v {
		p <<= 1
	}
	return p
}
