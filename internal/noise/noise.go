// Package noise implements the improved gradient noise field and the
// fractal sum used by the texture painters.
//
// The permutation table is fixed, so the field is the same for every
// process and every call. Nothing in the package holds mutable state.
package noise

import "math"

// permutation is Ken Perlin's reference table. It is only ever read.
var permutation = [256]uint8{
	151, 160, 137, 91, 90, 15, 131, 13, 201, 95, 96, 53, 194, 233, 7, 225, 140, 36, 103, 30, 69, 142, 8, 99, 37, 240,
	21, 10, 23, 190, 6, 148, 247, 120, 234, 75, 0, 26, 197, 62, 94, 252, 219, 203, 117, 35, 11, 32, 57, 177, 33, 88,
	237, 149, 56, 87, 174, 20, 125, 136, 171, 168, 68, 175, 74, 165, 71, 134, 139, 48, 27, 166, 77, 146, 158, 231, 83,
	111, 229, 122, 60, 211, 133, 230, 220, 105, 92, 41, 55, 46, 245, 40, 244, 102, 143, 54, 65, 25, 63, 161, 1, 216, 80,
	73, 209, 76, 132, 187, 208, 89, 18, 169, 200, 196, 135, 130, 116, 188, 159, 86, 164, 100, 109, 198, 173, 186, 3, 64,
	52, 217, 226, 250, 124, 123, 5, 202, 38, 147, 118, 126, 255, 82, 85, 212, 207, 206, 59, 227, 47, 16, 58, 17, 182,
	189, 28, 42, 223, 183, 170, 213, 119, 248, 152, 2, 44, 154, 163, 70, 221, 153, 101, 155, 167, 43, 172, 9, 129, 22,
	39, 253, 19, 98, 108, 110, 79, 113, 224, 232, 178, 185, 112, 104, 218, 246, 97, 228, 251, 34, 242, 193, 238, 210,
	144, 12, 191, 179, 162, 241, 81, 51, 145, 235, 249, 14, 239, 107, 49, 192, 214, 31, 181, 199, 106, 157, 184, 84,
	204, 176, 115, 121, 50, 45, 127, 4, 150, 254, 138, 236, 205, 93, 222, 114, 67, 29, 24, 72, 243, 141, 128, 195, 78,
	66, 215, 61, 156, 180,
}

// perm indexes the table as if it were doubled to 512 entries.
func perm(i int) int {
	return int(permutation[i&255])
}

func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(t, a, b float64) float64 {
	return a + t*(b-a)
}

func grad(hash int, x, y, z float64) float64 {
	h := hash & 15
	u := y
	if h < 8 {
		u = x
	}
	v := z
	switch {
	case h < 4:
		v = y
	case h == 12 || h == 14:
		v = x
	}
	if h&1 != 0 {
		u = -u
	}
	if h&2 != 0 {
		v = -v
	}
	return u + v
}

// Perlin samples the gradient noise field at (x, y, z). The result is
// shifted from [-1, 1] into [0, 1].
func Perlin(x, y, z float64) float64 {
	fx, fy, fz := math.Floor(x), math.Floor(y), math.Floor(z)
	X, Y, Z := int(fx)&255, int(fy)&255, int(fz)&255
	x, y, z = x-fx, y-fy, z-fz

	u, v, w := fade(x), fade(y), fade(z)

	a := perm(X) + Y
	aa, ab := perm(a)+Z, perm(a+1)+Z
	b := perm(X+1) + Y
	ba, bb := perm(b)+Z, perm(b+1)+Z

	n := lerp(w,
		lerp(v,
			lerp(u, grad(perm(aa), x, y, z), grad(perm(ba), x-1, y, z)),
			lerp(u, grad(perm(ab), x, y-1, z), grad(perm(bb), x-1, y-1, z))),
		lerp(v,
			lerp(u, grad(perm(aa+1), x, y, z-1), grad(perm(ba+1), x-1, y, z-1)),
			lerp(u, grad(perm(ab+1), x, y-1, z-1), grad(perm(bb+1), x-1, y-1, z-1))))

	return clamp01((n + 1) / 2)
}

// Fractal sums octaves of Perlin noise. Each octave doubles the frequency
// and scales the amplitude by persistence; the sum is divided by the total
// amplitude so the result stays in [0, 1].
func Fractal(x, y, z float64, octaves int, persistence float64) float64 {
	if octaves < 1 {
		octaves = 1
	}
	total, maxValue := 0.0, 0.0
	frequency, amplitude := 1.0, 1.0
	for i := 0; i < octaves; i++ {
		total += Perlin(x*frequency, y*frequency, z*frequency) * amplitude
		maxValue += amplitude
		amplitude *= persistence
		frequency *= 2
	}
	if maxValue <= 0 {
		return 0.5
	}
	return clamp01(total / maxValue)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
