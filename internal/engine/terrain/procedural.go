package terrain

import (
	"math"
	"math/rand"
)

// Procedural builds a deterministic value-noise terrain with heights in
// [0, amplitude]. Octaves halve in wavelength and amplitude.
func Procedural(width, height int, seed int64, amplitude float32) *Heightmap {
	rng := rand.New(rand.NewSource(seed))

	const octaves = 4
	hm := New(width, height)

	wavelength := float64(max(width, height)) / 4
	weight := float32(1)
	total := float32(0)

	for o := 0; o < octaves && wavelength >= 1; o++ {
		gw := int(math.Ceil(float64(width)/wavelength)) + 2
		gh := int(math.Ceil(float64(height)/wavelength)) + 2
		lattice := make([]float32, gw*gh)
		for i := range lattice {
			lattice[i] = rng.Float32()
		}

		for y := 0; y < height; y++ {
			fy := float64(y) / wavelength
			y0 := int(fy)
			ty := smooth(float32(fy - float64(y0)))
			for x := 0; x < width; x++ {
				fx := float64(x) / wavelength
				x0 := int(fx)
				tx := smooth(float32(fx - float64(x0)))

				a := lattice[y0*gw+x0]
				b := lattice[y0*gw+x0+1]
				c := lattice[(y0+1)*gw+x0]
				d := lattice[(y0+1)*gw+x0+1]

				v := (a*(1-tx)+b*tx)*(1-ty) + (c*(1-tx)+d*tx)*ty
				hm.Set(x, y, hm.At(x, y)+v*weight)
			}
		}

		total += weight
		weight *= 0.5
		wavelength *= 0.5
	}

	if total > 0 {
		for i := range hm.data {
			hm.data[i] = hm.data[i] / total * amplitude
		}
	}
	return hm
}

func smooth(t float32) float32 {
	return t * t * (3 - 2*t)
}
