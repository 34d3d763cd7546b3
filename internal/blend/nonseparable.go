package blend

// vec3 is an RGB triple used by the non-separable modes.
type vec3 [3]float32

func (v vec3) rgb() (float32, float32, float32) { return v[0], v[1], v[2] }

// Lum returns the W3C luminosity of an RGB color:
// 0.30*r + 0.59*g + 0.11*b.
func Lum(r, g, b float32) float32 {
	return 0.30*r + 0.59*g + 0.11*b
}

func (v vec3) lum() float32 { return Lum(v[0], v[1], v[2]) }

func (v vec3) sat() float32 {
	return max(v[0], v[1], v[2]) - min(v[0], v[1], v[2])
}

// clipColor pulls out-of-range components back into [0, 1] towards the
// luminosity, keeping the luminosity itself unchanged.
func (v vec3) clipColor() vec3 {
	l := v.lum()
	n := min(v[0], v[1], v[2])
	x := max(v[0], v[1], v[2])
	if n < 0 {
		for i := range v {
			v[i] = l + (v[i]-l)*l/(l-n)
		}
	}
	if x > 1 {
		for i := range v {
			v[i] = l + (v[i]-l)*(1-l)/(x-l)
		}
	}
	return v
}

func (v vec3) setLum(l float32) vec3 {
	d := l - v.lum()
	return vec3{v[0] + d, v[1] + d, v[2] + d}.clipColor()
}

// setSat rescales v so that max-min equals s. Gray inputs stay gray.
func (v vec3) setSat(s float32) vec3 {
	lo, mid, hi := order(v)
	if v[hi] <= v[lo] {
		return vec3{}
	}
	var out vec3
	out[mid] = (v[mid] - v[lo]) * s / (v[hi] - v[lo])
	out[hi] = s
	return out
}

// order returns the indices of the smallest, middle and largest components.
func order(v vec3) (lo, mid, hi int) {
	lo, mid, hi = 0, 1, 2
	if v[lo] > v[mid] {
		lo, mid = mid, lo
	}
	if v[mid] > v[hi] {
		mid, hi = hi, mid
	}
	if v[lo] > v[mid] {
		lo, mid = mid, lo
	}
	return lo, mid, hi
}

// nonSeparable evaluates B(s, d) for modes that mix channels.
func nonSeparable(m Mode, s, d vec3) vec3 {
	switch m {
	case ModeHue:
		return s.setSat(d.sat()).setLum(d.lum())
	case ModeSaturation:
		return d.setSat(s.sat()).setLum(d.lum())
	case ModeColor:
		return s.setLum(d.lum())
	case ModeLuminosity:
		return d.setLum(s.lum())
	case ModeDarkerColor:
		if s.lum() < d.lum() {
			return s
		}
		return d
	case ModeLighterColor:
		if s.lum() > d.lum() {
			return s
		}
		return d
	default:
		return s
	}
}
