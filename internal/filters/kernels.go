package filters

// Preset 3x3 kernels for the filter menu.

// BoxBlur averages the 3x3 neighborhood uniformly.
func BoxBlur() Kernel {
	return Kernel{Size: 3, Weights: []float64{
		1.0 / 9, 1.0 / 9, 1.0 / 9,
		1.0 / 9, 1.0 / 9, 1.0 / 9,
		1.0 / 9, 1.0 / 9, 1.0 / 9,
	}}
}

// GaussianBlur is the classic {1,2,1; 2,4,2; 1,2,1}/16 blur.
func GaussianBlur() Kernel {
	return Kernel{Size: 3, Weights: []float64{
		1.0 / 16, 2.0 / 16, 1.0 / 16,
		2.0 / 16, 4.0 / 16, 2.0 / 16,
		1.0 / 16, 2.0 / 16, 1.0 / 16,
	}}
}

// Sharpen boosts the center against its 4-neighborhood.
func Sharpen() Kernel {
	return Kernel{Size: 3, Weights: []float64{
		0, -1, 0,
		-1, 5, -1,
		0, -1, 0,
	}}
}

// Outline highlights edges against a dark background.
func Outline() Kernel {
	return Kernel{Size: 3, Weights: []float64{
		-1, -1, -1,
		-1, 8, -1,
		-1, -1, -1,
	}}
}

// Emboss shades along the top-left to bottom-right diagonal.
func Emboss() Kernel {
	return Kernel{Size: 3, Weights: []float64{
		-2, -1, 0,
		-1, 1, 1,
		0, 1, 2,
	}}
}

// PresetKernel resolves a kernel by menu name.
func PresetKernel(name string) (Kernel, bool) {
	switch name {
	case "box":
		return BoxBlur(), true
	case "gaussian":
		return GaussianBlur(), true
	case "sharpen":
		return Sharpen(), true
	case "outline":
		return Outline(), true
	case "emboss":
		return Emboss(), true
	default:
		return Kernel{}, false
	}
}
