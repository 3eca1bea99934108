package raster

import "math"

// gaussianBlur approximates a Gaussian of standard deviation sigma with three
// successive box blurs. buf holds interleaved RGBA samples and receives the
// result; tmp is scratch of the same length.
func gaussianBlur(buf, tmp []float32, w, h int, sigma float64) {
	for _, size := range boxSizes(sigma, 3) {
		r := (size - 1) / 2
		boxBlurH(buf, tmp, w, h, r)
		boxBlurV(tmp, buf, w, h, r)
	}
}

// boxSizes returns n odd box widths whose combined variance matches sigma.
func boxSizes(sigma float64, n int) []int {
	nf := float64(n)
	wIdeal := math.Sqrt(12*sigma*sigma/nf + 1)
	wl := int(math.Floor(wIdeal))
	if wl%2 == 0 {
		wl--
	}
	wu := wl + 2

	wlf := float64(wl)
	mIdeal := (12*sigma*sigma - nf*wlf*wlf - 4*nf*wlf - 3*nf) / (-4*wlf - 4)
	m := int(math.Round(mIdeal))

	sizes := make([]int, n)
	for i := range sizes {
		if i < m {
			sizes[i] = wl
		} else {
			sizes[i] = wu
		}
	}
	return sizes
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// boxBlurH averages each sample with its r neighbours on either side along x.
// Edges repeat the border pixel.
func boxBlurH(src, dst []float32, w, h, r int) {
	if r <= 0 {
		copy(dst, src)
		return
	}
	inv := 1 / float32(2*r+1)
	for y := 0; y < h; y++ {
		row := y * w * 4
		for c := 0; c < 4; c++ {
			var acc float32
			for k := -r; k <= r; k++ {
				acc += src[row+clampIndex(k, w)*4+c]
			}
			for x := 0; x < w; x++ {
				dst[row+x*4+c] = acc * inv
				acc += src[row+clampIndex(x+r+1, w)*4+c] - src[row+clampIndex(x-r, w)*4+c]
			}
		}
	}
}

// boxBlurV is boxBlurH along y.
func boxBlurV(src, dst []float32, w, h, r int) {
	if r <= 0 {
		copy(dst, src)
		return
	}
	inv := 1 / float32(2*r+1)
	stride := w * 4
	for x := 0; x < w; x++ {
		col := x * 4
		for c := 0; c < 4; c++ {
			var acc float32
			for k := -r; k <= r; k++ {
				acc += src[clampIndex(k, h)*stride+col+c]
			}
			for y := 0; y < h; y++ {
				dst[y*stride+col+c] = acc * inv
				acc += src[clampIndex(y+r+1, h)*stride+col+c] - src[clampIndex(y-r, h)*stride+col+c]
			}
		}
	}
}
