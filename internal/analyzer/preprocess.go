package analyzer

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/ivlev/charttrend/internal/system"
)

// Fixed-point luma weights (0.299, 0.587, 0.114) scaled by 1<<14
const (
	lumaR     = 4899
	lumaG     = 9617
	lumaB     = 1868
	lumaShift = 14
)

// Binomial blur kernels, the automatic-sigma Gaussian for each size
var blurKernels = map[int][]int32{
	1: {1},
	3: {1, 2, 1},
	5: {1, 4, 6, 4, 1},
	7: {2, 7, 14, 18, 14, 7, 2},
}

// tan(22.5°) in Q15
const tg22 = 13573

func luma(r, g, b uint8) uint8 {
	return uint8((int32(r)*lumaR + int32(g)*lumaG + int32(b)*lumaB + 1<<(lumaShift-1)) >> lumaShift)
}

// resizeGray scales a grayscale plane to exactly w×h. ApproxBiLinear samples
// the 2x2 neighbourhood only and does not widen its kernel when shrinking.
// The input is returned as is when it already has the requested size;
// otherwise it is handed back to the pool.
func resizeGray(gray *image.Gray, w, h int) *image.Gray {
	b := gray.Rect
	if b.Dx() == w && b.Dy() == h {
		return gray
	}
	dst := system.GetGray(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Rect, gray, b, draw.Src, nil)
	system.PutGray(gray)
	return dst
}

// toGrayscale converts an image to a zero-origin grayscale plane. Color is
// taken un-premultiplied so transparent regions keep their RGB values.
func toGrayscale(img image.Image) *image.Gray {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	gray := system.GetGray(image.Rect(0, 0, w, h))

	switch src := img.(type) {
	case *image.Gray:
		for y := 0; y < h; y++ {
			off := src.PixOffset(b.Min.X, b.Min.Y+y)
			copy(gray.Pix[y*gray.Stride:y*gray.Stride+w], src.Pix[off:off+w])
		}
	case *image.NRGBA:
		for y := 0; y < h; y++ {
			row := gray.Pix[y*gray.Stride:]
			off := src.PixOffset(b.Min.X, b.Min.Y+y)
			for x := 0; x < w; x++ {
				i := off + x*4
				row[x] = luma(src.Pix[i], src.Pix[i+1], src.Pix[i+2])
			}
		}
	default:
		for y := 0; y < h; y++ {
			row := gray.Pix[y*gray.Stride:]
			for x := 0; x < w; x++ {
				c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
				row[x] = luma(c.R, c.G, c.B)
			}
		}
	}

	return gray
}

// reflect101 maps an out-of-range index back inside [0, n) mirroring around
// the edge pixels without repeating them.
func reflect101(i, n int) int {
	if n == 1 {
		return 0
	}
	for i < 0 || i >= n {
		if i < 0 {
			i = -i
		}
		if i >= n {
			i = 2*n - 2 - i
		}
	}
	return i
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

// gaussianBlur applies a separable binomial low-pass filter of size ksize
func gaussianBlur(gray *image.Gray, ksize int) *image.Gray {
	kernel, ok := blurKernels[ksize]
	if !ok {
		kernel = blurKernels[DefaultBlurKernel]
	}
	var norm int32
	for _, k := range kernel {
		norm += k
	}
	norm *= norm
	half := len(kernel) / 2

	w, h := gray.Rect.Dx(), gray.Rect.Dy()
	tmp := make([]int32, w*h)

	// Horizontal pass
	for y := 0; y < h; y++ {
		row := gray.Pix[y*gray.Stride:]
		for x := 0; x < w; x++ {
			var sum int32
			for k, kv := range kernel {
				sum += kv * int32(row[reflect101(x+k-half, w)])
			}
			tmp[y*w+x] = sum
		}
	}

	// Vertical pass
	out := system.GetGray(gray.Rect)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum int32
			for k, kv := range kernel {
				sum += kv * tmp[reflect101(y+k-half, h)*w+x]
			}
			out.Pix[y*out.Stride+x] = uint8((sum + norm/2) / norm)
		}
	}

	return out
}

// detectEdges runs a Canny detector: 3x3 Sobel gradients, non-maximum
// suppression and hysteresis between low and high. The mask holds 255 on
// edge pixels and 0 elsewhere.
func detectEdges(gray *image.Gray, low, high float64) *image.Gray {
	w, h := gray.Rect.Dx(), gray.Rect.Dy()
	pw := w + 2

	dx := make([]int32, w*h)
	dy := make([]int32, w*h)
	// Magnitude padded by one zero pixel on each side
	mag := make([]int32, pw*(h+2))

	at := func(x, y int) int32 {
		return int32(gray.Pix[clampIndex(y, h)*gray.Stride+clampIndex(x, w)])
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			tl, tc, tr := at(x-1, y-1), at(x, y-1), at(x+1, y-1)
			ml, mr := at(x-1, y), at(x+1, y)
			bl, bc, br := at(x-1, y+1), at(x, y+1), at(x+1, y+1)

			gx := (tr + 2*mr + br) - (tl + 2*ml + bl)
			gy := (bl + 2*bc + br) - (tl + 2*tc + tr)

			dx[y*w+x] = gx
			dy[y*w+x] = gy
			mag[(y+1)*pw+x+1] = abs32(gx) + abs32(gy)
		}
	}

	const (
		stateNone = iota
		stateWeak
		stateStrong
	)
	state := make([]uint8, w*h)
	stack := make([]int, 0, 1024)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			mi := (y+1)*pw + x + 1
			m := mag[mi]
			if float64(m) <= low {
				continue
			}

			gx, gy := int64(dx[y*w+x]), int64(dy[y*w+x])
			xs := gx
			if xs < 0 {
				xs = -xs
			}
			ys := gy
			if ys < 0 {
				ys = -ys
			}
			ys <<= 15

			var isMax bool
			tg22x := xs * tg22
			if ys < tg22x {
				isMax = m > mag[mi-1] && m >= mag[mi+1]
			} else {
				tg67x := tg22x + (xs << 16)
				if ys > tg67x {
					isMax = m > mag[mi-pw] && m >= mag[mi+pw]
				} else {
					s := 1
					if (gx < 0) != (gy < 0) {
						s = -1
					}
					isMax = m > mag[mi-pw-s] && m > mag[mi+pw+s]
				}
			}
			if !isMax {
				continue
			}

			if float64(m) > high {
				state[y*w+x] = stateStrong
				stack = append(stack, y*w+x)
			} else {
				state[y*w+x] = stateWeak
			}
		}
	}

	// Hysteresis: promote weak pixels 8-connected to a strong one
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := i%w, i/w

		for ky := -1; ky <= 1; ky++ {
			for kx := -1; kx <= 1; kx++ {
				nx, ny := x+kx, y+ky
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}
				j := ny*w + nx
				if state[j] == stateWeak {
					state[j] = stateStrong
					stack = append(stack, j)
				}
			}
		}
	}

	edges := system.GetGray(gray.Rect)
	for y := 0; y < h; y++ {
		row := edges.Pix[y*edges.Stride : y*edges.Stride+w]
		for x := range row {
			if state[y*w+x] == stateStrong {
				row[x] = 255
			} else {
				row[x] = 0
			}
		}
	}

	return edges
}

// countEdges returns the number of edge pixels in the mask
func countEdges(edges *image.Gray) int {
	w, h := edges.Rect.Dx(), edges.Rect.Dy()
	n := 0
	for y := 0; y < h; y++ {
		for _, v := range edges.Pix[y*edges.Stride : y*edges.Stride+w] {
			if v > 0 {
				n++
			}
		}
	}
	return n
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
