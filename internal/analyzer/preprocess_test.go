package analyzer

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToGrayscaleLuma(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 1))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	img.Set(1, 0, color.RGBA{G: 255, A: 255})
	img.Set(2, 0, color.RGBA{B: 255, A: 255})

	gray := toGrayscale(img)
	require.Equal(t, []uint8{76, 150, 29}, gray.Pix[:3])
}

func TestToGrayscaleOffsetBounds(t *testing.T) {
	src := solidGray(10, 10, 0)
	src.SetGray(5, 5, color.Gray{Y: 200})
	sub := src.SubImage(image.Rect(5, 5, 8, 8)).(*image.Gray)

	gray := toGrayscale(sub)
	require.Equal(t, image.Rect(0, 0, 3, 3), gray.Rect)
	require.Equal(t, uint8(200), gray.GrayAt(0, 0).Y)
	require.Equal(t, uint8(0), gray.GrayAt(1, 1).Y)
}

func TestToGrayscaleIgnoresAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 0})
	require.Equal(t, uint8(255), toGrayscale(img).Pix[0])
}

func TestResizeGray(t *testing.T) {
	img := solidGray(800, 400, 10)
	require.Same(t, img, resizeGray(img, 800, 400))

	scaled := resizeGray(solidGray(1600, 900, 10), 800, 400)
	require.Equal(t, image.Rect(0, 0, 800, 400), scaled.Rect)
	for _, v := range scaled.Pix {
		require.Equal(t, uint8(10), v)
	}
}

func TestResizeKeepsTransparentBackground(t *testing.T) {
	// Fully transparent white keeps its stored colour through scaling
	img := image.NewNRGBA(image.Rect(0, 0, 1600, 800))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = 255, 255, 255, 0
	}

	scaled := resizeGray(toGrayscale(img), 800, 400)
	require.Equal(t, uint8(255), scaled.GrayAt(5, 5).Y)
	require.Equal(t, uint8(255), scaled.GrayAt(799, 399).Y)
}

func TestReflect101(t *testing.T) {
	require.Equal(t, 1, reflect101(-1, 5))
	require.Equal(t, 2, reflect101(-2, 5))
	require.Equal(t, 3, reflect101(5, 5))
	require.Equal(t, 2, reflect101(6, 5))
	require.Equal(t, 0, reflect101(-3, 1))
	require.Equal(t, 4, reflect101(4, 5))
}

func TestGaussianBlurUniform(t *testing.T) {
	for _, k := range []int{1, 3, 5, 7} {
		out := gaussianBlur(solidGray(20, 10, 77), k)
		for _, v := range out.Pix {
			require.Equal(t, uint8(77), v, "kernel %d", k)
		}
	}
}

func TestGaussianBlurSmoothsStep(t *testing.T) {
	img := solidGray(20, 5, 0)
	for y := 0; y < 5; y++ {
		for x := 10; x < 20; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}

	out := gaussianBlur(img, 5)
	row := out.Pix[2*out.Stride : 2*out.Stride+20]
	require.Equal(t, uint8(0), row[0])
	require.Equal(t, uint8(255), row[19])
	require.Greater(t, row[10], row[9])
	require.Greater(t, row[9], uint8(0))
	require.Less(t, row[10], uint8(255))
}

func TestDetectEdgesUniform(t *testing.T) {
	edges := detectEdges(solidGray(50, 50, 200), DefaultLowThreshold, DefaultHighThreshold)
	require.Equal(t, 0, countEdges(edges))
}

func TestDetectEdgesRectangle(t *testing.T) {
	// White rectangle on black background, as a block of text would look
	img := solidGray(200, 200, 0)
	for y := 50; y < 150; y++ {
		for x := 50; x < 150; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}

	edges := detectEdges(img, DefaultLowThreshold, DefaultHighThreshold)
	n := countEdges(edges)
	require.Greater(t, n, 300)

	for y := 0; y < 200; y++ {
		for x := 0; x < 200; x++ {
			if edges.GrayAt(x, y).Y == 0 {
				continue
			}
			nearBorder := (x >= 48 && x <= 151 && (y == 49 || y == 50 || y == 149 || y == 150)) ||
				(y >= 48 && y <= 151 && (x == 49 || x == 50 || x == 149 || x == 150))
			require.True(t, nearBorder, "edge at (%d,%d) away from the rectangle border", x, y)
		}
	}
}

func TestDetectEdgesThinEdges(t *testing.T) {
	// Non-maximum suppression leaves a single column on a vertical step
	img := solidGray(40, 20, 0)
	for y := 0; y < 20; y++ {
		for x := 20; x < 40; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}

	edges := detectEdges(img, DefaultLowThreshold, DefaultHighThreshold)
	require.Equal(t, 20, countEdges(edges))
	for y := 0; y < 20; y++ {
		require.Equal(t, uint8(255), edges.GrayAt(19, y).Y)
	}
}

func TestDetectEdgesHysteresis(t *testing.T) {
	// A faint step (magnitude between the thresholds) survives only when
	// connected to a strong one
	img := solidGray(40, 20, 0)
	for y := 0; y < 20; y++ {
		for x := 20; x < 40; x++ {
			v := uint8(25) // 4*25 = 100, a weak gradient
			if y < 5 {
				v = 255
			}
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}

	connected := detectEdges(img, DefaultLowThreshold, DefaultHighThreshold)
	require.Equal(t, uint8(255), connected.GrayAt(19, 15).Y)

	faint := solidGray(40, 20, 0)
	for y := 0; y < 20; y++ {
		for x := 20; x < 40; x++ {
			faint.SetGray(x, y, color.Gray{Y: 25})
		}
	}
	require.Equal(t, 0, countEdges(detectEdges(faint, DefaultLowThreshold, DefaultHighThreshold)))
}
