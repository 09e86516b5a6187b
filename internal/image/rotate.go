package image

import (
	"errors"
	"image"
	"runtime"
	"sync"

	"gocv.io/x/gocv"
)

// Rotate90 returns a copy of img turned 90° clockwise.
func Rotate90(img image.Image) (*image.RGBA, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, errors.New("rotate: empty image")
	}

	mat := imageToMat(img)
	defer mat.Close()

	dst := gocv.NewMat()
	defer dst.Close()
	gocv.Rotate(mat, &dst, gocv.Rotate90Clockwise)

	return matToImage(dst), nil
}

// imageToMat converts a Go image to a 4-channel BGRA Mat, in parallel
// horizontal stripes.
func imageToMat(img image.Image) gocv.Mat {
	src := ToRGBA(img)
	width, height := src.Bounds().Dx(), src.Bounds().Dy()
	mat := gocv.NewMatWithSize(height, width, gocv.MatTypeCV8UC4)

	forStripes(height, func(yStart, yEnd int) {
		for y := yStart; y < yEnd; y++ {
			row := y * src.Stride
			for x := 0; x < width; x++ {
				px := src.Pix[row+x*4 : row+x*4+4]
				mat.SetUCharAt(y, x*4+0, px[2])
				mat.SetUCharAt(y, x*4+1, px[1])
				mat.SetUCharAt(y, x*4+2, px[0])
				mat.SetUCharAt(y, x*4+3, px[3])
			}
		}
	})
	return mat
}

// matToImage converts a BGRA Mat back to an RGBA image.
func matToImage(mat gocv.Mat) *image.RGBA {
	h, w := mat.Rows(), mat.Cols()
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	forStripes(h, func(yStart, yEnd int) {
		for y := yStart; y < yEnd; y++ {
			row := y * img.Stride
			for x := 0; x < w; x++ {
				off := row + x*4
				img.Pix[off+0] = mat.GetUCharAt(y, x*4+2)
				img.Pix[off+1] = mat.GetUCharAt(y, x*4+1)
				img.Pix[off+2] = mat.GetUCharAt(y, x*4+0)
				img.Pix[off+3] = mat.GetUCharAt(y, x*4+3)
			}
		}
	})
	return img
}

// forStripes splits [0, height) into one stripe per CPU and runs fn on each
// concurrently.
func forStripes(height int, fn func(yStart, yEnd int)) {
	workers := runtime.NumCPU()
	rows := (height + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * rows
		if start >= height {
			break
		}
		end := min(start+rows, height)
		wg.Add(1)
		go func(yStart, yEnd int) {
			defer wg.Done()
			fn(yStart, yEnd)
		}(start, end)
	}
	wg.Wait()
}
