package renderer

import (
	"image"
	"sync"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"golang.org/x/image/draw"

	"github.com/r3c/arcadejs-sub001/common"
)

// mipChains builds full mip chains for a set of equally sized source images,
// down to 1x1. Faces scale independently, so cube maps fan out across the
// worker pool; a single flat image is scaled inline.
func mipChains(images []common.Image, pool worker.DynamicWorkerPool) [][]common.Image {
	chains := make([][]common.Image, len(images))

	if len(images) == 1 {
		chains[0] = mipChain(images[0])
		return chains
	}

	var wg sync.WaitGroup
	for i, source := range images {
		wg.Add(1)
		index, face := i, source
		pool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				chains[index] = mipChain(face)
				return nil, nil
			},
		})
	}
	wg.Wait()

	return chains
}

// mipChain scales source down level by level, halving each dimension until
// both reach one texel. Level zero is the source itself.
func mipChain(source common.Image) []common.Image {
	chain := []common.Image{source}
	for width, height := source.Width, source.Height; width > 1 || height > 1; {
		width = max(width/2, 1)
		height = max(height/2, 1)
		chain = append(chain, downscale(chain[len(chain)-1], width, height))
	}

	return chain
}

func downscale(source common.Image, width, height uint32) common.Image {
	from := &image.RGBA{
		Pix:    source.Pixels,
		Stride: int(source.Width) * 4,
		Rect:   image.Rect(0, 0, int(source.Width), int(source.Height)),
	}
	to := image.NewRGBA(image.Rect(0, 0, int(width), int(height)))
	draw.BiLinear.Scale(to, to.Bounds(), from, from.Bounds(), draw.Src, nil)

	return common.Image{Pixels: to.Pix, Width: width, Height: height}
}
