package editor

import (
	"context"
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/moodboard"
)

type imageStatus uint8

const (
	imageLoading imageStatus = iota
	imageReady
	imageFailed
)

type imageEntry struct {
	status imageStatus
	img    *ebiten.Image
	w, h   float64
}

type loadResult struct {
	src string
	img image.Image
	err error
}

// imageCache loads remote images in goroutines and turns them into
// Ebitengine images on the game loop, so a slow host never blocks a frame.
type imageCache struct {
	source  moodboard.ImageSource
	entries map[string]*imageEntry
	results chan loadResult
}

func newImageCache(source moodboard.ImageSource) *imageCache {
	return &imageCache{
		source:  source,
		entries: make(map[string]*imageEntry),
		results: make(chan loadResult, 16),
	}
}

// request starts loading src unless it is already known.
func (c *imageCache) request(src string) {
	if _, ok := c.entries[src]; ok {
		return
	}
	c.entries[src] = &imageEntry{status: imageLoading}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		img, err := c.source.Image(ctx, src)
		c.results <- loadResult{src: src, img: img, err: err}
	}()
}

// poll collects finished loads. Called once per Update.
func (c *imageCache) poll() {
	for {
		select {
		case res := <-c.results:
			e := c.entries[res.src]
			if e == nil {
				e = &imageEntry{}
				c.entries[res.src] = e
			}
			if res.err != nil {
				e.status = imageFailed
				continue
			}
			size := res.img.Bounds().Size()
			e.img = ebiten.NewImageFromImage(res.img)
			e.w, e.h = float64(size.X), float64(size.Y)
			e.status = imageReady
		default:
			return
		}
	}
}

// get returns the entry for src, requesting it when unknown.
func (c *imageCache) get(src string) *imageEntry {
	e, ok := c.entries[src]
	if !ok {
		c.request(src)
		e = c.entries[src]
	}
	return e
}
