package slideshow

import (
	"context"
	"image"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"
)

// BatchSize is how many slides are decoded at once.
const BatchSize = 3

// LoadFunc decodes one slide image.
type LoadFunc func(slide int) (image.Image, error)

// Preloader decodes slide images in the background. A slide that fails to
// load still counts as done so one bad file never stalls the rest.
type Preloader struct {
	load  LoadFunc
	batch int

	mu     sync.Mutex
	gen    uint64
	done   map[int]bool
	images map[int]image.Image
}

func NewPreloader(load LoadFunc, batch int) *Preloader {
	if batch <= 0 {
		batch = BatchSize
	}
	return &Preloader{
		load:   load,
		batch:  batch,
		done:   make(map[int]bool),
		images: make(map[int]image.Image),
	}
}

// Preload decodes the given slides batch by batch and returns when all of
// them are done or ctx is cancelled. Call it from its own goroutine.
func (p *Preloader) Preload(ctx context.Context, slides []int) {
	p.mu.Lock()
	gen := p.gen
	p.mu.Unlock()

	var pending []int
	for _, n := range slides {
		if !p.Done(n) {
			pending = append(pending, n)
		}
	}

	for start := 0; start < len(pending); start += p.batch {
		if ctx.Err() != nil {
			return
		}
		end := min(start+p.batch, len(pending))
		g, gctx := errgroup.WithContext(ctx)
		for _, n := range pending[start:end] {
			g.Go(func() error {
				if gctx.Err() != nil {
					return nil
				}
				img, err := p.load(n)
				if err != nil {
					log.Printf("slideshow: preload slide %d: %v", n, err)
				}
				p.store(gen, n, img)
				return nil
			})
		}
		_ = g.Wait()
	}
}

// Done reports whether a slide finished loading, successfully or not.
func (p *Preloader) Done(slide int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done[slide]
}

// Image returns a decoded slide if one is available.
func (p *Preloader) Image(slide int) (image.Image, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	img, ok := p.images[slide]
	return img, ok
}

// Reset drops everything loaded so far. Loads still in flight are discarded
// when they finish.
func (p *Preloader) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gen++
	p.done = make(map[int]bool)
	p.images = make(map[int]image.Image)
}

func (p *Preloader) store(gen uint64, slide int, img image.Image) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.gen {
		return
	}
	p.done[slide] = true
	if img != nil {
		p.images[slide] = img
	}
}
