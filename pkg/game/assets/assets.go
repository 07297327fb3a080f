// Package assets loads pictures on background goroutines and publishes them
// for the frame loop to poll.
package assets

import (
	"context"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"os"
	"path"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Extensions tried, in order, for names given without one
var Extensions = []string{".png", ".webp", ".bmp"}

type result struct {
	img image.Image
	err error
}

// Picture is a picture that may still be loading
type Picture struct {
	name   string
	state  atomic.Pointer[result]
	done   chan struct{}
	logged atomic.Bool
	log    zerolog.Logger
}

// Image returns the decoded picture once it is ready. A failed load is
// logged on the first poll and never becomes ready.
func (p *Picture) Image() (image.Image, bool) {
	if p == nil {
		return nil, false
	}
	r := p.state.Load()
	if r == nil {
		return nil, false
	}
	if r.err != nil {
		if p.logged.CompareAndSwap(false, true) {
			p.log.Warn().Err(r.err).Str("picture", p.name).Msg("Picture unavailable")
		}
		return nil, false
	}
	return r.img, true
}

// Name returns the requested name
func (p *Picture) Name() string {
	return p.name
}

// Failed returns true once loading has finished with an error
func (p *Picture) Failed() bool {
	r := p.state.Load()
	return r != nil && r.err != nil
}

// Wait blocks until loading finishes or ctx ends
func (p *Picture) Wait(ctx context.Context) error {
	select {
	case <-p.done:
		if r := p.state.Load(); r.err != nil {
			return r.err
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Loader starts one background load per picture name and caches the result
type Loader struct {
	fsys fs.FS
	log  zerolog.Logger

	mu       sync.Mutex
	pictures map[string]*Picture
}

// NewLoader reads pictures from a directory
func NewLoader(dir string, log zerolog.Logger) *Loader {
	return NewLoaderFS(os.DirFS(dir), log)
}

// NewLoaderFS reads pictures from a file system
func NewLoaderFS(fsys fs.FS, log zerolog.Logger) *Loader {
	return &Loader{fsys: fsys, log: log, pictures: make(map[string]*Picture)}
}

// Load returns the picture for name, starting its load on first request.
// An empty name returns nil.
func (l *Loader) Load(name string) *Picture {
	if name == "" {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if p, ok := l.pictures[name]; ok {
		return p
	}
	p := &Picture{name: name, done: make(chan struct{}), log: l.log}
	l.pictures[name] = p
	go l.decode(p)
	return p
}

func (l *Loader) decode(p *Picture) {
	defer close(p.done)
	img, err := l.open(p.name)
	p.state.Store(&result{img: img, err: err})
	if err == nil {
		b := img.Bounds()
		l.log.Debug().Str("picture", p.name).Int("w", b.Dx()).Int("h", b.Dy()).Msg("Picture loaded")
	}
}

func (l *Loader) open(name string) (image.Image, error) {
	candidates := []string{name}
	if path.Ext(name) == "" {
		candidates = candidates[:0]
		for _, ext := range Extensions {
			candidates = append(candidates, name+ext)
		}
	}
	for _, c := range candidates {
		f, err := l.fsys.Open(c)
		if err != nil {
			continue
		}
		img, _, err := image.Decode(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", c, err)
		}
		return img, nil
	}
	return nil, fmt.Errorf("picture %q: %w", name, fs.ErrNotExist)
}
