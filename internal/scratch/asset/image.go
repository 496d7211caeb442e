// Package asset loads card background images off the frame loop.
package asset

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"sync"

	"github.com/gogpu/gg"
)

// Image is a background image that may still be loading.
type Image struct {
	done chan struct{}
	once sync.Once
	img  *gg.ImageBuf
	err  error
}

// Load runs fn in its own goroutine and resolves the Image with its result.
func Load(fn func() (*gg.ImageBuf, error)) *Image {
	i := &Image{done: make(chan struct{})}
	go func() {
		img, err := fn()
		i.resolve(img, err)
	}()
	return i
}

// LoadFile читает PNG, JPEG или WebP с диска
func LoadFile(path string) *Image {
	return Load(func() (*gg.ImageBuf, error) {
		img, err := gg.LoadImage(path)
		if err != nil {
			return nil, fmt.Errorf("load background %q: %w", path, err)
		}
		return img, nil
	})
}

// LoadBytes декодирует изображение из памяти (embed, ответ HTTP)
func LoadBytes(data []byte) *Image {
	return Load(func() (*gg.ImageBuf, error) {
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decode background: %w", err)
		}
		return gg.ImageBufFromImage(img), nil
	})
}

// Ready wraps an image that is already in memory.
func Ready(img image.Image) *Image {
	i := &Image{done: make(chan struct{})}
	i.resolve(gg.ImageBufFromImage(img), nil)
	return i
}

func (i *Image) resolve(img *gg.ImageBuf, err error) {
	i.once.Do(func() {
		i.img, i.err = img, err
		close(i.done)
	})
}

// Done is closed once loading finished, successfully or not.
func (i *Image) Done() <-chan struct{} {
	return i.done
}

// Get returns the image without blocking; ok is false while loading or
// after a failed load.
func (i *Image) Get() (img *gg.ImageBuf, ok bool) {
	if i == nil {
		return nil, false
	}
	select {
	case <-i.done:
		return i.img, i.err == nil && i.img != nil
	default:
		return nil, false
	}
}

// Err returns the load error, nil while loading.
func (i *Image) Err() error {
	select {
	case <-i.done:
		return i.err
	default:
		return nil
	}
}
