package system

import (
	"image"
	"sync"
)

// ImagePool переиспользует промежуточные растры кадра (до поворота и маски
// покрытия), чтобы при параллельном рендере не нагружать GC.
// Пулы разделены по размеру холста.
type ImagePool struct {
	rgba  map[image.Rectangle]*sync.Pool
	alpha map[image.Rectangle]*sync.Pool
	mu    sync.RWMutex
}

var globalPool = NewImagePool()

func NewImagePool() *ImagePool {
	return &ImagePool{
		rgba:  make(map[image.Rectangle]*sync.Pool),
		alpha: make(map[image.Rectangle]*sync.Pool),
	}
}

// GetImage возвращает *image.RGBA из пула. Содержимое не очищается.
func GetImage(rect image.Rectangle) *image.RGBA {
	return globalPool.GetRGBA(rect)
}

// PutImage возвращает растр в пул.
func PutImage(img *image.RGBA) {
	globalPool.PutRGBA(img)
}

// GetMask возвращает *image.Alpha из пула. Содержимое не очищается.
func GetMask(rect image.Rectangle) *image.Alpha {
	return globalPool.GetAlpha(rect)
}

// PutMask возвращает маску в пул.
func PutMask(m *image.Alpha) {
	globalPool.PutAlpha(m)
}

func (p *ImagePool) pool(pools map[image.Rectangle]*sync.Pool, rect image.Rectangle, newFn func() interface{}) *sync.Pool {
	p.mu.RLock()
	pool, exists := pools[rect]
	p.mu.RUnlock()
	if exists {
		return pool
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	// Double check
	pool, exists = pools[rect]
	if !exists {
		pool = &sync.Pool{New: newFn}
		pools[rect] = pool
	}
	return pool
}

func (p *ImagePool) GetRGBA(rect image.Rectangle) *image.RGBA {
	pool := p.pool(p.rgba, rect, func() interface{} { return image.NewRGBA(rect) })
	return pool.Get().(*image.RGBA)
}

func (p *ImagePool) PutRGBA(img *image.RGBA) {
	if img == nil {
		return
	}
	p.mu.RLock()
	pool, exists := p.rgba[img.Rect]
	p.mu.RUnlock()
	if exists {
		pool.Put(img)
	}
}

func (p *ImagePool) GetAlpha(rect image.Rectangle) *image.Alpha {
	pool := p.pool(p.alpha, rect, func() interface{} { return image.NewAlpha(rect) })
	return pool.Get().(*image.Alpha)
}

func (p *ImagePool) PutAlpha(m *image.Alpha) {
	if m == nil {
		return
	}
	p.mu.RLock()
	pool, exists := p.alpha[m.Rect]
	p.mu.RUnlock()
	if exists {
		pool.Put(m)
	}
}
