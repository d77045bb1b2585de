package session

import "imgtransform/internal/pipeline"

// history keeps the images preceding the current one, newest last.
// It owns every image it holds.
type history struct {
	images  []pipeline.Image
	maxSize int
}

func newHistory(maxSize int) *history {
	return &history{maxSize: maxSize}
}

func (h *history) push(img pipeline.Image) {
	if h.maxSize <= 0 {
		img.Close()
		return
	}

	h.images = append(h.images, img)
	if len(h.images) > h.maxSize {
		oldest := h.images[0]
		oldest.Close()
		h.images[0] = nil
		h.images = h.images[1:]
	}
}

func (h *history) pop() (pipeline.Image, bool) {
	if len(h.images) == 0 {
		return nil, false
	}
	last := len(h.images) - 1
	img := h.images[last]
	h.images[last] = nil
	h.images = h.images[:last]
	return img, true
}

func (h *history) len() int {
	return len(h.images)
}

func (h *history) clear() {
	for _, img := range h.images {
		img.Close()
	}
	h.images = nil
}
