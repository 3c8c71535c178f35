package catalog

import (
	"os"
	"strings"
	"sync/atomic"
)

// Holder serves messages from the current bundle and lets it be swapped
// while readers are active.
type Holder struct {
	current atomic.Pointer[Bundle]
}

// NewHolder returns a holder serving bundle, or the embedded bundle when nil.
func NewHolder(bundle *Bundle) *Holder {
	if bundle == nil {
		bundle = Default()
	}
	h := &Holder{}
	h.current.Store(bundle)
	return h
}

// Bundle returns the bundle currently served.
func (h *Holder) Bundle() *Bundle {
	if h == nil {
		return Default()
	}
	if bundle := h.current.Load(); bundle != nil {
		return bundle
	}
	return Default()
}

// Swap replaces the served bundle. Nil bundles are ignored.
func (h *Holder) Swap(bundle *Bundle) {
	if h == nil || bundle == nil {
		return
	}
	h.current.Store(bundle)
}

// Message returns one message value with base-locale fallback.
func (h *Holder) Message(locale string, key string) (string, bool) {
	return h.Bundle().Message(locale, key)
}

// HasLocale reports whether the served bundle defines locale.
func (h *Holder) HasLocale(locale string) bool {
	return h.Bundle().HasLocale(locale)
}

// LoadDir loads a catalog tree rooted at dir (dir/locales/<locale>/<namespace>.yaml).
func LoadDir(dir string) (*Bundle, error) {
	return LoadFromFS(os.DirFS(strings.TrimSpace(dir)))
}
