// Package hotkeys grabs global key sequences on the X root window and
// hands the bound actions to the compositor loop.
package hotkeys

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
)

// Handler manages global keyboard shortcuts.
type Handler struct {
	xu     *xgbutil.XUtil
	root   xproto.Window
	post   func(func())
	logger *slog.Logger
}

var ignoreModsOnce sync.Once

// NewHandler creates a handler that grabs on root. Actions are passed to
// post so they run on the caller's event loop rather than on the X event
// goroutine.
func NewHandler(xu *xgbutil.XUtil, root xproto.Window, post func(func()), logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	if post == nil {
		post = func(f func()) { f() }
	}

	ignoreModsOnce.Do(func() {
		configureIgnoreMods(xu)
	})

	return &Handler{
		xu:     xu,
		root:   root,
		post:   post,
		logger: logger,
	}
}

// Register binds keySequence (e.g. "Mod4-Shift-c") to action. An empty
// sequence leaves the action unbound.
func (h *Handler) Register(keySequence string, action func()) error {
	if keySequence == "" {
		return nil
	}
	err := keybind.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
		h.logger.Debug("hotkey triggered", "keys", keySequence)
		h.post(action)
	}).Connect(h.xu, h.root, keySequence, true)
	if err != nil {
		return fmt.Errorf("failed to register hotkey %q: %w", keySequence, err)
	}
	return nil
}

func configureIgnoreMods(xu *xgbutil.XUtil) {
	xevent.IgnoreMods = ignoreMasks(
		uint16(xproto.ModMaskLock),
		modMaskForKeysym(xu, "Num_Lock"),
		modMaskForKeysym(xu, "Scroll_Lock"),
	)
}

// ignoreMasks returns every combination of the lock modifiers, including
// the empty mask, so a grab fires whatever lock state is active.
func ignoreMasks(caps, numLock, scrollLock uint16) []uint16 {
	base := []uint16{caps}
	if numLock != 0 && numLock != caps {
		base = append(base, numLock)
	}
	if scrollLock != 0 && scrollLock != caps && scrollLock != numLock {
		base = append(base, scrollLock)
	}

	masks := []uint16{0}
	for subset := 1; subset < (1 << len(base)); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		if !slices.Contains(masks, mask) {
			masks = append(masks, mask)
		}
	}
	slices.Sort(masks)
	return masks
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	if xu == nil {
		return 0
	}
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
