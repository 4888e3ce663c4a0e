package x11

import (
	"unicode/utf8"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"

	"github.com/1broseidon/wincomp/internal/event"
	"github.com/1broseidon/wincomp/internal/platform"
)

// Keys translates X keycodes into toolkit key events. The toolkit key is
// the keysym; Text is the printable character when there is exactly one.
type Keys struct {
	xu *xgbutil.XUtil
}

// NewKeys creates a translator for the connection's keyboard mapping.
func NewKeys(conn *Connection) *Keys {
	return &Keys{xu: conn.XUtil}
}

func (k *Keys) TranslateKey(ev event.Key) event.KeyDelivery {
	code := xproto.Keycode(ev.Code)
	column := byte(0)
	if ev.Modifiers&event.ModShift != 0 {
		column = 1
	}
	sym := keybind.KeysymGet(k.xu, code, column)
	if sym == 0 {
		sym = keybind.KeysymGet(k.xu, code, 0)
	}
	return event.KeyDelivery{
		Phase:     ev.Phase,
		Key:       int(sym),
		Modifiers: ev.Modifiers,
		Text:      keyText(keybind.LookupString(k.xu, stateFromModifiers(ev.Modifiers), code)),
	}
}

// keyText turns a keysym name into the text it types, if any.
func keyText(name string) string {
	switch name {
	case "space":
		return " "
	case "Tab":
		return "\t"
	case "Return":
		return "\r"
	}
	if utf8.RuneCountInString(name) == 1 {
		return name
	}
	return ""
}

var _ platform.KeyTranslator = (*Keys)(nil)
