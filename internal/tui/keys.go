package tui

// Key bindings.
const (
	keyQuit       = "q"
	keyCtrlC      = "ctrl+c"
	keyEnter      = "enter"
	keyEsc        = "esc"
	keySelect     = " "
	keySelectAll  = "a"
	keySortColumn = "s"
	keySortOrder  = "o"
	keyNextPage   = "n"
	keyRight      = "right"
	keyPrevPage   = "p"
	keyLeft       = "left"
	keyBiggerPage = "+"
	keySmallPage  = "-"
	keyRefresh    = "r"
	keyLocation   = ":"
	keyBack       = "b"
	keyForward    = "f"
)

const helpText = "↑/↓ move · space select · a all · s sort column · o order · ←/→ page · +/- size · " +
	"r refresh · : location · b/f back/forward · q quit"
