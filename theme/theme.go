package theme

// Mode is the stored display preference. ModeSystem defers to the
// OS-reported scheme at read time.
type Mode string

const (
	ModeLight  Mode = "light"
	ModeDark   Mode = "dark"
	ModeSystem Mode = "system"
)

// StorageKey is the fixed key the preference is persisted under.
const StorageKey = "connecthub.theme"

// Valid reports whether m is one of the three supported modes.
func (m Mode) Valid() bool {
	switch m {
	case ModeLight, ModeDark, ModeSystem:
		return true
	}
	return false
}

// SchemeSource reports the OS display scheme. It must return ModeLight or
// ModeDark only.
type SchemeSource func() Mode
