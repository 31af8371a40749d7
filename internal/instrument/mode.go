package instrument

// Mode selects how a snippet's statements are instrumented and rendered.
// The set is closed here but carried as a value so new modes extend it
// without touching callers.
type Mode uint8

const (
	// ModeDefault runs every statement and renders each binder.
	ModeDefault Mode = iota
	// ModeFail asserts the snippet must fail to compile; statements are
	// probed in isolation instead of executed.
	ModeFail
)

func (m Mode) String() string {
	switch m {
	case ModeDefault:
		return "default"
	case ModeFail:
		return "fail"
	default:
		return "mode(?)"
	}
}

// ParseModeLabel maps a fence info suffix to a Mode. The empty label is
// the default mode.
func ParseModeLabel(label string) (Mode, bool) {
	switch label {
	case "":
		return ModeDefault, true
	case "fail":
		return ModeFail, true
	default:
		return ModeDefault, false
	}
}
