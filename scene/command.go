package scene

// Command is a single user action.
type Command uint8

const (
	None Command = iota
	MoveForward
	MoveBack
	MoveLeft
	MoveRight
	MoveUp
	MoveDown
	ZoomIn
	ZoomOut
	CancelZoom
	Preset1
	Preset2
	Preset3
	Preset4
	Burst
	Spawn
	ClearScene
	Exit
)

var commandNames = [...]string{
	None:        "none",
	MoveForward: "move-forward",
	MoveBack:    "move-back",
	MoveLeft:    "move-left",
	MoveRight:   "move-right",
	MoveUp:      "move-up",
	MoveDown:    "move-down",
	ZoomIn:      "zoom-in",
	ZoomOut:     "zoom-out",
	CancelZoom:  "cancel-zoom",
	Preset1:     "preset-1",
	Preset2:     "preset-2",
	Preset3:     "preset-3",
	Preset4:     "preset-4",
	Burst:       "burst",
	Spawn:       "spawn",
	ClearScene:  "clear-scene",
	Exit:        "exit",
}

func (cmd Command) String() string {
	if int(cmd) < len(commandNames) {
		return commandNames[cmd]
	}
	return "unknown"
}

// keyBindings maps typed characters to commands.
var keyBindings = map[rune]Command{
	'w': MoveForward,
	's': MoveBack,
	'a': MoveLeft,
	'd': MoveRight,
	'r': MoveUp,
	'f': MoveDown,
	'z': ZoomIn,
	'x': ZoomOut,
	'c': CancelZoom,
	'1': Preset1,
	'2': Preset2,
	'3': Preset3,
	'4': Preset4,
	'b': Burst,
	'n': Spawn,
	'k': ClearScene,
	'q': Exit,
}

// CommandForKey returns the command bound to r, or None.
func CommandForKey(r rune) Command {
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	return keyBindings[r]
}
