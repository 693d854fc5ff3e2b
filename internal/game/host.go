package game

// MessageKey names a localized string the controller asks the host for.
type MessageKey string

const (
	MsgPrompt     MessageKey = "prompt"
	MsgWin        MessageKey = "win"
	MsgLose       MessageKey = "lose"
	MsgBackToMenu MessageKey = "back_to_menu"
	MsgStart      MessageKey = "start"
)

// Host is the display surface a Controller drives. Implementations must not
// call back into the controller from inside these methods.
//
//go:generate mockgen -package=mocks -destination=mocks/mock_host.go github.com/robalobadob/memory-buttons/internal/game Host
type Host interface {
	// Render draws the buttons. When interactive is false labels are hidden
	// and clicks are not accepted; when true labels show and every button
	// that is not yet pressed accepts a click.
	Render(buttons []Button, interactive bool) error

	// Clear removes everything from the display.
	Clear() error

	// Viewport reports the current display size in pixels.
	Viewport() (width, height float64)

	// Message returns the localized text for key.
	Message(key MessageKey) string

	// ShowMenu displays the button-count input and the start control.
	ShowMenu(prompt, start string) error

	// ShowResult displays the win or lose message with a back-to-menu control.
	ShowResult(won bool, message, back string) error
}
