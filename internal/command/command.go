// Package command defines the closed set of user commands sent from the key
// mapper to the UI loop.
package command

// Kind 枚举界面可以执行的所有命令。
type Kind int

const (
	// Quit 结束主循环。
	Quit Kind = iota
	// Redraw 重绘当前视图。
	Redraw
	// ToggleDelete 进入或取消删除标记模式。
	ToggleDelete
	// Char 是没有绑定动作的可打印按键，删除模式下作为标签。
	Char
	GrowColumn
	ShrinkColumn
	ToggleTimestamps
	LinksView
	MessagesView
	// CycleMode 在自动、强制普通、强制紧凑之间切换。
	CycleMode
	// CopyLink 把最新的链接复制到剪贴板。
	CopyLink
	// Help 在状态栏显示按键说明。
	Help
)

func (k Kind) String() string {
	switch k {
	case Quit:
		return "quit"
	case Redraw:
		return "redraw"
	case ToggleDelete:
		return "toggle_delete"
	case Char:
		return "char"
	case GrowColumn:
		return "grow_column"
	case ShrinkColumn:
		return "shrink_column"
	case ToggleTimestamps:
		return "toggle_timestamps"
	case LinksView:
		return "links_view"
	case MessagesView:
		return "messages_view"
	case CycleMode:
		return "cycle_mode"
	case CopyLink:
		return "copy_link"
	case Help:
		return "help"
	default:
		return "unknown"
	}
}

// Command 是一次按键翻译后的结果。可打印按键总是带上 Char，
// 这样删除模式可以把任意按键当作标签。
type Command struct {
	Kind Kind
	Char rune
}

// HasChar 表示该命令来自可打印按键。
func (c Command) HasChar() bool {
	return c.Char != 0
}

func Of(kind Kind) Command { return Command{Kind: kind} }

func Key(kind Kind, ch rune) Command { return Command{Kind: kind, Char: ch} }
