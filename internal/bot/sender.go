package bot

// Incoming is one normalized chat update: either a text message or a
// button callback, never both.
type Incoming struct {
	ChatID       int64
	UserID       int64
	Username     string
	Text         string
	CallbackData string
}

// Choice is one option of an inline two-option prompt.
type Choice struct {
	Label string
	Data  string
}

// Sender delivers outbound messages. The chat transport implements it; the
// dispatcher never talks to the transport directly.
type Sender interface {
	SendMessage(chatID int64, text string) error
	// SendMenu sends text together with a persistent reply keyboard.
	SendMenu(chatID int64, text string, rows [][]string) error
	// SendChoice sends text with inline buttons that answer via callback data.
	SendChoice(chatID int64, text string, choices []Choice) error
}
