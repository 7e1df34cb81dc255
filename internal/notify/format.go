package notify

import (
	"fmt"

	"memwatch/internal/memory"
)

// SelfErrorPrefix is prepended to every self-error message.
const SelfErrorPrefix = "system monitor self error: "

// MemoryHTML renders a memory summary using Telegram's HTML subset.
func MemoryHTML(total, used uint64) string {
	return fmt.Sprintf("<strong>memory total: </strong>%s\n<strong>memory usage: </strong>%s",
		memory.FormatBytes(total), memory.FormatBytes(used))
}

// MemoryText renders a memory summary as plain text.
func MemoryText(total, used uint64) string {
	return fmt.Sprintf("memory total: %s\nmemory usage: %s",
		memory.FormatBytes(total), memory.FormatBytes(used))
}

// SelfErrorText renders a self-error message.
func SelfErrorText(message string) string {
	return SelfErrorPrefix + message
}
