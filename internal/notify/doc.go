// Package notify provides memory.Notifier sinks that do not depend on the
// Telegram bot: a JSON webhook, a logging sink, and a fan-out that delivers
// to several sinks at once.
//
// It also holds the shared message rendering used by every sink so that an
// alert reads the same whether it arrives in a chat, a webhook or a log line.
package notify
