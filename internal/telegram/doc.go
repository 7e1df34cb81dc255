// Package telegram implements the chat front end of the memory watch.
//
// A Bot serves a single group chat. It answers the /show command with an
// inline keyboard, renders a memory summary when the "memory usage" button
// is pressed, lets the chat switch alerts on and off with /alerts, and
// delivers watch alerts and self errors as a memory.Notifier.
//
// Updates from any other chat are ignored.
package telegram
