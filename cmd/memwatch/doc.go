// Package main provides the entry point for the memory watch service.
//
// memwatch samples system memory on a fixed interval and raises an alert
// whenever used/total memory is above a configured ratio. Alerts go to a
// Telegram group chat, a JSON webhook, or the log.
//
// # Application Lifecycle
//
//  1. Configuration Loading: Reads environment variables (see package startup)
//  2. Database Initialization: Opens the SQLite settings store
//  3. Component Initialization:
//     - Memory cache over the system memory source
//     - Alert gate, restored from the settings store
//     - Telegram bot (if BOT_TOKEN is set) and notifier sinks
//     - Memory watch and metrics collector
//  4. HTTP Server Setup: API, health probes, and a separate metrics server
//  5. Run: watch, servers and bot run under one errgroup
//
// # Failure Policy
//
// The service runs until SIGINT/SIGTERM. If any component stops on its own
// (the bot's update stream closes, a server fails to bind), every other
// component is shut down and the process exits non-zero.
package main
