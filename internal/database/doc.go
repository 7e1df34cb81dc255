// Package database provides SQLite persistence for runtime settings.
//
// Settings are stored as key/value rows in a single table. The only setting
// in use today is the alert gate state, so that toggling alerts survives a
// restart.
//
// The database uses WAL mode and includes automatic schema initialization.
package database
