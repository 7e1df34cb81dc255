// Package logging provides leveled logging for the memory watch service.
//
// Levels, lowest first: DEBUG, INFO, WARN, ERROR. FATAL always prints and
// exits. The level is read from the DEBUG and LOG_LEVEL environment
// variables on first use and can be changed at runtime with [SetLevel].
// Output goes through the standard library logger so it shares its flags
// and writer with the HTTP access log.
package logging
