package main

const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (bad profile, invalid paths)
	ExitDataError   = 3 // Data error (unreadable input, malformed import file)
)
