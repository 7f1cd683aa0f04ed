package main

// Exit codes for the ofsaav CLI.
const (
	ExitOK               = 0 // Every validated file met the quality threshold.
	ExitInvalidArgs      = 1 // Invalid arguments or structural failure.
	ExitBelowThreshold   = 2 // At least one file scored below the threshold.
	ExitNothingValidated = 3 // Batch mode found no files to validate.
)
