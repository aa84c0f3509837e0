package logger

import (
	"io"
	"os"
)

var (
	FlagVerboseCount int    // -V, -VV
	FlagQuiet        bool   // --quiet/-q
	FlagSilent       bool   // --silent/-s
	FlagJSON         bool   // structured output for CI
	FlagLogFile      string // --log-file
)

func ConfigureLoggerFromFlags() {
	var w io.Writer = os.Stderr
	var level string
	switch {
	case FlagQuiet:
		level = "error"
	case FlagSilent:
		level = "error"
		w = io.Discard
	default:
		switch FlagVerboseCount {
		case 0:
			level = "warn"
		case 1:
			level = "info"
		default:
			level = "debug"
		}
	}

	Configure(Options{
		Level: level,
		JSON:  FlagJSON,
		Color: !FlagJSON,
		Out:   w,
		File:  FlagLogFile,
	})
}
