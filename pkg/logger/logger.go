package logger

import (
	"io"
	"log"
	"os"
)

// InitLogger returns the application logger writing to stdout.
func InitLogger() *log.Logger {
	return New(os.Stdout, "")
}

// New sets the standard logger flags and returns a logger with the given prefix.
func New(out io.Writer, prefix string) *log.Logger {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	return log.New(out, prefix, log.LstdFlags)
}
