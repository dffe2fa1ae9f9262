package renderer

import (
	"fmt"
	"os"

	"github.com/df07/scanline-pathtracer/pkg/core"
)

// DefaultLogger implements core.Logger by writing to stderr, leaving stdout free for image data
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// discardLogger drops all output; used when no logger is configured
type discardLogger struct{}

func (discardLogger) Printf(format string, args ...interface{}) {}
