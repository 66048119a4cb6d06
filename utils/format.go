package utils

import (
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"
)

// MessageType selects the color of a CLI message.
type MessageType int

// The message types printed by texel.
const (
	DefaultMessage MessageType = iota
	SuccessMessage
	ErrorMessage
	StatusMessage
)

// ANSI escape sequences of the message colors.
const (
	DefaultColor = "\x1b[0m"
	StatusColor  = "\x1b[36m"
	SuccessColor = "\x1b[32m"
	ErrorColor   = "\x1b[31m"
)

var messageColors = map[MessageType]string{
	DefaultMessage: DefaultColor,
	SuccessMessage: SuccessColor,
	ErrorMessage:   ErrorColor,
	StatusMessage:  StatusColor,
}

// DecorateText wraps s into the color of the message type.
// Unknown message types are returned unchanged.
func DecorateText(s string, msgType MessageType) string {
	color, ok := messageColors[msgType]
	if !ok {
		return s
	}
	return color + s + DefaultColor
}

// Reporter prints the outcome of the filter and noise operations.
// Colors are emitted only when the writer is a terminal.
type Reporter struct {
	w     io.Writer
	color bool
}

// NewReporter returns a Reporter writing to w.
func NewReporter(w io.Writer) *Reporter {
	r := &Reporter{w: w}
	if f, ok := w.(*os.File); ok {
		r.color = term.IsTerminal(int(f.Fd()))
	}
	return r
}

func (r *Reporter) decorate(s string, msgType MessageType) string {
	if !r.color {
		return s
	}
	return DecorateText(s, msgType)
}

// Saved reports a written image.
func (r *Reporter) Saved(name string) {
	fmt.Fprintf(r.w, "The image has been saved as: %s\n", r.decorate(name, SuccessMessage))
}

// Failed reports a source that could not be processed.
func (r *Reporter) Failed(name string, err error) {
	fmt.Fprintf(r.w, "%s\n\tReason: %v\n", r.decorate("Error processing the image: "+name, ErrorMessage), err)
}

// Elapsed reports the duration of the whole run.
func (r *Reporter) Elapsed(d time.Duration) {
	fmt.Fprintf(r.w, "\nExecution time: %s\n", r.decorate(FormatTime(d), SuccessMessage))
}

// FormatTime prints durations under a minute in seconds, longer ones split
// into hours and minutes, e.g. "1.50s", "2m 5.00s" or "1h 1m 1.00s".
func FormatTime(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	hours := int64(d / time.Hour)
	minutes := int64(d % time.Hour / time.Minute)
	seconds := (d % time.Minute).Seconds()
	if hours == 0 {
		return fmt.Sprintf("%dm %.2fs", minutes, seconds)
	}
	return fmt.Sprintf("%dh %dm %.2fs", hours, minutes, seconds)
}
