// Package report prints human-readable build progress lines.
//
// Every line is also mirrored to a structured logger at debug level,
// so JSON logs carry the same history as the console.
package report

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/gookit/color"
)

var (
	styleStatus  = color.Style{color.FgCyan, color.OpBold}
	styleSuccess = color.Style{color.FgGreen}
	styleError   = color.Style{color.FgRed, color.OpBold}
	styleDetail  = color.Style{color.FgRed}
)

// Reporter writes colored status lines. It is safe for concurrent use.
type Reporter struct {
	mut    sync.Mutex
	w      io.Writer
	logger *slog.Logger
}

// New returns a Reporter writing to w. A nil w writes to os.Stdout,
// and a nil logger falls back to slog.Default().
func New(w io.Writer, logger *slog.Logger) *Reporter {
	if w == nil {
		w = os.Stdout
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Reporter{w: w, logger: logger}
}

// Status prints a stage banner, e.g. ">> build html".
func (r *Reporter) Status(msg string) {
	r.println(styleStatus, msg)
	r.logger.Debug("status", "msg", msg)
}

func (r *Reporter) Success(msg string) {
	r.println(styleSuccess, msg)
	r.logger.Debug("success", "msg", msg)
}

func (r *Reporter) Error(msg string) {
	r.println(styleError, msg)
	r.logger.Debug("error", "msg", msg)
}

// Detail prints multi-line diagnostic text, such as compiler output.
func (r *Reporter) Detail(text string) {
	r.println(styleDetail, text)
}

// SuccessOrError prints msg as an error if err is non-nil,
// and as a success otherwise.
func (r *Reporter) SuccessOrError(err error, msg string) {
	if err != nil {
		r.Error(fmt.Sprintf("%s: %v", msg, err))
		return
	}

	r.Success(msg)
}

// IfError prints msg only if err is non-nil.
func (r *Reporter) IfError(err error, msg string) {
	if err == nil {
		return
	}

	r.Error(fmt.Sprintf("%s: %v", msg, err))
}

// Proceed reports that step has finished and hands control to next.
// It must be called once per step, after all of the step's work has settled.
func (r *Reporter) Proceed(step string, next func() error) error {
	r.println(styleStatus, "<< "+step+" done")
	r.logger.Info("step done", "step", step)

	if next == nil {
		return nil
	}

	return next()
}

func (r *Reporter) println(style color.Style, msg string) {
	r.mut.Lock()
	defer r.mut.Unlock()

	fmt.Fprintln(r.w, style.Sprint(msg))
}
