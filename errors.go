package sitepipe

import "fmt"

// stageError is a fatal error that stopped the pipeline at stage.
type stageError struct {
	err   error
	stage Stage
}

type writeError struct {
	err    error
	target string
}

func (e stageError) Error() string {
	return fmt.Errorf("[%s] %w", e.stage, e.err).Error()
}

func (e stageError) Unwrap() error {
	return e.err
}

func (w writeError) Error() string {
	return fmt.Errorf("WriteError(%s): %w", w.target, w.err).Error()
}

func (w writeError) Unwrap() error {
	return w.err
}
