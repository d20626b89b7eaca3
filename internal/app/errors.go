package app

import "github.com/ZanzyTHEbar/errbuilder-go"

const (
	msgCorruptReport = "local coverage report is corrupt"
	msgPrefetchFail  = "failed prefetching coverage reports"
)

func errInvalid(msg string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(msg)
}
