package diag

import (
	"errors"

	"github.com/davecgh/go-spew/spew"
	"go.uber.org/zap"
)

// DumpErrChain walks err's Unwrap chain and logs each layer's concrete type
// and a go-spew structural dump, for the rare case a one-line Error() string
// isn't enough to diagnose a fork/wait anomaly. Adapted from the teacher's
// pkg/fmtt.PrintErrChainDebug, redirected through the shell's own logger
// instead of stdout.
func DumpErrChain(log *zap.Logger, err error) {
	if err == nil {
		return
	}
	for i, e := 0, err; e != nil; i, e = i+1, errors.Unwrap(e) {
		log.Debug("err chain layer",
			zap.Int("depth", i),
			zap.String("type", spew.Sprintf("%T", e)),
			zap.String("dump", spew.Sdump(e)),
		)
	}
}
