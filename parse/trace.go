package parse

import (
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("parsekit.parse")

// Trace wraps p so that each attempt is logged at debug level with the
// position where it started and, on success, where it ended. When debug
// logging is disabled the wrapper only checks the level.
func Trace[T, A any](name string, p Parser[T, A]) Parser[T, A] {
	return func(in Input[T]) Result[A] {
		if !log.AllowLevel(commonlog.Debug) {
			return p(in)
		}

		start := in.CurrentPosition()
		log.Debugf("%s: try at %s", name, start)

		r := p(in)
		if r.Ok() {
			log.Debugf("%s: matched %s..%s", name, start, in.CurrentPosition())
		} else {
			log.Debugf("%s: failed at %s", name, start)
		}
		return r
	}
}
