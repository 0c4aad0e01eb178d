package execution

import (
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// logExecution records the command about to run at debug level.
func logExecution(file string, args []string) {
	event := log.Debug()
	if !event.Enabled() {
		return
	}
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, quoteArg(file))
	for _, arg := range args {
		parts = append(parts, quoteArg(arg))
	}
	event.Msgf("executing command: %s", strings.Join(parts, " "))
}

func quoteArg(arg string) string {
	if arg == "" || strings.ContainsAny(arg, " \t\n\"'\\") {
		return strconv.Quote(arg)
	}
	return arg
}

func traceStat(path string, err error) {
	log.Trace().Err(err).Str("path", path).Msg("error reading status of path")
}
