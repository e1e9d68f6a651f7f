// Package testlog brings up the test logging profile once per test
// binary and logs a start line tagged with each test's name.
package testlog

import (
	"testing"

	"github.com/rs/zerolog/log"

	"github.com/rtspwire/wireclient/internal/logging"
)

func Start(t *testing.T) {
	t.Helper()
	logging.ConfigureTests()
	log.Info().Str("test", t.Name()).Msg("test start")
}
