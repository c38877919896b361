package main

import (
	"io"
	"math/big"
	"strings"

	"github.com/rs/zerolog"

	"github.com/NEW-BOOTY/PHCSystem"
)

// newLogger creates a console logger writing to w at the named level.
func newLogger(w io.Writer, level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Nop(), err
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}

// logObserver reports parses and evaluations at debug level, and failures at
// info level.
type logObserver struct {
	log zerolog.Logger
}

func (o logObserver) Parsed(src string, e *phc.Expr, err error) {
	if err != nil {
		o.log.Info().Str("src", src).Str("kind", phc.KindOf(err).String()).Err(err).Msg("parse failed")
		return
	}
	o.log.Debug().Str("src", src).Stringer("expr", e).Msg("parsed")
}

func (o logObserver) Evaluated(e *phc.Expr, r *big.Float, err error) {
	if err != nil {
		o.log.Info().Stringer("expr", e).Str("kind", phc.KindOf(err).String()).Err(err).Msg("evaluation failed")
		return
	}
	o.log.Debug().Stringer("expr", e).Stringer("result", r).Msg("evaluated")
}

var _ phc.Observer = logObserver{}
