package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/NEW-BOOTY/PHCSystem"
	"github.com/NEW-BOOTY/PHCSystem/harmonic"
)

func main() {
	var (
		confname, inname, verb string
		prec, depth, primes    int
		history, level         string
		echo, verbose          bool
		given                  config
	)
	flag.StringVar(&confname, "config", "", "YAML configuration file")
	flag.StringVar(&inname, "in", "", "run commands from a file, or - for stdin, instead of the interactive loop")
	flag.StringVar(&verb, "fmt", "%g", "result formatting string")
	flag.Func("given", "name=value variable definition (any number of times)", given.addDefinition)
	flag.IntVar(&prec, "p", 64, "precision of calculations in bits")
	flag.IntVar(&depth, "depth", phc.DefaultMaxDepth, "maximum expression nesting depth")
	flag.IntVar(&primes, "primes", harmonic.DefaultPrimes, "number of primes in primeharm, or 0 to leave it undefined")
	flag.StringVar(&history, "history", "", "interactive history file")
	flag.StringVar(&level, "log", "warn", "log level")
	flag.BoolVar(&echo, "echo", false, "print parse trees")
	flag.BoolVar(&verbose, "v", false, "debug logging")
	flag.Parse()

	boot, _ := newLogger(os.Stderr, "info")
	cfg, err := loadConfig(confname)
	if err != nil {
		boot.Fatal().Err(err).Msg("loading configuration")
	}
	// Flags given explicitly override the file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "p":
			cfg.Precision = uint(prec)
		case "depth":
			cfg.MaxDepth = depth
		case "primes":
			cfg.Primes = primes
		case "history":
			cfg.History = history
		case "log":
			cfg.LogLevel = level
		}
	})
	if prec < 1 {
		boot.Fatal().Msgf("precision (%d) must be positive", prec)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	cfg.Vars = append(cfg.Vars, given.Vars...)
	if err := cfg.check(); err != nil {
		boot.Fatal().Err(err).Msg("invalid configuration")
	}
	log, err := newLogger(os.Stderr, cfg.LogLevel)
	if err != nil {
		boot.Fatal().Err(err).Str("level", cfg.LogLevel).Msg("invalid log level")
	}

	obs := logObserver{log: log}
	s := session{
		ctx:   phc.NewContext(cfg.options(obs)...),
		scope: phc.NewScope(),
		popts: cfg.parseOptions(obs),
		verb:  verb,
		echo:  echo,
		log:   log,
	}
	for _, d := range cfg.Vars {
		if _, err := s.let(d[0] + "=" + d[1]); err != nil {
			log.Fatal().Err(err).Str("name", d[0]).Msg("setting variable")
		}
	}
	log.Debug().
		Uint("prec", cfg.Precision).
		Int("depth", cfg.MaxDepth).
		Int("primes", cfg.Primes).
		Strs("vars", s.scope.Names()).
		Msg("ready")

	switch {
	case flag.NArg() > 0:
		failed := false
		for _, arg := range flag.Args() {
			r, err := s.eval(arg)
			if err != nil {
				fmt.Println(err)
				failed = true
				continue
			}
			fmt.Println(r)
		}
		if failed {
			os.Exit(1)
		}
	case inname != "":
		in := os.Stdin
		if inname != "-" {
			f, err := os.Open(inname)
			if err != nil {
				log.Fatal().Err(err).Msg("opening input")
			}
			defer f.Close()
			in = f
		}
		ok, err := s.script(in, os.Stdout)
		if err != nil {
			log.Fatal().Err(err).Str("file", inname).Msg("reading input")
		}
		if !ok {
			os.Exit(1)
		}
	default:
		if err := s.repl(cfg.History); err != nil {
			log.Fatal().Err(err).Msg("interactive loop")
		}
	}
}
