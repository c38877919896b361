package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/NEW-BOOTY/PHCSystem"
	"github.com/NEW-BOOTY/PHCSystem/harmonic"
)

// config is the CLI configuration. It is read from an optional YAML file, and
// flags given on the command line override it.
type config struct {
	// Precision is the precision of calculations in bits.
	Precision uint `yaml:"precision"`
	// MaxDepth limits the nesting of parsed and evaluated expressions.
	MaxDepth int `yaml:"max_depth"`
	// Primes is the number of primes in the primeharm kernel. 0 leaves
	// primeharm undefined.
	Primes int `yaml:"primes"`
	// History is the REPL history file. Empty disables history.
	History string `yaml:"history"`
	// LogLevel is a zerolog level name.
	LogLevel string `yaml:"log_level"`
	// Vars are initial variable definitions, evaluated in order.
	Vars definitions `yaml:"vars"`
}

// definitions is a list of name=expression pairs. In YAML it is a mapping,
// kept in document order so that later definitions can use earlier ones.
type definitions [][2]string

func (d *definitions) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: vars must be a mapping of names to expressions", n.Line)
	}
	r := make(definitions, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if k.Kind != yaml.ScalarNode || v.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: variable definitions must be scalars", k.Line)
		}
		r = append(r, [2]string{k.Value, v.Value})
	}
	*d = r
	return nil
}

func defaultConfig() config {
	return config{
		Precision: 64,
		MaxDepth:  phc.DefaultMaxDepth,
		Primes:    harmonic.DefaultPrimes,
		LogLevel:  "warn",
	}
}

// decodeConfig reads YAML settings from r over the values already in c.
// Unknown keys are errors. An empty document changes nothing.
func decodeConfig(r io.Reader, c *config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return c.check()
}

// loadConfig reads the file at name over the defaults. An empty name gives
// the defaults alone.
func loadConfig(name string) (config, error) {
	c := defaultConfig()
	if name == "" {
		return c, nil
	}
	f, err := os.Open(name)
	if err != nil {
		return c, err
	}
	defer f.Close()
	if err := decodeConfig(f, &c); err != nil {
		return c, fmt.Errorf("reading config %s: %w", name, err)
	}
	return c, nil
}

func (c *config) check() error {
	if c.Precision == 0 {
		return errors.New("precision must be positive")
	}
	if c.MaxDepth < 1 {
		return fmt.Errorf("max_depth (%d) must be positive", c.MaxDepth)
	}
	if c.Primes < 0 {
		return fmt.Errorf("primes (%d) must not be negative", c.Primes)
	}
	return nil
}

// addDefinition parses a name=value flag.
func (c *config) addDefinition(s string) error {
	d := strings.SplitN(s, "=", 2)
	if len(d) != 2 {
		return fmt.Errorf(`variable definitions must be "name=value", not %q`, s)
	}
	c.Vars = append(c.Vars, [2]string{strings.TrimSpace(d[0]), strings.TrimSpace(d[1])})
	return nil
}

// options returns the context options the configuration selects.
func (c *config) options(obs phc.Observer) []phc.ContextOption {
	opts := []phc.ContextOption{
		phc.Prec(c.Precision),
		phc.MaxDepth(c.MaxDepth),
		phc.Observe(obs),
	}
	if c.Primes > 0 {
		opts = append(opts, harmonic.Register(c.Primes))
	}
	return opts
}

// parseOptions returns the parse options the configuration selects.
func (c *config) parseOptions(obs phc.Observer) []phc.ParseOption {
	return []phc.ParseOption{phc.ParseDepth(c.MaxDepth), phc.ObserveParse(obs)}
}
