package main

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/NEW-BOOTY/PHCSystem"
	"github.com/NEW-BOOTY/PHCSystem/harmonic"
)

func TestDecodeConfig(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want config
	}{
		{
			name: "empty",
			src:  "",
			want: defaultConfig(),
		},
		{
			name: "comments",
			src:  "# nothing here\n",
			want: defaultConfig(),
		},
		{
			name: "full",
			src: `precision: 200
max_depth: 50
primes: 10
history: /tmp/phc_history
log_level: debug
vars:
  x: 2
  y: x^10
  z: sqrt(y)
`,
			want: config{
				Precision: 200,
				MaxDepth:  50,
				Primes:    10,
				History:   "/tmp/phc_history",
				LogLevel:  "debug",
				Vars:      definitions{{"x", "2"}, {"y", "x^10"}, {"z", "sqrt(y)"}},
			},
		},
		{
			name: "partial",
			src:  "primes: 0\n",
			want: config{
				Precision: 64,
				MaxDepth:  phc.DefaultMaxDepth,
				Primes:    0,
				LogLevel:  "warn",
			},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := defaultConfig()
			if err := decodeConfig(strings.NewReader(c.src), &got); err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(got, c.want) {
				t.Errorf("want %+v, got %+v", c.want, got)
			}
		})
	}
}

func TestDecodeConfigErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"unknown", "precison: 100\n"},
		{"zero-prec", "precision: 0\n"},
		{"neg-prec", "precision: -3\n"},
		{"depth", "max_depth: 0\n"},
		{"primes", "primes: -1\n"},
		{"vars-list", "vars: [x, y]\n"},
		{"vars-nested", "vars:\n  x:\n    y: 1\n"},
		{"syntax", "precision: [\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := defaultConfig()
			if err := decodeConfig(strings.NewReader(c.src), &cfg); err == nil {
				t.Errorf("no error from %q; got %+v", c.src, cfg)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(cfg, defaultConfig()) {
		t.Errorf("no file: want defaults, got %+v", cfg)
	}

	name := filepath.Join(t.TempDir(), "phc.yaml")
	if err := os.WriteFile(name, []byte("precision: 128\nvars:\n  a: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = loadConfig(name)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Precision != 128 || cfg.Primes != harmonic.DefaultPrimes || len(cfg.Vars) != 1 {
		t.Errorf("wrong config %+v", cfg)
	}

	if _, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml")); !os.IsNotExist(err) {
		t.Errorf("missing file: %v", err)
	}
}

func TestAddDefinition(t *testing.T) {
	var cfg config
	for _, s := range []string{"x=1", " y = x + 1 ", "z=a=b"} {
		if err := cfg.addDefinition(s); err != nil {
			t.Errorf("%q: %v", s, err)
		}
	}
	want := definitions{{"x", "1"}, {"y", "x + 1"}, {"z", "a=b"}}
	if !reflect.DeepEqual(cfg.Vars, want) {
		t.Errorf("want %v, got %v", want, cfg.Vars)
	}
	if err := cfg.addDefinition("nothing"); err == nil {
		t.Error("no error from definition without =")
	}
}

func TestConfigOptions(t *testing.T) {
	cfg := defaultConfig()
	cfg.Precision = 100
	cfg.Primes = 5
	ctx := phc.NewContext(cfg.options(nil)...)
	if ctx.Prec() != 100 {
		t.Errorf("precision %d", ctx.Prec())
	}
	if !contains(ctx.Funcs(), "primeharm") {
		t.Errorf("primeharm missing from %v", ctx.Funcs())
	}

	cfg.Primes = 0
	ctx = phc.NewContext(cfg.options(nil)...)
	if contains(ctx.Funcs(), "primeharm") {
		t.Error("primeharm registered with primes: 0")
	}

	cfg.MaxDepth = 3
	if _, err := phc.Parse("((((1))))", cfg.parseOptions(nil)...); phc.KindOf(err) != phc.KindDepthExceeded {
		t.Errorf("parse depth: %v", err)
	}
}

func contains(s []string, x string) bool {
	for _, v := range s {
		if v == x {
			return true
		}
	}
	return false
}
