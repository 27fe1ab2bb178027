package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/signadot/docref"
	"github.com/signadot/docref/codec"
	"github.com/signadot/docref/encode"
	"github.com/signadot/docref/fetch"
	"github.com/signadot/docref/format"
	"github.com/signadot/docref/parse"
	"github.com/signadot/docref/pointer"
)

type MainConfig struct {
	Color   bool `cli:"name=color desc='encode with color'"`
	WireOut bool `cli:"name=wire desc='output in compact format'"`

	J bool `cli:"name=j aliases=json desc='do i/o in json'"`
	Y bool `cli:"name=y aliases=yaml desc='do i/o in yaml'"`

	Strict   bool   `cli:"name=strict desc='with -j, reject comments and trailing commas'"`
	Verbose  bool   `cli:"name=v desc='log resolution to stderr'"`
	Marker   string `cli:"name=marker desc='name of reference properties, default $ref'"`
	Prefetch int    `cli:"name=prefetch desc='fetch up to n referenced documents concurrently'"`

	Timeout time.Duration

	InFormat, OutFormat *format.Format

	Out      string
	CloseOut func() error

	ctx  context.Context
	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		c, err := codec.Lookup(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w (have %s)", cli.ErrUsage, err, strings.Join(codec.Names(), ", "))
		}
		f := c.Format()
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

func (cfg *MainConfig) timeoutFunc() cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		cfg.Timeout = d
		return d, nil
	})
}

func (cfg *MainConfig) inFormat() format.Format {
	f := format.YAMLFormat
	if cfg.J {
		f = format.JSONFormat
	}
	if cfg.InFormat != nil {
		f = *cfg.InFormat
	}
	return f
}

func (cfg *MainConfig) outFormat() format.Format {
	f := format.JSONFormat
	if cfg.Y {
		f = format.YAMLFormat
	}
	if cfg.OutFormat != nil {
		f = *cfg.OutFormat
	}
	return f
}

func (cfg *MainConfig) marker() string {
	if cfg.Marker == "" {
		return docref.DefaultMarkerKey
	}
	return cfg.Marker
}

func (cfg *MainConfig) inCodec() codec.Codec {
	if cfg.InFormat == nil && !cfg.J && !cfg.Y {
		return codec.Auto()
	}
	return codec.New(cfg.inFormat()).WithParseOptions(parse.StrictJSON(cfg.Strict))
}

func (cfg *MainConfig) outCodec(w io.Writer) codec.Codec {
	return codec.New(cfg.outFormat()).WithEncodeOptions(cfg.encOpts(w)...)
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.EncodeFormat(cfg.outFormat()),
		encode.EncodeWire(cfg.WireOut),
		encode.EncodeRefKey(cfg.marker()),
	}
	if cfg.useColor(w) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

func (cfg *MainConfig) useColor(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name == "color" && opt.Value != nil {
			return false
		}
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

func (cfg *MainConfig) fetcher(cc *cli.Context) fetch.Fetcher {
	h := &fetch.HTTP{Timeout: cfg.Timeout}
	def := fetch.Schemes{
		"file":  fetch.File{},
		"http":  h,
		"https": h,
	}
	return fetch.Func(func(ctx context.Context, id pointer.Identity) ([]byte, error) {
		if id == stdinIdentity() {
			return readStdin(cc)
		}
		return def.Fetch(ctx, id)
	})
}

func (cfg *MainConfig) sessionOpts(cc *cli.Context, w io.Writer) []docref.Option {
	return []docref.Option{
		docref.WithFetcher(cfg.fetcher(cc)),
		docref.WithCodec(cfg.inCodec()),
		docref.WithOutputCodec(cfg.outCodec(w)),
		docref.WithMarkerKey(cfg.marker()),
		docref.WithPrefetch(cfg.Prefetch),
		docref.WithLogger(newLog(os.Stderr, cfg.Verbose)),
	}
}

type ResolveConfig struct {
	*MainConfig

	Policy  string `cli:"name=policy desc='resolution policy: inline, external or bundle'"`
	When    string `cli:"name=when desc='expression selecting the references to resolve'"`
	Merge   bool   `cli:"name=merge desc='merge properties next to references into their replacement'"`
	Cycles  string `cli:"name=cycles desc='on cyclic references: keep or fail'"`
	Section string `cli:"name=section desc='where bundle puts definitions, default definitions'"`
	Patch   string `cli:"name=patch desc='json patch file to apply to resolved documents'"`

	Resolve *cli.Command
}

func (cfg *ResolveConfig) policy() (docref.Policy, error) {
	cycles := docref.CycleKeep
	if cfg.Cycles != "" {
		c, err := docref.ParseCycleAction(cfg.Cycles)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		cycles = c
	}
	var res docref.Policy
	switch strings.ToLower(cfg.Policy) {
	case "", "inline":
		res = &docref.InlinePolicy{Cycles: cycles, MergeSiblings: cfg.Merge}
	case "external", "external-only":
		res = &docref.ExternalOnlyPolicy{
			InlinePolicy: docref.InlinePolicy{Cycles: cycles, MergeSiblings: cfg.Merge},
		}
	case "bundle":
		b := docref.Bundle(pointer.SplitFragment(cfg.Section)...)
		b.Cycles = cycles
		res = b
	default:
		return nil, fmt.Errorf("%w: unknown policy %q", cli.ErrUsage, cfg.Policy)
	}
	if cfg.When == "" {
		return res, nil
	}
	w, err := docref.When(cfg.When, res)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	return w, nil
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}

type PtrConfig struct {
	*MainConfig

	Ptr *cli.Command
}

type DiffConfig struct {
	*ResolveConfig

	Diff *cli.Command
}

type WatchConfig struct {
	*ResolveConfig

	Opts  WatchOpts
	Every time.Duration

	Watch *cli.Command
}

type WatchOpts struct {
	Gops bool `cli:"name=gops desc='start a gops agent'"`
}

func (cfg *WatchConfig) mkEvery() func(cc *cli.Context, a string) (any, error) {
	return func(_ *cli.Context, a string) (any, error) {
		d, err := time.ParseDuration(a)
		if err != nil {
			return nil, err
		}
		cfg.Every = d
		return d, nil
	}
}
