package main

import (
	"context"
	"time"

	"github.com/scott-cotton/cli"
)

func MainCommand(ctx context.Context) *cli.Command {
	cfg := &MainConfig{ctx: ctx}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "I",
			Aliases:     []string{"ifmt"},
			Description: "input format: json/j, yaml/y",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.InFormat), "(format)"),
		},
		&cli.Opt{
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output format: json/j, yaml/y",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
		},
		&cli.Opt{
			Name:        "timeout",
			Description: "timeout of http fetches (default 10s)",
			Type:        cli.NamedFuncOpt(cfg.timeoutFunc(), "(duration)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "docref").
		WithSynopsis("docref [opts] command [opts]").
		WithDescription("docref resolves $ref references in json and yaml documents.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return docrefMain(cfg, cc, args)
		}).
		WithSubs(
			ResolveCommand(cfg),
			GetCommand(cfg),
			PtrCommand(cfg),
			DiffCommand(cfg),
			WatchCommand(cfg))
}

func ResolveCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ResolveConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Resolve, "resolve").
		WithAliases("r", "res").
		WithSynopsis("resolve [opts] [files]").
		WithDescription(resolveDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return resolve(cfg, cc, args)
		})
}

const resolveDescription = `resolve replaces the references of documents by what they refer to.

A reference is an object with a string $ref property such as

  {"$ref": "common.yaml#/definitions/Address"}

where the part before '#' locates a document relative to the referring one
and the part after it is a path of '/' separated keys and array indices.
An empty document part refers to the referring document.  Documents are
files or http(s) URLs; '-' or no argument reads standard input.

Policies

  inline    replace every reference (default)
  external  replace references to other documents only
  bundle    copy what other documents define into -section of the
            input and refer to it there

-when narrows the references resolved to those for which an expression
holds, for example

  -when '!nested && scheme == "file"'

Available names are ref, document, base, scheme, fragment, path, nested
and root, with the functions ext and basename.

Cycles

A reference reached again while being resolved is kept as is with
'-cycles keep' (default) and is an error with '-cycles fail'.

-patch applies an RFC 6902 json patch to each resolved document; key order
is not kept in patched documents.`

func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Get, "get").
		WithAliases("g").
		WithSynopsis("get <ref> [files]").
		WithDescription("get the resolved value a reference designates in each file").
		WithRun(func(cc *cli.Context, args []string) error {
			return get(cfg, cc, args)
		})
}

func PtrCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PtrConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Ptr, "ptr").
		WithAliases("p").
		WithSynopsis("ptr <base> <ref>...").
		WithDescription("show how references found in the document base are interpreted").
		WithRun(func(cc *cli.Context, args []string) error {
			return ptr(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{ResolveConfig: &ResolveConfig{MainConfig: mainCfg}}
	opts, err := cli.StructOpts(cfg.ResolveConfig)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("d").
		WithSynopsis("diff [resolve opts] [files]").
		WithDescription("show what resolution changes in documents, exiting 1 if anything changes").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
}

func WatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &WatchConfig{
		ResolveConfig: &ResolveConfig{MainConfig: mainCfg},
		Every:         200 * time.Millisecond,
	}
	opts, err := cli.StructOpts(cfg.ResolveConfig)
	if err != nil {
		panic(err)
	}
	gOpts, err := cli.StructOpts(&cfg.Opts)
	if err != nil {
		panic(err)
	}
	opts = append(opts, gOpts...)
	opts = append(opts, &cli.Opt{
		Name:        "every",
		Description: "minimum delay between resolutions (default 200ms)",
		Type:        cli.NamedFuncOpt(cli.FuncOpt(cfg.mkEvery()), "(duration)"),
	})
	return cli.NewCommandAt(&cfg.Watch, "watch").
		WithAliases("w").
		WithSynopsis("watch [resolve opts] files...").
		WithDescription("resolve file again whenever a local document it uses changes").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return watch(cfg, cc, args)
		})
}
