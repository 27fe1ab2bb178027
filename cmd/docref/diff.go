package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/signadot/docref"
	"github.com/signadot/docref/codec"
	"github.com/signadot/docref/encode"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	plain := codec.New(cfg.outFormat()).WithEncodeOptions(
		encode.EncodeRefKey(cfg.marker()),
		encode.EncodeWire(cfg.WireOut))
	p, err := cfg.policy()
	if err != nil {
		return err
	}
	opts := append(cfg.sessionOpts(cc, cc.Out), docref.WithPolicy(p), docref.WithOutputCodec(plain))
	sess := docref.NewSession(opts...)
	differs := false
	for _, file := range inputs(args) {
		d, err := sess.Load(cfg.ctx, file)
		if err != nil {
			return err
		}
		orig, err := sess.Codec().Parse(d.Original(), d.Identity().String())
		if err != nil {
			return err
		}
		before, err := plain.Serialize(orig)
		if err != nil {
			return err
		}
		after, err := d.Text(cfg.ctx)
		if err != nil {
			return err
		}
		n, err := writeLineDiff(cc.Out, d.Identity().String(), string(before), string(after), cfg.useColor(cc.Out))
		if err != nil {
			return err
		}
		if n != 0 {
			differs = true
		}
	}
	if differs {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// writeLineDiff writes the lines of a and b with "-" and "+" marking those
// only in a and only in b.  It returns the number of differing lines.
func writeLineDiff(w io.Writer, name, a, b string, colors bool) (int, error) {
	dmp := diffpatch.New()
	ac, bc, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ac, bc, false), lines)
	del, ins := fmt.Sprint, fmt.Sprint
	if colors {
		del = color.New(color.FgRed).Sprint
		ins = color.New(color.FgGreen).Sprint
	}
	n := 0
	var buf strings.Builder
	fmt.Fprintf(&buf, "--- %s\n+++ %s (resolved)\n", name, name)
	for _, d := range diffs {
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			if !strings.HasSuffix(line, "\n") {
				line += "\n"
			}
			switch d.Type {
			case diffpatch.DiffDelete:
				n++
				buf.WriteString(del("-" + line))
			case diffpatch.DiffInsert:
				n++
				buf.WriteString(ins("+" + line))
			case diffpatch.DiffEqual:
				buf.WriteString(" " + line)
			}
		}
	}
	if n == 0 {
		return 0, nil
	}
	_, err := io.WriteString(w, buf.String())
	return n, err
}
