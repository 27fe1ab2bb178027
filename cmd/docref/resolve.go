package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/scott-cotton/cli"

	"github.com/signadot/docref"
	"github.com/signadot/docref/codec"
	"github.com/signadot/docref/encode"
	"github.com/signadot/docref/format"
	"github.com/signadot/docref/ir"
	"github.com/signadot/docref/parse"
)

func resolve(cfg *ResolveConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Resolve.Parse(cc, args)
	if err != nil {
		return err
	}
	sess, err := cfg.session(cc, cc.Out)
	if err != nil {
		return err
	}
	var patch jsonpatch.Patch
	if cfg.Patch != "" {
		if patch, err = cfg.loadPatch(); err != nil {
			return err
		}
	}
	return resolveFiles(cfg, sess, cc.Out, inputs(args), patch)
}

func resolveFiles(cfg *ResolveConfig, sess *docref.Session, w io.Writer, files []string, patch jsonpatch.Patch) error {
	for i, file := range files {
		if err := resolveFile(cfg, sess, w, file, patch); err != nil {
			return err
		}
		if i < len(files)-1 {
			if _, err := w.Write([]byte("\n---\n")); err != nil {
				return fmt.Errorf("error writing document %d: %w", i, err)
			}
		}
	}
	return nil
}

func (cfg *ResolveConfig) session(cc *cli.Context, w io.Writer) (*docref.Session, error) {
	p, err := cfg.policy()
	if err != nil {
		return nil, err
	}
	opts := append(cfg.sessionOpts(cc, w), docref.WithPolicy(p))
	return docref.NewSession(opts...), nil
}

func resolveFile(cfg *ResolveConfig, sess *docref.Session, w io.Writer, file string, patch jsonpatch.Patch) error {
	d, err := sess.Load(cfg.ctx, file)
	if err != nil {
		return err
	}
	if patch == nil {
		out, err := d.Text(cfg.ctx)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	}
	t, err := d.Tree(cfg.ctx)
	if err != nil {
		return err
	}
	res, err := applyPatch(t, patch)
	if err != nil {
		return fmt.Errorf("error patching %s: %w", file, err)
	}
	return encode.Encode(res, w, cfg.encOpts(w)...)
}

func (cfg *ResolveConfig) loadPatch() (jsonpatch.Patch, error) {
	d, err := os.ReadFile(cfg.Patch)
	if err != nil {
		return nil, fmt.Errorf("could not read patch %q: %w", cfg.Patch, err)
	}
	// patches may be written in yaml.
	t, err := cfg.inCodec().Parse(d, cfg.Patch)
	if err != nil {
		return nil, err
	}
	j, err := codec.JSON().Serialize(t)
	if err != nil {
		return nil, err
	}
	ops, err := jsonpatch.DecodePatch(j)
	if err != nil {
		return nil, fmt.Errorf("%w: bad patch %q: %w", cli.ErrUsage, cfg.Patch, err)
	}
	return ops, nil
}

func applyPatch(t *ir.Tree, patch jsonpatch.Patch) (*ir.Tree, error) {
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(t, buf, encode.EncodeFormat(format.JSONFormat), encode.EncodeWire(true)); err != nil {
		return nil, err
	}
	out, err := patch.Apply(buf.Bytes())
	if err != nil {
		return nil, err
	}
	res, err := parse.Parse(out, parse.ParseJSON(), parse.StrictJSON(true))
	if err != nil {
		return nil, err
	}
	// patched documents come back with sorted fields.
	if err := ir.OrderLike(res, res.Root(), []*ir.Tree{t}, []ir.ID{t.Root()}); err != nil {
		return nil, err
	}
	return res, nil
}
