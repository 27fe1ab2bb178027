package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/signadot/docref/encode"
	"github.com/signadot/docref/ir"
	"github.com/signadot/docref/pointer"
)

func ptr(cfg *PtrConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Ptr.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) < 2 {
		return fmt.Errorf("%w: ptr requires a base and a reference", cli.ErrUsage)
	}
	base, err := pointer.NewIdentity(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	for _, ref := range args[1:] {
		p, err := pointer.Parse(base, ref)
		if err != nil {
			return err
		}
		if err := encode.Encode(pointerTree(p), cc.Out, cfg.encOpts(cc.Out)...); err != nil {
			return err
		}
	}
	return nil
}

// pointerTree describes p as a document.
func pointerTree(p pointer.Pointer) *ir.Tree {
	t := ir.New()
	obj := t.NewObject()
	path := t.NewArray()
	for _, seg := range p.Path {
		t.Append(path, t.NewString(seg))
	}
	t.Set(obj, "ref", t.NewString(p.Ref))
	t.Set(obj, "document", t.NewString(p.Document.String()))
	t.Set(obj, "folder", t.NewString(p.Document.Folder()))
	t.Set(obj, "nested", t.NewBool(p.Nested))
	t.Set(obj, "path", path)
	t.Set(obj, "absolute", t.NewString(p.String()))
	t.SetRoot(obj)
	return t
}
