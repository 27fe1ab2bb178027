package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/signadot/docref"
	"github.com/signadot/docref/encode"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires a reference", cli.ErrUsage)
	}
	ref := args[0]
	sess := docref.NewSession(cfg.sessionOpts(cc, cc.Out)...)
	for _, file := range inputs(args[1:]) {
		d, err := sess.Load(cfg.ctx, file)
		if err != nil {
			return err
		}
		t, id, err := d.Get(cfg.ctx, ref)
		if err != nil {
			return fmt.Errorf("error getting %s from %s: %w", ref, file, err)
		}
		if err := encode.EncodeNode(t, id, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
			return err
		}
	}
	return nil
}
