package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/fsnotify/fsnotify"
	"github.com/google/gops/agent"
	"github.com/scott-cotton/cli"

	"github.com/signadot/docref"
)

func watch(cfg *WatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Watch.Parse(cc, args)
	if err != nil {
		return err
	}
	files, err := watchFiles(args)
	if err != nil {
		return err
	}
	var patch jsonpatch.Patch
	if cfg.Patch != "" {
		if patch, err = cfg.loadPatch(); err != nil {
			return err
		}
	}
	if cfg.Opts.Gops {
		if err := agent.Listen(agent.Options{}); err != nil {
			fmt.Fprintf(os.Stderr, "gops agent failed: %v\n", err)
		}
		defer agent.Close()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	watched := map[string]bool{}
	dirs := map[string]bool{}
	run := func(sep bool) error {
		sess, err := cfg.session(cc, cc.Out)
		if err != nil {
			return err
		}
		if sep {
			if _, err := cc.Out.Write([]byte("---\n")); err != nil {
				return err
			}
		}
		// documents loaded before a failure are still worth watching.
		resErr := resolveFiles(cfg.ResolveConfig, sess, cc.Out, files, patch)
		if err := watchDocuments(w, sess, watched, dirs); err != nil {
			return err
		}
		if resErr != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", time.Now().Format(time.RFC3339), resErr)
		}
		return nil
	}
	if err := run(false); err != nil {
		return err
	}
	if len(watched) == 0 {
		return fmt.Errorf("%v: no local file to watch", files)
	}

	var timer <-chan time.Time
	for {
		select {
		case <-cfg.ctx.Done():
			return nil
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return err
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !watched[filepath.Clean(ev.Name)] || ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if timer == nil {
				timer = time.After(cfg.Every)
			}
		case <-timer:
			timer = nil
			if err := run(true); err != nil {
				return err
			}
		}
	}
}

// watchFiles checks the files given to watch; stdin cannot be watched.
func watchFiles(args []string) ([]string, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: watch requires files", cli.ErrUsage)
	}
	for _, a := range args {
		if a == stdinName {
			return nil, fmt.Errorf("%w: cannot watch stdin", cli.ErrUsage)
		}
	}
	return args, nil
}

// watchDocuments adds the folders of the local documents of sess to w.
// Folders rather than files are watched so that files replaced by editors
// keep being noticed.
func watchDocuments(w *fsnotify.Watcher, sess *docref.Session, watched, dirs map[string]bool) error {
	for _, d := range sess.Documents() {
		p, ok := d.Identity().FilePath()
		if !ok {
			continue
		}
		watched[filepath.Clean(p)] = true
		dir := filepath.Dir(p)
		if dirs[dir] {
			continue
		}
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("could not watch %s: %w", dir, err)
		}
		dirs[dir] = true
	}
	return nil
}
