package docref

import (
	"fmt"
	"path"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/signadot/docref/debug"
)

// RefEnv is the environment of When expressions.
type RefEnv struct {
	Ref      string   `expr:"ref"`
	Document string   `expr:"document"`
	Base     string   `expr:"base"`
	Scheme   string   `expr:"scheme"`
	Fragment string   `expr:"fragment"`
	Path     []string `expr:"path"`
	Nested   bool     `expr:"nested"`
	Root     bool     `expr:"root"`
}

func refEnv(r Ref) RefEnv {
	return RefEnv{
		Ref:      r.Ref,
		Document: r.Document.String(),
		Base:     r.Base.String(),
		Scheme:   r.Document.Scheme(),
		Fragment: r.Fragment(),
		Path:     append([]string{}, r.Path...),
		Nested:   r.Nested,
		Root:     r.Root,
	}
}

// WhenPolicy narrows the references resolved by another policy to those for
// which a boolean expression holds.
type WhenPolicy struct {
	Policy
	src string
	prg *vm.Program
}

// When compiles src, an expr language boolean expression over RefEnv, such
// as
//
//	!nested && scheme == "file" && ext(document) in [".yaml", ".yml"]
//
// and returns the policy resolving the references base resolves for which
// src is true.  Expressions failing at run time are false.
func When(src string, base Policy) (*WhenPolicy, error) {
	prg, err := expr.Compile(src, append(exprOpts(), expr.Env(RefEnv{}), expr.AsBool())...)
	if err != nil {
		return nil, fmt.Errorf("compiling %q: %w", src, err)
	}
	return &WhenPolicy{Policy: base, src: src, prg: prg}, nil
}

func exprOpts() []expr.Option {
	return []expr.Option{
		expr.Function("ext", func(params ...any) (any, error) {
			return path.Ext(params[0].(string)), nil
		},
			new(func(string) string)),
		expr.Function("basename", func(params ...any) (any, error) {
			return path.Base(params[0].(string)), nil
		},
			new(func(string) string)),
	}
}

func (w *WhenPolicy) String() string { return w.src }

func (w *WhenPolicy) ShouldResolve(r Ref) bool {
	if !w.Policy.ShouldResolve(r) {
		return false
	}
	res, err := expr.Run(w.prg, refEnv(r))
	if err != nil {
		if debug.Resolve() {
			debug.Logf("%q on %s: %v\n", w.src, r.Ref, err)
		}
		return false
	}
	ok, _ := res.(bool)
	return ok
}
