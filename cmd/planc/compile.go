package main

import (
	"bytes"
	"fmt"

	"github.com/plankit/plankit/compiler"
	"github.com/plankit/plankit/compilers"
	"github.com/plankit/plankit/encode"
	"github.com/plankit/plankit/model"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
	"github.com/scott-cotton/cli"
)

func (cfg *CompileConfig) kindOpt(cc *cli.Context, a string) (any, error) {
	if _, err := compiler.ParseKind(a); err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	cfg.Kinds = append(cfg.Kinds, a)
	return a, nil
}

func compile(cfg *CompileConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Compile.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: compile expects exactly one demo problem", cli.ErrUsage)
	}
	p, err := demoProblem(args[0])
	if err != nil {
		return err
	}
	kinds, err := requestedKinds(cfg, p)
	if err != nil {
		return err
	}

	cur := p
	var maps []compiler.MapBackFunc
	for _, k := range kinds {
		c := compilers.ForKind(k)
		if c == nil {
			return fmt.Errorf("%w: no compiler registered for %s", cli.ErrUsage, k)
		}
		res, err := c.Compile(cur, k)
		if err != nil {
			return fmt.Errorf("%s: %w", c.Name(), err)
		}
		if res.Problem == nil {
			fmt.Fprintf(cc.Out, "%s: problem judged infeasible, stopping\n", c.Name())
			return nil
		}
		if cfg.Diff {
			fmt.Fprintf(cc.Out, "--- %s (%s)\n", c.Name(), k)
			printDiff(cfg, cc, cur, res.Problem)
		}
		maps = append(maps, res.MapBack)
		cur = res.Problem
	}
	if !cfg.Diff {
		if err := encode.Problem(cc.Out, cur, cfg.encOpts(cc.Out)...); err != nil {
			return err
		}
	}
	if cfg.Plan {
		return mapBackDemo(cc, cur, maps)
	}
	return nil
}

// requestedKinds resolves -k flags, or falls back to the stages of the
// canonical order applicable to the problem's features.
func requestedKinds(cfg *CompileConfig, p *model.Problem) ([]compiler.Kind, error) {
	if len(cfg.Kinds) > 0 {
		res := make([]compiler.Kind, len(cfg.Kinds))
		for i, s := range cfg.Kinds {
			k, err := compiler.ParseKind(s)
			if err != nil {
				return nil, err
			}
			res[i] = k
		}
		return res, nil
	}
	var res []compiler.Kind
	pk := p.Kind()
	for _, k := range compilers.DefaultOrder() {
		c := compilers.ForKind(k)
		if c == nil {
			continue
		}
		next := c.ResultingKind(pk, k)
		if next == pk && k != compiler.Grounding {
			continue
		}
		res = append(res, k)
		pk = next
	}
	return res, nil
}

// mapBackDemo takes every action of the compiled problem as a one-step
// plan and prints its translation to the original problem.
func mapBackDemo(cc *cli.Context, compiled *model.Problem, maps []compiler.MapBackFunc) error {
	mb := func(ai *model.ActionInstance) (*model.ActionInstance, error) {
		cur := ai
		for i := len(maps) - 1; i >= 0; i-- {
			if cur == nil {
				return nil, nil
			}
			next, err := maps[i](cur)
			if err != nil {
				return nil, err
			}
			cur = next
		}
		return cur, nil
	}
	for _, a := range compiled.Actions() {
		if len(a.Parameters()) > 0 {
			continue
		}
		ai := model.NewActionInstance(a)
		orig, err := mb(ai)
		if err != nil {
			return err
		}
		if orig == nil {
			fmt.Fprintf(cc.Out, "%s -> (synthetic)\n", ai)
			continue
		}
		fmt.Fprintf(cc.Out, "%s -> %s\n", ai, orig)
	}
	return nil
}

func printDiff(cfg *CompileConfig, cc *cli.Context, from, to *model.Problem) {
	var a, b bytes.Buffer
	encode.Problem(&a, from, encode.WithKind(cfg.Kind))
	encode.Problem(&b, to, encode.WithKind(cfg.Kind))
	dmp := diffpatch.New()
	diffs := dmp.DiffMain(a.String(), b.String(), true)
	diffs = dmp.DiffCleanupSemantic(diffs)
	for _, d := range diffs {
		switch d.Type {
		case diffpatch.DiffDelete:
			if cfg.Color {
				fmt.Fprint(cc.Out, color.RedString("%s", d.Text))
			} else {
				fmt.Fprintf(cc.Out, "-%s", d.Text)
			}
		case diffpatch.DiffInsert:
			if cfg.Color {
				fmt.Fprint(cc.Out, color.GreenString("%s", d.Text))
			} else {
				fmt.Fprintf(cc.Out, "+%s", d.Text)
			}
		case diffpatch.DiffEqual:
			fmt.Fprint(cc.Out, d.Text)
		}
	}
	fmt.Fprintln(cc.Out)
}
