package main

import (
	"fmt"

	"github.com/plankit/plankit/encode"

	"github.com/scott-cotton/cli"
)

func show(cfg *ShowConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Show.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		fmt.Fprintf(cc.Out, "demo problems:\n")
		for _, n := range demoNames() {
			fmt.Fprintf(cc.Out, "\t- %s\n", n)
		}
		return nil
	}
	for i, name := range args {
		p, err := demoProblem(name)
		if err != nil {
			return err
		}
		if err := encode.Problem(cc.Out, p, cfg.encOpts(cc.Out)...); err != nil {
			return err
		}
		if i < len(args)-1 {
			fmt.Fprintln(cc.Out, "---")
		}
	}
	return nil
}
