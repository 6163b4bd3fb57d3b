package main

import (
	"fmt"

	"github.com/plankit/plankit/compiler"
	"github.com/plankit/plankit/compilers"

	"github.com/scott-cotton/cli"
)

func kinds(cfg *KindsConfig, cc *cli.Context, args []string) error {
	for _, k := range compiler.Kinds() {
		c := compilers.ForKind(k)
		if c == nil {
			fmt.Fprintf(cc.Out, "%s\t(no compiler)\n", k)
			continue
		}
		fmt.Fprintf(cc.Out, "%s\t%s\n", k, c.Name())
	}
	return nil
}
