package main

import (
	"io"
	"os"

	"github.com/plankit/plankit/encode"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
)

type MainConfig struct {
	Color bool `cli:"name=color desc='encode with color'"`
	Kind  bool `cli:"name=kind desc='print the computed problem kind'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.WithKind(cfg.Kind),
	}
	if cfg.Color {
		return append(res, encode.WithColors(encode.NewColors()))
	}
	colorSet := false
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		colorSet = opt.Value != nil
		break
	}
	if colorSet {
		return res
	}
	f, ok := w.(*os.File)
	if !ok {
		return res
	}
	if isatty.IsTerminal(f.Fd()) {
		res = append(res, encode.WithColors(encode.NewColors()))
	}
	return res
}

type ShowConfig struct {
	*MainConfig

	Show *cli.Command
}

type CompileConfig struct {
	*MainConfig

	Diff  bool `cli:"name=diff desc='show a text diff after each stage'"`
	Plan  bool `cli:"name=plan desc='map a demo plan of the compiled problem back'"`
	Kinds []string

	Compile *cli.Command
}

type KindsConfig struct {
	*MainConfig

	Kinds *cli.Command
}
