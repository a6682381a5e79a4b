package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/strata-config/strata/encode"
)

type MainConfig struct {
	Color bool   `cli:"name=color desc='force colored output'"`
	NoRun bool   `cli:"name=norun desc='do not create the run directory'"`
	Job   string `cli:"name=job desc='job name recorded at strata.job.name'"`

	ConfigFiles []string
	Env         map[string]any

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) configOpt(_ *cli.Context, a string) (any, error) {
	cfg.ConfigFiles = append(cfg.ConfigFiles, a)
	return nil, nil
}

func (cfg *MainConfig) envOpt(_ *cli.Context, a string) (any, error) {
	name, val, ok := strings.Cut(a, "=")
	if !ok {
		return nil, fmt.Errorf("%w: -e requires name=value, got %q", cli.ErrUsage, a)
	}
	cfg.Env[name] = val
	return nil, nil
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	var res []encode.EncodeOption
	if cfg.Color {
		return append(res, encode.EncodeColors(encode.NewColors()))
	}
	f, ok := w.(*os.File)
	if !ok {
		return res
	}
	if isatty.IsTerminal(f.Fd()) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

// configFiles returns the files to compose: -c flags, then a local
// config.yaml when nothing was given and one exists.
func (cfg *MainConfig) configFiles() []string {
	if len(cfg.ConfigFiles) > 0 {
		return cfg.ConfigFiles
	}
	if _, err := os.Stat("config.yaml"); err == nil {
		return []string{"config.yaml"}
	}
	fmt.Fprintln(os.Stderr, "warning: no configuration files provided; starting from an empty mapping")
	return nil
}

type ComposeConfig struct {
	*MainConfig

	Compose *cli.Command
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}

type ViewConfig struct {
	*MainConfig

	View *cli.Command
}

type DiffConfig struct {
	*MainConfig

	Diff *cli.Command
}

type PatchConfig struct {
	*MainConfig
	File string `cli:"name=p desc='patch file holding an RFC 6902 JSON patch'"`

	Patch *cli.Command
}
