package main

import (
	"fmt"
	"strings"

	"github.com/scott-cotton/cli"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/strata-config/strata/compose"
	"github.com/strata-config/strata/encode"
	"github.com/strata-config/strata/resolve"
)

// diff resolves two configurations independently and prints a
// line-based diff of their canonical forms.
func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires exactly two files", cli.ErrUsage)
	}
	a, err := resolvedText(args[0])
	if err != nil {
		return err
	}
	b, err := resolvedText(args[1])
	if err != nil {
		return err
	}

	dmp := diffpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)
	for i := range diffs {
		d := &diffs[i]
		prefix := "  "
		switch d.Type {
		case diffpatch.DiffDelete:
			prefix = "- "
		case diffpatch.DiffInsert:
			prefix = "+ "
		}
		for _, line := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			fmt.Fprintln(cc.Out, prefix+line)
		}
	}
	return nil
}

func resolvedText(path string) (string, error) {
	node, err := compose.Load(path)
	if err != nil {
		return "", err
	}
	if err := resolve.Resolve(node); err != nil {
		return "", err
	}
	return encode.String(node)
}
