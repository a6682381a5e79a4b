// Package debug provides environment-gated diagnostics for the engine.
// Set STRATA_DEBUG_COMPOSE, STRATA_DEBUG_OVERRIDE, or STRATA_DEBUG_RESOLVE
// to a truthy value to trace the corresponding pass on stderr.
package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Compose  bool
	Override bool
	Resolve  bool
}

var d *debug

func init() {
	d = &debug{}
	d.Compose = boolEnv("STRATA_DEBUG_COMPOSE")
	d.Override = boolEnv("STRATA_DEBUG_OVERRIDE")
	d.Resolve = boolEnv("STRATA_DEBUG_RESOLVE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Compose() bool {
	return d.Compose
}
func Override() bool {
	return d.Override
}
func Resolve() bool {
	return d.Resolve
}

func Logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
}

func JSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err.Error()
	}
	return string(b)
}
