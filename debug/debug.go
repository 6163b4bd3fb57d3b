package debug

import (
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Ground   bool
	Compile  bool
	Pipeline bool
	Sat      bool
	Eval     bool
}

var d *debug

func init() {
	d = &debug{}
	d.Ground = boolEnv("PLANKIT_DEBUG_GROUND")
	d.Compile = boolEnv("PLANKIT_DEBUG_COMPILE")
	d.Pipeline = boolEnv("PLANKIT_DEBUG_PIPELINE")
	d.Sat = boolEnv("PLANKIT_DEBUG_SAT")
	d.Eval = boolEnv("PLANKIT_DEBUG_EVAL")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Ground() bool {
	return d.Ground
}
func Compile() bool {
	return d.Compile
}
func Pipeline() bool {
	return d.Pipeline
}
func Sat() bool {
	return d.Sat
}
func Eval() bool {
	return d.Eval
}

func Logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
}
