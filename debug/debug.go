package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Resolve bool
	Fetch   bool
	Splice  bool
}

var d *debug

func init() {
	d = &debug{}
	d.Resolve = boolEnv("DOCREF_DEBUG_RESOLVE")
	d.Fetch = boolEnv("DOCREF_DEBUG_FETCH")
	d.Splice = boolEnv("DOCREF_DEBUG_SPLICE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Resolve() bool {
	return d.Resolve
}
func Fetch() bool {
	return d.Fetch
}
func Splice() bool {
	return d.Splice
}

func Logf(f string, args ...any) {
	fmt.Fprintf(os.Stderr, f, args...)
}

func LogAny(v any) {
	d, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", v)
		return
	}
	os.Stderr.Write(append(d, '\n'))
}
