package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/Behrtron/pyre/internal/viewer"
)

func main() {
	presetPath := flag.String("preset", "", "emitter preset YAML (default: embedded fire scene)")
	seedFlag := flag.Uint64("seed", 0, "RNG seed (0 = from clock; PYRE_SEED overrides)")
	flag.Parse()

	seed := *seedFlag
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	if s := os.Getenv("PYRE_SEED"); s != "" {
		if v, err := strconv.ParseUint(s, 10, 64); err == nil {
			seed = v
		}
	}

	if err := viewer.Run(viewer.Options{Seed: seed, PresetPath: *presetPath}); err != nil {
		fmt.Fprintf(os.Stderr, "pyre: %v\n", err)
		os.Exit(1)
	}
}
