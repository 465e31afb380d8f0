// Command filterunit runs the resonant filter unit offline.
//
// Usage:
//
//	filterunit render [flags] IN.wav OUT.wav
//	filterunit response [flags]
//	filterunit presets
//
// Examples:
//
//	filterunit render --cutoff 800 --resonance 9 in.wav out.wav
//	filterunit render --preset warm --at 48000:cutoff=4000 in.wav out.wav
//	filterunit response --variant svf --resonance 12 --measured
//	filterunit presets
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
