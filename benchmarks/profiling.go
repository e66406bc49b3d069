package benchmarks

import (
	"fmt"
	"io"
	"os"
	"path"
	"runtime/pprof"

	"github.com/zeu5/mdp-dp-rl/util"
)

// startProfiling starts a CPU profile when one was requested. The
// returned function stops it and is never nil.
func startProfiling(out io.Writer) (func(), error) {
	if cpuprofile == "" {
		return func() {}, nil
	}
	if err := util.EnsureDir(saveFile); err != nil {
		return nil, err
	}
	cpuProfPath := path.Join(saveFile, cpuprofile)
	fmt.Fprintln(out, "Profiling CPU to", cpuProfPath)
	f, err := os.Create(cpuProfPath)
	if err != nil {
		return nil, fmt.Errorf("could not create CPU profile: %w", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return nil, fmt.Errorf("could not start CPU profile: %w", err)
	}
	return func() {
		pprof.StopCPUProfile()
		f.Close()
	}, nil
}
