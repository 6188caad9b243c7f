//go:build !no_pprof

package main

import (
	"flag"
	"os"
	"runtime"
	"runtime/pprof"

	"fortio.org/log"
)

var (
	cpuprofile = flag.String("profile-cpu", "", "write cpu profile of the word counting to `file`")
	memprofile = flag.String("profile-mem", "", "write heap profile to `file` once the words are printed")
	cpuFile    *os.File
)

func init() {
	hookBefore = startCPUProfile
	hookAfter = stopProfiles
}

func startCPUProfile() int {
	if *cpuprofile == "" {
		return 0
	}
	f, err := os.Create(*cpuprofile)
	if err != nil {
		return log.FErrf("can't create cpu profile: %v", err)
	}
	if err = pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return log.FErrf("can't start cpu profile: %v", err)
	}
	cpuFile = f
	log.Infof("Writing cpu profile to %s", *cpuprofile)
	return 0
}

func stopProfiles() int {
	if cpuFile != nil {
		pprof.StopCPUProfile()
		cpuFile.Close()
	}
	if *memprofile == "" {
		return 0
	}
	f, err := os.Create(*memprofile)
	if err != nil {
		return log.FErrf("can't create mem profile: %v", err)
	}
	defer f.Close()
	runtime.GC() // up to date allocation statistics, trie already released.
	if err = pprof.WriteHeapProfile(f); err != nil {
		return log.FErrf("can't write mem profile: %v", err)
	}
	log.Infof("Wrote memory profile to %s", *memprofile)
	return 0
}
