// Command qcopt reads a .qc circuit, runs a configurable pipeline of
// T-count reduction passes over it, and writes the optimized circuit back
// out as .qc.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/VivienVandaele/quantum-circuit-optimization/circuit"
	"github.com/VivienVandaele/quantum-circuit-optimization/hopt"
	"github.com/VivienVandaele/quantum-circuit-optimization/internal/fingerprint"
	"github.com/VivienVandaele/quantum-circuit-optimization/internal/telemetry"
	"github.com/VivienVandaele/quantum-circuit-optimization/prof"
	"github.com/VivienVandaele/quantum-circuit-optimization/tmerge"
)

func help() {
	fmt.Println("qcopt [OPTIONS] file.qc")
	fmt.Println()
	fmt.Println("Optional arguments (case-insensitive, no order):")
	fmt.Println("'BBMerge': runs the BBMerge algorithm")
	fmt.Println("'FastTMerge': runs the FastTMerge algorithm")
	fmt.Println("'InternalHOpt': runs the InternalHOpt algorithm")
	fmt.Println("'TOHPE': runs the TOHPE algorithm")
	fmt.Println("'FastTODD': runs the FastTODD algorithm")
	fmt.Println("'-v': print pass timings and a circuit fingerprint")
	os.Exit(1)
}

func hasSuffixFold(args []string, suffix string) bool {
	for _, a := range args {
		if strings.HasSuffix(strings.ToLower(a), suffix) {
			return true
		}
	}
	return false
}

func main() {
	args := os.Args[1:]
	if hasSuffixFold(args, "help") {
		help()
	}

	fileIndex := -1
	for i, a := range args {
		if strings.HasSuffix(a, ".qc") {
			fileIndex = i
			break
		}
	}
	if fileIndex < 0 {
		fmt.Println("No .qc file provided")
		help()
	}

	doBBMerge := hasSuffixFold(args, "bbmerge")
	doFastTMerge := hasSuffixFold(args, "fasttmerge")
	doInternalHOpt := hasSuffixFold(args, "internalhopt")
	doTohpe := hasSuffixFold(args, "tohpe")
	doFastTodd := hasSuffixFold(args, "fasttodd")
	verbose := hasSuffixFold(args, "-v")

	if !(doBBMerge || doFastTMerge || doInternalHOpt || doTohpe || doFastTodd) {
		doFastTMerge = true
		doInternalHOpt = true
		doFastTodd = true
	}

	inputPath := args[fileIndex]
	filename := filepath.Base(inputPath)
	outputDir := "circuits/outputs"
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		log.Fatalf("qcopt: creating output directory: %v", err)
	}
	outputPath := filepath.Join(outputDir, filename)

	c, header, mapping, err := circuit.FromQC(inputPath)
	if err != nil {
		log.Fatalf("qcopt: reading %s: %v", inputPath, err)
	}
	log.Printf("File %s processed", filename)
	hCount0, internalHCount0, tCount0 := c.Statistics()
	fmt.Printf("Initial circuit:\nH-count: %d\nInternal H-count: %d\nT-count: %d\n", hCount0, internalHCount0, tCount0)

	if doBBMerge {
		log.Printf("Running BBMerge algorithm")
		start := time.Now()
		c = tmerge.BBMerge(c)
		prof.Track(start, prof.BBMerge)
	}
	if doFastTMerge {
		log.Printf("Running FastTMerge algorithm")
		start := time.Now()
		c = tmerge.FastTMerge(c)
		prof.Track(start, prof.FastTMerge)
	}
	if doInternalHOpt {
		log.Printf("Running InternalHOpt algorithm")
		start := time.Now()
		c = hopt.InternalHOpt(c)
		prof.Track(start, prof.InternalHOpt)
	}
	if doTohpe || doFastTodd {
		log.Printf("Internal Hadamard gates gadgetization")
		c = c.HadamardGadgetization()
	}
	if doTohpe {
		log.Printf("Running TOHPE algorithm")
		start := time.Now()
		c, err = c.TOpt("TOHPE")
		if err != nil {
			log.Fatalf("qcopt: TOHPE: %v", err)
		}
		prof.Track(start, prof.TOHPE)
	}
	if doFastTodd {
		log.Printf("Running FastTODD algorithm")
		start := time.Now()
		c, err = c.TOpt("FastTODD")
		if err != nil {
			log.Fatalf("qcopt: FastTODD: %v", err)
		}
		prof.Track(start, prof.FastTODD)
	}

	hCount, internalHCount, tCount := c.Statistics()
	fmt.Printf("\nOptimized circuit:\nH-count: %d\nInternal H-count: %d\nT-count: %d\n", hCount, internalHCount, tCount)

	if err := c.ToQC(outputPath, header, mapping); err != nil {
		log.Fatalf("qcopt: writing %s: %v", outputPath, err)
	}

	if verbose {
		digest := fingerprint.Circuit(c)
		fmt.Printf("\nCircuit fingerprint: %x\n", digest)
		fmt.Print(prof.Report(prof.SnapshotAndReset()))
		fmt.Println("Search counters:")
		for name, n := range telemetry.SnapshotAndReset() {
			fmt.Printf("  %-28s %d\n", name, n)
		}
	}
}
