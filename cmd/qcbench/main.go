// Command qcbench runs the default optimization pipeline (FastTMerge,
// InternalHOpt, FastTODD) over every .qc file in a directory and renders
// an HTML report comparing T-count and H-count before and after.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/VivienVandaele/quantum-circuit-optimization/circuit"
	"github.com/VivienVandaele/quantum-circuit-optimization/hopt"
	"github.com/VivienVandaele/quantum-circuit-optimization/tmerge"
)

type benchRow struct {
	name         string
	tBefore      int
	tAfter       int
	hBefore      int
	hAfter       int
	internalH    int
	internalHBef int
}

func runPipeline(path string) (before, after *circuit.Circuit, err error) {
	before, _, _, err = circuit.FromQC(path)
	if err != nil {
		return nil, nil, err
	}
	c := tmerge.FastTMerge(before)
	c = hopt.InternalHOpt(c)
	c = c.HadamardGadgetization()
	after, err = c.TOpt("FastTODD")
	if err != nil {
		return nil, nil, err
	}
	return before, after, nil
}

func collectRows(dir string) ([]benchRow, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("qcbench: reading %s: %w", dir, err)
	}
	var rows []benchRow
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".qc" {
			continue
		}
		path := filepath.Join(dir, e.Name())
		before, after, err := runPipeline(path)
		if err != nil {
			log.Printf("qcbench: skipping %s: %v", e.Name(), err)
			continue
		}
		hBef, hIntBef, tBef := before.Statistics()
		hAft, hInt, tAft := after.Statistics()
		rows = append(rows, benchRow{
			name:         e.Name(),
			tBefore:      tBef,
			tAfter:       tAft,
			hBefore:      hBef,
			hAfter:       hAft,
			internalH:    hInt,
			internalHBef: hIntBef,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].name < rows[j].name })
	return rows, nil
}

func barItems(vals []int) []opts.BarData {
	out := make([]opts.BarData, len(vals))
	for i, v := range vals {
		out[i] = opts.BarData{Value: v}
	}
	return out
}

func newComparisonChart(title string, names []string, before, after []int) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "1200px", Height: "600px"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(names).
		AddSeries("before", barItems(before)).
		AddSeries("after", barItems(after)).
		SetSeriesOptions(charts.WithLabelOpts(opts.Label{Show: opts.Bool(false)}))
	return bar
}

func main() {
	dir := flag.String("dir", "circuits", "directory of .qc fixtures to benchmark")
	out := flag.String("out", "qcbench_report.html", "output HTML report path")
	flag.Parse()

	rows, err := collectRows(*dir)
	if err != nil {
		log.Fatalf("qcbench: %v", err)
	}
	if len(rows) == 0 {
		log.Fatalf("qcbench: no .qc fixtures found in %s", *dir)
	}

	var names []string
	var tBefore, tAfter, hBefore, hAfter []int
	for _, r := range rows {
		names = append(names, r.name)
		tBefore = append(tBefore, r.tBefore)
		tAfter = append(tAfter, r.tAfter)
		hBefore = append(hBefore, r.hBefore)
		hAfter = append(hAfter, r.hAfter)
	}

	page := components.NewPage()
	page.AddCharts(
		newComparisonChart("T-count before/after", names, tBefore, tAfter),
		newComparisonChart("H-count before/after", names, hBefore, hAfter),
	)

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("qcbench: creating %s: %v", *out, err)
	}
	defer f.Close()
	if err := page.Render(f); err != nil {
		log.Fatalf("qcbench: rendering report: %v", err)
	}

	var totalTBefore, totalTAfter int
	for _, r := range rows {
		totalTBefore += r.tBefore
		totalTAfter += r.tAfter
	}
	fmt.Printf("Benchmarked %d circuits. Total T-count %d -> %d\n", len(rows), totalTBefore, totalTAfter)
	fmt.Println("Report:", *out)
}
