package main

import (
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/delaneyj/reactive/reactive"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
)

var (
	ww    = []int{1, 10, 100, 1_000}
	hh    = []int{1, 10, 100, 1_000}
	iters = 100
)

func main() {
	f, err := os.Create("default.pgo")
	if err != nil {
		log.Fatal(err)
	}
	pprof.StartCPUProfile(f)
	defer pprof.StopCPUProfile()

	log.Printf("warming up")
	benchmarkComputedChains(true)
}

// benchmarkComputedChains builds w*h grids of object-backed computed
// chains feeding one effect each, then times repeated writes to the
// root key. Grounded on the teacher's own propagate benchmark, which
// shaped the same w/h grid around its own typed signal chains.
func benchmarkComputedChains(shouldRender bool) {
	tbl := table.NewWriter()
	tbl.SetTitle("Reactive Computed Chains")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})

	for _, w := range ww {
		for _, h := range hh {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})

			sys := reactive.NewSystem()
			src := reactive.NewObject(sys, map[string]any{"n": 1})

			for i := 0; i < w; i++ {
				var last any = src
				for j := 0; j < h; j++ {
					prev := last
					last = reactive.NewComputed(sys, func() int {
						return readInt(prev) + 1
					})
				}
				reactive.NewEffect(sys, func() {
					readInt(last)
				}, nil)
			}

			for i := 0; i < iters; i++ {
				start := time.Now()
				src.Set("n", src.Get("n").(int)+1)
				tach.AddTime(time.Since(start))
			}

			calc := tach.Calc()
			tbl.AppendRows([]table.Row{
				{
					fmt.Sprintf("propagate: %d * %d", w, h),
					calc.Time.Avg,
					calc.Time.Min,
					calc.Time.P75,
					calc.Time.P99,
					calc.Time.Max,
				},
			})
		}
	}

	if shouldRender {
		tbl.Render()
	}
}

func readInt(x any) int {
	switch v := x.(type) {
	case *reactive.Object:
		return v.Get("n").(int)
	case *reactive.Computed[int]:
		return v.Value()
	default:
		panic("unknown benchmark node type")
	}
}
