package main

import (
	"fmt"
	"os"
	"time"

	"github.com/delaneyj/reactive/reactive"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
)

type scenario struct {
	name       string
	entries    int
	iterations int
}

var scenarios = []scenario{
	{"small map", 8, 10_000},
	{"medium map", 256, 10_000},
	{"large map", 4_096, 2_000},
	{"sparse set mutation", 64, 50_000},
	{"dense array iteration", 1_024, 5_000},
}

func main() {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"scenario", "entries", "iterations", "elapsed", "ops/sec"})

	for _, sc := range scenarios {
		elapsed := run(sc)
		opsPerSec := float64(sc.iterations) / elapsed.Seconds()
		table.Append([]string{
			sc.name,
			humanize.Comma(int64(sc.entries)),
			humanize.Comma(int64(sc.iterations)),
			elapsed.String(),
			humanize.Comma(int64(opsPerSec)),
		})
	}

	table.Render()
}

// run exercises the mutation-and-iteration-trigger paths of MapMap,
// SetMap, and Array directly, replacing the teacher's named
// signal-graph scenarios with container scenarios this port actually
// has. Every scenario runs the same workload and differs only in entries
// and iterations; the scenario names are labels. The timed loop sets map
// keys and adds/deletes set members; the Array is only filled during
// setup, outside the timed loop.
func run(sc scenario) time.Duration {
	sys := reactive.NewSystem()
	m := reactive.NewMapMap(sys)
	s := reactive.NewSetMap(sys)
	arr := reactive.NewArray(sys, nil)

	var seenSize, seenCard, seenLen int
	reactive.NewEffect(sys, func() { seenSize = m.Size() }, nil)
	reactive.NewEffect(sys, func() { seenCard = s.Size() }, nil)
	reactive.NewEffect(sys, func() { seenLen = arr.Len() }, nil)

	for i := 0; i < sc.entries; i++ {
		m.Set(fmt.Sprintf("k%d", i), i)
		s.Add(i)
		arr.Push(i)
	}

	start := time.Now()
	for i := 0; i < sc.iterations; i++ {
		key := fmt.Sprintf("k%d", i%sc.entries)
		m.Set(key, i)
		s.Add(i % sc.entries)
		s.Delete(i % sc.entries)
	}
	elapsed := time.Since(start)

	_ = seenSize
	_ = seenCard
	_ = seenLen
	return elapsed
}
