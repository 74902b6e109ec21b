// Command neonracer-bench drives seeded runs with the autopilot and reports
// how they went. It is used to check tuning changes without playing.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/neon-racer/neon_racer/internal/autopilot"
	"github.com/neon-racer/neon_racer/internal/world"
)

const dt = 1.0 / 60

var (
	colorTitle = color.New(color.FgGreen, color.Bold)
	colorLabel = color.New(color.FgCyan)
	colorAlert = color.New(color.FgRed)
	colorGood  = color.New(color.FgYellow)
	colorDim   = color.New(color.FgHiBlack)
)

func main() {
	runs := flag.Int("runs", 10, "number of runs")
	seconds := flag.Float64("seconds", 120, "simulated time limit per run")
	seed := flag.Uint64("seed", 1, "seed of the first run; run i uses seed+i")
	tuningPath := flag.String("tuning", "", "JSON file overriding gameplay constants")
	cautious := flag.Bool("cautious", false, "park in gaps instead of hunting near misses")
	flag.Parse()

	tuning, err := world.LoadTuningFile(*tuningPath)
	if err != nil {
		colorAlert.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *runs <= 0 || *seconds <= 0 {
		colorAlert.Fprintln(os.Stderr, "runs and seconds must be positive")
		os.Exit(2)
	}

	cfg := autopilot.DefaultConfig()
	style := "hunting"
	if *cautious {
		cfg = autopilot.Cautious()
		style = "cautious"
	}
	colorTitle.Printf("Neon Racer bench: %d runs, %s pilot, %.0f s limit\n", *runs, style, *seconds)

	var total autopilot.RunStats
	best, wrecked := 0, 0
	for i := 0; i < *runs; i++ {
		s := *seed + uint64(i)
		st := autopilot.Drive(cfg, autopilot.NewBenchSim(s, tuning), dt, *seconds)
		st.Seed = s
		printRun(st)

		total.Score += st.Score
		total.Seconds += st.Seconds
		total.Crashes += st.Crashes
		total.NearMisses += st.NearMisses
		total.BestCombo = max(total.BestCombo, st.BestCombo)
		total.PeakTraffic = max(total.PeakTraffic, st.PeakTraffic)
		total.TrafficCap = st.TrafficCap
		total.Spawns.Traffic += st.Spawns.Traffic
		total.Spawns.TrafficDropped += st.Spawns.TrafficDropped
		total.Spawns.Scenery += st.Spawns.Scenery
		total.Spawns.SceneryDropped += st.Spawns.SceneryDropped
		best = max(best, st.Score)
		if st.Finished {
			wrecked++
		}
	}

	n := float64(*runs)
	fmt.Println()
	colorTitle.Println("Summary")
	field("mean score", fmt.Sprintf("%.0f m", float64(total.Score)/n))
	field("best score", fmt.Sprintf("%d m", best))
	field("wrecked", fmt.Sprintf("%d/%d", wrecked, *runs))
	field("crashes/min", fmt.Sprintf("%.2f", float64(total.Crashes)/(total.Seconds/60)))
	field("misses/min", fmt.Sprintf("%.2f", float64(total.NearMisses)/(total.Seconds/60)))
	field("best combo", fmt.Sprintf("x%d", total.BestCombo))
	field("traffic", fmt.Sprintf("%d spawned, %d dropped", total.Spawns.Traffic, total.Spawns.TrafficDropped))
	field("peak cars", fmt.Sprintf("%d of %d pooled", total.PeakTraffic, total.TrafficCap))
	field("scenery", fmt.Sprintf("%d spawned, %d dropped", total.Spawns.Scenery, total.Spawns.SceneryDropped))
}

func field(label, value string) {
	colorLabel.Printf("  %-12s ", label)
	fmt.Println(value)
}

func printRun(st autopilot.RunStats) {
	colorDim.Printf("seed %-6d ", st.Seed)
	colorGood.Printf("%7d m ", st.Score)
	fmt.Printf("%6.1f s  misses %-4d combo x%-3d ", st.Seconds, st.NearMisses, st.BestCombo)
	if st.Finished {
		colorAlert.Printf("wrecked after %d crashes\n", st.Crashes)
		return
	}
	fmt.Printf("survived, %d crashes\n", st.Crashes)
}
