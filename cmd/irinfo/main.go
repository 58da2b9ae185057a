// Command irinfo prints format and room-acoustic metrics of WAV impulse
// responses.
//
// Usage:
//
//	irinfo [flags] file.wav ...
//
// For each file it prints the decoded format followed by a per-channel
// table: peak level plus the ISO 3382 metrics (RT60, EDT, clarity,
// definition, centre time).
//
// Examples:
//
//	irinfo hall.wav
//	irinfo -channel 1 hall.wav plate.wav
//	irinfo -normalize spring.wav
//	irinfo -metrics=false *.wav
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-audiograph/dsp/core"
	"github.com/cwbudde/algo-audiograph/measure/ir"
	"github.com/cwbudde/algo-audiograph/sample/wavio"
)

func main() {
	channel := flag.Int("channel", -1, "analyze only this channel (default: all channels)")
	normalize := flag.Bool("normalize", false, "peak-normalize the file before analysis")
	metrics := flag.Bool("metrics", true, "include room-acoustic metrics per channel")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: irinfo [flags] file.wav ...\n\n")
		fmt.Fprintf(os.Stderr, "Prints format and room-acoustic metrics of WAV impulse responses.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  irinfo hall.wav\n")
		fmt.Fprintf(os.Stderr, "  irinfo -channel 1 hall.wav plate.wav\n")
		fmt.Fprintf(os.Stderr, "  irinfo -normalize -metrics=false spring.wav\n")
	}
	flag.Parse()

	files := flag.Args()
	if len(files) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	failed := false
	for i, path := range files {
		if i > 0 {
			fmt.Println()
		}
		if err := report(path, *channel, *normalize, *metrics); err != nil {
			fmt.Fprintf(os.Stderr, "error: %s: %v\n", path, err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func report(path string, channel int, normalize, withMetrics bool) error {
	var opts []wavio.Option
	if normalize {
		opts = append(opts, wavio.WithNormalize(1))
	}

	res, info, err := wavio.LoadFile(path, opts...)
	if err != nil {
		return err
	}

	seconds := float64(res.Frames()) / float64(info.SampleRate)
	fmt.Printf("%s: %d Hz, %d ch, %d-bit, %d frames (%.3f s)\n",
		path, info.SampleRate, info.SourceChannels, info.SourceBitDepth, res.Frames(), seconds)

	channels := make([]int, 0, res.Channels())
	if channel < 0 {
		for ch := range res.Channels() {
			channels = append(channels, ch)
		}
	} else {
		if channel >= res.Channels() {
			return fmt.Errorf("channel %d out of range (file has %d)", channel, res.Channels())
		}
		channels = append(channels, channel)
	}

	analyzer := ir.NewAnalyzer(float64(info.SampleRate))

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if withMetrics {
		fmt.Fprintf(tw, "Ch\tPeak\tRT60 [s]\tEDT [s]\tC50 [dB]\tC80 [dB]\tD50\tTs [ms]\n")
		fmt.Fprintf(tw, "--\t----\t--------\t-------\t--------\t--------\t---\t-------\n")
	} else {
		fmt.Fprintf(tw, "Ch\tPeak\tPeak [dBFS]\tDC\tEnergy\n")
		fmt.Fprintf(tw, "--\t----\t-----------\t--\t------\n")
	}

	for _, ch := range channels {
		data, err := ir.ChannelSamples(res, ch)
		if err != nil {
			if errors.Is(err, ir.ErrSilentIR) {
				fmt.Fprintf(os.Stderr, "warning: %s: channel %d is silent\n", path, ch)
				continue
			}
			return err
		}

		peak := vecmath.MaxAbs(data)

		if !withMetrics {
			dc := vecmath.Sum(data) / float64(len(data))
			energy := vecmath.DotProduct(data, data)
			fmt.Fprintf(tw, "%d\t%.4f\t%.1f\t%+.2e\t%.4g\n",
				ch, peak, core.LinearToDB(peak), dc, energy)
			continue
		}

		m, err := analyzer.Analyze(data)
		if err != nil {
			return err
		}

		fmt.Fprintf(tw, "%d\t%.4f\t%.2f\t%.2f\t%.1f\t%.1f\t%.3f\t%.1f\n",
			ch, peak, m.RT60, m.EDT, m.C50, m.C80, m.D50, m.CenterTime*1000)
	}

	return tw.Flush()
}
