// Command onepoleinfo prints the coefficient and magnitude response of a
// one-pole filter setting across the 20 Hz to 20 kHz display range.
//
// Usage:
//
//	onepoleinfo [flags]
//
// Examples:
//
//	onepoleinfo -cutoff 1000
//	onepoleinfo -mode highshelf -gain 6 -cutoff 2500 -rate 44100
//	onepoleinfo -normalized 0.5 -measure
//	onepoleinfo -list
package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-onepole/dsp/core"
	"github.com/cwbudde/algo-onepole/dsp/filter/onepole"
	"github.com/cwbudde/algo-onepole/dsp/param"
	"github.com/cwbudde/algo-onepole/measure/response"
)

const measureFFTSize = 1 << 16

// octaveBands are the ISO octave center frequencies shown in the table.
var octaveBands = []float64{31.5, 63, 125, 250, 500, 1000, 2000, 4000, 8000, 16000}

// tableFrequencies returns the display range edges and the octave bands
// between them, limited to frequencies below Nyquist.
func tableFrequencies(sampleRate float64) []float64 {
	freqs := make([]float64, 0, len(octaveBands)+2)
	freqs = append(freqs, param.DisplayMinHz)

	for _, hz := range octaveBands {
		if hz > param.DisplayMinHz && hz < param.DisplayMaxHz {
			freqs = append(freqs, hz)
		}
	}

	freqs = append(freqs, param.DisplayMaxHz)

	n := 0
	for _, hz := range freqs {
		if hz < sampleRate/2 {
			freqs[n] = hz
			n++
		}
	}

	return freqs[:n]
}

type settings struct {
	sampleRate float64
	cutoffHz   float64
	mode       onepole.Mode
	gainDB     float64
	measure    bool
}

func main() {
	cutoff := flag.Float64("cutoff", param.DefaultCutoffHz, "cutoff frequency in Hz")
	normalized := flag.Float64("normalized", math.NaN(), "cutoff as a normalized parameter value in [0, 1] (overrides -cutoff)")
	rate := flag.Float64("rate", core.FallbackSampleRate, "sample rate in Hz")
	modeName := flag.String("mode", onepole.ModeLowpass.String(), "filter mode")
	gain := flag.Float64("gain", 0, "shelf gain in dB")
	measure := flag.Bool("measure", false, "also measure the response from an impulse")
	list := flag.Bool("list", false, "list available modes")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: onepoleinfo [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Prints coefficient and octave-band response of a one-pole filter.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  onepoleinfo -cutoff 1000\n")
		fmt.Fprintf(os.Stderr, "  onepoleinfo -mode highshelf -gain 6 -cutoff 2500 -rate 44100\n")
		fmt.Fprintf(os.Stderr, "  onepoleinfo -normalized 0.5 -measure\n")
	}
	flag.Parse()

	if *list {
		for _, m := range onepole.Modes() {
			fmt.Println(m)
		}
		return
	}

	mode, err := onepole.ParseMode(*modeName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v (use -list to see available)\n", err)
		os.Exit(1)
	}

	s := settings{
		sampleRate: *rate,
		cutoffHz:   *cutoff,
		mode:       mode,
		gainDB:     param.ClampGainDB(*gain),
		measure:    *measure,
	}
	if !math.IsNaN(*normalized) {
		s.cutoffHz = param.CutoffFromNormalized(*normalized)
	}

	if err := printInfo(os.Stdout, s); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func printInfo(w io.Writer, s settings) error {
	f, err := onepole.New(s.sampleRate,
		onepole.WithCutoffHz(onepole.ClampCutoff(s.cutoffHz, s.sampleRate)),
		onepole.WithMode(s.mode),
		onepole.WithGainDB(s.gainDB),
		onepole.WithChannels(1),
	)
	if err != nil {
		return err
	}

	c := f.Coefficient()
	if _, err := fmt.Fprintf(w, "mode=%s cutoff=%.3f Hz rate=%g Hz gain=%.2f dB\na=%.9f g=%.9f\n\n",
		f.Mode(), f.CutoffHz(), f.SampleRate(), f.GainDB(), c.A, c.G); err != nil {
		return err
	}

	var measured *response.Result
	if s.measure {
		measured, err = response.Measure(f, measureFFTSize, core.WithSampleRate(s.sampleRate))
		if err != nil {
			return err
		}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := "Freq [Hz]\tMagnitude [dB]\tPhase [deg]"
	rule := "---------\t--------------\t-----------"
	if measured != nil {
		header += "\tMeasured [dB]"
		rule += "\t-------------"
	}

	if _, err := fmt.Fprintf(tw, "%s\n%s\n", header, rule); err != nil {
		return err
	}

	for _, hz := range tableFrequencies(s.sampleRate) {
		row := fmt.Sprintf("%g\t%.3f\t%.2f", hz, f.MagnitudeDB(hz), f.Phase(hz)*180/math.Pi)
		if measured != nil {
			row += fmt.Sprintf("\t%.3f", measured.At(hz))
		}

		if _, err := fmt.Fprintln(tw, row); err != nil {
			return err
		}
	}

	return tw.Flush()
}
