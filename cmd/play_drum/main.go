// Command play_drum triggers the 808 voice live or renders it to a WAV file.
//
// Offline export:
//
//	play_drum -preset punchy -out kick.wav
//
// Live mode triggers the voice on an interval until interrupted; with
// -watch, edits to a preset file are hot-reloaded into the running engine.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"

	drum808 "github.com/cbegin/drum808-go"
)

func main() {
	var (
		sampleRate = flag.Int("sample-rate", drum808.DefaultSampleRate, "sample rate in Hz")
		presetArg  = flag.String("preset", "classic", "built-in preset name (classic|punchy|deep) or path to a preset JSON file")
		note       = flag.String("note", "", "override the oscillator note, e.g. E1, G1, C2")
		patched    = flag.Bool("patched", true, "route the voice through the effects chain")
		outPath    = flag.String("out", "", "render offline to this WAV file instead of playing live")
		seconds    = flag.Float64("seconds", 0, "offline render length in seconds (0 = envelope length)")
		interval   = flag.Duration("interval", 500*time.Millisecond, "live mode: time between triggers")
		watch      = flag.Bool("watch", false, "live mode: hot-reload the preset file on change")
	)
	flag.Parse()

	preset, presetPath, err := resolvePreset(*presetArg)
	if err != nil {
		log.Fatal(err)
	}
	if *note != "" {
		preset.Params.Oscillator.Note = *note
		preset.Params.Oscillator.Frequency = drum808.NoteFrequency(*note)
	}

	if *outPath != "" {
		samples := drum808.RenderSamples(preset.Params, *patched, *sampleRate, *seconds)
		wav := drum808.EncodeWAVInt16LE(samples, *sampleRate)
		if err := os.WriteFile(*outPath, wav, 0o644); err != nil {
			log.Fatalf("write %s: %v", *outPath, err)
		}
		fmt.Printf("wrote %s: %d samples (%.2fs) at %d Hz\n",
			*outPath, len(samples), float64(len(samples))/float64(*sampleRate), *sampleRate)
		return
	}

	engine := drum808.NewEngine(*sampleRate, drum808.WithParameters(preset.Params))
	engine.SetPatched(*patched)
	if err := engine.Start(); err != nil {
		log.Fatalf("audio did not start: %v", err)
	}
	defer engine.Close()

	if *watch {
		if presetPath == "" {
			log.Fatal("-watch requires -preset to be a file path")
		}
		if err := watchPreset(presetPath, engine); err != nil {
			log.Fatalf("watch %s: %v", presetPath, err)
		}
		fmt.Printf("watching %s for changes\n", presetPath)
	}

	fmt.Printf("playing %q every %s (ctrl-c to stop)\n", preset.Name, *interval)
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	engine.Trigger()
	for {
		select {
		case <-ticker.C:
			engine.Trigger()
		case <-signals:
			fmt.Println("exiting")
			return
		}
	}
}

// resolvePreset maps a name to a built-in preset or loads a preset file.
// The returned path is non-empty only for file presets.
func resolvePreset(arg string) (*drum808.Preset, string, error) {
	switch strings.ToLower(strings.TrimSpace(arg)) {
	case "", "classic":
		p := drum808.ClassicPreset()
		return &p, "", nil
	case "punchy":
		p := drum808.PunchyPreset()
		return &p, "", nil
	case "deep":
		p := drum808.DeepPreset()
		return &p, "", nil
	}
	data, err := os.ReadFile(arg)
	if err != nil {
		return nil, "", fmt.Errorf("read preset: %w", err)
	}
	p, err := drum808.ParsePreset(data)
	if err != nil {
		return nil, "", err
	}
	return p, arg, nil
}

// watchPreset re-applies the preset file whenever it is written or renamed.
// Invalid intermediate saves are reported and skipped, never half-applied.
func watchPreset(path string, engine *drum808.Engine) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				// Editors save via rename as often as in-place write.
				if event.Op&(fsnotify.Write|fsnotify.Rename) == 0 {
					continue
				}
				data, err := os.ReadFile(path)
				if err != nil {
					fmt.Fprintf(os.Stderr, "reload: %v\n", err)
					continue
				}
				p, err := drum808.ParsePreset(data)
				if err != nil {
					fmt.Fprintf(os.Stderr, "reload: %v\n", err)
					continue
				}
				engine.ApplyPreset(p)
				fmt.Printf("reloaded preset %q\n", p.Name)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				fmt.Fprintf(os.Stderr, "watch: %v\n", err)
			}
		}
	}()
	return watcher.Add(path)
}
