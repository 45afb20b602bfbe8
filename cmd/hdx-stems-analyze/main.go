/*
 * Copyright (c) 2025 Hardiyanto Y -Ebiet.
 * This software is part of the HDX (Hardix Audio) project.
 * This code is provided "as is", without warranty of any kind.
 */

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"hdxstems/internal/codec"
	"hdxstems/internal/config"
)

const (
	version_major = 1
	version_minor = 0
	app_name      = "HDX-Stems-Analyze"
	general_usage = "Usage: ./hdx-stems-analyze -file <stem audio> [-buckets 200] [-threshold 0.3] [-stereo] [-spectrogram out.png]"
)

type report struct {
	File        string            `json:"file"`
	Format      string            `json:"format"`
	Fingerprint string            `json:"fingerprint"`
	SampleRate  int               `json:"sample_rate"`
	Channels    int               `json:"channels"`
	Duration    float64           `json:"duration"`
	Mono        []float64         `json:"mono,omitempty"`
	Left        []float64         `json:"left,omitempty"`
	Right       []float64         `json:"right,omitempty"`
	Transients  []codec.Transient `json:"transients"`
}

func main() {
	cfg := config.Load()
	file := flag.String("file", "", "path file audio (wav, mp3, flac, ogg, opus)")
	buckets := flag.Int("buckets", cfg.SummaryBuckets, "jumlah bucket waveform")
	threshold := flag.Float64("threshold", cfg.KickThreshold, "threshold transient")
	stereo := flag.Bool("stereo", false, "waveform per channel")
	spectro := flag.String("spectrogram", "", "tulis spectrogram PNG ke path ini")
	width := flag.Int("width", 512, "lebar spectrogram")
	height := flag.Int("height", 128, "tinggi spectrogram")
	flag.Parse()

	if *file == "" {
		fmt.Printf("\n%s %d.%d\n", app_name, version_major, version_minor)
		fmt.Println(general_usage)
		return
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Gagal buka file: %v\n", err)
		os.Exit(1)
	}
	pcm, err := codec.Decode(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Gagal decode: %v\n", err)
		os.Exit(1)
	}

	rep := report{
		File:        *file,
		Format:      codec.Detect(data).String(),
		Fingerprint: codec.Fingerprint(data),
		SampleRate:  pcm.SampleRate,
		Channels:    len(pcm.Channels),
		Duration:    float64(pcm.Frames()) / float64(pcm.SampleRate),
	}

	if *stereo {
		var right []float64
		if len(pcm.Channels) > 1 {
			right = pcm.Channels[1]
		}
		rep.Left, rep.Right = codec.StereoSummary(pcm.Channels[0], right, *buckets)
	} else {
		rep.Mono = codec.Summary(pcm.Channels[0], *buckets)
	}

	mono := codec.MonoMix(pcm.Channels)
	kick := cfg.Transient()
	kick.Threshold = *threshold
	rep.Transients = codec.DetectTransients(mono, pcm.SampleRate, kick)

	if *spectro != "" {
		png, err := codec.Spectrogram(mono, *width, *height)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Gagal render spectrogram: %v\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*spectro, png, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Gagal tulis %s: %v\n", *spectro, err)
			os.Exit(1)
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		fmt.Fprintf(os.Stderr, "Gagal encode JSON: %v\n", err)
		os.Exit(1)
	}
}
