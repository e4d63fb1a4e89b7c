//nolint:tagliatelle
package main

import "encoding/json"

// Record is a single line in the JSONL report file.
type Record struct {
	File     string          `json:"file,omitempty"`
	Analysis map[string]any  `json:"analysis,omitempty"`
	Probe    json.RawMessage `json:"probe,omitempty"`
	Error    string          `json:"error,omitempty"`
	Timing   *RecordTiming   `json:"timing,omitempty"`
}

// RecordTiming captures per-file processing durations in milliseconds.
type RecordTiming struct {
	ProbeMs   float64 `json:"probe_ms"`
	DecodeMs  float64 `json:"decode_ms"`
	AnalyzeMs float64 `json:"analyze_ms"`
	TotalMs   float64 `json:"total_ms"`
}

// digestRecord holds the typed fields needed by the digest command.
type digestRecord struct {
	File     string          `json:"file,omitempty"`
	Analysis *digestAnalysis `json:"analysis,omitempty"`
	Error    string          `json:"error,omitempty"`
}

type digestAnalysis struct {
	Issue   digestIssue   `json:"issue"`
	Rolloff digestRolloff `json:"rolloff"`
}

type digestIssue struct {
	Detected   bool    `json:"detected"`
	Severity   string  `json:"severity"`
	Summary    string  `json:"summary"`
	Confidence float64 `json:"confidence"`
}

type digestRolloff struct {
	SampleRate  int     `json:"sample_rate"`
	CutoffHz    float64 `json:"cutoff_hz"`
	CutoffFound bool    `json:"cutoff_found"`
	LikelyCodec string  `json:"likely_codec"`
}

// codecBreakdown tracks per-codec severity counts for the digest.
type codecBreakdown struct {
	Codec    string
	Total    int
	Severe   int
	Moderate int
	Mild     int
}
