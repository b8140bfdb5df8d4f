package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/johnquangdev/call-analyzer/internal/domain/entities"
	engine "github.com/johnquangdev/call-analyzer/internal/usecase/metrics"
)

type analyzeOptions struct {
	sentiment string
	turns     bool
	cfg       engine.Config
}

type analyzeOutput struct {
	Sentiment entities.SentimentLabel `json:"sentiment"`
	*entities.MetricsResult
	Turns []entities.Turn `json:"turns,omitempty"`
}

func newAnalyzeCmd() *cobra.Command {
	opts := analyzeOptions{cfg: engine.DefaultConfig()}
	c := &cobra.Command{
		Use:   "analyze [segments.json]",
		Short: "Compute call metrics for a transcript (reads stdin when no file is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			return runAnalyze(in, cmd.OutOrStdout(), opts)
		},
	}
	c.Flags().StringVar(&opts.sentiment, "sentiment", string(entities.SentimentNeutral), "overall sentiment (POSITIVE, NEGATIVE or NEUTRAL)")
	c.Flags().BoolVar(&opts.turns, "turns", false, "include the inferred speaker turns")
	c.Flags().Float64Var(&opts.cfg.GapThreshold, "gap", engine.DefaultGapThreshold, "silence in seconds that switches the speaker")
	c.Flags().Float64Var(&opts.cfg.DominanceThreshold, "dominance", engine.DefaultDominanceThreshold, "talk ratio above which a speaker dominates")
	c.Flags().IntVar(&opts.cfg.MinQuestions, "min-questions", engine.DefaultMinQuestions, "question count below which engagement is low")
	return c
}

func runAnalyze(r io.Reader, w io.Writer, opts analyzeOptions) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	segments, err := decodeSegments(data)
	if err != nil {
		return err
	}

	label := entities.SentimentLabel(strings.ToUpper(strings.TrimSpace(opts.sentiment)))
	if !label.IsValid() {
		return fmt.Errorf("invalid sentiment %q", opts.sentiment)
	}

	e := engine.NewEngine(opts.cfg)
	result, err := e.Analyze(segments, label)
	if err != nil {
		return err
	}

	out := analyzeOutput{Sentiment: label, MetricsResult: result}
	if opts.turns {
		out.Turns = engine.AssignSpeakers(segments, e.Config().GapThreshold)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// decodeSegments accepts a bare array or an {"segments": [...]} object
func decodeSegments(data []byte) ([]entities.Segment, error) {
	data = bytes.TrimSpace(data)
	var segments []entities.Segment
	if len(data) > 0 && data[0] == '[' {
		if err := json.Unmarshal(data, &segments); err != nil {
			return nil, fmt.Errorf("decode segments: %w", err)
		}
		return segments, nil
	}

	var doc struct {
		Segments []entities.Segment `json:"segments"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode segments: %w", err)
	}
	return doc.Segments, nil
}
