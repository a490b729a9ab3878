// Package edl renders a curated plan as a CMX3600 edit decision list
// so an external editor can conform the reel from the original sources
package edl

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"supercut/internal/core/curate"
)

// DefaultFrameRate is used when the caller passes a non positive rate
const DefaultFrameRate = 30.0

const maxTitle = 70

// Generate returns the EDL text for segs in order. Record times are laid back to back
// starting at zero; source times are the segment ranges in their own media.
func Generate(title string, segs []curate.Segment, frameRate float64) string {
	if frameRate <= 0 || math.IsNaN(frameRate) || math.IsInf(frameRate, 0) {
		frameRate = DefaultFrameRate
	}
	fps := int(math.Round(frameRate))

	lines := []string{"TITLE: " + SanitizeTitle(title)}
	if IsDropFrame(frameRate) {
		lines = append(lines, "FCM: DROP FRAME")
	} else {
		lines = append(lines, "FCM: NON-DROP FRAME")
	}
	lines = append(lines, "")

	rec := 0
	for i, s := range segs {
		in, out := Frames(s.Start, fps), Frames(s.End, fps)
		dur := out - in
		lines = append(lines,
			fmt.Sprintf("%03d  %-8s %-5s C        %s %s %s %s", i+1, "AX", "V",
				Timecode(in, fps), Timecode(out, fps), Timecode(rec, fps), Timecode(rec+dur, fps)),
			"* FROM CLIP NAME:  "+s.SceneID,
			"* SOURCE FILE:  "+s.SourceRef,
			fmt.Sprintf("* COMMENT:  %s %.2f", s.Label, s.Confidence),
		)
		rec += dur
	}

	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

// IsDropFrame reports whether the rate is one of the NTSC drop frame rates
func IsDropFrame(frameRate float64) bool {
	return math.Abs(frameRate-29.97) < 0.01 || math.Abs(frameRate-59.94) < 0.01
}

// Frames converts seconds to a whole frame count at fps
func Frames(seconds float64, fps int) int {
	return int(math.Round(seconds * float64(fps)))
}

// Timecode formats a frame count as HH:MM:SS:FF
func Timecode(frames, fps int) string {
	if fps <= 0 {
		fps = int(DefaultFrameRate)
	}
	ff := frames % fps
	secs := frames / fps
	return fmt.Sprintf("%02d:%02d:%02d:%02d", secs/3600, (secs/60)%60, secs%60, ff)
}

// SanitizeTitle strips control characters and anything outside a conservative set
func SanitizeTitle(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsControl(r):
			continue
		case unicode.IsLetter(r), unicode.IsDigit(r), strings.ContainsRune(" -_.,()", r):
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	out := strings.TrimSpace(b.String())
	if r := []rune(out); len(r) > maxTitle {
		out = string(r[:maxTitle])
	}
	if out == "" {
		return "SUPERCUT"
	}
	return out
}
