// Package export renders a sequence's edit decisions for downstream
// tools. It reads the timeline; it never touches media.
package export

import (
	"fmt"
	"strings"

	"github.com/jorg-4/proedit-core/internal/project"
	"github.com/jorg-4/proedit-core/internal/timebase"
	"github.com/jorg-4/proedit-core/internal/timeline"
)

// GenerateEDL renders the first video track of seq as a CMX3600-style
// EDL. Timecodes come straight from the exact rational positions, so
// event boundaries land on the same frames the timeline shows.
func GenerateEDL(seq *project.Sequence, title string) string {
	rate := seq.Rate

	lines := []string{fmt.Sprintf("TITLE: %s", SanitizeName(title, 70))}
	if rate.IsNTSC() {
		lines = append(lines, "FCM: DROP FRAME")
	} else {
		lines = append(lines, "FCM: NON-DROP FRAME")
	}
	lines = append(lines, "")

	if len(seq.VideoTracks) == 0 {
		lines = append(lines, "")
		return strings.Join(lines, "\n")
	}

	var record timebase.RationalTime
	event := 0
	for _, item := range seq.VideoTracks[0].Items {
		clip, ok := item.(*timeline.Clip)
		if !ok || !clip.Enabled {
			record = record.Add(item.Duration())
			continue
		}

		event++
		srcIn := timebase.Timecode(clip.SourceIn, rate)
		srcOut := timebase.Timecode(clip.SourceOut(), rate)
		recIn := timebase.Timecode(record, rate)
		recOut := timebase.Timecode(record.Add(clip.Length), rate)

		lines = append(lines,
			fmt.Sprintf("%03d  %-8s %-5s C        %s %s %s %s", event, "AX", "V", srcIn, srcOut, recIn, recOut),
			fmt.Sprintf("* FROM CLIP NAME:  %s", SanitizeName(clip.Name, 70)),
			fmt.Sprintf("* MEDIA PATH:  %s", clip.Ref.Path),
		)

		record = record.Add(clip.Length)
	}

	lines = append(lines, "")
	return strings.Join(lines, "\n")
}
