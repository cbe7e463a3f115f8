package export

import (
	"strings"
	"testing"

	"github.com/jorg-4/proedit-core/internal/project"
	"github.com/jorg-4/proedit-core/internal/timebase"
	"github.com/jorg-4/proedit-core/internal/timeline"
)

func seconds(n int64) timebase.RationalTime { return timebase.New(n, 1) }

func clipOf(name string, secs int64) *timeline.Clip {
	return timeline.NewClip(name, timeline.ClipRef{
		Path:     "/media/" + name + ".mov",
		Duration: seconds(secs),
	})
}

func TestGenerateEDL_SingleClip(t *testing.T) {
	seq := project.NewSequence("Main", timebase.Rate25, 1920, 1080)
	seq.VideoTracks[0].InsertItem(0, clipOf("Intro", 2))

	edl := GenerateEDL(seq, "Project One")

	if !strings.Contains(edl, "TITLE: Project One") {
		t.Fatalf("missing title in EDL: %q", edl)
	}
	if !strings.Contains(edl, "FCM: NON-DROP FRAME") {
		t.Fatalf("missing non-drop-frame FCM: %q", edl)
	}
	if !strings.Contains(edl, "001  AX       V     C        00:00:00:00 00:00:02:00 00:00:00:00 00:00:02:00") {
		t.Fatalf("missing event line: %q", edl)
	}
	if !strings.Contains(edl, "* FROM CLIP NAME:  Intro") {
		t.Fatalf("missing clip name comment: %q", edl)
	}
	if !strings.Contains(edl, "* MEDIA PATH:  /media/Intro.mov") {
		t.Fatalf("missing media path comment: %q", edl)
	}
}

func TestGenerateEDL_SourceInOffsetsTheSourceColumn(t *testing.T) {
	seq := project.NewSequence("Main", timebase.Rate25, 1920, 1080)
	c := clipOf("Shot", 30)
	c.SourceIn = seconds(10)
	c.Length = seconds(4)
	seq.VideoTracks[0].InsertItem(0, c)

	edl := GenerateEDL(seq, "Offsets")

	if !strings.Contains(edl, "001  AX       V     C        00:00:10:00 00:00:14:00 00:00:00:00 00:00:04:00") {
		t.Fatalf("source columns should reflect the trimmed in point: %q", edl)
	}
}

func TestGenerateEDL_GapsAdvanceRecordTime(t *testing.T) {
	seq := project.NewSequence("Main", timebase.Rate25, 1920, 1080)
	video := seq.VideoTracks[0]
	video.InsertItem(0, clipOf("A", 1))
	video.InsertItem(1, timeline.NewGap(seconds(3)))
	video.InsertItem(2, clipOf("B", 2))

	edl := GenerateEDL(seq, "Gapped")

	if !strings.Contains(edl, "001  AX       V     C        00:00:00:00 00:00:01:00 00:00:00:00 00:00:01:00") {
		t.Fatalf("first event line mismatch: %q", edl)
	}
	if !strings.Contains(edl, "002  AX       V     C        00:00:00:00 00:00:02:00 00:00:04:00 00:00:06:00") {
		t.Fatalf("gap did not advance the record columns: %q", edl)
	}
}

func TestGenerateEDL_DisabledClipsSkippedButHoldTheirSlot(t *testing.T) {
	seq := project.NewSequence("Main", timebase.Rate25, 1920, 1080)
	video := seq.VideoTracks[0]
	video.InsertItem(0, clipOf("Muted", 5))
	video.InsertItem(1, clipOf("Kept", 2))
	video.Items[0].(*timeline.Clip).Enabled = false

	edl := GenerateEDL(seq, "Disabled")

	if strings.Contains(edl, "Muted") {
		t.Fatalf("disabled clip should not appear: %q", edl)
	}
	if !strings.Contains(edl, "001  AX       V     C        00:00:00:00 00:00:02:00 00:00:05:00 00:00:07:00") {
		t.Fatalf("record time should still account for the disabled clip: %q", edl)
	}
}

func TestGenerateEDL_NTSCUsesDropFrameMarker(t *testing.T) {
	seq := project.NewSequence("Main", timebase.Rate2997, 1920, 1080)
	seq.VideoTracks[0].InsertItem(0, clipOf("Clip", 1))

	edl := GenerateEDL(seq, "Drop")

	if !strings.Contains(edl, "FCM: DROP FRAME") {
		t.Fatalf("expected drop frame FCM, got: %q", edl)
	}
}

func TestGenerateEDL_EmptySequenceStillHasHeader(t *testing.T) {
	seq := project.NewSequence("Main", timebase.Rate24, 1280, 720)

	edl := GenerateEDL(seq, "Empty")

	if !strings.Contains(edl, "TITLE: Empty") {
		t.Fatalf("missing title: %q", edl)
	}
	if strings.Contains(edl, "001") {
		t.Fatalf("empty sequence should have no events: %q", edl)
	}
}
