package project

import (
	"fmt"

	"github.com/bytedance/sonic"
)

// CurrentVersion is the document schema version this build reads and
// writes. History:
//
//	0 — bare project body, no envelope (pre-versioning builds)
//	1 — {version, project, app_version} envelope
//	2 — per-clip speed and enabled fields
//	3 — flat track list split into video_tracks/audio_tracks
const CurrentVersion = 3

// ProjectFile is the persisted document envelope.
type ProjectFile struct {
	Version    int      `json:"version"`
	AppVersion string   `json:"app_version,omitempty"`
	Project    *Project `json:"project"`
}

// UnsupportedVersionError reports a document written by a newer build.
// There is no forward compatibility.
type UnsupportedVersionError struct {
	Found     int
	Supported int
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("project version %d is newer than supported version %d", e.Found, e.Supported)
}

// MigrationGapError reports a hole in the migration chain: no step is
// defined from the stored version to the next one.
type MigrationGapError struct {
	From int
}

func (e *MigrationGapError) Error() string {
	return fmt.Sprintf("no migration step from project version %d to %d", e.From, e.From+1)
}

// Save serializes the document at CurrentVersion.
func Save(f *ProjectFile) ([]byte, error) {
	f.Version = CurrentVersion
	data, err := sonic.ConfigDefault.MarshalIndent(f, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding project document: %w", err)
	}
	return data, nil
}

// Load deserializes a document of any supported version, migrating it
// forward step by step to CurrentVersion. A document without a version
// field is treated as version 0: the whole payload is reinterpreted as
// the bare project body and wrapped. Versions newer than
// CurrentVersion fail with UnsupportedVersionError.
func Load(data []byte) (*ProjectFile, error) {
	if !sonic.ConfigDefault.Valid(data) {
		return nil, fmt.Errorf("malformed project document")
	}

	version := 0
	if node, err := sonic.Get(data, "version"); err == nil {
		v, err := node.Int64()
		if err != nil {
			return nil, fmt.Errorf("malformed project version field: %w", err)
		}
		version = int(v)
	}

	if version > CurrentVersion {
		return nil, &UnsupportedVersionError{Found: version, Supported: CurrentVersion}
	}

	var doc map[string]any
	if err := sonic.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("malformed project document: %w", err)
	}

	for v := version; v < CurrentVersion; v++ {
		step, ok := migrations[v]
		if !ok {
			return nil, &MigrationGapError{From: v}
		}
		if err := step(doc); err != nil {
			return nil, fmt.Errorf("migrating project from version %d: %w", v, err)
		}
	}
	doc["version"] = CurrentVersion

	migrated, err := sonic.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("re-encoding migrated project: %w", err)
	}
	var f ProjectFile
	if err := sonic.Unmarshal(migrated, &f); err != nil {
		return nil, fmt.Errorf("decoding project document: %w", err)
	}
	if f.Project == nil {
		return nil, fmt.Errorf("project document has no project body")
	}
	for _, seq := range f.Project.Sequences {
		if !seq.Rate.Valid() {
			return nil, fmt.Errorf("sequence %q has an invalid frame rate", seq.Name)
		}
	}
	return &f, nil
}

// A migration transforms the generic document from one version to the
// next, in place.
type migration func(doc map[string]any) error

var migrations = map[int]migration{
	0: migrateWrapEnvelope,
	1: migrateClipDefaults,
	2: migrateSplitTrackKinds,
}

// 0 → 1: pre-versioning documents are the bare project body; move it
// under a "project" key.
func migrateWrapEnvelope(doc map[string]any) error {
	if _, ok := doc["project"]; ok {
		return nil
	}
	body := make(map[string]any, len(doc))
	for k, v := range doc {
		if k == "version" {
			continue
		}
		body[k] = v
		delete(doc, k)
	}
	doc["project"] = body
	return nil
}

// 1 → 2: clips gained speed and enabled fields; older documents get
// the defaults.
func migrateClipDefaults(doc map[string]any) error {
	return eachClip(doc, func(clip map[string]any) {
		if _, ok := clip["speed"]; !ok {
			clip["speed"] = 1.0
		}
		if _, ok := clip["enabled"]; !ok {
			clip["enabled"] = true
		}
	})
}

// 2 → 3: the single "tracks" list split into video_tracks and
// audio_tracks, partitioned by each track's kind.
func migrateSplitTrackKinds(doc map[string]any) error {
	for _, seq := range sequencesOf(doc) {
		tracks, ok := seq["tracks"].([]any)
		if !ok {
			continue
		}
		var video, audio []any
		for _, t := range tracks {
			track, ok := t.(map[string]any)
			if !ok {
				return fmt.Errorf("track entry is not an object")
			}
			if track["kind"] == "audio" {
				audio = append(audio, track)
			} else {
				video = append(video, track)
			}
		}
		seq["video_tracks"] = video
		seq["audio_tracks"] = audio
		delete(seq, "tracks")
	}
	return nil
}

func sequencesOf(doc map[string]any) []map[string]any {
	body, ok := doc["project"].(map[string]any)
	if !ok {
		return nil
	}
	raw, ok := body["sequences"].([]any)
	if !ok {
		return nil
	}
	var out []map[string]any
	for _, s := range raw {
		if seq, ok := s.(map[string]any); ok {
			out = append(out, seq)
		}
	}
	return out
}

func eachClip(doc map[string]any, fn func(clip map[string]any)) error {
	for _, seq := range sequencesOf(doc) {
		for _, lanes := range []string{"tracks", "video_tracks", "audio_tracks"} {
			tracks, ok := seq[lanes].([]any)
			if !ok {
				continue
			}
			for _, t := range tracks {
				track, ok := t.(map[string]any)
				if !ok {
					continue
				}
				items, ok := track["items"].([]any)
				if !ok {
					continue
				}
				for _, it := range items {
					item, ok := it.(map[string]any)
					if !ok {
						continue
					}
					if clip, ok := item["clip"].(map[string]any); ok {
						fn(clip)
					}
				}
			}
		}
	}
	return nil
}
