// Package commitcodec serializes and parses the commit object's text
// format. This is the only package in the repository allowed to know the
// byte-exact layout of a commit object; every other package works with the
// decoded Commit value.
package commitcodec

import (
	"fmt"
	"strings"

	"github.com/keshon/minigit/internal/fingerprint"
)

// ManifestEntry is one (path, blob fingerprint) pair captured by a commit.
type ManifestEntry struct {
	Path string
	Blob fingerprint.Fingerprint
}

// Commit is the decoded form of a commit object. ID is not part of the
// encoded text — it is the object-store key the bytes were read from (or,
// for a not-yet-written commit, the value ComputeID returns).
type Commit struct {
	ID        fingerprint.Fingerprint
	Message   string
	Timestamp string
	Parent    fingerprint.Fingerprint
	Manifest  []ManifestEntry
}

// ComputeID derives the commit id from message, timestamp, parent and the
// manifest's blob fingerprints, in manifest order, per the data model's
// definition: fingerprint(message || timestamp || parent || blob₁ || … || blobₙ).
func ComputeID(message, timestamp string, parent fingerprint.Fingerprint, manifest []ManifestEntry) fingerprint.Fingerprint {
	parts := make([][]byte, 0, 3+len(manifest))
	parts = append(parts, []byte(message), []byte(timestamp), []byte(parent.String()))
	for _, e := range manifest {
		parts = append(parts, []byte(e.Blob.String()))
	}
	return fingerprint.OfConcat(parts...)
}

// ComputeMergeID derives a merge commit's id the same way ComputeID does,
// but mixes in the merged-in branch's tip fingerprint as an extra
// ingredient. The stored record still has a single "parent:" line (the
// data model has no second parent slot, per §9 Open Question 2), but the
// id itself must differ from what a single-parent commit of the same
// manifest would produce, so a merge commit is distinguishable even though
// its DAG edge to the target tip isn't recorded.
func ComputeMergeID(message, timestamp string, parent, target fingerprint.Fingerprint, manifest []ManifestEntry) fingerprint.Fingerprint {
	parts := make([][]byte, 0, 4+len(manifest))
	parts = append(parts, []byte(message), []byte(timestamp), []byte(parent.String()), []byte(target.String()))
	for _, e := range manifest {
		parts = append(parts, []byte(e.Blob.String()))
	}
	return fingerprint.OfConcat(parts...)
}

// Encode renders c into the on-disk text format described in §4.2. The ID
// field is not written — it is implicit in the object-store key.
func Encode(c Commit) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "message:%s\n", c.Message)
	fmt.Fprintf(&b, "timestamp:%s\n", c.Timestamp)
	fmt.Fprintf(&b, "parent:%s\n", c.Parent.String())
	b.WriteString("files:")
	for i, e := range c.Manifest {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%s:%s", e.Path, e.Blob.String())
	}
	b.WriteByte('\n')
	return []byte(b.String())
}

// Decode parses the on-disk text format, classifying each line by its
// prefix; lines with an unrecognized prefix are ignored. id becomes the
// returned Commit's ID field (callers pass the object-store key the bytes
// were read from). An empty "files:" value yields an empty manifest.
func Decode(id fingerprint.Fingerprint, data []byte) (Commit, error) {
	c := Commit{ID: id}
	lines := strings.Split(string(data), "\n")
	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "message:"):
			c.Message = strings.TrimPrefix(line, "message:")
		case strings.HasPrefix(line, "timestamp:"):
			c.Timestamp = strings.TrimPrefix(line, "timestamp:")
		case strings.HasPrefix(line, "parent:"):
			c.Parent = fingerprint.Fingerprint(strings.TrimPrefix(line, "parent:"))
		case strings.HasPrefix(line, "files:"):
			value := strings.TrimPrefix(line, "files:")
			if value == "" {
				continue
			}
			for _, entry := range strings.Split(value, ",") {
				path, fp, ok := strings.Cut(entry, ":")
				if !ok {
					return Commit{}, fmt.Errorf("commitcodec: malformed files entry %q", entry)
				}
				c.Manifest = append(c.Manifest, ManifestEntry{Path: path, Blob: fingerprint.Fingerprint(fp)})
			}
		}
	}
	return c, nil
}
