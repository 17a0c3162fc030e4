// Package metadata signs rendered documents with an integrity block and verifies it.
package metadata

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// TagStart is the start of the metadata block.
	TagStart = "<!-- METADATA_START"
	// TagEnd is the end of the metadata block.
	TagEnd = "METADATA_END -->"

	// DefaultVersion identifies the block layout written by Sign.
	DefaultVersion = "podrank/1"
)

// Metadata verification errors.
var (
	ErrNoMetadataBlock = errors.New("no metadata block found")
	ErrNoHashFound     = errors.New("no hash found in metadata")
	ErrHashMismatch    = errors.New("hash mismatch")
)

// Metadata describes a signed document.
type Metadata struct {
	LastModify time.Time
	Version    string
	Source     string
	Hash       string
	Items      int
	Validation bool
}

// metadataRegex matches the entire metadata block including tags.
var metadataRegex = regexp.MustCompile(`(?s)<!--\s*METADATA_START\s*\n(.*?)\n\s*METADATA_END\s*-->`)

// Extract removes the metadata block from content and returns both the
// metadata and the cleaned content. The cleaned content is what gets hashed.
func Extract(content string) (*Metadata, string) {
	match := metadataRegex.FindStringSubmatch(content)
	cleanContent := metadataRegex.ReplaceAllString(content, "")
	// Trailing newlines are not part of the hashed content.
	cleanContent = strings.TrimRight(cleanContent, "\n")

	if len(match) < 2 {
		return nil, cleanContent
	}

	meta := &Metadata{}

	for line := range strings.SplitSeq(match[1], "\n") {
		key, val, ok := strings.Cut(strings.TrimSpace(line), ":")
		if !ok {
			continue
		}

		key = strings.TrimSpace(key)
		val = strings.TrimSpace(val)

		switch key {
		case "VALIDATION":
			meta.Validation = strings.EqualFold(val, "TRUE")
		case "LAST_MODIFY":
			if t, err := time.Parse(time.RFC3339, val); err == nil {
				meta.LastModify = t
			}
		case "HASH":
			meta.Hash = val
		case "VERSION":
			meta.Version = val
		case "SOURCE":
			meta.Source = val
		case "ITEMS":
			if n, err := strconv.Atoi(val); err == nil {
				meta.Items = n
			}
		}
	}

	return meta, cleanContent
}

// CalculateHash computes the SHA-256 hash of the content (excluding metadata).
func CalculateHash(content string) string {
	_, clean := Extract(content)
	hash := sha256.Sum256([]byte(clean))

	return hex.EncodeToString(hash[:])
}

// Sign replaces any existing metadata block with a fresh one computed over
// the clean content. Hash is always recomputed; the other fields come from meta.
func Sign(content string, meta Metadata) string {
	_, clean := Extract(content)

	if meta.Version == "" {
		meta.Version = DefaultVersion
	}

	valStr := "FALSE"
	if meta.Validation {
		valStr = "TRUE"
	}

	var sb strings.Builder

	sb.WriteString(clean)
	sb.WriteString("\n\n")
	sb.WriteString(TagStart)
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "VERSION: %s\n", meta.Version)

	if meta.Source != "" {
		fmt.Fprintf(&sb, "SOURCE: %s\n", meta.Source)
	}

	fmt.Fprintf(&sb, "ITEMS: %d\n", meta.Items)
	fmt.Fprintf(&sb, "VALIDATION: %s\n", valStr)
	fmt.Fprintf(&sb, "LAST_MODIFY: %s\n", meta.LastModify.UTC().Format(time.RFC3339))
	fmt.Fprintf(&sb, "HASH: %s\n", CalculateHash(clean))
	sb.WriteString(TagEnd)
	sb.WriteString("\n")

	return sb.String()
}

// Verify checks if the content matches the hash in its metadata.
func Verify(content string) (bool, error) {
	meta, clean := Extract(content)
	if meta == nil {
		return false, ErrNoMetadataBlock
	}

	if meta.Hash == "" {
		return false, ErrNoHashFound
	}

	calculated := CalculateHash(clean)
	if calculated != meta.Hash {
		return false, fmt.Errorf("%w: expected %s, got %s", ErrHashMismatch, meta.Hash, calculated)
	}

	return true, nil
}
