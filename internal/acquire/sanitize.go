// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package acquire

import (
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// MaxFilenameLength caps a sanitized filename, extension included.
	MaxFilenameLength = 100

	// MaxTopicLength caps a sanitized topic folder name.
	MaxTopicLength = 50

	pdfExt = ".pdf"
)

// invalidPathChars are replaced with "_" in filenames and folder names.
var invalidPathChars = strings.NewReplacer(
	"<", "_", ">", "_", ":", "_", `"`, "_", "/", "_",
	`\`, "_", "|", "_", "?", "_", "*", "_",
)

// SanitizeFilename replaces characters that are invalid in filenames and
// truncates the base name so the result fits MaxFilenameLength bytes. The
// extension is kept intact.
func SanitizeFilename(name string) string {
	name = invalidPathChars.Replace(name)
	if len(name) <= MaxFilenameLength {
		return name
	}
	ext := filepath.Ext(name)
	if len(ext) >= MaxFilenameLength {
		ext = ""
	}
	base := truncateBytes(strings.TrimSuffix(name, ext), MaxFilenameLength-len(ext))
	return base + ext
}

// SanitizeTopic turns a search topic into a folder name: lowercase, with
// every run of spaces, punctuation, and invalid characters reduced to a
// single "_", no leading or trailing "_", and at most MaxTopicLength bytes.
// Letters, digits, "-" and "." are kept.
func SanitizeTopic(topic string) string {
	topic = strings.ToLower(invalidPathChars.Replace(topic))

	var b strings.Builder
	for _, r := range topic {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '.' {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}

	parts := strings.FieldsFunc(b.String(), func(r rune) bool { return r == '_' })
	out := strings.Join(parts, "_")
	if len(out) > MaxTopicLength {
		out = strings.TrimRight(truncateBytes(out, MaxTopicLength), "_")
	}
	return out
}

// TopicDir returns the download folder for topic under root. An empty or
// fully stripped topic maps to root itself.
func TopicDir(root, topic string) string {
	name := SanitizeTopic(topic)
	if name == "" {
		return root
	}
	return filepath.Join(root, name)
}

// Filename derives the on-disk name for a paper. A custom name wins;
// otherwise the sanitized title is joined to the paper ID so identical
// titles still get distinct files. Only the title is shortened to respect
// MaxFilenameLength.
func Filename(title, id, custom string) string {
	if custom != "" {
		return SanitizeFilename(custom + pdfExt)
	}
	suffix := "_" + invalidPathChars.Replace(id) + pdfExt
	budget := MaxFilenameLength - len(suffix)
	if budget < 0 {
		budget = 0
	}
	return truncateBytes(invalidPathChars.Replace(title), budget) + suffix
}

// truncateBytes cuts s to at most n bytes without splitting a rune.
func truncateBytes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
