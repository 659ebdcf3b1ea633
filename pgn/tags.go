package pgn

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/exp/slices"
)

// Tag is a single PGN tag pair, e.g. [Event "F/S Return Match"].
type Tag struct {
	Key   string
	Value string
}

var tagLinePattern = regexp.MustCompile(`^\[(\w+)\s+"((?:[^"\\]|\\.)*)"\]\s*$`)

// parseTags reads every leading tag-pair line from lines, returning the
// parsed tags and the index of the first line that is not a tag.
func parseTags(lines []string) ([]Tag, int) {
	var tags []Tag
	i := 0
	for ; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		m := tagLinePattern.FindStringSubmatch(line)
		if m == nil {
			break
		}
		tags = append(tags, Tag{Key: m[1], Value: unescapeTagValue(m[2])})
	}
	return tags, i
}

func unescapeTagValue(v string) string {
	v = strings.ReplaceAll(v, `\"`, `"`)
	v = strings.ReplaceAll(v, `\\`, `\`)
	return v
}

// Get returns the value of the first tag named key, and whether it was
// present.
func Get(tags []Tag, key string) (string, bool) {
	for _, t := range tags {
		if t.Key == key {
			return t.Value, true
		}
	}
	return "", false
}

// sevenTagRoster is the canonical STR ordering PGN recommends tags
// appear in; used only to order the serialized output, grounded on
// golang.org/x/exp/slices being wired per SPEC_FULL.md §3 for exactly
// this kind of stable small-slice ordering.
var sevenTagRoster = []string{"Event", "Site", "Date", "Round", "White", "Black", "Result"}

// FormatTags renders tags as PGN tag-pair lines, with the seven-tag
// roster (when present) ordered first.
func FormatTags(tags []Tag) string {
	ordered := make([]Tag, len(tags))
	copy(ordered, tags)
	slices.SortStableFunc(ordered, func(a, b Tag) int {
		ai, bi := slices.Index(sevenTagRoster, a.Key), slices.Index(sevenTagRoster, b.Key)
		if ai == -1 {
			ai = len(sevenTagRoster)
		}
		if bi == -1 {
			bi = len(sevenTagRoster)
		}
		return ai - bi
	})

	var sb strings.Builder
	for _, t := range ordered {
		fmt.Fprintf(&sb, "[%s \"%s\"]\n", t.Key, escapeTagValue(t.Value))
	}
	return sb.String()
}

func escapeTagValue(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `"`, `\"`)
	return v
}
