// Package mention implements the two halves of comment mention resolution:
// encoding @displayName tokens to @id form before a comment is persisted, and
// decoding stored @id tokens back to markdown profile links when comments are
// read. Both passes are pure string transformations; callers own the batched
// user lookups between extraction and substitution.
package mention

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/blog-community-api/internal/models"
)

var (
	// nameTokenRe matches @ followed by a word-character name. The first
	// character must not be a digit, so already-encoded @id tokens are never
	// picked up by a second encode pass.
	nameTokenRe = regexp.MustCompile(`@([A-Za-z_][A-Za-z0-9_]*)`)

	// idTokenRe matches @ followed by a numeric user id
	idTokenRe = regexp.MustCompile(`@([0-9]+)`)
)

// ExtractNames scans content for @name tokens and returns the candidate set
// for a batched display-name lookup: lower-cased, deduplicated, in order of
// first appearance. @Alice and @alice are one candidate.
func ExtractNames(content string) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, m := range nameTokenRe.FindAllStringSubmatch(content, -1) {
		name := strings.ToLower(m[1])
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

// Encode rewrites every whole-token, case-insensitive occurrence of
// @displayName to @id for each resolved user. Unresolved names are left as
// literal text. When two users share a display name, the first entry in
// users wins: its replacement removes the tokens before later entries match.
func Encode(content string, users []*models.User) string {
	for _, u := range users {
		re, err := regexp.Compile(`(?i)@` + regexp.QuoteMeta(u.DisplayName) + `\b`)
		if err != nil {
			continue
		}
		content = re.ReplaceAllLiteralString(content, "@"+strconv.FormatInt(u.ID, 10))
	}
	return content
}

// ExtractIDs collects the distinct @id candidates across all bodies in a
// single pass, so one post's worth of comments costs one user lookup.
func ExtractIDs(bodies []string) []int64 {
	seen := make(map[int64]struct{})
	var ids []int64
	for _, body := range bodies {
		for _, m := range idTokenRe.FindAllStringSubmatch(body, -1) {
			id, err := strconv.ParseInt(m[1], 10, 64)
			if err != nil {
				continue
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids
}

// Decode rewrites each @id token present in names to a markdown profile link
// [@name](/user/id). Ids absent from the map stay verbatim, so a literal
// "@2024" that is not a user id survives untouched. Decoding is idempotent:
// the output contains no @id tokens.
func Decode(content string, names map[int64]string) string {
	return idTokenRe.ReplaceAllStringFunc(content, func(tok string) string {
		id, err := strconv.ParseInt(tok[1:], 10, 64)
		if err != nil {
			return tok
		}
		name, ok := names[id]
		if !ok {
			return tok
		}
		return fmt.Sprintf("[@%s](/user/%d)", name, id)
	})
}
