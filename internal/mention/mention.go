// Package mention resolves @tokens in comment text to user identities.
package mention

import (
	"regexp"
	"strings"

	"taskboard/internal/model"
)

var tokenPattern = regexp.MustCompile(`@(\w+)`)

// Extract scans text for @word tokens and resolves each against the
// user directory. A token matches every user whose display name
// contains it, case-insensitively, so "@ana" fans out to both
// "Ana Soylu" and "Deniz Kana". Unresolvable tokens are dropped.
//
// The result is ordered by token position, then directory order, and
// is deliberately not de-duplicated: two tokens hitting the same user
// yield that user twice, and downstream consumers must tolerate the
// duplicate notifications that follow.
func Extract(text string, directory []model.User) []string {
	var ids []string
	for _, match := range tokenPattern.FindAllStringSubmatch(text, -1) {
		token := strings.ToLower(match[1])
		for _, user := range directory {
			if strings.Contains(strings.ToLower(user.Name), token) {
				ids = append(ids, user.ID)
			}
		}
	}
	return ids
}

// Union appends extra identities to resolved, skipping those already
// present, so explicitly supplied mentions merge with extracted ones
// without double-counting a user picked both ways.
func Union(resolved, extra []string) []string {
	seen := make(map[string]struct{}, len(resolved))
	for _, id := range resolved {
		seen[id] = struct{}{}
	}
	out := resolved
	for _, id := range extra {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
