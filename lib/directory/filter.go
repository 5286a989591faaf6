// Copyright 2026 The Pants Authors
// SPDX-License-Identifier: Apache-2.0

package directory

import (
	"cmp"
	"slices"
	"strings"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// Match is one filter hit. Key is empty when the vault name itself
// matched.
type Match struct {
	Vault string
	Key   string
	Score int
}

// Filter fuzzy-matches pattern against every vault name and every
// entry key, best score first. Matching is case-insensitive. An empty
// pattern matches nothing; callers show the unfiltered tree instead.
func (c Cache) Filter(pattern string) []Match {
	runes := []rune(strings.ToLower(strings.TrimSpace(pattern)))
	if len(runes) == 0 {
		return nil
	}

	slab := util.MakeSlab(100*1024, 2048)
	var matches []Match
	for _, name := range c.Names() {
		if score, ok := fuzzyScore(name, runes, slab); ok {
			matches = append(matches, Match{Vault: name, Score: score})
		}
		for _, key := range c.vaults[name].Keys.Keys() {
			if score, ok := fuzzyScore(key, runes, slab); ok {
				matches = append(matches, Match{Vault: name, Key: key, Score: score})
			}
		}
	}

	slices.SortStableFunc(matches, func(a, b Match) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return matches
}

// fuzzyScore runs fzf's V2 matcher. pattern must already be lower
// case.
func fuzzyScore(text string, pattern []rune, slab *util.Slab) (int, bool) {
	chars := util.ToChars([]byte(text))
	result, _ := algo.FuzzyMatchV2(false, true, true, &chars, pattern, false, slab)
	if result.Start < 0 {
		return 0, false
	}
	return result.Score, true
}
