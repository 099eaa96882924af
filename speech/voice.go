package speech

import (
	"sort"
	"strings"
)

// Voice describes one synthesis voice from the provider inventory.
type Voice struct {
	ID     string
	Name   string
	Lang   string // BCP-47 locale, e.g. "en-US"
	Gender string // provider label, may be empty
}

// Gender hints for voice selection
const (
	GenderFemale = "female"
	GenderMale   = "male"
)

var genderKeywords = map[string][]string{
	GenderFemale: {"female", "woman", "girl"},
	GenderMale:   {"male", "man", "guy"},
}

// RankVoices orders the inventory by fitness for the locale and gender hint.
// Scoring prefers an exact locale match over a language-only match, and a
// matching gender label or name keyword over a neutral one. Voices labeled
// with the opposite gender rank below unlabeled voices, so selection
// degrades from "requested gender" to "not the opposite" to "any voice in
// the language". Voices outside the language are excluded.
func RankVoices(voices []Voice, locale, genderHint string) []Voice {
	lang := primaryLanguage(locale)

	type scored struct {
		voice Voice
		score int
	}
	var ranked []scored

	for _, v := range voices {
		if !strings.EqualFold(primaryLanguage(v.Lang), lang) {
			continue
		}

		score := 1
		if strings.EqualFold(v.Lang, locale) {
			score += 4
		}

		if genderHint != "" {
			switch voiceGender(v) {
			case genderHint:
				score += 3
			case "":
				// neutral, no adjustment
			default:
				score -= 3
			}
		}

		ranked = append(ranked, scored{voice: v, score: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	out := make([]Voice, len(ranked))
	for i, s := range ranked {
		out[i] = s.voice
	}
	return out
}

// voiceGender resolves a voice's gender from its label, falling back to
// name keywords. "female" is matched before "male" so the substring overlap
// does not misclassify.
func voiceGender(v Voice) string {
	label := strings.ToLower(v.Gender)
	if label == GenderFemale || label == GenderMale {
		return label
	}

	name := strings.ToLower(v.Name)
	for _, kw := range genderKeywords[GenderFemale] {
		if strings.Contains(name, kw) {
			return GenderFemale
		}
	}
	for _, kw := range genderKeywords[GenderMale] {
		if strings.Contains(name, kw) {
			return GenderMale
		}
	}
	return ""
}
