package service

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// Tokens are runs of two or more Unicode letters, digits or underscores.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// tfidfMatrix holds one L2-normalized row per document over a sorted vocabulary.
type tfidfMatrix struct {
	vocabulary []string
	rows       [][]float64
}

func tokenize(text string) []string {
	tokens := tokenPattern.FindAllString(strings.ToLower(text), -1)
	kept := tokens[:0]
	for _, tok := range tokens {
		if _, stop := englishStopWords[tok]; !stop {
			kept = append(kept, tok)
		}
	}
	return kept
}

// vectorizeTFIDF weights raw term counts by the smoothed inverse document
// frequency ln((1+n)/(1+df))+1 and normalizes every row to unit length.
func vectorizeTFIDF(docs []string) (tfidfMatrix, bool) {
	counts := make([]map[string]int, len(docs))
	df := make(map[string]int)
	for i, doc := range docs {
		counts[i] = make(map[string]int)
		for _, tok := range tokenize(doc) {
			if counts[i][tok] == 0 {
				df[tok]++
			}
			counts[i][tok]++
		}
	}
	if len(df) == 0 {
		return tfidfMatrix{}, false
	}

	vocabulary := make([]string, 0, len(df))
	for term := range df {
		vocabulary = append(vocabulary, term)
	}
	sort.Strings(vocabulary)

	n := float64(len(docs))
	idf := make([]float64, len(vocabulary))
	for j, term := range vocabulary {
		idf[j] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	rows := make([][]float64, len(docs))
	for i := range docs {
		row := make([]float64, len(vocabulary))
		var norm float64
		for j, term := range vocabulary {
			if c := counts[i][term]; c > 0 {
				row[j] = float64(c) * idf[j]
				norm += row[j] * row[j]
			}
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for j := range row {
				row[j] /= norm
			}
		}
		rows[i] = row
	}
	return tfidfMatrix{vocabulary: vocabulary, rows: rows}, true
}
