package pitch

import (
	"math"
	"strings"
)

// readingWordsPerMinute is the assumed reading speed for the
// reading_time_minutes statistic.
const readingWordsPerMinute = 200

// ContentStatistics holds locally computed measurements of the pitch text.
type ContentStatistics struct {
	WordCount               int     `json:"word_count"`
	SentenceCount           int     `json:"sentence_count"`
	ParagraphCount          int     `json:"paragraph_count"`
	CharacterCount          int     `json:"character_count"`
	AverageWordsPerSentence float64 `json:"average_words_per_sentence"`
	ReadingTimeMinutes      float64 `json:"reading_time_minutes"`
}

// ComputeStats measures the pitch content. Sentences are '.'-separated
// segments with non-blank content; paragraphs are blank-line separated
// blocks. These are deliberately cheap approximations.
func ComputeStats(content string) ContentStatistics {
	words := len(strings.Fields(content))

	sentences := 0
	for _, s := range strings.Split(content, ".") {
		if strings.TrimSpace(s) != "" {
			sentences++
		}
	}

	paragraphs := 0
	for _, p := range strings.Split(content, "\n\n") {
		if strings.TrimSpace(p) != "" {
			paragraphs++
		}
	}

	return ContentStatistics{
		WordCount:               words,
		SentenceCount:           sentences,
		ParagraphCount:          paragraphs,
		CharacterCount:          len(content),
		AverageWordsPerSentence: round2(float64(words) / float64(max(sentences, 1))),
		ReadingTimeMinutes:      round1(float64(words) / readingWordsPerMinute),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
