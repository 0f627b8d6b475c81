// Package tokens estimates prompt size so the CLIs can warn before sending a
// payload that would crowd the model's context window. Estimation is a
// byte-based chars/4 heuristic.
package tokens

import (
	"fmt"
	"math"
)

// charsPerToken is the divisor for the byte-based estimator.
const charsPerToken = 4

// Estimate returns an estimated token count for text: (len(text)+3)/4.
// Empty string returns 0.
func Estimate(text string) int {
	n := len(text)
	if n == 0 {
		return 0
	}
	return (n + charsPerToken - 1) / charsPerToken
}

// EstimateMessages sums Estimate over every message body.
func EstimateMessages(contents ...string) int {
	total := 0
	for _, c := range contents {
		total += Estimate(c)
	}
	return total
}

// WarnIfOver returns a warning when promptTokens plus responseReserve (the
// requested max output tokens) meets or exceeds warnThreshold of contextLimit.
// Returns "" when contextLimit <= 0 or the counts are negative.
func WarnIfOver(promptTokens, responseReserve, contextLimit int, warnThreshold float64) string {
	if contextLimit <= 0 {
		return ""
	}
	if promptTokens < 0 || responseReserve < 0 {
		return ""
	}
	if responseReserve > math.MaxInt-promptTokens {
		return fmt.Sprintf("token estimate overflow (prompt %d + reserve %d)", promptTokens, responseReserve)
	}
	total := promptTokens + responseReserve
	limit := float64(contextLimit) * warnThreshold
	threshold := int(limit)
	if limit > float64(threshold) {
		threshold++
	}
	if total < threshold {
		return ""
	}
	return fmt.Sprintf("estimated tokens %d (prompt %d + reserve %d) exceeds %.0f%% of context limit %d",
		total, promptTokens, responseReserve, warnThreshold*100, contextLimit)
}
