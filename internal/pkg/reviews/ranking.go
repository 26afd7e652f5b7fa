package reviews

// DefaultSmoothing is the Bayesian smoothing constant m. With m prior votes
// at the global mean, a provider needs real review volume before its own
// average dominates the score.
const DefaultSmoothing = 5

// BayesianScore shrinks a provider's average rating R over v reviews toward
// the global average C. Returns 0 when v+m is not positive.
func BayesianScore(avg float64, count int, globalAvg float64, m int) float64 {
	total := float64(count + m)
	if total <= 0 {
		return 0
	}
	return (float64(count)/total)*avg + (float64(m)/total)*globalAvg
}
