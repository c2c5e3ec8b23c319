package recipe

const (
	MinRating = 1
	MaxRating = 5
)

// ValidRating reports whether r is on the 1..5 scale.
func ValidRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}

// AddRating folds a new review into a running average.
func AddRating(avg float64, count int, rating int) (float64, int) {
	if count <= 0 {
		return float64(rating), 1
	}
	return (avg*float64(count) + float64(rating)) / float64(count+1), count + 1
}

// ReplaceRating swaps one existing review's rating inside a running average.
// The count is unchanged.
func ReplaceRating(avg float64, count int, oldRating, newRating int) float64 {
	if count <= 0 {
		return float64(newRating)
	}
	return (avg*float64(count) - float64(oldRating) + float64(newRating)) / float64(count)
}
