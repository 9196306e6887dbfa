package uniforms

// Fit returns exactly n values: extra values are dropped, missing ones are
// zero.
func Fit(values []float32, n int) []float32 {
	if len(values) == n {
		return values
	}
	out := make([]float32, n)
	copy(out, values)
	return out
}
