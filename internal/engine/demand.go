package engine

// totalDemand is the per-article ceiling on aggregate allocation: the sum of
// every receiver's outstanding target. The matcher never routes more than
// this, no matter how much donor capacity remains.
func totalDemand(receivers []receiverState) int {
	total := 0
	for _, r := range receivers {
		total += r.need
	}
	return total
}
