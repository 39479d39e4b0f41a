package resolver

// DefaultBatchSize is the chunk size used when a caller passes none.
const DefaultBatchSize = 10

// FetchInBatches partitions ids into fixed-size chunks, invokes fetch once
// per chunk, and concatenates the results in chunk order. The final chunk
// shrinks to the remaining ids. A fetch error aborts the walk and returns
// what was accumulated alongside the error.
func FetchInBatches[T any](ids []string, batchSize int, fetch func(batch []string) ([]T, error)) ([]T, error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	var out []T
	for offset := 0; offset < len(ids); offset += batchSize {
		end := offset + batchSize
		if end > len(ids) {
			end = len(ids)
		}

		results, err := fetch(ids[offset:end])
		if err != nil {
			return out, err
		}
		out = append(out, results...)
	}

	return out, nil
}
