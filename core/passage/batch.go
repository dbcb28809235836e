package passage

import "sync"

// AssembleAll runs Assemble once per reference and returns the results in
// input order. References are independent pure computations, so they run in
// parallel; a failing reference never aborts the batch.
func AssembleAll(refs []string, src TextSource) []Result {
	results := make([]Result, len(refs))
	var wg sync.WaitGroup
	for i, raw := range refs {
		wg.Add(1)
		go func(i int, raw string) {
			defer wg.Done()
			results[i] = Assemble(raw, src)
		}(i, raw)
	}
	wg.Wait()
	return results
}
