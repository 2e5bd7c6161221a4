package a

type embedder struct{}

func (embedder) Embed(text string) []float32 { return nil }
func (embedder) EmbedBatch(texts []string) [][]float32 { return nil }

type index struct{}

func (index) Upsert(vectors ...[]float32) {}

func badEmbed(e embedder, summaries []string) {
	for _, s := range summaries {
		_ = e.Embed(s) // want "potential N\\+1: Embed called inside loop - use EmbedBatch"
	}
}

func badUpsert(e embedder, idx index, summaries []string) {
	vectors := e.EmbedBatch(summaries)
	for i := 0; i < len(vectors); i++ {
		idx.Upsert(vectors[i]) // want "potential N\\+1: Upsert called inside loop - use one Upsert per batch"
	}
}

func good(e embedder, idx index, summaries []string) {
	idx.Upsert(e.EmbedBatch(summaries)...)
}

func goodBatches(e embedder, idx index, batches [][]string) {
	for _, batch := range batches {
		upsertBatch(e, idx, batch)
	}
}

func upsertBatch(e embedder, idx index, batch []string) {
	idx.Upsert(e.EmbedBatch(batch)...)
}
