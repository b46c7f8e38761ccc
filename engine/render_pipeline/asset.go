package render_pipeline

// Asset is the serialized pipeline configuration an embedding layer loads and turns into a pipeline.
type Asset struct {
	DynamicBatching bool `json:"dynamicBatching"`
	GPUInstancing   bool `json:"gpuInstancing"`
}

// CreatePipeline builds a RenderPipeline from the asset. Options are applied after the asset
// values, so they can set the build mode, logger or shader finder.
//
// Parameters:
//   - opts: additional builder options
//
// Returns:
//   - RenderPipeline: the pipeline
func (a Asset) CreatePipeline(opts ...RenderPipelineBuilderOption) RenderPipeline {
	all := append([]RenderPipelineBuilderOption{
		WithDynamicBatching(a.DynamicBatching),
		WithGPUInstancing(a.GPUInstancing),
	}, opts...)
	return NewRenderPipeline(all...)
}
