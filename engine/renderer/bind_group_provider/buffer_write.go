package bind_group_provider

// BufferWrite describes one queued upload into the buffer a provider holds under Binding,
// starting at Offset bytes.
type BufferWrite struct {
	Provider BindGroupProvider
	Binding  int
	Offset   uint64
	Data     []byte
}
