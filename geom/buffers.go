package geom

// Range locates one volume inside flattened Buffers.
type Range struct {
	FirstVertex int
	VertexCount int
	FirstIndex  int
	IndexCount  int
}

// Buffers holds the attribute streams of many volumes concatenated in
// order. Every stream has one element per vertex; volumes without texture
// coordinates contribute zeros so the streams stay aligned.
type Buffers struct {
	Positions []float32
	Colors    []float32
	TexCoords []float32
	Indices   []uint32
	Ranges    []Range
}

// Reset empties the buffers keeping their capacity.
func (buffers *Buffers) Reset() {
	buffers.Positions = buffers.Positions[:0]
	buffers.Colors = buffers.Colors[:0]
	buffers.TexCoords = buffers.TexCoords[:0]
	buffers.Indices = buffers.Indices[:0]
	buffers.Ranges = buffers.Ranges[:0]
}

// VertexCount is the number of vertices appended so far.
func (buffers *Buffers) VertexCount() int {
	return len(buffers.Positions) / PositionComponents
}

// Append adds v, offsetting its indices by the vertices already present.
func (buffers *Buffers) Append(v Volume) {
	first := buffers.VertexCount()
	r := Range{
		FirstVertex: first,
		VertexCount: v.VertexCount(),
		FirstIndex:  len(buffers.Indices),
		IndexCount:  v.IndexCount(),
	}

	buffers.Positions = append(buffers.Positions, v.Vertices()...)
	buffers.Colors = append(buffers.Colors, v.Colors()...)
	if texcoords := v.TexCoords(); len(texcoords) > 0 {
		buffers.TexCoords = append(buffers.TexCoords, texcoords...)
	} else {
		for i := 0; i < r.VertexCount*TexCoordComponents; i++ {
			buffers.TexCoords = append(buffers.TexCoords, 0)
		}
	}
	buffers.Indices = v.AppendIndices(buffers.Indices, uint32(first))
	buffers.Ranges = append(buffers.Ranges, r)
}

// Flatten resets dst and appends volumes in order.
func Flatten(dst *Buffers, volumes []Volume) {
	dst.Reset()
	for _, v := range volumes {
		dst.Append(v)
	}
}
