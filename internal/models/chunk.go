package models

// Metadata keys shared between indexing and retrieval.
const (
	MetaModule      = "module"
	MetaType        = "type"
	MetaFilePath    = "file_path"
	MetaModelName   = "model_name"
	MetaViewModel   = "model"
	MetaChunkIndex  = "chunk_index"
	MetaTotalChunks = "total_chunks"
)

// Chunk is the atomic unit of retrieval: a bounded text body plus scalar
// metadata. Identity is assigned by the vector store at add time.
type Chunk struct {
	Content  string
	Metadata map[string]string
}

// Document is a retrieved chunk with its similarity distance. Produced
// only by searches, never persisted.
type Document struct {
	ID       string
	Content  string
	Metadata map[string]string
	Distance float32
}

// Answer is a generated response with the documents it was grounded on.
type Answer struct {
	Result  string
	Sources []Document
}
