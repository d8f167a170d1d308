package object

// NewBlob wraps raw file content as a blob Object, ready to be stored.
func NewBlob(content []byte) *Object {
	return &Object{Type: BlobTypeTag, Content: content}
}
