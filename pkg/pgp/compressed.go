package pgp

// decodeCompressed implements the tag-8 decoder (§4.9): one algorithm
// byte, then the ByteSource is handed off as the (still-compressed)
// stream.
func decodeCompressed(src *ByteSource) (*Compressed, error) {
	algo := src.GetOrFail()
	listf(":compressed packet: algo %d\n", algo)
	return &Compressed{Algo: algo, Body: src}, nil
}
