package pgp

// decodeUserId implements the tag-13 decoder: the entire body is the user
// id bytes (§4.9).
func decodeUserId(src *ByteSource) (*UserId, error) {
	buf, err := readAllBody(src)
	if err != nil {
		return nil, err
	}
	listf(":user id packet: %q\n", buf)
	return &UserId{Bytes: buf}, nil
}

// decodeComment implements the tag-61/tag-16 decoders: the entire body is
// the comment bytes (§4.9).
func decodeComment(src *ByteSource, old bool) (*Comment, error) {
	buf, err := readAllBody(src)
	if err != nil {
		return nil, err
	}
	kind := "comment"
	if old {
		kind = "old comment"
	}
	listf(":%s packet: %q\n", kind, buf)
	return &Comment{Old: old, Bytes: buf}, nil
}

// decodeRingTrust implements the tag-12 decoder: one flag byte, no stored
// variant record (§4.9) — list mode prints it; there is nothing for a caller to
// hold onto afterward, so this returns only an error.
func decodeRingTrust(src *ByteSource) error {
	flag := src.GetOrFail()
	listf(":trust packet: flag %d\n", flag)
	return nil
}

// readAllBody reads whatever remains of the current body under whichever
// mode the ByteSource is currently armed with.
func readAllBody(src *ByteSource) ([]byte, error) {
	var out []byte
	buf := make([]byte, 4096)
	for {
		n, err := src.Read(buf)
		out = append(out, buf[:n]...)
		if err != nil {
			break
		}
		if n == 0 {
			break
		}
	}
	return out, nil
}
