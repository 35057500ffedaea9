package pgp

import "example.com/pgpcore/pkg/pgp/pgperr"

// isKnownTag reports whether tag is one decodePayload has a case for. The
// dispatcher consults this before ever reaching decodePayload, so unrecognized
// or reserved tags (including Marker and the 15/17/19/21-60 range) never hit
// the default branch below — they're skipped upstream instead (§3 invariant
// 4). decodePayload's default stays reachable only if this list and its
// switch drift apart, keeping unknown_packet available for the "understood
// code, no decoder" case §7 reserves it for.
func isKnownTag(tag byte) bool {
	switch tag {
	case TagSymkeyEnc, TagPubkeyEnc, TagSignature, TagOnepassSig,
		TagPublicCert, TagPublicSubkeyCert, TagSecretCert, TagSecretSubkeyCert,
		TagUserId, TagComment, TagOldComment, TagRingTrust,
		TagPlaintext, TagCompressed, TagEncrypted, TagSEIPD, TagAEADEncrypted:
		return true
	default:
		return false
	}
}

// decodePayload allocates and populates the Packet variant matching hdr.Tag,
// invoking the matching PayloadDecoder (§4.2 step 5, §4.3).
func decodePayload(src *ByteSource, hdr *Header) (*Packet, error) {
	pkt := &Packet{Tag: hdr.Tag, HeaderLen: len(hdr.Raw), Length: hdr.Length}

	switch hdr.Tag {
	case TagSymkeyEnc:
		v, err := decodeSymkeyEnc(src)
		pkt.SymkeyEnc = v
		return pkt, err
	case TagPubkeyEnc:
		v, err := decodePubkeyEnc(src)
		pkt.PubkeyEnc = v
		return pkt, err
	case TagSignature:
		v, err := decodeSignature(src)
		pkt.Signature = v
		return pkt, err
	case TagOnepassSig:
		v, err := decodeOnepassSig(src)
		pkt.OnepassSig = v
		return pkt, err
	case TagPublicCert, TagPublicSubkeyCert, TagSecretCert, TagSecretSubkeyCert:
		v, err := decodeCert(src, hdr.Tag)
		pkt.Cert = v
		return pkt, err
	case TagUserId:
		v, err := decodeUserId(src)
		pkt.UserId = v
		return pkt, err
	case TagComment, TagOldComment:
		v, err := decodeComment(src, hdr.Tag == TagOldComment)
		pkt.Comment = v
		return pkt, err
	case TagRingTrust:
		return pkt, decodeRingTrust(src)
	case TagPlaintext:
		v, err := decodePlaintext(src)
		pkt.Plaintext = v
		return pkt, err
	case TagCompressed:
		v, err := decodeCompressed(src)
		pkt.Compressed = v
		return pkt, err
	case TagEncrypted, TagSEIPD, TagAEADEncrypted:
		v, err := decodeEncrypted(src, hdr.Tag, hdr.bodyBudget())
		pkt.Encrypted = v
		return pkt, err
	default:
		return nil, pgperr.Newf(pgperr.UnknownPacket, "no decoder for packet type %d", hdr.Tag)
	}
}
