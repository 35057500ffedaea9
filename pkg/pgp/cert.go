package pgp

import "example.com/pgpcore/pkg/pgp/pgperr"

// decodeCert implements the tag-5/6/7/14 decoder (§4.8), the largest and
// most branchy PayloadDecoder: the cross-product of {public,secret} x
// {primary,subkey} x {ElGamal,DSA,RSA} x {v2/v3,v4}, plus the secret-only
// protection envelope.
func decodeCert(src *ByteSource, tag byte) (*Cert, error) {
	isSecret := tag == TagSecretCert || tag == TagSecretSubkeyCert
	isSubkey := tag == TagPublicSubkeyCert || tag == TagSecretSubkeyCert

	version := src.GetOrFail()

	// Legacy RFC-1991 comment-packet quirk: an early-version public
	// subkey packet whose version byte is the ASCII '#' is actually a
	// comment. Drain and return no Cert; the dispatcher's Packet for it
	// carries header fields only (§4.8, §9).
	if tag == TagPublicSubkeyCert && version == '#' {
		buf, _ := readAllBody(src)
		if ListMode() {
			listf(":rfc1991 comment packet: %q\n", printableRFC1991(buf))
		}
		return nil, nil
	}

	if version != 2 && version != 3 && version != 4 {
		return nil, pgperr.Newf(pgperr.InvalidPacket, "cert: unknown version %d", version)
	}

	pub := PublicKeyFields{Version: version}
	created, err := src.ReadUint32()
	if err != nil {
		return nil, pgperr.Wrap(pgperr.InvalidPacket, "cert: short created timestamp", err)
	}
	pub.Created = created

	if version == 4 {
		pub.ValidDays = 0
	} else {
		validDays, err := src.ReadUint16()
		if err != nil {
			return nil, pgperr.Wrap(pgperr.InvalidPacket, "cert: short valid-days", err)
		}
		pub.ValidDays = validDays
	}
	pub.Algo = src.GetOrFail()

	v := &Cert{IsSecret: isSecret, IsSubkey: isSubkey, Public: pub}

	listf(":%s key packet: version %d, algo %d, created %d, valid for %d days\n",
		certKindLabel(isSecret, isSubkey), version, pub.Algo, created, pub.ValidDays)

	switch pub.Algo {
	case PubkeyAlgoElGamal:
		if err := decodeCertElGamal(src, v); err != nil {
			return v, err
		}
	case PubkeyAlgoDSA:
		if err := decodeCertDSA(src, v); err != nil {
			return v, err
		}
	case PubkeyAlgoRSA:
		if err := decodeCertRSA(src, v); err != nil {
			return v, err
		}
	default:
		// Unknown pubkey algorithm: leave the payload absent and drain
		// (§9 design note) — not a parse failure.
		listf("\tunknown pubkey algorithm %d: no key material decoded\n", pub.Algo)
	}

	return v, nil
}

func certKindLabel(secret, subkey bool) string {
	switch {
	case secret && subkey:
		return "secret sub"
	case secret:
		return "secret"
	case subkey:
		return "public sub"
	default:
		return "public"
	}
}

func printableRFC1991(buf []byte) string {
	out := make([]byte, 0, len(buf))
	for _, c := range buf {
		if c >= ' ' && c <= 'z' {
			out = append(out, c)
		}
	}
	return string(out)
}

func decodeCertElGamal(src *ByteSource, v *Cert) error {
	p, _, err := ReadMPI(src)
	if err != nil {
		return err
	}
	g, _, err := ReadMPI(src)
	if err != nil {
		return err
	}
	y, _, err := ReadMPI(src)
	if err != nil {
		return err
	}
	v.Public.ElGamalP, v.Public.ElGamalG, v.Public.ElGamalY = p, g, y
	printMPI("elg p", p)
	printMPI("elg g", g)
	printMPI("elg y", y)
	if !v.IsSecret {
		return nil
	}

	protectAlgo := src.GetOrFail()
	if protectAlgo != 0 {
		v.IsProtected = true
		v.Protect.CipherAlgo = protectAlgo
		if protectAlgo == 255 {
			if err := readExtendedS2K(src, v); err != nil {
				return err
			}
		} else {
			v.Protect.S2K.Mode = S2KSimple
			if protectAlgo == CipherAlgoBlowfish160 {
				v.Protect.S2K.HashAlgo = DigestAlgoRMD160
			} else {
				v.Protect.S2K.HashAlgo = DigestAlgoMD5
			}
		}
		var iv [8]byte
		if err := src.ReadFull(iv[:]); err != nil {
			return pgperr.Wrap(pgperr.InvalidPacket, "cert: short protect iv", err)
		}
		// ElGamal always stores the IV, regardless of cipher (§9 open question).
		v.Protect.IV = iv
		v.Protect.HasIV = true
	}

	x, _, err := ReadMPI(src)
	if err != nil {
		return err
	}
	v.ElGamalX = x
	return readChecksum(src, v)
}

func decodeCertDSA(src *ByteSource, v *Cert) error {
	p, _, err := ReadMPI(src)
	if err != nil {
		return err
	}
	q, _, err := ReadMPI(src)
	if err != nil {
		return err
	}
	g, _, err := ReadMPI(src)
	if err != nil {
		return err
	}
	y, _, err := ReadMPI(src)
	if err != nil {
		return err
	}
	v.Public.DSAP, v.Public.DSAQ, v.Public.DSAG, v.Public.DSAY = p, q, g, y
	printMPI("dsa p", p)
	printMPI("dsa q", q)
	printMPI("dsa g", g)
	printMPI("dsa y", y)
	if !v.IsSecret {
		return nil
	}

	protectAlgo := src.GetOrFail()
	if protectAlgo != 0 {
		v.IsProtected = true
		v.Protect.CipherAlgo = protectAlgo
		if protectAlgo == 255 {
			if err := readExtendedS2K(src, v); err != nil {
				return err
			}
		} else {
			v.Protect.S2K.Mode = S2KSimple
			v.Protect.S2K.HashAlgo = DigestAlgoMD5
		}
		var iv [8]byte
		if err := src.ReadFull(iv[:]); err != nil {
			return pgperr.Wrap(pgperr.InvalidPacket, "cert: short protect iv", err)
		}
		// DSA always stores the IV too (§9 open question).
		v.Protect.IV = iv
		v.Protect.HasIV = true
	}

	x, _, err := ReadMPI(src)
	if err != nil {
		return err
	}
	v.DSAX = x
	return readChecksum(src, v)
}

func decodeCertRSA(src *ByteSource, v *Cert) error {
	n, _, err := ReadMPI(src)
	if err != nil {
		return err
	}
	e, _, err := ReadMPI(src)
	if err != nil {
		return err
	}
	v.Public.RSAN, v.Public.RSAE = n, e
	printMPI("rsa n", n)
	printMPI("rsa e", e)
	if !v.IsSecret {
		return nil
	}

	protectAlgo := src.GetOrFail()
	if protectAlgo != 0 {
		// Note: unlike ElGamal/DSA, this legacy source path never
		// checks for the 255-extended-S2K form on RSA keys — only the
		// bare legacy cipher-byte protection is supported here.
		v.IsProtected = true
		v.Protect.CipherAlgo = protectAlgo
		v.Protect.S2K.Mode = S2KSimple
		v.Protect.S2K.HashAlgo = DigestAlgoMD5

		var iv [8]byte
		if err := src.ReadFull(iv[:]); err != nil {
			return pgperr.Wrap(pgperr.InvalidPacket, "cert: short protect iv", err)
		}
		// RSA only stores the IV when the cipher is Blowfish-160 — the
		// asymmetry flagged in §9 as a probable omission, preserved here.
		if protectAlgo == CipherAlgoBlowfish160 {
			v.Protect.IV = iv
			v.Protect.HasIV = true
		}
	}

	d, _, err := ReadMPI(src)
	if err != nil {
		return err
	}
	p, _, err := ReadMPI(src)
	if err != nil {
		return err
	}
	q, _, err := ReadMPI(src)
	if err != nil {
		return err
	}
	u, _, err := ReadMPI(src)
	if err != nil {
		return err
	}
	v.RSAD, v.RSAP, v.RSAQ, v.RSAU = d, p, q, u
	return readChecksum(src, v)
}

// readExtendedS2K decodes the protect.algo==255 extended form: real cipher
// algo, S2K mode/hash, mode-dependent salt/count (§4.8).
func readExtendedS2K(src *ByteSource, v *Cert) error {
	v.Protect.CipherAlgo = src.GetOrFail()
	mode := src.GetOrFail()
	if mode != S2KSimple && mode != S2KSalted && mode != S2KIteratedSalt {
		return pgperr.Newf(pgperr.InvalidPacket, "cert: bad s2k mode %d", mode)
	}
	v.Protect.S2K.Mode = mode
	v.Protect.S2K.HashAlgo = src.GetOrFail()

	if mode == S2KSalted || mode == S2KIteratedSalt {
		if err := src.ReadFull(v.Protect.S2K.Salt[:]); err != nil {
			return pgperr.Wrap(pgperr.InvalidPacket, "cert: short s2k salt", err)
		}
		v.Protect.S2K.HasSalt = true
	}
	if mode == S2KIteratedSalt {
		count, err := src.ReadUint32()
		if err != nil {
			return pgperr.Wrap(pgperr.InvalidPacket, "cert: short s2k count", err)
		}
		v.Protect.S2K.Count = count
		v.Protect.S2K.HasCount = true
	}
	return nil
}

func readChecksum(src *ByteSource, v *Cert) error {
	sum, err := src.ReadUint16()
	if err != nil {
		return pgperr.Wrap(pgperr.InvalidPacket, "cert: short checksum", err)
	}
	v.Checksum = sum
	listf("\t[secret key material not shown]\n\tchecksum: %04x\n", sum)
	return nil
}
