package subpacket

import "testing"

// buildStream assembles a length-prefixed subpacket stream from raw
// (type-byte-included) subpacket bodies, the verbatim on-wire form Signature
// stores.
func buildStream(subs ...[]byte) []byte {
	var body []byte
	for _, s := range subs {
		body = append(body, byte(len(s)))
		body = append(body, s...)
	}
	total := len(body)
	return append([]byte{byte(total >> 8), byte(total)}, body...)
}

func TestFindIssuerAndSigCreated(t *testing.T) {
	issuer := append([]byte{TypeIssuer}, []byte{0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88}...)
	sigCreated := append([]byte{TypeSigCreated}, []byte{0x00, 0x00, 0x00, 0x2A}...)
	stream := buildStream(sigCreated, issuer)

	payload, ok, err := Find(stream, TypeSigCreated)
	if err != nil || !ok {
		t.Fatalf("Find(SigCreated) = %v, %v, %v", payload, ok, err)
	}
	if got := SigCreatedTime(payload); got != 42 {
		t.Errorf("SigCreatedTime = %d, want 42", got)
	}

	payload, ok, err = Find(stream, TypeIssuer)
	if err != nil || !ok {
		t.Fatalf("Find(Issuer) = %v, %v, %v", payload, ok, err)
	}
	hi, lo := IssuerKeyID(payload)
	if hi != 0x11223344 || lo != 0x55667788 {
		t.Errorf("IssuerKeyID = %08X%08X", hi, lo)
	}
}

func TestFindMissing(t *testing.T) {
	stream := buildStream(append([]byte{TypeKeyFlags}, 0x03))
	_, ok, err := Find(stream, TypeIssuer)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if ok {
		t.Error("ok = true, want false for an absent subpacket type")
	}
}

func TestFindCriticalBitStripped(t *testing.T) {
	critical := append([]byte{TypeKeyFlags | 0x80}, 0x01)
	stream := buildStream(critical)
	var gotCritical bool
	if err := List(stream, func(e Entry) {
		if e.Type == TypeKeyFlags {
			gotCritical = e.Critical
		}
	}); err != nil {
		t.Fatalf("List: %v", err)
	}
	if !gotCritical {
		t.Error("expected Critical to be true when the high bit was set on the type byte")
	}
}

func TestFindShortIssuerPayloadIsError(t *testing.T) {
	short := append([]byte{TypeIssuer}, 0x11, 0x22)
	stream := buildStream(short)
	if _, _, err := Find(stream, TypeIssuer); err == nil {
		t.Fatal("expected an error for an under-length ISSUER payload")
	}
}

func TestTypeName(t *testing.T) {
	if got := TypeName(TypeIssuer); got != "issuer" {
		t.Errorf("TypeName(Issuer) = %q", got)
	}
	if got := TypeName(200); got != "unknown" {
		t.Errorf("TypeName(200) = %q, want unknown", got)
	}
}
