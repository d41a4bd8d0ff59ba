package compress

import "testing"

// TestLZWRoundTrip reproduces spec.md §8 scenario 5.
func TestLZWRoundTrip(t *testing.T) {
	input := []byte("TOBEORNOTTOBEORTOBEORNOT")
	encoded := EncodeLZW(input)
	decoded, err := DecodeLZW(encoded)
	if err != nil {
		t.Fatal(err)
	}
	if string(decoded) != string(input) {
		t.Fatalf("round trip mismatch: got %q want %q", decoded, input)
	}
}

func TestLZWEmptyInput(t *testing.T) {
	encoded := EncodeLZW(nil)
	decoded, err := DecodeLZW(encoded)
	if err != nil {
		t.Fatal(err)
	}
	if len(decoded) != 0 {
		t.Fatalf("expected empty round trip, got %v", decoded)
	}
}

func TestLZWRejectsBadStream(t *testing.T) {
	if _, err := DecodeLZW([]byte{0x00}); err == nil {
		t.Fatal("expected format error for stream not starting with clear code")
	}
}

func TestPackBitsRoundTrip(t *testing.T) {
	line := []byte{1, 1, 1, 1, 2, 3, 4, 4, 4, 4, 4, 4, 5}
	encoded := EncodePackBits(line)
	decoded := DecodePackBits(encoded)
	if string(decoded) != string(line) {
		t.Fatalf("packbits round trip mismatch: got %v want %v", decoded, line)
	}
}

func TestPackBitsAllLiteral(t *testing.T) {
	line := []byte{1, 2, 3, 4, 5, 6, 7}
	decoded := DecodePackBits(EncodePackBits(line))
	if string(decoded) != string(line) {
		t.Fatalf("unexpected round trip: %v", decoded)
	}
}

func TestDeflateRoundTrip(t *testing.T) {
	w := NewDeflateWriter()
	if err := w.WriteLine([]byte("line one ")); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteLine([]byte("line two")); err != nil {
		t.Fatal(err)
	}
	compressed, err := w.Close()
	if err != nil {
		t.Fatal(err)
	}
	out, err := InflateAll(compressed)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "line one line two" {
		t.Fatalf("unexpected inflate result: %q", out)
	}
}
