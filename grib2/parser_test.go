package grib2

import (
	"errors"
	"testing"
)

// makeTestMessage builds a minimal well-formed GRIB2 message of the given
// length: a valid Section 0 declaring messageLength, padding, and the
// "7777" end marker.
func makeTestMessage(discipline uint8, messageLength uint64) []byte {
	if messageLength < 20 {
		messageLength = 20
	}

	msg := make([]byte, messageLength)
	copy(msg[0:4], "GRIB")
	msg[6] = discipline
	msg[7] = 2

	for i := 0; i < 8; i++ {
		msg[15-i] = byte(messageLength >> (8 * i))
	}

	copy(msg[len(msg)-4:], "7777")
	return msg
}

func TestFindMessagesSingle(t *testing.T) {
	msg := makeTestMessage(0, 256)

	boundaries, err := FindMessages(msg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(boundaries) != 1 {
		t.Fatalf("expected 1 message, got %d", len(boundaries))
	}
	b := boundaries[0]
	if b.Start != 0 || b.Length != 256 || b.Index != 0 {
		t.Errorf("got %+v", b)
	}
}

func TestFindMessagesMultiple(t *testing.T) {
	msg1 := makeTestMessage(0, 100)
	msg2 := makeTestMessage(1, 200)
	msg3 := makeTestMessage(2, 150)
	data := append(append(msg1, msg2...), msg3...)

	boundaries, err := FindMessages(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(boundaries) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(boundaries))
	}
	want := []MessageBoundary{{0, 100, 0}, {100, 200, 1}, {300, 150, 2}}
	for i, w := range want {
		if boundaries[i] != w {
			t.Errorf("boundary %d = %+v, want %+v", i, boundaries[i], w)
		}
	}
}

func TestFindMessagesEmpty(t *testing.T) {
	boundaries, err := FindMessages(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(boundaries) != 0 {
		t.Errorf("expected 0 messages, got %d", len(boundaries))
	}
}

func TestFindMessagesInvalidMagic(t *testing.T) {
	data := []byte{
		'X', 'X', 'X', 'X',
		0x00, 0x00, 0, 2,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x14,
		0x00, 0x00, 0x00, 0x00,
	}

	_, err := FindMessages(data)
	var invErr *InvalidFormatError
	if !errors.As(err, &invErr) {
		t.Errorf("expected *InvalidFormatError, got %T (%v)", err, err)
	}
}

func TestFindMessagesTruncated(t *testing.T) {
	msg := makeTestMessage(0, 256)
	if _, err := FindMessages(msg[:200]); err == nil {
		t.Fatal("expected an error for truncated message")
	}
}

func TestFindMessagesMissingEndMarker(t *testing.T) {
	msg := makeTestMessage(0, 100)
	copy(msg[len(msg)-4:], "XXXX")
	if _, err := FindMessages(msg); err == nil {
		t.Fatal("expected an error for a missing end marker")
	}
}

func TestSplitMessagesMultiple(t *testing.T) {
	msg1 := makeTestMessage(0, 100)
	msg2 := makeTestMessage(1, 200)
	data := append(msg1, msg2...)

	messages, err := SplitMessages(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(messages) != 2 || len(messages[0]) != 100 || len(messages[1]) != 200 {
		t.Errorf("got lengths %d, %d", len(messages[0]), len(messages[1]))
	}
}

func TestValidateMessageStructureValid(t *testing.T) {
	msg := makeTestMessage(0, 256)
	if err := ValidateMessageStructure(msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateMessageStructureLengthMismatch(t *testing.T) {
	msg := makeTestMessage(0, 256)
	if err := ValidateMessageStructure(msg[:200]); err == nil {
		t.Fatal("expected an error for a length mismatch")
	}
}

func TestValidateMessageStructureMissingEndMarker(t *testing.T) {
	msg := makeTestMessage(0, 100)
	copy(msg[len(msg)-4:], "XXXX")
	if err := ValidateMessageStructure(msg); err == nil {
		t.Fatal("expected an error for a missing end marker")
	}
}
