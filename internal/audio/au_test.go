package audio

import (
	"encoding/binary"
	"errors"
	"io"
	"testing"
)

func auFile(encoding, rate, channels uint32, payload []byte) []byte {
	h := make([]byte, auHeaderSize)
	be := binary.BigEndian
	be.PutUint32(h[0:], auMagic)
	be.PutUint32(h[4:], auHeaderSize)
	be.PutUint32(h[8:], uint32(len(payload)))
	be.PutUint32(h[12:], encoding)
	be.PutUint32(h[16:], rate)
	be.PutUint32(h[20:], channels)
	return append(h, payload...)
}

func TestDecodeMulawMono(t *testing.T) {
	s, err := Decode(auFile(auEncodingULaw, 8000, 1, []byte{0x00, 0xFF}))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if s.SampleRate() != 8000 {
		t.Errorf("SampleRate() = %d", s.SampleRate())
	}
	// 两个单声道样本 -> 两帧立体声，每帧 4 字节
	if s.Length() != 8 {
		t.Fatalf("Length() = %d, want 8", s.Length())
	}
	pcm, _ := io.ReadAll(s)
	left := int16(binary.LittleEndian.Uint16(pcm[0:]))
	right := int16(binary.LittleEndian.Uint16(pcm[2:]))
	if left != -32124 || right != left {
		t.Errorf("first frame = (%d, %d), want (-32124, -32124)", left, right)
	}
	if last := int16(binary.LittleEndian.Uint16(pcm[4:])); last != 0 {
		t.Errorf("second frame = %d, want 0", last)
	}
}

func TestDecodePCM16Stereo(t *testing.T) {
	payload := []byte{0x01, 0x00, 0xFF, 0xFF} // L=256, R=-1
	s, err := Decode(auFile(auEncodingPCM16, 44100, 2, payload))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	pcm, _ := io.ReadAll(s)
	if len(pcm) != 4 {
		t.Fatalf("len(pcm) = %d, want 4", len(pcm))
	}
	if l := int16(binary.LittleEndian.Uint16(pcm[0:])); l != 256 {
		t.Errorf("left = %d, want 256", l)
	}
	if r := int16(binary.LittleEndian.Uint16(pcm[2:])); r != -1 {
		t.Errorf("right = %d, want -1", r)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"太短", []byte(".snd")},
		{"魔数错误", make([]byte, 32)},
		{"不支持的编码", auFile(27, 8000, 1, []byte{0})},
		{"声道数错误", auFile(auEncodingULaw, 8000, 6, []byte{0})},
		{"采样率为零", auFile(auEncodingULaw, 0, 1, []byte{0})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(tt.data); err == nil {
				t.Error("expected error")
			}
		})
	}
	if _, err := Decode(make([]byte, 32)); !errors.Is(err, ErrNotAU) {
		t.Errorf("error = %v, want ErrNotAU", err)
	}
}

func TestStreamSeek(t *testing.T) {
	s, _ := Decode(auFile(auEncodingULaw, 8000, 1, []byte{1, 2, 3}))
	io.ReadAll(s)
	if pos, err := s.Seek(0, io.SeekStart); err != nil || pos != 0 {
		t.Fatalf("Seek() = %d, %v", pos, err)
	}
	if pos, _ := s.Seek(-4, io.SeekEnd); pos != s.Length()-4 {
		t.Errorf("Seek(-4, End) = %d", pos)
	}
	if _, err := s.Seek(-1, io.SeekStart); err == nil {
		t.Error("expected error for negative position")
	}
}
