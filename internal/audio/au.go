// Package audio 解码 Sun/NeXT .au 音效
//
// 输出为 Ebitengine audio.Context 使用的 16-bit 小端立体声 PCM，
// 单声道输入会复制到左右声道。采样率保持文件原值，由调用方重采样。
package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ErrNotAU 数据不是 .au 文件
var ErrNotAU = errors.New("not an AU stream")

const (
	auMagic         = 0x2e736e64 // ".snd"
	auHeaderSize    = 24
	auEncodingULaw  = 1 // 8-bit μ-law
	auEncodingPCM16 = 3 // 16-bit 大端线性 PCM
	auUnknownSize   = 0xFFFFFFFF
)

// Stream 解码后的 PCM 数据，实现 io.ReadSeeker
type Stream struct {
	pcm        []byte
	sampleRate int
	offset     int64
}

// μ-law 到 16-bit PCM 的查找表
var mulawTable = [256]int16{
	-32124, -31100, -30076, -29052, -28028, -27004, -25980, -24956,
	-23932, -22908, -21884, -20860, -19836, -18812, -17788, -16764,
	-15996, -15484, -14972, -14460, -13948, -13436, -12924, -12412,
	-11900, -11388, -10876, -10364, -9852, -9340, -8828, -8316,
	-7932, -7676, -7420, -7164, -6908, -6652, -6396, -6140,
	-5884, -5628, -5372, -5116, -4860, -4604, -4348, -4092,
	-3900, -3772, -3644, -3516, -3388, -3260, -3132, -3004,
	-2876, -2748, -2620, -2492, -2364, -2236, -2108, -1980,
	-1884, -1820, -1756, -1692, -1628, -1564, -1500, -1436,
	-1372, -1308, -1244, -1180, -1116, -1052, -988, -924,
	-876, -844, -812, -780, -748, -716, -684, -652,
	-620, -588, -556, -524, -492, -460, -428, -396,
	-372, -356, -340, -324, -308, -292, -276, -260,
	-244, -228, -212, -196, -180, -164, -148, -132,
	-120, -112, -104, -96, -88, -80, -72, -64,
	-56, -48, -40, -32, -24, -16, -8, 0,
	32124, 31100, 30076, 29052, 28028, 27004, 25980, 24956,
	23932, 22908, 21884, 20860, 19836, 18812, 17788, 16764,
	15996, 15484, 14972, 14460, 13948, 13436, 12924, 12412,
	11900, 11388, 10876, 10364, 9852, 9340, 8828, 8316,
	7932, 7676, 7420, 7164, 6908, 6652, 6396, 6140,
	5884, 5628, 5372, 5116, 4860, 4604, 4348, 4092,
	3900, 3772, 3644, 3516, 3388, 3260, 3132, 3004,
	2876, 2748, 2620, 2492, 2364, 2236, 2108, 1980,
	1884, 1820, 1756, 1692, 1628, 1564, 1500, 1436,
	1372, 1308, 1244, 1180, 1116, 1052, 988, 924,
	876, 844, 812, 780, 748, 716, 684, 652,
	620, 588, 556, 524, 492, 460, 428, 396,
	372, 356, 340, 324, 308, 292, 276, 260,
	244, 228, 212, 196, 180, 164, 148, 132,
	120, 112, 104, 96, 88, 80, 72, 64,
	56, 48, 40, 32, 24, 16, 8, 0,
}

// Decode 解析 .au 数据（支持 μ-law 与 16-bit PCM，单声道或立体声）
func Decode(data []byte) (*Stream, error) {
	if len(data) < auHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrNotAU, len(data))
	}
	be := binary.BigEndian
	if be.Uint32(data[0:]) != auMagic {
		return nil, ErrNotAU
	}
	offset := be.Uint32(data[4:])
	size := be.Uint32(data[8:])
	encoding := be.Uint32(data[12:])
	rate := be.Uint32(data[16:])
	channels := be.Uint32(data[20:])

	if channels < 1 || channels > 2 {
		return nil, fmt.Errorf("unsupported AU channel count: %d", channels)
	}
	if rate == 0 {
		return nil, fmt.Errorf("invalid AU sample rate: 0")
	}
	if offset < auHeaderSize || int(offset) > len(data) {
		return nil, fmt.Errorf("invalid AU data offset: %d (file size %d)", offset, len(data))
	}
	payload := data[offset:]
	if size != auUnknownSize && int(size) < len(payload) {
		payload = payload[:size]
	}

	var samples []int16
	switch encoding {
	case auEncodingULaw:
		samples = make([]int16, len(payload))
		for i, b := range payload {
			samples[i] = mulawTable[b]
		}
	case auEncodingPCM16:
		samples = make([]int16, len(payload)/2)
		for i := range samples {
			samples[i] = int16(be.Uint16(payload[i*2:]))
		}
	default:
		return nil, fmt.Errorf("unsupported AU encoding: %d", encoding)
	}

	return &Stream{pcm: toStereo16(samples, int(channels)), sampleRate: int(rate)}, nil
}

// toStereo16 交错样本转换为 16-bit 小端立体声
func toStereo16(samples []int16, channels int) []byte {
	frames := len(samples) / channels
	out := make([]byte, frames*4)
	for f := 0; f < frames; f++ {
		l := samples[f*channels]
		r := l
		if channels == 2 {
			r = samples[f*channels+1]
		}
		binary.LittleEndian.PutUint16(out[f*4:], uint16(l))
		binary.LittleEndian.PutUint16(out[f*4+2:], uint16(r))
	}
	return out
}

func (s *Stream) Read(p []byte) (int, error) {
	if s.offset >= int64(len(s.pcm)) {
		return 0, io.EOF
	}
	n := copy(p, s.pcm[s.offset:])
	s.offset += int64(n)
	return n, nil
}

func (s *Stream) Seek(offset int64, whence int) (int64, error) {
	var next int64
	switch whence {
	case io.SeekStart:
		next = offset
	case io.SeekCurrent:
		next = s.offset + offset
	case io.SeekEnd:
		next = int64(len(s.pcm)) + offset
	default:
		return 0, fmt.Errorf("invalid whence: %d", whence)
	}
	if next < 0 {
		return 0, fmt.Errorf("negative position: %d", next)
	}
	s.offset = next
	return next, nil
}

// Length PCM 字节数
func (s *Stream) Length() int64 {
	return int64(len(s.pcm))
}

// SampleRate 文件采样率
func (s *Stream) SampleRate() int {
	return s.sampleRate
}
