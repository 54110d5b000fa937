package ui

import (
	"encoding/binary"
	"math"
)

// tone は効果音1音分の指定です。EndFreq が0なら周波数は一定です。
type tone struct {
	Freq    float64
	EndFreq float64
	Seconds float64
	Square  bool
}

// synthesize は tones を順に並べた 16bit リトルエンディアン ステレオの PCM を生成します。
// 各音は線形に減衰させ、クリックノイズを避けるため頭に短いフェードを入れます。
func synthesize(sampleRate int, volume float64, tones ...tone) []byte {
	total := 0
	for _, t := range tones {
		total += int(t.Seconds * float64(sampleRate))
	}
	buf := make([]byte, 0, total*4)
	fade := float64(sampleRate) * 0.005

	for _, t := range tones {
		n := int(t.Seconds * float64(sampleRate))
		phase := 0.0
		for i := 0; i < n; i++ {
			progress := float64(i) / float64(n)
			freq := t.Freq
			if t.EndFreq > 0 {
				freq = t.Freq + (t.EndFreq-t.Freq)*progress
			}
			phase += 2 * math.Pi * freq / float64(sampleRate)

			v := math.Sin(phase)
			if t.Square {
				v = math.Copysign(0.6, v)
			}
			env := 1 - progress
			if float64(i) < fade {
				env *= float64(i) / fade
			}
			s := int16(v * env * volume * math.MaxInt16)
			buf = binary.LittleEndian.AppendUint16(buf, uint16(s))
			buf = binary.LittleEndian.AppendUint16(buf, uint16(s))
		}
	}
	return buf
}
