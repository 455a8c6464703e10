package tray

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"runtime"
)

const iconSize = 16

var (
	tileColor  = color.RGBA{R: 0x1e, G: 0x6f, B: 0xd9, A: 0xff}
	arrowColor = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// drawIcon paints a blue tile with a white left/right double arrow.
func drawIcon() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, iconSize, iconSize))

	for y := 1; y < iconSize-1; y++ {
		for x := 1; x < iconSize-1; x++ {
			img.Set(x, y, tileColor)
		}
	}

	// Shaft.
	for x := 3; x <= 12; x++ {
		img.Set(x, 7, arrowColor)
		img.Set(x, 8, arrowColor)
	}
	// Heads.
	for d := 1; d <= 3; d++ {
		for _, y := range []int{7 - d, 8 + d} {
			img.Set(3+d, y, arrowColor)
			img.Set(12-d, y, arrowColor)
		}
	}
	return img
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// wrapICO places a single PNG image in an ICO container. Windows Vista and
// later accept PNG payloads inside ICO files.
func wrapICO(pngData []byte, size int) []byte {
	const headerLen = 6 + 16

	var buf bytes.Buffer
	buf.Grow(headerLen + len(pngData))

	// ICONDIR: reserved, type 1 (icon), one image.
	_ = binary.Write(&buf, binary.LittleEndian, [3]uint16{0, 1, 1})

	// ICONDIRENTRY.
	buf.WriteByte(byte(size))
	buf.WriteByte(byte(size))
	buf.WriteByte(0) // palette
	buf.WriteByte(0) // reserved
	_ = binary.Write(&buf, binary.LittleEndian, uint16(1))  // planes
	_ = binary.Write(&buf, binary.LittleEndian, uint16(32)) // bpp
	_ = binary.Write(&buf, binary.LittleEndian, uint32(len(pngData)))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(headerLen))

	buf.Write(pngData)
	return buf.Bytes()
}

// Icon returns the tray icon in the format the host tray expects: ICO on
// Windows, PNG elsewhere.
func Icon() ([]byte, error) {
	data, err := encodePNG(drawIcon())
	if err != nil {
		return nil, err
	}
	if runtime.GOOS == "windows" {
		return wrapICO(data, iconSize), nil
	}
	return data, nil
}
