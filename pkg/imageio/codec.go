package imageio

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

const binaryMagic = "HASTEIMG"

// Codec persists an Image to and from a byte stream. original_source wrote
// OpenEXR; no OpenEXR binding appears anywhere in the example pack, so
// binaryCodec is this module's own simple format: a magic header, the
// pixel buffer dimensions, the metadata dictionary, then the raw pixel
// array.
type Codec interface {
	Encode(w io.Writer, img *Image) error
	Decode(r io.Reader) (*Image, error)
}

type binaryCodec struct{}

// BinaryCodec is the concrete in-module Codec implementation.
func BinaryCodec() Codec { return binaryCodec{} }

func (binaryCodec) Encode(w io.Writer, img *Image) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString(binaryMagic); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(img.Width)); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(img.Height)); err != nil {
		return err
	}

	if err := binary.Write(bw, binary.LittleEndian, uint32(len(img.Metadata))); err != nil {
		return err
	}
	for k, v := range img.Metadata {
		if err := writeString(bw, k); err != nil {
			return err
		}
		if err := writeString(bw, v); err != nil {
			return err
		}
	}

	for _, p := range img.Pixels {
		if err := binary.Write(bw, binary.LittleEndian, [4]float64{p.R, p.G, p.B, p.N}); err != nil {
			return err
		}
	}

	return bw.Flush()
}

func (binaryCodec) Decode(r io.Reader) (*Image, error) {
	magic := make([]byte, len(binaryMagic))
	if _, err := io.ReadFull(r, magic); err != nil {
		return nil, err
	}
	if string(magic) != binaryMagic {
		return nil, fmt.Errorf("imageio: bad magic header %q", magic)
	}

	var width, height, metaCount uint32
	if err := binary.Read(r, binary.LittleEndian, &width); err != nil {
		return nil, err
	}
	if err := binary.Read(r, binary.LittleEndian, &height); err != nil {
		return nil, err
	}
	if err := binary.Read(r, binary.LittleEndian, &metaCount); err != nil {
		return nil, err
	}

	img := NewImage(int(width), int(height))

	for i := uint32(0); i < metaCount; i++ {
		k, err := readString(r)
		if err != nil {
			return nil, err
		}
		v, err := readString(r)
		if err != nil {
			return nil, err
		}
		img.Metadata[k] = v
	}

	for i := range img.Pixels {
		var raw [4]float64
		if err := binary.Read(r, binary.LittleEndian, &raw); err != nil {
			return nil, err
		}
		img.Pixels[i] = Pixel{R: raw[0], G: raw[1], B: raw[2], N: raw[3]}
	}

	return img, nil
}

func writeString(w io.Writer, s string) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

func readString(r io.Reader) (string, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// Save writes img to path using codec.
func Save(path string, img *Image, codec Codec) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return codec.Encode(f, img)
}

// Load reads an Image from path using codec.
func Load(path string, codec Codec) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return codec.Decode(f)
}
