package resources

import (
	"archive/zip"
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"
)

// gifBytes encodes a 4x4 GIF with one solid frame per delay, in hundredths
// of a second.
func gifBytes(t *testing.T, delays ...int) []byte {
	t.Helper()
	g := &gif.GIF{}
	for idx, d := range delays {
		pm := image.NewPaletted(image.Rect(0, 0, 4, 4), color.Palette{
			color.Transparent,
			color.RGBA{R: uint8(50 * idx), G: 100, A: 255},
		})
		for i := range pm.Pix {
			pm.Pix[i] = 1
		}
		g.Image = append(g.Image, pm)
		g.Delay = append(g.Delay, d)
	}
	buf := &bytes.Buffer{}
	if err := gif.EncodeAll(buf, g); err != nil {
		t.Fatalf("failed to encode test gif: %v", err)
	}
	return buf.Bytes()
}

func writeDir(t *testing.T, dir string, files map[string][]byte) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("mkdir for %q: %v", name, err)
		}
		if err := os.WriteFile(p, content, 0o644); err != nil {
			t.Fatalf("write %q: %v", name, err)
		}
	}
}

func writeZip(t *testing.T, zipPath string, files map[string][]byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(zipPath), 0o755); err != nil {
		t.Fatalf("mkdir for %q: %v", zipPath, err)
	}
	f, err := os.Create(zipPath)
	if err != nil {
		t.Fatalf("create %q: %v", zipPath, err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip entry %q: %v", name, err)
		}
		if _, err := w.Write(content); err != nil {
			t.Fatalf("zip write %q: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing zip %q: %v", zipPath, err)
	}
}

// encodePNG writes a 2x1 PNG with a red and a blue pixel.
func encodePNG(w io.Writer) error {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	img.Set(1, 0, color.NRGBA{B: 255, A: 255})
	return png.Encode(w, img)
}

// heroFiles is a small resource: a two frame GIF with anchors, a PNG kept as
// bytes, text, and a file of unknown type.
func heroFiles(t *testing.T) map[string][]byte {
	t.Helper()
	pngBuf := &bytes.Buffer{}
	if err := encodePNG(pngBuf); err != nil {
		t.Fatalf("encoding png: %v", err)
	}
	return map[string][]byte{
		"stand_south.gif": gifBytes(t, 10, 15),
		"stand_south.ini": []byte("[head_anchor]\n0=3,1\n1=3,2\n"),
		"portrait.png":    pngBuf.Bytes(),
		"bio.txt":         []byte("Ursula, the baker.\n"),
		"notes.dat":       {0xde, 0xad, 0xbe, 0xef},
	}
}
