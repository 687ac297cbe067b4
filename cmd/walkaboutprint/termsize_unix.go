//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package main

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strconv"

	"golang.org/x/crypto/ssh/terminal"
	"golang.org/x/sys/unix"
)

// TermSize is the terminal size in character cells and, where the terminal
// reports it, in pixels.
type TermSize struct {
	WSRow, WSCol       uint
	WSXPixel, WSYPixel uint
}

var kittyPixelSizeReply = regexp.MustCompile(`\[4;(\d+);(\d+)t`)

// queryKittyPixelSize asks kitty for the window size in pixels with the
// "CSI 14 t" escape code and parses its "CSI 4;height;width t" reply.
func queryKittyPixelSize(f *os.File) (width, height int, ok bool) {
	state, err := terminal.MakeRaw(int(f.Fd()))
	if err != nil {
		return 0, 0, false
	}
	defer terminal.Restore(int(f.Fd()), state)

	fmt.Printf("\033[14t")
	b := make([]byte, 1)
	if _, err := os.Stdin.Read(b); err != nil || b[0] != 033 {
		return 0, 0, false
	}
	s, err := bufio.NewReader(os.Stdin).ReadString('t')
	if err != nil {
		return 0, 0, false
	}
	matches := kittyPixelSizeReply.FindStringSubmatch(s)
	if len(matches) != 3 {
		return 0, 0, false
	}
	height, errH := strconv.Atoi(matches[1])
	width, errW := strconv.Atoi(matches[2])
	if errH != nil || errW != nil {
		return 0, 0, false
	}
	return width, height, true
}

func GetTermSize() (TermSize, error) {
	f, err := os.OpenFile("/dev/tty", unix.O_NOCTTY|unix.O_CLOEXEC|unix.O_NDELAY|unix.O_RDWR, 0666)
	if err == nil {
		defer f.Close()
		sz, err := unix.IoctlGetWinsize(int(f.Fd()), unix.TIOCGWINSZ)
		if err == nil {
			if sz.Xpixel == 0 && sz.Ypixel == 0 && os.Getenv("TERM") == "xterm-kitty" {
				if w, h, ok := queryKittyPixelSize(f); ok {
					sz.Xpixel = uint16(w)
					sz.Ypixel = uint16(h)
				}
			}
			return TermSize{WSRow: uint(sz.Row), WSCol: uint(sz.Col), WSXPixel: uint(sz.Xpixel), WSYPixel: uint(sz.Ypixel)}, nil
		}
	}
	w, h, err := terminal.GetSize(0)
	if err != nil {
		return TermSize{}, err
	}
	return TermSize{WSRow: uint(h), WSCol: uint(w)}, nil
}
