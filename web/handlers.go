// Package web serves previews of resources over HTTP: walkabouts and palette
// cycles as animated GIFs, frame lists as JSON with embedded PNGs, and
// listings of what a resource contains.
package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ericpauley/go-quantize/quantize"
	"github.com/golang/glog"
	"github.com/gorilla/mux"
	"github.com/nfnt/resize"
	"github.com/pkg/errors"
	"github.com/vincent-petithory/dataurl"
	"golang.org/x/net/trace"

	"badc0de.net/pkg/go-hypatia/anim"
	"badc0de.net/pkg/go-hypatia/resources"
	"badc0de.net/pkg/go-hypatia/walkabout"
)

const maxScale = 8

type Handler struct {
	src resources.Source
}

// NewHandler constructs a web handler serving resources from src. Since
// every request loads what it shows, src should usually be a
// *resources.Cache.
func NewHandler(src resources.Source) *Handler {
	return &Handler{src: src}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/walkabout/{name}.gif", h.walkaboutGIFHandler)
	r.HandleFunc("/walkabout/{name}/frames.json", h.walkaboutFramesHandler)
	r.HandleFunc("/palettecycle/{category}/{name}/{file}.gif", h.paletteCycleHandler)
	r.HandleFunc("/resource/{category}/{name}", h.resourceHandler)
}

// statusFor maps load and decode errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, resources.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, walkabout.ErrBadWalkabout),
		errors.Is(err, resources.ErrParse),
		errors.Is(err, resources.ErrEncoding),
		errors.Is(err, resources.ErrInvalidArgument):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) fail(w http.ResponseWriter, tr trace.Trace, err error) {
	tr.LazyPrintf("%v", err)
	tr.SetError()
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		glog.Errorf("web: %v", err)
	}
	http.Error(w, err.Error(), status)
}

// scale reads the ?scale= query parameter: a whole magnification factor,
// 1 if absent or invalid.
func scale(r *http.Request) int {
	s, err := strconv.Atoi(r.URL.Query().Get("scale"))
	if err != nil || s < 1 {
		return 1
	}
	if s > maxScale {
		return maxScale
	}
	return s
}

func scaled(images []image.Image, factor int) []image.Image {
	if factor == 1 {
		return images
	}
	out := make([]image.Image, len(images))
	for idx, img := range images {
		size := img.Bounds().Size()
		out[idx] = resize.Resize(uint(size.X*factor), uint(size.Y*factor), img, resize.NearestNeighbor)
	}
	return out
}

// encodeOptions reads ?quantizer=: "gogif" (the default) or "mediancut" for
// go-quantize's median cut, and ?colors= for the palette size.
func encodeOptions(r *http.Request) *anim.EncodeOptions {
	o := &anim.EncodeOptions{}
	if n, err := strconv.Atoi(r.URL.Query().Get("colors")); err == nil {
		o.NumColor = n
	}
	if r.URL.Query().Get("quantizer") == "mediancut" {
		o.Quantizer = quantize.MedianCutQuantizer{}
	}
	return o
}

// buildWalkabout loads the walkabout named in the route, with children from
// ?children=a,b, switched to ?action= and ?direction= if passed.
func (h *Handler) buildWalkabout(r *http.Request) (*walkabout.Walkabout, error) {
	q := r.URL.Query()
	var children []*walkabout.Walkabout
	if c := q.Get("children"); c != "" {
		for _, name := range strings.Split(c, ",") {
			child, err := walkabout.New(h.src, name, image.Point{})
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		}
	}

	w, err := walkabout.New(h.src, mux.Vars(r)["name"], image.Point{}, children...)
	if err != nil {
		return nil, err
	}

	a, d := w.Action(), w.Direction()
	if s := q.Get("action"); s != "" {
		var ok bool
		if a, ok = walkabout.ParseAction(s); !ok {
			return nil, errors.Wrapf(resources.ErrInvalidArgument, "unknown action %q", s)
		}
	}
	if s := q.Get("direction"); s != "" {
		var ok bool
		if d, ok = walkabout.ParseDirection(s); !ok {
			return nil, errors.Wrapf(resources.ErrInvalidArgument, "unknown direction %q", s)
		}
	}
	if err := w.SetState(a, d); err != nil {
		return nil, err
	}
	return w, nil
}

func writeGIF(w http.ResponseWriter, r *http.Request, tr trace.Trace, etag string, images []image.Image, delays []time.Duration) error {
	buf := &bytes.Buffer{}
	if err := anim.EncodeGIF(buf, scaled(images, scale(r)), delays, encodeOptions(r)); err != nil {
		return err
	}
	tr.LazyPrintf("encoded %d frames into %d bytes", len(images), buf.Len())

	w.Header().Set("Content-Type", "image/gif")
	w.Header().Set("Cache-Control", "public; max-age=3600")
	w.Header().Set("ETag", etag)
	w.WriteHeader(http.StatusOK)
	_, err := buf.WriteTo(w)
	return err
}

func notModified(w http.ResponseWriter, r *http.Request, etag string) bool {
	if r.Header.Get("If-None-Match") != etag {
		return false
	}
	w.Header().Set("Cache-Control", "public; max-age=3600")
	w.Header().Set("ETag", etag)
	w.WriteHeader(http.StatusNotModified)
	return true
}

func (h *Handler) walkaboutGIFHandler(w http.ResponseWriter, r *http.Request) {
	tr := trace.New("web.walkaboutGIF", r.URL.Path)
	defer tr.Finish()

	generation := 1 // bump if the way we generate it changes
	etag := fmt.Sprintf(`W/"walkabout:%d:%s:%s"`, generation, mux.Vars(r)["name"], r.URL.RawQuery)
	if notModified(w, r, etag) {
		return
	}

	wa, err := h.buildWalkabout(r)
	if err != nil {
		h.fail(w, tr, err)
		return
	}
	images, delays, err := wa.Record(0, 0)
	if err != nil {
		h.fail(w, tr, err)
		return
	}
	if err := writeGIF(w, r, tr, etag, images, delays); err != nil {
		h.fail(w, tr, err)
	}
}

// Frame is one entry of a frames.json listing.
type Frame struct {
	Index      int    `json:"index"`
	DurationMS int64  `json:"duration_ms"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	DataURL    string `json:"data_url"`
}

func (h *Handler) walkaboutFramesHandler(w http.ResponseWriter, r *http.Request) {
	tr := trace.New("web.walkaboutFrames", r.URL.Path)
	defer tr.Finish()

	wa, err := h.buildWalkabout(r)
	if err != nil {
		h.fail(w, tr, err)
		return
	}
	images, delays, err := wa.Record(0, 0)
	if err != nil {
		h.fail(w, tr, err)
		return
	}
	images = scaled(images, scale(r))

	frames := make([]Frame, 0, len(images))
	for idx, img := range images {
		buf := &bytes.Buffer{}
		if err := png.Encode(buf, img); err != nil {
			h.fail(w, tr, errors.Wrapf(err, "encoding frame %d", idx))
			return
		}
		byt, err := dataurl.New(buf.Bytes(), "image/png").MarshalText()
		if err != nil {
			h.fail(w, tr, errors.Wrapf(err, "encoding frame %d as data url", idx))
			return
		}
		size := img.Bounds().Size()
		frames = append(frames, Frame{
			Index:      idx,
			DurationMS: delays[idx].Milliseconds(),
			Width:      size.X,
			Height:     size.Y,
			DataURL:    string(byt),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(frames); err != nil {
		glog.Errorf("web: writing frames of %q: %v", wa.Name, err)
	}
}

func (h *Handler) paletteCycleHandler(w http.ResponseWriter, r *http.Request) {
	tr := trace.New("web.paletteCycle", r.URL.Path)
	defer tr.Finish()

	vars := mux.Vars(r)
	etag := fmt.Sprintf(`W/"palettecycle:%s/%s/%s:%s"`, vars["category"], vars["name"], vars["file"], r.URL.RawQuery)
	if notModified(w, r, etag) {
		return
	}

	res, err := h.src.Load(vars["category"], vars["name"])
	if err != nil {
		h.fail(w, tr, err)
		return
	}
	b, err := res.Bytes(vars["file"] + ".png")
	if err != nil {
		h.fail(w, tr, err)
		return
	}
	img, err := b.DecodeImage()
	if err != nil {
		h.fail(w, tr, err)
		return
	}
	tr.LazyPrintf("palette cycling %v image", img.Bounds().Size())

	s, err := anim.PaletteCycle(img)
	if err != nil {
		h.fail(w, tr, err)
		return
	}
	images := make([]image.Image, 0, s.Len())
	delays := make([]time.Duration, 0, s.Len())
	for _, f := range s.Frames() {
		images = append(images, f.Surface)
		delays = append(delays, f.Duration)
	}
	if err := writeGIF(w, r, tr, etag, images, delays); err != nil {
		h.fail(w, tr, err)
	}
}

// Asset describes one file of a resource listing.
type Asset struct {
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	Frames int    `json:"frames,omitempty"`
	// DurationMS is the total duration of an animation.
	DurationMS int64 `json:"duration_ms,omitempty"`
	// Size is the largest frame of an animation, or the size of an image.
	Size *image.Point `json:"size,omitempty"`
}

func describe(name string, a resources.Asset) Asset {
	d := Asset{Name: name, Kind: a.Kind().String()}
	switch v := a.(type) {
	case resources.Animation:
		d.Frames = v.Len()
		d.DurationMS = v.TotalDuration().Milliseconds()
		size := v.LargestFrameSize()
		d.Size = &size
	case resources.Bytes:
		if img, err := v.DecodeImage(); err == nil {
			size := img.Bounds().Size()
			d.Size = &size
		}
	}
	return d
}

func (h *Handler) resourceHandler(w http.ResponseWriter, r *http.Request) {
	tr := trace.New("web.resource", r.URL.Path)
	defer tr.Finish()

	vars := mux.Vars(r)
	res, err := h.src.Load(vars["category"], vars["name"])
	if err != nil {
		h.fail(w, tr, err)
		return
	}

	listing := make([]Asset, 0, res.Len())
	for _, name := range res.Names() {
		a, _ := res.Get(name)
		listing = append(listing, describe(name, a))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(listing); err != nil {
		glog.Errorf("web: writing listing of %v: %v", res, err)
	}
}
