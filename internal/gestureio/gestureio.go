// Package gestureio reads and writes gesture templates in the XML
// interchange format used by existing $P template sets:
//
//	<?xml version="1.0" encoding="utf-8" ?>
//	<Gesture Name = "ㄱ">
//		<Stroke>
//			<Point X = "0.25" Y = "-1.5" T = "0" Pressure = "0" />
//		</Stroke>
//	</Gesture>
//
// Points outside any Stroke element belong to stroke 0.
package gestureio

import (
	"bufio"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"sonjit/internal/geom"
	"sonjit/internal/pdollar"
)

var ErrMalformed = errors.New("gestureio: malformed gesture document")

// Read parses one gesture document.
func Read(r io.Reader) (pdollar.Gesture, error) {
	dec := xml.NewDecoder(r)
	var (
		g         pdollar.Gesture
		seenRoot  bool
		inStroke  bool
		stroke    = -1
		maxStroke = -1
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return pdollar.Gesture{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "Gesture":
				seenRoot = true
				g.Name = attr(el, "Name")
			case "Stroke":
				maxStroke++
				stroke = maxStroke
				inStroke = true
			case "Point":
				if !seenRoot {
					return pdollar.Gesture{}, fmt.Errorf("%w: point outside gesture", ErrMalformed)
				}
				p, err := parsePoint(el)
				if err != nil {
					return pdollar.Gesture{}, err
				}
				if inStroke {
					p.Stroke = stroke
				}
				g.Points = append(g.Points, p)
			}
		case xml.EndElement:
			if el.Name.Local == "Stroke" {
				inStroke = false
			}
		}
	}
	if !seenRoot {
		return pdollar.Gesture{}, fmt.Errorf("%w: no Gesture element", ErrMalformed)
	}
	return g, nil
}

func ReadFile(path string) (pdollar.Gesture, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return pdollar.Gesture{}, fmt.Errorf("open gesture %s: %w", path, err)
	}
	defer f.Close()
	g, err := Read(bufio.NewReader(f))
	if err != nil {
		return pdollar.Gesture{}, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// Write emits g with one Stroke element per run of equal stroke ids.
func Write(w io.Writer, g pdollar.Gesture) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, `<?xml version="1.0" encoding="utf-8" ?>`)
	fmt.Fprintf(bw, "<Gesture Name = \"%s\">\n", escape(g.Name))
	current := 0
	for i, p := range g.Points {
		if i == 0 || p.Stroke != current {
			if i > 0 {
				fmt.Fprintln(bw, "\t</Stroke>")
			}
			fmt.Fprintln(bw, "\t<Stroke>")
			current = p.Stroke
		}
		fmt.Fprintf(bw, "\t\t<Point X = \"%s\" Y = \"%s\" T = \"0\" Pressure = \"0\" />\n",
			formatFloat(p.X), formatFloat(p.Y))
	}
	if len(g.Points) > 0 {
		fmt.Fprintln(bw, "\t</Stroke>")
	}
	fmt.Fprintln(bw, "</Gesture>")
	return bw.Flush()
}

func WriteFile(path string, g pdollar.Gesture) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("create gesture %s: %w", path, err)
	}
	if err := Write(f, g); err != nil {
		f.Close()
		return fmt.Errorf("write gesture %s: %w", path, err)
	}
	return f.Close()
}

// Save writes a new template into dir under a unique file name and returns
// the path.
func Save(dir, name string, points []geom.Point) (string, error) {
	if name == "" {
		return "", errors.New("gestureio: template name is empty")
	}
	if len(points) == 0 {
		return "", errors.New("gestureio: template has no points")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create template dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("%s-%s.xml", name, uuid.NewString()))
	if err := WriteFile(path, pdollar.Gesture{Name: name, Points: points}); err != nil {
		return "", err
	}
	return path, nil
}

// LoadDir reads every *.xml file in dir in file-name order. Files that fail
// to parse are skipped; their errors are joined into the returned error
// alongside whatever loaded.
func LoadDir(dir string) ([]pdollar.Gesture, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read template dir: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".xml") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var (
		out  []pdollar.Gesture
		errs []error
	)
	for _, name := range names {
		g, err := ReadFile(filepath.Join(dir, name))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if g.Name == "" || len(g.Points) == 0 {
			errs = append(errs, fmt.Errorf("%s: %w: empty gesture", name, ErrMalformed))
			continue
		}
		out = append(out, g)
	}
	return out, errors.Join(errs...)
}

func attr(el xml.StartElement, name string) string {
	for _, a := range el.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func parsePoint(el xml.StartElement) (geom.Point, error) {
	x, err := strconv.ParseFloat(strings.TrimSpace(attr(el, "X")), 64)
	if err != nil {
		return geom.Point{}, fmt.Errorf("%w: point X: %v", ErrMalformed, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(attr(el, "Y")), 64)
	if err != nil {
		return geom.Point{}, fmt.Errorf("%w: point Y: %v", ErrMalformed, err)
	}
	return geom.Point{X: x, Y: y}, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func escape(s string) string {
	var b strings.Builder
	if err := xml.EscapeText(&b, []byte(s)); err != nil {
		return s
	}
	return b.String()
}
