// Package shapeio reads and writes shapes as line-delimited JSON.
//
// Every line is one record tagged with its type:
//
//	{"type":"rectangle","id":0,"x":10,"y":10,"w":20,"h":20,"cluster":-1}
//	{"type":"line","id":1,"x":20,"y":30,"w":0,"h":20,"start":{"x":20,"y":30},"end":{"x":20,"y":50}}
//	{"type":"node","id":1,"x":20,"y":20,"links":{"2":20},"connection":"R0"}
package shapeio

import (
	"bufio"
	"encoding/json"
	"io"
	"os"

	"github.com/ironsheep/floorplan-mcp/internal/errs"
	"github.com/ironsheep/floorplan-mcp/internal/geometry"
)

// maxLineSize bounds a single record; nodes with many links can be long.
const maxLineSize = 1 << 20

// Writer writes one JSON record per line.
type Writer struct {
	enc   *json.Encoder
	count int
}

// NewWriter creates a writer on w.
func NewWriter(w io.Writer) *Writer {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &Writer{enc: enc}
}

// Write encodes rec on its own line.
func (w *Writer) Write(rec any) error {
	if err := w.enc.Encode(rec); err != nil {
		return errs.Wrap(errs.CodeInternal, err, "write record %d", w.count)
	}
	w.count++
	return nil
}

// WriteAll writes every record in order.
func (w *Writer) WriteAll(recs []any) error {
	for _, rec := range recs {
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// Count returns the number of records written.
func (w *Writer) Count() int { return w.count }

// WriteFile writes recs to path, replacing any existing file.
func WriteFile(path string, recs []any) error {
	f, err := os.Create(path)
	if err != nil {
		return errs.Wrap(errs.CodeInternal, err, "create %s", path)
	}
	bw := bufio.NewWriter(f)
	if err := NewWriter(bw).WriteAll(recs); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return errs.Wrap(errs.CodeInternal, err, "flush %s", path)
	}
	return f.Close()
}

// Shapes are the shapes read back from a stream, in stream order per kind.
type Shapes struct {
	Rectangles []*geometry.Rectangle
	Lines      []*geometry.Line
	Nodes      []*geometry.Node
}

// ReadAll parses every record in r. Blank lines are skipped; an unknown
// type or malformed line is an INVALID_ARGUMENT error naming the line.
func ReadAll(r io.Reader) (*Shapes, error) {
	out := &Shapes{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		data := scanner.Bytes()
		if len(data) == 0 {
			continue
		}

		var head struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(data, &head); err != nil {
			return nil, errs.Wrap(errs.CodeInvalidArgument, err, "line %d", lineNo)
		}

		var err error
		switch head.Type {
		case geometry.TypeRectangle:
			var rec geometry.RectangleRecord
			if err = json.Unmarshal(data, &rec); err == nil {
				out.Rectangles = append(out.Rectangles, rec.Rectangle())
			}
		case geometry.TypeLine:
			var rec geometry.LineRecord
			if err = json.Unmarshal(data, &rec); err == nil {
				out.Lines = append(out.Lines, rec.Line())
			}
		case geometry.TypeNode:
			var rec geometry.NodeRecord
			if err = json.Unmarshal(data, &rec); err == nil {
				out.Nodes = append(out.Nodes, rec.Node())
			}
		default:
			return nil, errs.New(errs.CodeInvalidArgument, "line %d: unknown record type %q", lineNo, head.Type)
		}
		if err != nil {
			return nil, errs.Wrap(errs.CodeInvalidArgument, err, "line %d", lineNo)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errs.Wrap(errs.CodeInternal, err, "read records")
	}
	return out, nil
}

// ReadFile parses the records stored at path.
func ReadFile(path string) (*Shapes, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Wrap(errs.CodeInvalidArgument, err, "open %s", path)
	}
	defer f.Close()
	return ReadAll(f)
}
