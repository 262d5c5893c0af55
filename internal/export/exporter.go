package export

import (
	"context"

	"go.uber.org/zap"

	"github.com/jonathan/careerpath/internal/types"
)

// Kind is the format of an exported document.
type Kind string

// Export kinds.
const (
	KindPDF  Kind = "pdf"
	KindHTML Kind = "html"
)

// Printer turns a print document into PDF bytes. An error means the rendering
// context could not be created or printing failed.
type Printer interface {
	PrintPDF(ctx context.Context, html []byte) ([]byte, error)
}

// Sink delivers an exported file and reports where it went.
type Sink interface {
	Write(ctx context.Context, filename string, data []byte) (location string, err error)
}

// Result is the outcome of an export.
type Result struct {
	Kind     Kind
	Filename string
	Bytes    []byte
	// Location is where the sink stored the file; empty without a sink.
	Location string
	// Sections are the headings of the delivered document.
	Sections []string
	// Fallback is set when the print path failed and the reduced template was used.
	Fallback bool
	// Cause is why the print path failed, when Fallback is set.
	Cause error
}

// Exporter prints resumes to PDF and falls back to a static HTML file.
type Exporter struct {
	printer Printer
	sink    Sink
	logger  *zap.Logger
}

// NewExporter creates an Exporter. printer and sink may be nil: without a printer every
// export takes the fallback path; without a sink results are only returned in memory.
func NewExporter(printer Printer, sink Sink, logger *zap.Logger) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{printer: printer, sink: sink, logger: logger}
}

// Export renders r for print and prints it. If printing is unavailable it renders the
// fallback template instead. The only error is a sink failure.
func (e *Exporter) Export(ctx context.Context, r *types.Resume) (*Result, error) {
	base := BaseName(r)

	res, cause := e.print(ctx, r, base)
	if cause != nil {
		e.logger.Warn("print export failed, using fallback", zap.Error(cause), zap.String("resume", base))
		var err error
		res, err = e.fallback(r, base)
		if err != nil {
			return nil, err
		}
		res.Cause = cause
	}

	if e.sink != nil {
		loc, err := e.sink.Write(ctx, res.Filename, res.Bytes)
		if err != nil {
			return nil, &SinkError{Filename: res.Filename, Cause: err}
		}
		res.Location = loc
	}

	e.logger.Info("resume exported",
		zap.String("kind", string(res.Kind)),
		zap.String("filename", res.Filename),
		zap.Int("bytes", len(res.Bytes)),
		zap.Bool("fallback", res.Fallback),
		zap.String("location", res.Location))
	return res, nil
}

func (e *Exporter) print(ctx context.Context, r *types.Resume, base string) (*Result, error) {
	if e.printer == nil {
		return nil, &RenderError{Message: "no printer available"}
	}
	doc, err := RenderPrint(r)
	if err != nil {
		return nil, err
	}
	pdf, err := e.printer.PrintPDF(ctx, doc)
	if err != nil {
		return nil, &RenderError{Message: "failed to print document", Cause: err}
	}
	sections, err := Outline(doc)
	if err != nil {
		e.logger.Debug("outline unavailable", zap.Error(err))
	}
	return &Result{
		Kind:     KindPDF,
		Filename: base + ".pdf",
		Bytes:    pdf,
		Sections: sections,
	}, nil
}

func (e *Exporter) fallback(r *types.Resume, base string) (*Result, error) {
	doc, err := RenderFallback(r)
	if err != nil {
		return nil, err
	}
	sections, err := Outline(doc)
	if err != nil {
		e.logger.Debug("outline unavailable", zap.Error(err))
	}
	return &Result{
		Kind:     KindHTML,
		Filename: base + ".html",
		Bytes:    doc,
		Sections: sections,
		Fallback: true,
	}, nil
}
