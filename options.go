package relayout

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/tsawler/relayout/docx"
	"github.com/tsawler/relayout/model"
)

// convertOptions holds configuration for a conversion.
type convertOptions struct {
	// Geometry (nil means take it from the page record / no clipping)
	rotation *int
	clip     *model.BBox

	// Content processing
	keepWhiteSpace bool // keep blank spans and whitespace-only lines

	// Output
	title     string
	describer docx.ImageDescriber
	logger    logrus.FieldLogger
}

// defaultOptions returns the default conversion options.
func defaultOptions() convertOptions {
	return convertOptions{
		rotation:       nil,
		clip:           nil,
		keepWhiteSpace: false,
		logger:         discardLogger(),
	}
}

// clone creates a deep copy of convertOptions.
func (o convertOptions) clone() convertOptions {
	newOpts := convertOptions{
		keepWhiteSpace: o.keepWhiteSpace,
		title:          o.title,
		describer:      o.describer,
		logger:         o.logger,
	}

	if o.rotation != nil {
		r := *o.rotation
		newOpts.rotation = &r
	}
	if o.clip != nil {
		c := *o.clip
		newOpts.clip = &c
	}

	return newOpts
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
