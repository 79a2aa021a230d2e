package relayout

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// pageRecord is the JSON form of an extracted page. Lines are either
// grouped in blocks or listed directly.
type pageRecord struct {
	Rotation int                      `json:"rotation"`
	Blocks   []map[string]interface{} `json:"blocks"`
	Lines    []map[string]interface{} `json:"lines"`
}

// parsePage decodes a page record. Numbers are kept as json.Number so large
// color values survive.
func parsePage(data []byte) (pageRecord, error) {
	var page pageRecord
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&page); err != nil {
		return pageRecord{}, fmt.Errorf("%w: %v", ErrInvalidPage, err)
	}
	if len(page.Blocks) > 0 && len(page.Lines) > 0 {
		return pageRecord{}, fmt.Errorf("%w: both blocks and lines given", ErrInvalidPage)
	}
	return page, nil
}
