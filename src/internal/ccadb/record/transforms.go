// Copyright (c) 2025 kidmin All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package record

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"

	"github.com/kidmin/ccadb-certificates-tabular/src/internal/helper/gc"
)

// cellClass selects the value transform applied to one raw column.
type cellClass uint8

const (
	classText cellClass = iota
	classBool
	classDate
	classHex
	classList
)

const (
	dateLayout = "2006-01-02"
	hexDigits  = "0123456789abcdef"
)

// crlListSchema gates the partitioned-CRL column before it is joined;
// CCADB publishes the cell as a JSON array of URL strings.
var crlListSchema = mustSchema(`{"type": "array", "items": {"type": "string"}}`)

func mustSchema(document string) *gojsonschema.Schema {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(document))
	if err != nil {
		panic("record: invalid embedded CRL list schema: " + err.Error())
	}
	return compiled
}

// transformCell converts one raw cell into its canonical typed value.
// Text cells pass through untouched, which keeps the canonical row
// faithful to CCADB for everything the converter has no opinion about.
func (c *Canonicalizer) transformCell(col int, value string) (any, error) {
	switch c.classes[col] {
	case classBool:
		return strings.EqualFold(value, "TRUE"), nil
	case classDate:
		cell, err := dateCell(value)
		if err != nil {
			return nil, fmt.Errorf("%w: column %d is not a calendar date: %v", ErrFieldValue, col+1, err)
		}
		return cell, nil
	case classHex:
		cell, err := colonHexCell(value)
		if err != nil {
			return nil, fmt.Errorf("%w: column %d is not base64: %v", ErrFieldValue, col+1, err)
		}
		return cell, nil
	case classList:
		cell, err := crlListCell(value)
		if err != nil {
			return nil, fmt.Errorf("%w: column %d is not a JSON array of strings: %v", ErrFieldValue, col+1, err)
		}
		return cell, nil
	default:
		return value, nil
	}
}

// dateCell normalizes a dotted date and parses it. CCADB has used both
// "2006.01.02" and "2006-01-02" spellings across export revisions; an
// empty cell stays empty as a nil cell.
func dateCell(value string) (any, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, strings.ReplaceAll(value, ".", "-"))
	if err != nil {
		return nil, err
	}
	return t, nil
}

// colonHexCell re-encodes a base64 key identifier as lowercase
// colon-separated hex, the spelling CCADB itself uses in its web UI.
func colonHexCell(value string) (string, error) {
	if value == "" {
		return "", nil
	}
	der, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return "", err
	}

	buf := gc.Default.Get()
	defer gc.Default.Put(buf)
	for i, octet := range der {
		if i > 0 {
			_ = buf.WriteByte(':')
		}
		_ = buf.WriteByte(hexDigits[octet>>4])
		_ = buf.WriteByte(hexDigits[octet&0x0f])
	}
	return buf.String(), nil
}

// crlListCell validates the partitioned-CRL JSON array and joins it with
// newlines, one URL per line. An empty array joins to the empty string,
// exactly like an empty cell, so the derived item count treats both as
// "no partitioned CRLs".
func crlListCell(value string) (string, error) {
	if value == "" {
		return "", nil
	}

	result, err := crlListSchema.Validate(gojsonschema.NewStringLoader(value))
	if err != nil {
		return "", err
	}
	if !result.Valid() {
		return "", fmt.Errorf("%s", result.Errors()[0])
	}

	var urls []string
	if err := json.Unmarshal([]byte(value), &urls); err != nil {
		return "", err
	}
	if len(urls) == 0 {
		return "", nil
	}

	buf := gc.Default.Get()
	defer gc.Default.Put(buf)
	for i, url := range urls {
		if i > 0 {
			_ = buf.WriteByte('\n')
		}
		_, _ = buf.WriteString(url)
	}
	return buf.String(), nil
}
