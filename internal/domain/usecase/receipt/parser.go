package receipt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/amirhossein-jamali/receipt-points/internal/domain/entity"
	errs "github.com/amirhossein-jamali/receipt-points/internal/domain/error"
)

// specificationPayload is the JSON body returned by the fiscal specifications endpoint
type specificationPayload struct {
	Success bool            `json:"success"`
	Items   []specification `json:"items"`
}

type specification struct {
	GTIN      looseString `json:"gtin"`
	Name      looseString `json:"name"`
	Quantity  looseNumber `json:"quantity"`
	Total     looseNumber `json:"total"`
	UnitPrice looseNumber `json:"unitPrice"`
}

// looseNumber accepts a JSON number or a numeric string. Anything else leaves it unset.
type looseNumber struct {
	value float64
	set   bool
}

func (n *looseNumber) UnmarshalJSON(data []byte) error {
	text := string(bytes.TrimSpace(data))
	if text == "null" {
		return nil
	}

	if strings.HasPrefix(text, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		text = strings.TrimSpace(s)
		if strings.Contains(text, ",") && !strings.Contains(text, ".") {
			text = strings.Replace(text, ",", ".", 1)
		}
	}

	value, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return nil
	}

	n.value = value
	n.set = true
	return nil
}

// looseString accepts a JSON string or a bare number
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	text := string(bytes.TrimSpace(data))
	if text == "null" {
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = looseString(str)
		return nil
	}

	if !strings.HasPrefix(text, "{") && !strings.HasPrefix(text, "[") {
		*s = looseString(text)
	}
	return nil
}

// ParseReceiptItems normalizes the line items of a fiscal specification payload
func ParseReceiptItems(payload []byte) ([]entity.RawLineItem, error) {
	var spec specificationPayload
	if err := json.Unmarshal(payload, &spec); err != nil {
		return nil, errs.NewScanError(errs.KindParseFailed, "fiscal response is not valid JSON", err)
	}

	if !spec.Success || len(spec.Items) == 0 {
		return nil, errs.NewScanError(errs.KindEmptyReceipt, "", nil)
	}

	items := make([]entity.RawLineItem, 0, len(spec.Items))
	for _, raw := range spec.Items {
		item, err := normalizeItem(raw)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

// normalizeItem applies the line defaults. Quantities above entity.MaxLineQuantity are rejected.
func normalizeItem(raw specification) (entity.RawLineItem, error) {
	name := strings.TrimSpace(string(raw.Name))
	if name == "" {
		name = entity.DefaultProductName
	}

	quantity := int64(1)
	if raw.Quantity.set {
		rounded := math.Round(raw.Quantity.value)
		if rounded > float64(entity.MaxLineQuantity) {
			return entity.RawLineItem{}, errs.NewScanError(errs.KindParseFailed,
				fmt.Sprintf("item %q has an implausible quantity %v", name, raw.Quantity.value), errs.ErrInvalidQuantity)
		}
		if rounded > 1 {
			quantity = int64(rounded)
		}
	}

	item := entity.RawLineItem{
		Name:       name,
		Quantity:   quantity,
		ExternalID: strings.TrimSpace(string(raw.GTIN)),
	}

	if raw.Total.set {
		item.LineTotal = entity.AmountFromFloat(raw.Total.value)
	}
	if raw.UnitPrice.set {
		unitPrice := entity.AmountFromFloat(raw.UnitPrice.value)
		item.UnitPrice = &unitPrice
	}

	return item, nil
}
