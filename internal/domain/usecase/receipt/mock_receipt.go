package receipt

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/amirhossein-jamali/receipt-points/internal/domain/entity"
	errs "github.com/amirhossein-jamali/receipt-points/internal/domain/error"
)

// Mock receipts let integration tests exercise the pipeline without the fiscal service.
// Format: TEST:<store>:<name>:<qty>:<price>,<name>:<qty>:<price>...
const (
	MockReceiptPrefix    = "TEST:"
	MockReceiptKeyPrefix = "TEST_"
	MockStoreName        = "Test Store"
	MockStoreLocation    = "Test Location"
)

// MockReceipt is a parsed TEST: payload
type MockReceipt struct {
	Store      entity.StoreInfo
	Items      []entity.RawLineItem
	ReceiptKey string
	Payload    []byte
}

// IsMockReceipt reports whether the scanned text is a TEST: payload
func IsMockReceipt(raw string) bool {
	return strings.HasPrefix(strings.TrimSpace(raw), MockReceiptPrefix)
}

// defaultMockItems is the fixture used when the payload names no items
func defaultMockItems() []entity.RawLineItem {
	return []entity.RawLineItem{
		{Name: "Test Product 1", Quantity: 2, LineTotal: 15000},
		{Name: "Test Product 2", Quantity: 1, LineTotal: 25000},
	}
}

// ParseMockReceipt parses a TEST: payload. Every mock receipt gets a fresh receipt key.
func ParseMockReceipt(raw string) (*MockReceipt, error) {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, MockReceiptPrefix) {
		return nil, errs.NewScanError(errs.KindInvalidQrPayload, "not a test receipt", nil)
	}

	payload, err := json.Marshal(map[string]any{
		"test":        true,
		"original_qr": raw,
	})
	if err != nil {
		return nil, errs.NewScanError(errs.KindInvalidQrPayload, "could not encode test receipt", err)
	}

	receipt := &MockReceipt{
		ReceiptKey: MockReceiptKeyPrefix + uuid.NewString(),
		Payload:    payload,
	}

	storeName, itemList, hasItems := strings.Cut(strings.TrimPrefix(text, MockReceiptPrefix), ":")
	storeName = strings.TrimSpace(storeName)
	itemList = strings.TrimSpace(itemList)

	if !hasItems || itemList == "" || storeName == "" {
		receipt.Store = entity.StoreInfo{Name: MockStoreName, Location: MockStoreLocation}
		receipt.Items = defaultMockItems()
		return receipt, nil
	}

	receipt.Store = entity.StoreInfo{Name: storeName, Location: MockStoreLocation}

	for _, entry := range strings.Split(itemList, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		item, err := parseMockItem(entry)
		if err != nil {
			return nil, err
		}
		receipt.Items = append(receipt.Items, item)
	}

	if len(receipt.Items) == 0 {
		receipt.Store = entity.StoreInfo{Name: MockStoreName, Location: MockStoreLocation}
		receipt.Items = defaultMockItems()
	}

	return receipt, nil
}

// parseMockItem reads name:qty:price. The name may itself contain colons.
func parseMockItem(entry string) (entity.RawLineItem, error) {
	fields := strings.Split(entry, ":")
	if len(fields) < 3 {
		return entity.RawLineItem{}, errs.NewScanError(errs.KindInvalidQrPayload,
			fmt.Sprintf("test item %q must be name:qty:price", entry), nil)
	}

	n := len(fields)
	name := strings.TrimSpace(strings.Join(fields[:n-2], ":"))
	if name == "" {
		name = entity.DefaultProductName
	}

	quantity, err := strconv.ParseInt(strings.TrimSpace(fields[n-2]), 10, 64)
	if err != nil || quantity < 1 || quantity > entity.MaxLineQuantity {
		return entity.RawLineItem{}, errs.NewScanError(errs.KindInvalidQrPayload,
			fmt.Sprintf("test item %q has an invalid quantity", entry), err)
	}

	price, err := entity.ParseAmount(fields[n-1])
	if err != nil {
		return entity.RawLineItem{}, errs.NewScanError(errs.KindInvalidQrPayload,
			fmt.Sprintf("test item %q has an invalid price", entry), err)
	}

	return entity.RawLineItem{
		Name:      name,
		Quantity:  quantity,
		LineTotal: price,
	}, nil
}
