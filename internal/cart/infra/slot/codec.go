package slot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/dwikikusuma/storefront/internal/cart/domain"
)

// CurrentVersion is written by Encode. Payloads without a version field are
// read as version 1, the map layout used before versioning.
const CurrentVersion = 2

var ErrCorrupt = errors.New("corrupt cart payload")

type envelope struct {
	Version int     `json:"version"`
	Entries []entry `json:"entries"`
}

type entry struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

func Encode(cart domain.Cart) ([]byte, error) {
	env := envelope{Version: CurrentVersion, Entries: make([]entry, 0, cart.Len())}
	for _, it := range cart.Items() {
		env.Entries = append(env.Entries, entry{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return json.Marshal(env)
}

// Decode accepts the versioned envelope and both version 1 layouts:
// {"3":{"id":3,"qty":2}} and {"3":2}. Entries with a non-positive id or
// quantity are dropped.
func Decode(data []byte) (domain.Cart, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return domain.Cart{}, fmt.Errorf("%w: empty payload", ErrCorrupt)
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return domain.Cart{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	raw, ok := probe["version"]
	if !ok {
		return decodeV1(probe)
	}

	var version int
	if err := json.Unmarshal(raw, &version); err != nil {
		return domain.Cart{}, fmt.Errorf("%w: bad version: %v", ErrCorrupt, err)
	}
	if version != CurrentVersion {
		return domain.Cart{}, fmt.Errorf("%w: unsupported version %d", ErrCorrupt, version)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return domain.Cart{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	var cart domain.Cart
	for _, e := range env.Entries {
		if e.ProductID > 0 {
			cart.Set(e.ProductID, e.Quantity)
		}
	}
	return cart, nil
}

type v1Item struct {
	ID  int `json:"id"`
	Qty int `json:"qty"`
}

// decodeV1 reads an object keyed by product id. JSON objects carry no
// order, so items are restored in ascending id order.
func decodeV1(m map[string]json.RawMessage) (domain.Cart, error) {
	type kv struct {
		id, qty int
	}
	items := make([]kv, 0, len(m))

	for key, raw := range m {
		id, err := strconv.Atoi(key)
		if err != nil {
			return domain.Cart{}, fmt.Errorf("%w: key %q is not a product id", ErrCorrupt, key)
		}

		var qty int
		if err := json.Unmarshal(raw, &qty); err != nil {
			var it v1Item
			if err := json.Unmarshal(raw, &it); err != nil {
				return domain.Cart{}, fmt.Errorf("%w: item %q: %v", ErrCorrupt, key, err)
			}
			if it.ID != 0 && it.ID != id {
				return domain.Cart{}, fmt.Errorf("%w: item %q has id %d", ErrCorrupt, key, it.ID)
			}
			qty = it.Qty
		}
		items = append(items, kv{id, qty})
	}

	sort.Slice(items, func(i, j int) bool { return items[i].id < items[j].id })

	var cart domain.Cart
	for _, it := range items {
		if it.id > 0 {
			cart.Set(it.id, it.qty)
		}
	}
	return cart, nil
}
