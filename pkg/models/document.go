package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Document is the top-level shape of the catalog export.
type Document struct {
	Dict        DictGroups   `json:"dict"`
	Collections []Collection `json:"collections"`
}

// DictItem is one enumerated lookup value. All fields are stored verbatim.
type DictItem struct {
	ID        Scalar `json:"id"`
	TypeCode  Scalar `json:"typeCode"`
	DictCode  Scalar `json:"dictCode"`
	DictValue Scalar `json:"dictValue"`
	DictSort  Scalar `json:"dictSort"`
	Status    Scalar `json:"status"`
}

// DictGroup is one category of the dict object.
type DictGroup struct {
	Category string
	Items    []DictItem
}

// DictGroups keeps the categories of the dict object in source order.
// An absent or null dict decodes to nil; an empty object to an empty slice.
type DictGroups []DictGroup

func (g *DictGroups) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*g = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("dict: expected object, got %v", tok)
	}

	out := DictGroups{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("dict: expected key, got %v", tok)
		}

		var items []DictItem
		if err := dec.Decode(&items); err != nil {
			return fmt.Errorf("dict %q: %w", key, err)
		}
		out = append(out, DictGroup{Category: key, Items: items})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*g = out
	return nil
}

// Collection is a card pack or product. Cards are kept undecoded so each one
// can be parsed and rejected on its own.
type Collection struct {
	ID            *RowID            `json:"id"`
	Name          Scalar            `json:"name"`
	CommodityCode Scalar            `json:"commodityCode"`
	SalesDate     Scalar            `json:"salesDate"`
	Series        Scalar            `json:"series"`
	SeriesText    Scalar            `json:"seriesText"`
	GoodsType     Scalar            `json:"goodsType"`
	LinkType      Scalar            `json:"linkType"`
	Image         Scalar            `json:"image"`
	Cards         []json.RawMessage `json:"cards"`
}
