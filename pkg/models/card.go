package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// sentinel the source uses for "no value" in ability text and damage
const noneSentinel = "none"

type Card struct {
	ID                *RowID       `json:"id"`
	YorenCode         Scalar       `json:"yorenCode"`
	CardType          Scalar       `json:"cardType"`
	PokemonType       Scalar       `json:"pokemonType"`
	SpecialCard       Scalar       `json:"specialCard"`
	NameSamePokemonID Scalar       `json:"nameSamePokemonId"`
	Name              Scalar       `json:"name"`
	Image             Scalar       `json:"image"`
	Hash              Scalar       `json:"hash"`
	Details           *CardDetails `json:"details"`
}

// CardDetails is the nested detail payload of a card.
type CardDetails struct {
	CardTypeText       Scalar       `json:"cardTypeText"`
	EvolveText         Scalar       `json:"evolveText"`
	RegulationMarkText Scalar       `json:"regulationMarkText"`
	CollectionNumber   Scalar       `json:"collectionNumber"`
	Rarity             Scalar       `json:"rarity"`
	RarityText         Scalar       `json:"rarityText"`
	HP                 Scalar       `json:"hp"`
	Attribute          Scalar       `json:"attribute"`
	FeatureFlag        Scalar       `json:"featureFlag"`
	PokemonCategory    Scalar       `json:"pokemonCategory"`
	WeaknessType       Scalar       `json:"weaknessType"`
	WeaknessFormula    Scalar       `json:"weaknessFormula"`
	ResistanceType     Scalar       `json:"resistanceType"`
	ResistanceFormula  Scalar       `json:"resistanceFormula"`
	RetreatCost        Scalar       `json:"retreatCost"`
	PokedexCode        Scalar       `json:"pokedexCode"`
	PokedexText        Scalar       `json:"pokedexText"`
	Height             Scalar       `json:"height"`
	Weight             Scalar       `json:"weight"`
	RuleText           Scalar       `json:"ruleText"`
	CollectionFlag     Scalar       `json:"collectionFlag"`
	SpecialShinyType   Scalar       `json:"special_shiny_type"`
	ShinyTypeCamel     Scalar       `json:"specialShinyType"`
	Abilities          []*Ability   `json:"abilityItemList"`
	Features           []*Feature   `json:"cardFeatureItemList"`
	Commodities        []*Commodity `json:"commodityList"`
	Illustrators       []Scalar     `json:"illustratorName"`
}

// ShinyType prefers the snake_case key the export uses and falls back to the
// camelCase spelling every other field follows.
func (d *CardDetails) ShinyType() Scalar {
	if !d.SpecialShinyType.IsNull() {
		return d.SpecialShinyType
	}
	return d.ShinyTypeCamel
}

type Ability struct {
	Name   Scalar `json:"abilityName"`
	Text   Scalar `json:"abilityText"`
	Cost   Scalar `json:"abilityCost"`
	Damage Scalar `json:"abilityDamage"`
}

// UnmarshalJSON maps the "none" sentinel in text and damage to NULL.
func (a *Ability) UnmarshalJSON(b []byte) error {
	type plain Ability
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*a = Ability(p)
	a.Text = dropNone(a.Text)
	a.Damage = dropNone(a.Damage)
	return nil
}

func dropNone(s Scalar) Scalar {
	if str, ok := s.v.(string); ok && str == noneSentinel {
		return Scalar{}
	}
	return s
}

type Feature struct {
	Name Scalar `json:"featureName"`
	Desc Scalar `json:"featureDesc"`
}

type Commodity struct {
	Name Scalar `json:"commodityName"`
	Code Scalar `json:"commodityCode"`
}

var ErrNoCardID = errors.New("card has no id")

// DecodeCard parses one card entry and checks the parts the importer relies on.
func DecodeCard(raw json.RawMessage) (*Card, error) {
	var c Card
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	if c.ID == nil {
		return nil, ErrNoCardID
	}
	if d := c.Details; d != nil {
		for i, a := range d.Abilities {
			if a == nil {
				return nil, fmt.Errorf("abilityItemList[%d] is null", i)
			}
		}
		for i, f := range d.Features {
			if f == nil {
				return nil, fmt.Errorf("cardFeatureItemList[%d] is null", i)
			}
		}
		for i, cm := range d.Commodities {
			if cm == nil {
				return nil, fmt.Errorf("commodityList[%d] is null", i)
			}
		}
	}
	return &c, nil
}

// PeekCardID extracts the id text of a card entry that may not decode.
func PeekCardID(raw json.RawMessage) string {
	var head struct {
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(raw, &head); err != nil || len(head.ID) == 0 {
		return ""
	}
	return string(head.ID)
}
