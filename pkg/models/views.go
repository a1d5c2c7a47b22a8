package models

// Read-side shapes served by the catalog API. Nullable columns are Scalars,
// which render as JSON null when absent.

type CardSummary struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	YorenCode        Scalar `json:"yoren_code"`
	CardType         Scalar `json:"card_type"`
	CardTypeText     Scalar `json:"card_type_text"`
	Rarity           Scalar `json:"rarity"`
	RarityText       Scalar `json:"rarity_text"`
	HP               Scalar `json:"hp"`
	CollectionNumber Scalar `json:"collection_number"`
	Image            Scalar `json:"image"`
}

type CardView struct {
	CardSummary
	PokemonType        Scalar `json:"pokemon_type"`
	SpecialCard        Scalar `json:"special_card"`
	NameSamePokemonID  Scalar `json:"name_same_pokemon_id"`
	Hash               Scalar `json:"hash"`
	EvolveText         Scalar `json:"evolve_text"`
	RegulationMarkText Scalar `json:"regulation_mark_text"`
	Attribute          Scalar `json:"attribute"`
	PokemonCategory    Scalar `json:"pokemon_category"`
	WeaknessType       Scalar `json:"weakness_type"`
	WeaknessFormula    Scalar `json:"weakness_formula"`
	ResistanceType     Scalar `json:"resistance_type"`
	ResistanceFormula  Scalar `json:"resistance_formula"`
	RetreatCost        Scalar `json:"retreat_cost"`
	PokedexText        Scalar `json:"pokedex_text"`
	RuleText           Scalar `json:"rule_text"`

	Abilities     []AbilityView   `json:"abilities"`
	Features      []FeatureView   `json:"features"`
	Commodities   []CommodityView `json:"commodities"`
	Illustrators  []string        `json:"illustrators"`
	CollectionIDs []int64         `json:"collection_ids"`
}

type AbilityView struct {
	Name   Scalar `json:"name"`
	Text   Scalar `json:"text"`
	Cost   Scalar `json:"cost"`
	Damage Scalar `json:"damage"`
}

type FeatureView struct {
	Name Scalar `json:"name"`
	Desc Scalar `json:"desc"`
}

type CommodityView struct {
	Name Scalar `json:"name"`
	Code Scalar `json:"code"`
}

type CollectionView struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	CommodityCode Scalar `json:"commodity_code"`
	SalesDate     Scalar `json:"sales_date"`
	Series        Scalar `json:"series"`
	SeriesText    Scalar `json:"series_text"`
	GoodsType     Scalar `json:"goods_type"`
	LinkType      Scalar `json:"link_type"`
	Image         Scalar `json:"image"`
	CardCount     int    `json:"card_count"`
}

type DictEntry struct {
	ID        int64  `json:"id"`
	TypeCode  string `json:"type_code"`
	DictCode  string `json:"dict_code"`
	DictValue string `json:"dict_value"`
	DictSort  Scalar `json:"dict_sort"`
	Status    Scalar `json:"status"`
}
