package catalog

import (
	"github.com/rgehrsitz/colcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// Item identifiers. Prices for these are supplied per city by the price store.
const (
	RentCentralSmall = 101
	RentOuterSmall   = 102
	RentCentralBig   = 103
	RentOuterBig     = 104

	UtilitiesSmall = 110
	UtilitiesBig   = 111
	Internet       = 112

	MealInexpensive = 201
	MealMidRange    = 202
	Milk            = 203
	Bread           = 204
	Eggs            = 205
	Chicken         = 206
	Vegetables      = 207
	Fruit           = 208
	Cappuccino      = 209

	TransitPass   = 301
	TransitTicket = 302
	Taxi          = 303
	Gasoline      = 304

	FitnessClub = 401
	Cinema      = 402
	Streaming   = 403

	Jeans         = 501
	SummerDress   = 502
	RunningShoes  = 503
	BusinessShoes = 504

	PreschoolMonthly = 601
)

var entries = []Entry{
	{RentCentralSmall, domain.CategoryHousing, "Apartment (1 bedroom) in city centre", true},
	{RentOuterSmall, domain.CategoryHousing, "Apartment (1 bedroom) outside of centre", true},
	{RentCentralBig, domain.CategoryHousing, "Apartment (3 bedrooms) in city centre", true},
	{RentOuterBig, domain.CategoryHousing, "Apartment (3 bedrooms) outside of centre", true},

	{UtilitiesSmall, domain.CategoryUtilities, "Basic utilities, small apartment", false},
	{UtilitiesBig, domain.CategoryUtilities, "Basic utilities, large apartment", false},
	{Internet, domain.CategoryUtilities, "Internet (60 Mbps or more)", false},

	{MealInexpensive, domain.CategoryFood, "Meal, inexpensive restaurant", false},
	{MealMidRange, domain.CategoryFood, "Meal for two, mid-range restaurant", false},
	{Milk, domain.CategoryFood, "Milk (1 liter)", false},
	{Bread, domain.CategoryFood, "Loaf of fresh bread (500g)", false},
	{Eggs, domain.CategoryFood, "Eggs (12)", false},
	{Chicken, domain.CategoryFood, "Chicken fillets (1kg)", false},
	{Vegetables, domain.CategoryFood, "Vegetables (1kg)", false},
	{Fruit, domain.CategoryFood, "Fruit (1kg)", false},
	{Cappuccino, domain.CategoryFood, "Cappuccino", false},

	{TransitPass, domain.CategoryTransport, "Monthly public transport pass", false},
	{TransitTicket, domain.CategoryTransport, "One-way public transport ticket", false},
	{Taxi, domain.CategoryTransport, "Taxi ride (8km)", false},
	{Gasoline, domain.CategoryTransport, "Gasoline (1 liter)", false},

	{FitnessClub, domain.CategoryLeisure, "Fitness club, monthly fee", false},
	{Cinema, domain.CategoryLeisure, "Cinema ticket", false},
	{Streaming, domain.CategoryLeisure, "Streaming subscription", false},

	{Jeans, domain.CategoryClothing, "Pair of jeans", false},
	{SummerDress, domain.CategoryClothing, "Summer dress", false},
	{RunningShoes, domain.CategoryClothing, "Pair of running shoes", false},
	{BusinessShoes, domain.CategoryClothing, "Pair of leather business shoes", false},

	{PreschoolMonthly, domain.CategoryPreschool, "Preschool, full day, monthly", false},
}

func li(id int, qty float64) domain.LineItem {
	return domain.LineItem{ItemID: id, Quantity: decimal.NewFromFloat(qty)}
}

// scale multiplies every quantity of a list; pair and family tables are derived from solo ones
func scale(items []domain.LineItem, factor float64) []domain.LineItem {
	out := make([]domain.LineItem, len(items))
	f := decimal.NewFromFloat(factor)
	for i, it := range items {
		out[i] = domain.LineItem{ItemID: it.ItemID, Quantity: it.Quantity.Mul(f)}
	}
	return out
}

var soloTables = map[domain.Category]levelTable{
	domain.CategoryFood: {
		domain.ConsumptionLow: {
			li(Milk, 8), li(Bread, 8), li(Eggs, 2), li(Chicken, 2), li(Vegetables, 6), li(Fruit, 4),
		},
		domain.ConsumptionMedium: {
			li(MealInexpensive, 4), li(Milk, 10), li(Bread, 8), li(Eggs, 3), li(Chicken, 3),
			li(Vegetables, 8), li(Fruit, 6), li(Cappuccino, 8),
		},
		domain.ConsumptionHigh: {
			li(MealInexpensive, 8), li(MealMidRange, 2), li(Milk, 10), li(Bread, 8), li(Eggs, 3),
			li(Chicken, 4), li(Vegetables, 10), li(Fruit, 8), li(Cappuccino, 20),
		},
	},
	domain.CategoryTransport: {
		domain.ConsumptionLow:    {li(TransitPass, 1)},
		domain.ConsumptionMedium: {li(TransitPass, 1), li(Taxi, 2)},
		domain.ConsumptionHigh:   {li(Gasoline, 80), li(Taxi, 6)},
	},
	domain.CategoryLeisure: {
		domain.ConsumptionLow:    {li(Streaming, 1)},
		domain.ConsumptionMedium: {li(Streaming, 1), li(Cinema, 2)},
		domain.ConsumptionHigh:   {li(Streaming, 1), li(Cinema, 4), li(FitnessClub, 1)},
	},
	domain.CategoryClothing: {
		domain.ConsumptionLow:    {li(Jeans, 0.1), li(RunningShoes, 0.1)},
		domain.ConsumptionMedium: {li(Jeans, 0.25), li(SummerDress, 0.25), li(RunningShoes, 0.15)},
		domain.ConsumptionHigh: {
			li(Jeans, 0.5), li(SummerDress, 0.5), li(RunningShoes, 0.25), li(BusinessShoes, 0.25),
		},
	},
}

func scaledTables(factor float64) map[domain.Category]levelTable {
	out := make(map[domain.Category]levelTable, len(soloTables))
	for cat, levels := range soloTables {
		lt := make(levelTable, len(levels))
		for level, items := range levels {
			lt[level] = scale(items, factor)
		}
		out[cat] = lt
	}
	return out
}

// Default returns the built-in catalog
func Default() *Catalog {
	c := &Catalog{
		entries: make(map[int]Entry, len(entries)),
		housing: map[housingKey]int{
			{LocationCentral, SizeSmall}: RentCentralSmall,
			{LocationOuter, SizeSmall}:   RentOuterSmall,
			{LocationCentral, SizeBig}:   RentCentralBig,
			{LocationOuter, SizeBig}:     RentOuterBig,
		},
		utilities: map[HousingSize][]domain.LineItem{
			SizeSmall: {li(UtilitiesSmall, 1), li(Internet, 1)},
			SizeBig:   {li(UtilitiesBig, 1), li(Internet, 1)},
		},
		consumption: map[domain.HouseholdType]map[domain.Category]levelTable{
			domain.HouseholdSolo:   soloTables,
			domain.HouseholdPair:   scaledTables(2),
			domain.HouseholdFamily: scaledTables(3),
		},
		preschool: map[domain.HouseholdType][]domain.LineItem{
			domain.HouseholdFamily: {li(PreschoolMonthly, 1)},
		},
	}
	for _, e := range entries {
		c.entries[e.ItemID] = e
	}
	return c
}
