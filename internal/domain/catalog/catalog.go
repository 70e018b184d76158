package catalog

import (
	"slices"
)

// Item is a purchasable catalog entry. Price is expressed in cents.
type Item struct {
	Name  string
	Price int64
}

// Category identifies one of the purchasable groups of the menu.
type Category int

const (
	Snacks Category = iota + 1
	Drinks
	Desserts
)

// Categories returns all categories in menu order.
func Categories() []Category {
	return []Category{Snacks, Drinks, Desserts}
}

// String returns the label shown in the main menu.
func (c Category) String() string {
	switch c {
	case Snacks:
		return "Lanches"
	case Drinks:
		return "Bebidas"
	case Desserts:
		return "Sobremesas"
	default:
		return "Desconhecida"
	}
}

// Noun returns the singular noun used when asking for an item of c.
func (c Category) Noun() string {
	switch c {
	case Snacks:
		return "lanche"
	case Drinks:
		return "bebida"
	case Desserts:
		return "sobremesa"
	default:
		return "item"
	}
}

// Menu is a read-only registry of the catalogs of every category.
type Menu struct {
	catalogs map[Category][]Item
}

// New builds a Menu from the given catalogs. The input is copied, so later
// changes to it do not affect the Menu.
func New(catalogs map[Category][]Item) *Menu {
	m := &Menu{catalogs: make(map[Category][]Item, len(catalogs))}
	for c, items := range catalogs {
		m.catalogs[c] = slices.Clone(items)
	}
	return m
}

// Default returns the snack bar's fixed menu.
func Default() *Menu {
	return New(map[Category][]Item{
		Snacks: {
			{Name: "Hambúrguer", Price: 1000},
			{Name: "Cheeseburguer", Price: 1200},
			{Name: "X-Bacon", Price: 1500},
		},
		Drinks: {
			{Name: "Refrigerante", Price: 500},
			{Name: "Suco", Price: 700},
			{Name: "Água", Price: 300},
		},
		Desserts: {
			{Name: "Sorvete", Price: 800},
			{Name: "Bolo", Price: 600},
			{Name: "Pudim", Price: 500},
		},
	})
}

// Items returns a copy of the catalog of c, nil for an unknown category.
func (m *Menu) Items(c Category) []Item {
	return slices.Clone(m.catalogs[c])
}
