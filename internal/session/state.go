package session

import "github.com/xenking/lanchonete/internal/domain/catalog"

// State is a node of the navigation state machine.
type State int

const (
	Welcome State = iota
	MainMenu
	SnacksMenu
	DrinksMenu
	DessertsMenu
	Summary
	Exit
)

func (s State) String() string {
	switch s {
	case Welcome:
		return "welcome"
	case MainMenu:
		return "main_menu"
	case SnacksMenu:
		return "snacks_menu"
	case DrinksMenu:
		return "drinks_menu"
	case DessertsMenu:
		return "desserts_menu"
	case Summary:
		return "summary"
	case Exit:
		return "exit"
	default:
		return "unknown"
	}
}

// categoryStates maps each category menu state to the catalog it browses.
var categoryStates = map[State]catalog.Category{
	SnacksMenu:   catalog.Snacks,
	DrinksMenu:   catalog.Drinks,
	DessertsMenu: catalog.Desserts,
}

// mainMenuTargets lists the main menu options in display order.
var mainMenuTargets = []State{SnacksMenu, DrinksMenu, DessertsMenu, Summary}
