package models

// Board is the whole brainstorming workspace of one user. It is stored as a
// single document and replaced wholesale on every write.
type Board struct {
	Cards       map[string]Card   `bson:"cards" json:"cards"`
	Columns     map[string]Column `bson:"columns" json:"columns"`
	ColumnOrder []string          `bson:"columnOrder" json:"columnOrder"`
}

type Card struct {
	ID      string `bson:"id" json:"id"`
	Content string `bson:"content" json:"content"`
}

type Column struct {
	ID      string   `bson:"id" json:"id"`
	Title   string   `bson:"title" json:"title"`
	CardIDs []string `bson:"cardIds" json:"cardIds"`
}

const WelcomeCardContent = "Welcome! Drag this card or create a new one."

// DefaultColumns is the seed layout of a new board, in display order.
var DefaultColumns = []Column{
	{ID: "col-1", Title: "To Do"},
	{ID: "col-2", Title: "In Progress"},
	{ID: "col-3", Title: "Done"},
}

// NewDefaultBoard builds the board a user sees on first access: one welcome
// card with the given id in the first of the three default columns.
func NewDefaultBoard(welcomeCardID string) Board {
	board := Board{
		Cards: map[string]Card{
			welcomeCardID: {ID: welcomeCardID, Content: WelcomeCardContent},
		},
		Columns:     make(map[string]Column, len(DefaultColumns)),
		ColumnOrder: make([]string, 0, len(DefaultColumns)),
	}
	for i, col := range DefaultColumns {
		cardIDs := []string{}
		if i == 0 {
			cardIDs = append(cardIDs, welcomeCardID)
		}
		board.Columns[col.ID] = Column{ID: col.ID, Title: col.Title, CardIDs: cardIDs}
		board.ColumnOrder = append(board.ColumnOrder, col.ID)
	}
	return board
}
