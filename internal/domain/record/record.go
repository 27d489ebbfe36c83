package record

import "time"

// Summary is the searchable header of a stored game record.
type Summary struct {
	Key         string    `json:"key" bson:"key"`
	PlayerBlack string    `json:"player_black" bson:"player_black"`
	PlayerWhite string    `json:"player_white" bson:"player_white"`
	Result      string    `json:"result" bson:"result"`
	Date        string    `json:"date" bson:"date"`
	BoardSize   int       `json:"board_size" bson:"board_size"`
	Komi        float64   `json:"komi" bson:"komi"`
	Games       int       `json:"games" bson:"games"`
	Nodes       int       `json:"nodes" bson:"nodes"`
	Moves       int       `json:"moves" bson:"moves"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// SearchResponse is one page of summaries.
type SearchResponse struct {
	Records []Summary `json:"records"`
	Page    int       `json:"page"`
	HasMore bool      `json:"has_more"`
}

// Point is one intersection in a board snapshot.
type Point struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// BoardView is the JSON shape of a reconstructed position.
// Rows hold "." for empty, "B" and "W" for stones.
type BoardView struct {
	Size          int      `json:"size"`
	Rows          []string `json:"rows"`
	MoveNumber    int      `json:"move_number"`
	CapturedBlack int      `json:"captured_black"`
	CapturedWhite int      `json:"captured_white"`
	Ko            *Point   `json:"ko,omitempty"`
	NextColor     string   `json:"next_color"`
}

// State is what a client sees of an editing session.
type State struct {
	Key        string    `json:"key"`
	Cursor     int       `json:"cursor"`
	Parent     int       `json:"parent"`
	Children   []int     `json:"children"`
	Properties []string  `json:"properties"`
	Board      BoardView `json:"board"`
	SGF        string    `json:"sgf"`
}
