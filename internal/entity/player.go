package entity

const DefaultPlayerName = "Player"

type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func NewPlayer(id, name string) Player {
	if name == "" {
		name = DefaultPlayerName
	}

	return Player{ID: id, Name: name}
}
