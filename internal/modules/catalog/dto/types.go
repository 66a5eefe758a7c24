package dto

type GameOutput struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon,omitempty"`
}

type FriendOutput struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Handle string `json:"handle,omitempty"`
}

type CreateGameInput struct {
	Name string
	Icon string
}

type UpdateGameInput struct {
	ID   string
	Name string
	Icon string
}

type CreateFriendInput struct {
	Name   string
	Handle string
}

type SyncOutput struct {
	Created int
	Renamed int
	Removed int
}
