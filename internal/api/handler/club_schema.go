package handler

type createClubRequest struct {
	Name        string   `json:"name"        validate:"required,max=120"`
	Description string   `json:"description" validate:"max=2000"`
	Address     string   `json:"address"     validate:"max=200"`
	City        string   `json:"city"        validate:"max=100"`
	MinAge      *int     `json:"minAge"      validate:"omitempty,min=0,max=99"`
	Genres      []string `json:"genres"      validate:"max=10,dive,required,max=40"`
	ImageURL    string   `json:"imageUrl"    validate:"omitempty,url,max=500"`
}
