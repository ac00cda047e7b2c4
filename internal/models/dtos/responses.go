package dtos

import (
	"time"

	"woa-fleet/hangar/internal/constants"
	"woa-fleet/hangar/internal/lifecycle"
	gormModels "woa-fleet/hangar/internal/models/gorm"
)

type APIResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	ResponseTime string `json:"response_time"`
	Data         any    `json:"data,omitempty"`
}

type ContractResponse struct {
	ID           string                 `json:"id"`
	ContractType constants.ContractType `json:"contractType"`
	Player       string                 `json:"player,omitempty"`
	Destination  string                 `json:"destination"`
	Profits      []float64              `json:"profits"`
	Progress     lifecycle.ProgressView `json:"progress"`
	Finished     bool                   `json:"finished"`
	MeanProfit   *float64               `json:"meanProfit,omitempty"`
	LastHandled  *time.Time             `json:"lastHandled,omitempty"`
}

func NewContractResponse(c lifecycle.Contract) ContractResponse {
	profits := c.Profits
	if profits == nil {
		profits = []float64{}
	}
	resp := ContractResponse{
		ID:           c.ID,
		ContractType: c.ContractType,
		Player:       c.Player,
		Destination:  c.Destination,
		Profits:      profits,
		Progress:     lifecycle.ViewProgress(c),
		Finished:     c.Finished,
		LastHandled:  c.LastHandled,
	}
	if mean, ok := c.MeanProfit(); ok {
		resp.MeanProfit = &mean
	}
	return resp
}

type AircraftResponse struct {
	ID            string                   `json:"id"`
	Model         string                   `json:"ac_model"`
	Size          constants.AircraftSize   `json:"size"`
	Type          constants.AircraftType   `json:"type"`
	Registration  string                   `json:"registration"`
	Configuration ConfigurationDTO         `json:"configuration"`
	Airport       string                   `json:"airport"`
	Status        constants.AircraftStatus `json:"status"`
	TotalProfits  float64                  `json:"totalProfits"`
	Contracts     []ContractResponse       `json:"contracts"`
	AircraftGroup *string                  `json:"aircraftGroup,omitempty"`
	HasImage      bool                     `json:"hasImage"`
	CreatedAt     time.Time                `json:"createdAt"`
	UpdatedAt     time.Time                `json:"updatedAt"`
}

func NewAircraftResponse(a gormModels.Aircraft) AircraftResponse {
	contracts := make([]ContractResponse, 0, len(a.Contracts))
	for _, c := range a.Contracts {
		contracts = append(contracts, NewContractResponse(c))
	}
	return AircraftResponse{
		ID:           a.ID,
		Model:        a.Model,
		Size:         a.Size,
		Type:         a.Type,
		Registration: a.Registration,
		Configuration: ConfigurationDTO{
			Economy:  a.Configuration.Economy,
			Business: a.Configuration.Business,
			First:    a.Configuration.First,
			Cargo:    a.Configuration.Cargo,
		},
		Airport:       a.Airport,
		Status:        a.Status,
		TotalProfits:  a.TotalProfits,
		Contracts:     contracts,
		AircraftGroup: a.AircraftGroupID,
		HasImage:      a.ImageKey != nil,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func NewAircraftListResponse(list []gormModels.Aircraft) []AircraftResponse {
	out := make([]AircraftResponse, 0, len(list))
	for _, a := range list {
		out = append(out, NewAircraftResponse(a))
	}
	return out
}

type GroupResponse struct {
	ID            string                    `json:"id"`
	Name          string                    `json:"name"`
	Description   string                    `json:"description"`
	Colour        string                    `json:"colour"`
	Visibility    constants.GroupVisibility `json:"visibility"`
	AircraftCount int                       `json:"aircraftCount"`
	Aircraft      []AircraftResponse        `json:"aircraft,omitempty"`
	CreatedAt     time.Time                 `json:"createdAt"`
}

func NewGroupResponse(g gormModels.AircraftGroup, count int) GroupResponse {
	return GroupResponse{
		ID:            g.ID,
		Name:          g.Name,
		Description:   g.Description,
		Colour:        g.Colour,
		Visibility:    g.Visibility,
		AircraftCount: count,
		CreatedAt:     g.CreatedAt,
	}
}

type SharedGroupResponse struct {
	Owner string        `json:"owner"`
	Group GroupResponse `json:"group"`
}

type UserResponse struct {
	ID        string             `json:"id"`
	Username  string             `json:"username"`
	Role      constants.UserRole `json:"role"`
	CreatedAt time.Time          `json:"createdAt"`
}

func NewUserResponse(u gormModels.User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username, Role: u.Role, CreatedAt: u.CreatedAt}
}

type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

type UsernameAvailabilityResponse struct {
	Available bool `json:"available"`
}

type SiteKeyResponse struct {
	SiteKey string `json:"siteKey"`
}

type ImageUploadResponse struct {
	ContentType string `json:"contentType"`
	Size        int    `json:"size"`
}
