package dtos

type RegisterRequest struct {
	Username       string `json:"username"`
	Password       string `json:"password"`
	InvitationCode string `json:"invitationCode,omitempty"`
	CaptchaToken   string `json:"captchaToken,omitempty"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ChangeUsernameRequest struct {
	Username string `json:"username"`
}

type ConfigurationDTO struct {
	Economy  int `json:"e"`
	Business int `json:"b"`
	First    int `json:"f"`
	Cargo    int `json:"cargo"`
}

type CreateAircraftRequest struct {
	Model         string           `json:"ac_model"`
	Size          string           `json:"size"`
	Type          string           `json:"type"`
	Registration  string           `json:"registration"`
	Configuration ConfigurationDTO `json:"configuration"`
	Airport       string           `json:"airport"`
	AircraftGroup *string          `json:"aircraftGroup,omitempty"`
}

// UpdateAircraftRequest is a partial update; nil fields are left alone.
// An empty AircraftGroup takes the aircraft out of its group.
type UpdateAircraftRequest struct {
	Model         *string           `json:"ac_model,omitempty"`
	Size          *string           `json:"size,omitempty"`
	Type          *string           `json:"type,omitempty"`
	Registration  *string           `json:"registration,omitempty"`
	Configuration *ConfigurationDTO `json:"configuration,omitempty"`
	Airport       *string           `json:"airport,omitempty"`
	AircraftGroup *string           `json:"aircraftGroup,omitempty"`
}

type CreateContractRequest struct {
	ContractType string `json:"contractType"`
	Player       string `json:"player,omitempty"`
	Destination  string `json:"destination"`
}

type LogProfitRequest struct {
	Profit *float64 `json:"profit"`
}

type CreateGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Colour      string `json:"colour"`
	Visibility  string `json:"visibility"`
}

type UpdateGroupRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Colour      *string `json:"colour,omitempty"`
	Visibility  *string `json:"visibility,omitempty"`
}

type CreateInvitationRequest struct {
	Code          string `json:"code"`
	RemainingUses int    `json:"remainingUses"`
}
