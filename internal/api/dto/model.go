package dto

type TrainResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Examples  int    `json:"examples,omitempty"`
	Successes int    `json:"successes,omitempty"`
	Failures  int    `json:"failures,omitempty"`
}
