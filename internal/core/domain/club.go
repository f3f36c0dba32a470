package domain

import "time"

// Club is the slice of the federation's club record this core needs:
// provisioning a manager requires the club to exist and its name appears in
// the credential email. The full club entity (athletes, insurance, payments)
// lives outside this core.
type Club struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	City      string    `json:"city,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
