package entity

import "time"

// Center centro de envasado/almacenamiento de GLP.
type Center struct {
	ID        string
	Code      string
	Name      string
	Timezone  string
	CreatedAt time.Time
}
