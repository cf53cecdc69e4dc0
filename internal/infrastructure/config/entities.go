package config

// EntitiesConfig is the root config for entities.json
type EntitiesConfig struct {
	Enemies map[string]EnemyConfig  `json:"enemies"`
	Pickups map[string]PickupConfig `json:"pickups"`
}

type EnemyConfig struct {
	ID    string     `json:"id"`
	Size  Size       `json:"size"`
	Stats EnemyStats `json:"stats"`
}

type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type EnemyStats struct {
	MaxHealth      int     `json:"maxHealth"`
	ContactDamage  float64 `json:"contactDamage"`
	MoveSpeed      float64 `json:"moveSpeed,omitempty"`
	PatrolDistance float64 `json:"patrolDistance,omitempty"`
}

type PickupConfig struct {
	ID     string  `json:"id"`
	Size   Size    `json:"size"`
	Amount float64 `json:"amount,omitempty"`
}
