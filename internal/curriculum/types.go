package curriculum

// Topic is a curriculum topic as authored in YAML.
type Topic struct {
	ID               string   `yaml:"id"`
	Name             string   `yaml:"name"`
	Difficulty       string   `yaml:"difficulty"`
	Category         string   `yaml:"category"`
	EstimatedMinutes int      `yaml:"estimated_minutes"`
	Prerequisites    []string `yaml:"prerequisites"`
}
