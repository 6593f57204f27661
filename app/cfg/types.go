package cfg

type Cfg struct {
	// Database configuration
	DBPath string

	// Application configuration
	Port        string
	SeedsFile   string
	WorkerCount int

	// Application metadata
	Timezone string
	Debug    bool
	Version  string
}
