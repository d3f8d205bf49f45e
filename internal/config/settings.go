package config

import "time"

// Defaults used when the environment does not override them.
const (
	DefaultScene       = "stars"
	DefaultInterval    = 66 * time.Millisecond
	DefaultSSHHost     = "::"
	DefaultSSHPort     = "2222"
	DefaultHostKeyPath = "/app/keys/host_key"
	DefaultWebHost     = "0.0.0.0"
	DefaultWebPort     = "8080"
	DefaultNotesDir    = "notes"
)

// Settings is the environment-derived configuration shared by the commands.
type Settings struct {
	Scene    string        // NIGHTSKY_SCENE
	Interval time.Duration // NIGHTSKY_INTERVAL
	Count    int           // NIGHTSKY_COUNT, zero keeps the scene default
	Sound    bool          // NIGHTSKY_SOUND
	LogFile  string        // NIGHTSKY_LOG, empty discards logs of the terminal front-ends
	Debug    bool          // NIGHTSKY_DEBUG

	SSHHost        string        // SSH_HOST
	SSHPort        string        // SSH_PORT
	HostKeyPath    string        // SSH_HOST_KEY
	SSHDisplayHost string        // SSH_DISPLAY_HOST, shown on the landing page
	SessionLimit   time.Duration // SSH_SESSION_LIMIT, zero for none

	WebHost  string // WEB_HOST
	WebPort  string // WEB_PORT
	NotesDir string // NOTES_DIR
}

// Load reads Settings from the environment.
func Load() Settings {
	s := Settings{
		Scene:    GetEnv("NIGHTSKY_SCENE", DefaultScene),
		Interval: GetEnvDuration("NIGHTSKY_INTERVAL", DefaultInterval),
		Count:    GetEnvInt("NIGHTSKY_COUNT", 0),
		Sound:    GetEnvBool("NIGHTSKY_SOUND", true),
		LogFile:  GetEnv("NIGHTSKY_LOG", ""),
		Debug:    GetEnvBool("NIGHTSKY_DEBUG", false),

		SSHHost:        GetEnv("SSH_HOST", DefaultSSHHost),
		SSHPort:        GetEnv("SSH_PORT", DefaultSSHPort),
		HostKeyPath:    GetEnv("SSH_HOST_KEY", DefaultHostKeyPath),
		SSHDisplayHost: GetEnv("SSH_DISPLAY_HOST", "your-server.com"),
		SessionLimit:   GetEnvDuration("SSH_SESSION_LIMIT", 30*time.Minute),

		WebHost:  GetEnv("WEB_HOST", DefaultWebHost),
		WebPort:  GetEnv("WEB_PORT", DefaultWebPort),
		NotesDir: GetEnv("NOTES_DIR", DefaultNotesDir),
	}
	if s.Interval <= 0 {
		s.Interval = DefaultInterval
	}
	return s
}
