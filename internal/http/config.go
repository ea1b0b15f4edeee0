package http

// BasicAuth protects the API when a username is set
type BasicAuth struct {
	Username string
	Password string
}

// Configuration the HTTP server configuration
type Configuration struct {
	Host       string `validate:"required"`
	Port       uint32 `validate:"required"`
	Key        string
	Cert       string
	Cacert     string
	Insecure   bool
	ServerName string    `yaml:"server-name"`
	BasicAuth  BasicAuth `yaml:"basic-auth"`
}
