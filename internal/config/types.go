package config

// Config is the top-level reportdeck configuration, corresponding to .reportdeck.yml.
type Config struct {
	Port           int      `yaml:"port" koanf:"port"`
	DataDir        string   `yaml:"data_dir" koanf:"data_dir"`
	AssetsDir      string   `yaml:"assets_dir" koanf:"assets_dir"`
	BaseURL        string   `yaml:"base_url" koanf:"base_url"`
	AllowAllCORS   bool     `yaml:"allow_all_cors" koanf:"allow_all_cors"`
	MaxUploadMB    int      `yaml:"max_upload_mb" koanf:"max_upload_mb"`
	AllowedUploads []string `yaml:"allowed_uploads" koanf:"allowed_uploads"`
	SessionCookie  string   `yaml:"session_cookie" koanf:"session_cookie"`
}
